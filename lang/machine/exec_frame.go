package machine

import "github.com/mna/ippcode23/lang/program"

func execCreateFrame(m *Machine, _ *program.Instruction) error {
	m.frames.CreateFrame()
	return nil
}

func execPushFrame(m *Machine, _ *program.Instruction) error {
	return m.frames.PushFrame()
}

func execPopFrame(m *Machine, _ *program.Instruction) error {
	return m.frames.PopFrame()
}

func execDefVar(m *Machine, in *program.Instruction) error {
	fr, name, err := program.ParseVarRef(in.Args[0].VarText)
	if err != nil {
		return err
	}
	return m.frames.DefVar(fr, name)
}
