package machine

import (
	"github.com/mna/ippcode23/lang/faults"
	"github.com/mna/ippcode23/lang/program"
)

func execPushs(m *Machine, in *program.Instruction) error {
	v, err := m.argSymb(in, 0, false)
	if err != nil {
		return err
	}
	m.dataStack = append(m.dataStack, v)
	return nil
}

func execPops(m *Machine, in *program.Instruction) error {
	if len(m.dataStack) == 0 {
		return faults.New(faults.MissingValue, "POPS: data stack is empty")
	}
	n := len(m.dataStack) - 1
	v := m.dataStack[n]
	m.dataStack = m.dataStack[:n]
	return m.writeVar(in.Args[0], v)
}

func execClears(m *Machine, _ *program.Instruction) error {
	m.dataStack = m.dataStack[:0]
	return nil
}
