package machine

import "github.com/mna/ippcode23/lang/program"

// execLabel is a no-op at execution time: label positions are resolved once
// in the pre-pass (Machine.buildLabels) before Run starts stepping.
func execLabel(_ *Machine, _ *program.Instruction) error {
	return nil
}

func execJump(m *Machine, in *program.Instruction) error {
	return jumpTo(m, argLabel(in, 0))
}
