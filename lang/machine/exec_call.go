package machine

import (
	"github.com/mna/ippcode23/lang/faults"
	"github.com/mna/ippcode23/lang/program"
)

func execCall(m *Machine, in *program.Instruction) error {
	target, ok := m.labels[argLabel(in, 0)]
	if !ok {
		return faults.New(faults.BadOperand, "CALL: undefined label %q", argLabel(in, 0))
	}
	m.callStack = append(m.callStack, m.pc)
	m.pc = target - 1
	return nil
}

// execReturn restores the caller's position directly (not +1): combined
// with the main loop's trailing pc++, this resumes at the instruction right
// after the matching CALL, per the Design Notes' Open Question #2.
func execReturn(m *Machine, _ *program.Instruction) error {
	if len(m.callStack) == 0 {
		return faults.New(faults.MissingValue, "RETURN: call stack is empty")
	}
	n := len(m.callStack) - 1
	m.pc = m.callStack[n]
	m.callStack = m.callStack[:n]
	return nil
}
