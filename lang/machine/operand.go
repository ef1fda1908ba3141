package machine

import (
	"github.com/mna/ippcode23/lang/faults"
	"github.com/mna/ippcode23/lang/program"
	"github.com/mna/ippcode23/lang/value"
)

// varRef resolves a var-kind operand to its backing Frame and slot name,
// without reading or writing the slot. Splitting and validating the
// operand's raw "FRAME@NAME" text happens here, at dispatch time, not at
// load time: a malformed or not-yet-valid var reference only faults when
// the instruction that carries it actually runs.
func (m *Machine) varRef(op program.Operand) (*Frame, string, error) {
	fr, name, err := program.ParseVarRef(op.VarText)
	if err != nil {
		return nil, "", err
	}
	f, err := m.frames.Resolve(fr)
	if err != nil {
		return nil, "", err
	}
	return f, name, nil
}

// readVar reads the current value of a var-kind operand. Reading an Undef
// slot is fatal unless allowUndef is set (the TYPE instruction's exception).
func (m *Machine) readVar(op program.Operand, allowUndef bool) (value.Value, error) {
	f, name, err := m.varRef(op)
	if err != nil {
		return nil, err
	}
	v, err := f.Get(name)
	if err != nil {
		return nil, err
	}
	if _, undef := v.(value.UndefType); undef && !allowUndef {
		return nil, faults.New(faults.MissingValue, "variable %q is undefined", name)
	}
	return v, nil
}

// writeVar assigns v to a var-kind operand's slot.
func (m *Machine) writeVar(op program.Operand, v value.Value) error {
	f, name, err := m.varRef(op)
	if err != nil {
		return err
	}
	return f.Set(name, v)
}

// readSymb reads the value denoted by a symb-kind operand (a variable
// reference or a literal). allowUndef governs the same exception as readVar.
func (m *Machine) readSymb(op program.Operand, allowUndef bool) (value.Value, error) {
	switch op.Kind {
	case program.KindVar:
		return m.readVar(op, allowUndef)
	case program.KindLiteral:
		return op.Literal, nil
	default:
		return nil, faults.New(faults.BadOperand, "operand is not a variable or literal")
	}
}

// argVarRef resolves the var-kind argument at index i of in.
func (m *Machine) argVarRef(in *program.Instruction, i int) (*Frame, string, error) {
	return m.varRef(in.Args[i])
}

// argSymb reads the symb-kind argument at index i of in.
func (m *Machine) argSymb(in *program.Instruction, i int, allowUndef bool) (value.Value, error) {
	return m.readSymb(in.Args[i], allowUndef)
}

// argLabel returns the label-kind argument at index i of in.
func argLabel(in *program.Instruction, i int) string {
	return in.Args[i].Label
}

// argType returns the type-literal argument at index i of in.
func argType(in *program.Instruction, i int) string {
	return in.Args[i].TypeName
}
