package machine

import (
	"github.com/mna/ippcode23/lang/program"
	"github.com/mna/ippcode23/lang/value"
)

func execMove(m *Machine, in *program.Instruction) error {
	v, err := m.argSymb(in, 1, false)
	if err != nil {
		return err
	}
	return m.writeVar(in.Args[0], v)
}

// execType writes the string name of a symb's dynamic kind. Reading an
// Undef symb is explicitly allowed here and yields the empty string.
func execType(m *Machine, in *program.Instruction) error {
	v, err := m.argSymb(in, 1, true)
	if err != nil {
		return err
	}
	return m.writeVar(in.Args[0], value.Str(v.Type()))
}
