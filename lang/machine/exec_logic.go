package machine

import (
	"github.com/mna/ippcode23/lang/faults"
	"github.com/mna/ippcode23/lang/program"
	"github.com/mna/ippcode23/lang/value"
)

func asBool(op string, v value.Value) (value.Bool, error) {
	b, ok := v.(value.Bool)
	if !ok {
		return false, faults.New(faults.TypeMismatch, "%s requires a bool operand", op)
	}
	return b, nil
}

func execLogic(op string) handlerFn {
	return func(m *Machine, in *program.Instruction) error {
		av, err := m.argSymb(in, 1, false)
		if err != nil {
			return err
		}
		bv, err := m.argSymb(in, 2, false)
		if err != nil {
			return err
		}
		a, err := asBool(op, av)
		if err != nil {
			return err
		}
		b, err := asBool(op, bv)
		if err != nil {
			return err
		}
		var res value.Bool
		if op == "and" {
			res = a && b
		} else {
			res = a || b
		}
		return m.writeVar(in.Args[0], res)
	}
}

func execNot(m *Machine, in *program.Instruction) error {
	av, err := m.argSymb(in, 1, false)
	if err != nil {
		return err
	}
	a, err := asBool("NOT", av)
	if err != nil {
		return err
	}
	return m.writeVar(in.Args[0], !a)
}

func execLogicStack(op string) handlerFn {
	return func(m *Machine, _ *program.Instruction) error {
		if len(m.dataStack) < 2 {
			return faults.New(faults.MissingValue, "%sS: data stack underflow", op)
		}
		n := len(m.dataStack) - 2
		av, bv := m.dataStack[n], m.dataStack[n+1]
		a, err := asBool(op, av)
		if err != nil {
			return err
		}
		b, err := asBool(op, bv)
		if err != nil {
			return err
		}
		var res value.Bool
		if op == "and" {
			res = a && b
		} else {
			res = a || b
		}
		m.dataStack = m.dataStack[:n]
		m.dataStack = append(m.dataStack, res)
		return nil
	}
}

func execNotStack(m *Machine, _ *program.Instruction) error {
	if len(m.dataStack) < 1 {
		return faults.New(faults.MissingValue, "NOTS: data stack underflow")
	}
	n := len(m.dataStack) - 1
	a, err := asBool("NOT", m.dataStack[n])
	if err != nil {
		return err
	}
	m.dataStack[n] = !a
	return nil
}
