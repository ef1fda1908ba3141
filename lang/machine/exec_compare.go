package machine

import (
	"github.com/mna/ippcode23/lang/faults"
	"github.com/mna/ippcode23/lang/program"
	"github.com/mna/ippcode23/lang/value"
)

// compareValues implements LT/GT/EQ (and their stack forms). LT and GT
// require both operands to be the same non-nil kind (for bools, false orders
// before true); EQ additionally allows
// both operands to be Nil (comparing equal to each other and to nothing
// else), matching the reference implementation's special-cased nil rule.
func compareValues(op string, a, b value.Value) (bool, error) {
	_, aNil := a.(value.NilType)
	_, bNil := b.(value.NilType)
	if op == "==" {
		if aNil || bNil {
			return aNil && bNil, nil
		}
	} else if aNil || bNil {
		return false, faults.New(faults.TypeMismatch, "%s: nil is not ordered", op)
	}

	switch av := a.(type) {
	case value.Int:
		bv, ok := b.(value.Int)
		if !ok {
			return false, faults.New(faults.TypeMismatch, "%s requires two operands of the same type", op)
		}
		return applyOrder(op, compareOrdered(av, bv)), nil
	case value.Float:
		bv, ok := b.(value.Float)
		if !ok {
			return false, faults.New(faults.TypeMismatch, "%s requires two operands of the same type", op)
		}
		return applyOrder(op, compareOrdered(av, bv)), nil
	case value.Str:
		bv, ok := b.(value.Str)
		if !ok {
			return false, faults.New(faults.TypeMismatch, "%s requires two operands of the same type", op)
		}
		return applyOrder(op, compareOrdered(av, bv)), nil
	case value.Bool:
		bv, ok := b.(value.Bool)
		if !ok {
			return false, faults.New(faults.TypeMismatch, "%s requires two operands of the same type", op)
		}
		var ai, bi int64
		if av {
			ai = 1
		}
		if bv {
			bi = 1
		}
		return applyOrder(op, compareOrdered(ai, bi)), nil
	default:
		return false, faults.New(faults.TypeMismatch, "%s: unsupported operand type", op)
	}
}

func compareOrdered[T ~int64 | ~float64 | ~string](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func applyOrder(op string, cmp int) bool {
	switch op {
	case "<":
		return cmp < 0
	case ">":
		return cmp > 0
	default:
		return cmp == 0
	}
}

func execCompare(op string) handlerFn {
	return func(m *Machine, in *program.Instruction) error {
		a, err := m.argSymb(in, 1, false)
		if err != nil {
			return err
		}
		b, err := m.argSymb(in, 2, false)
		if err != nil {
			return err
		}
		res, err := compareValues(op, a, b)
		if err != nil {
			return err
		}
		return m.writeVar(in.Args[0], value.Bool(res))
	}
}

func execCompareStack(op string) handlerFn {
	return func(m *Machine, _ *program.Instruction) error {
		if len(m.dataStack) < 2 {
			return faults.New(faults.MissingValue, "%sS: data stack underflow", op)
		}
		b := m.dataStack[len(m.dataStack)-1]
		a := m.dataStack[len(m.dataStack)-2]
		res, err := compareValues(op, a, b)
		if err != nil {
			return err
		}
		m.dataStack = m.dataStack[:len(m.dataStack)-2]
		m.dataStack = append(m.dataStack, value.Bool(res))
		return nil
	}
}

// execJumpIf implements JUMPIFEQ/JUMPIFNEQ, jumping when the equality test
// of the two symb operands matches wantEqual.
func execJumpIf(wantEqual bool) handlerFn {
	return func(m *Machine, in *program.Instruction) error {
		a, err := m.argSymb(in, 1, false)
		if err != nil {
			return err
		}
		b, err := m.argSymb(in, 2, false)
		if err != nil {
			return err
		}
		eq, err := compareValues("==", a, b)
		if err != nil {
			return err
		}
		if eq == wantEqual {
			return jumpTo(m, argLabel(in, 0))
		}
		return nil
	}
}

// execJumpIfStack implements JUMPIFEQS/JUMPIFNEQS. Per the Design Notes'
// resolution of Open Question #3, both stack operands are popped
// unconditionally before the branch decision, even when no jump results.
func execJumpIfStack(wantEqual bool) handlerFn {
	return func(m *Machine, in *program.Instruction) error {
		if len(m.dataStack) < 2 {
			return faults.New(faults.MissingValue, "JUMPIF%sS: data stack underflow", eqSuffix(wantEqual))
		}
		n := len(m.dataStack) - 2
		a, b := m.dataStack[n], m.dataStack[n+1]
		m.dataStack = m.dataStack[:n]
		eq, err := compareValues("==", a, b)
		if err != nil {
			return err
		}
		if eq == wantEqual {
			return jumpTo(m, argLabel(in, 0))
		}
		return nil
	}
}

func eqSuffix(wantEqual bool) string {
	if wantEqual {
		return "EQ"
	}
	return "NEQ"
}

func jumpTo(m *Machine, label string) error {
	target, ok := m.labels[label]
	if !ok {
		return faults.New(faults.BadOperand, "undefined label %q", label)
	}
	m.pc = target - 1
	return nil
}
