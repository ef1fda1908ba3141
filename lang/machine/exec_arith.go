package machine

import (
	"github.com/mna/ippcode23/lang/faults"
	"github.com/mna/ippcode23/lang/program"
	"github.com/mna/ippcode23/lang/value"
)

// computeArith computes op on two operands of the same numeric kind (both
// Int or both Float). DIV always performs true (float) division regardless
// of operand kind; IDIV requires both operands to be Int and floors.
func computeArith(op string, a, b value.Value) (value.Value, error) {
	switch op {
	case "//":
		ai, aok := a.(value.Int)
		bi, bok := b.(value.Int)
		if !aok || !bok {
			return nil, faults.New(faults.TypeMismatch, "IDIV requires two int operands")
		}
		if bi == 0 {
			return nil, faults.New(faults.BadValue, "IDIV: division by zero")
		}
		return floorDivInt(ai, bi), nil
	case "/":
		af, bf, ok := bothNumeric(a, b)
		if !ok {
			return nil, faults.New(faults.TypeMismatch, "DIV requires two operands of the same numeric kind")
		}
		if bf == 0 {
			return nil, faults.New(faults.BadValue, "DIV: division by zero")
		}
		return value.Float(af / bf), nil
	case "+", "-", "*":
		switch av := a.(type) {
		case value.Int:
			bv, ok := b.(value.Int)
			if !ok {
				return nil, faults.New(faults.TypeMismatch, "%s requires two operands of the same numeric kind", op)
			}
			switch op {
			case "+":
				return av + bv, nil
			case "-":
				return av - bv, nil
			default:
				return av * bv, nil
			}
		case value.Float:
			bv, ok := b.(value.Float)
			if !ok {
				return nil, faults.New(faults.TypeMismatch, "%s requires two operands of the same numeric kind", op)
			}
			switch op {
			case "+":
				return av + bv, nil
			case "-":
				return av - bv, nil
			default:
				return av * bv, nil
			}
		default:
			return nil, faults.New(faults.TypeMismatch, "%s requires numeric operands", op)
		}
	default:
		panic("unreachable arithmetic operator " + op)
	}
}

// floorDivInt implements IDIV's floor division, matching Python's // for
// integers (which rounds toward negative infinity, not toward zero).
func floorDivInt(a, b value.Int) value.Int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func bothNumeric(a, b value.Value) (float64, float64, bool) {
	switch av := a.(type) {
	case value.Int:
		if bv, ok := b.(value.Int); ok {
			return float64(av), float64(bv), true
		}
	case value.Float:
		if bv, ok := b.(value.Float); ok {
			return float64(av), float64(bv), true
		}
	}
	return 0, 0, false
}

func execArith(op string) handlerFn {
	return func(m *Machine, in *program.Instruction) error {
		a, err := m.argSymb(in, 1, false)
		if err != nil {
			return err
		}
		b, err := m.argSymb(in, 2, false)
		if err != nil {
			return err
		}
		res, err := computeArith(op, a, b)
		if err != nil {
			return err
		}
		return m.writeVar(in.Args[0], res)
	}
}

// execArithStack implements ADDS/SUBS/MULS/IDIVS. Per the Design Notes'
// resolution of Open Question #1, these require both operands of the same
// numeric kind (not strictly int), consistent with the non-stack forms.
func execArithStack(op string) handlerFn {
	return func(m *Machine, _ *program.Instruction) error {
		if len(m.dataStack) < 2 {
			return faults.New(faults.MissingValue, "%sS: data stack underflow", op)
		}
		b := m.dataStack[len(m.dataStack)-1]
		a := m.dataStack[len(m.dataStack)-2]
		res, err := computeArith(op, a, b)
		if err != nil {
			return err
		}
		m.dataStack = m.dataStack[:len(m.dataStack)-2]
		m.dataStack = append(m.dataStack, res)
		return nil
	}
}
