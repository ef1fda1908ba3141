package machine

import (
	"unicode/utf8"

	"github.com/mna/ippcode23/lang/faults"
	"github.com/mna/ippcode23/lang/program"
	"github.com/mna/ippcode23/lang/value"
)

func execConcat(m *Machine, in *program.Instruction) error {
	av, err := m.argSymb(in, 1, false)
	if err != nil {
		return err
	}
	bv, err := m.argSymb(in, 2, false)
	if err != nil {
		return err
	}
	a, ok := av.(value.Str)
	if !ok {
		return faults.New(faults.TypeMismatch, "CONCAT requires two string operands")
	}
	b, ok := bv.(value.Str)
	if !ok {
		return faults.New(faults.TypeMismatch, "CONCAT requires two string operands")
	}
	return m.writeVar(in.Args[0], a+b)
}

// execStrlen reports the rune (code point) count of a string, not its byte
// length.
func execStrlen(m *Machine, in *program.Instruction) error {
	v, err := m.argSymb(in, 1, false)
	if err != nil {
		return err
	}
	s, ok := v.(value.Str)
	if !ok {
		return faults.New(faults.TypeMismatch, "STRLEN requires a string operand")
	}
	return m.writeVar(in.Args[0], value.Int(utf8.RuneCountInString(string(s))))
}

func execGetChar(m *Machine, in *program.Instruction) error {
	sv, err := m.argSymb(in, 1, false)
	if err != nil {
		return err
	}
	iv, err := m.argSymb(in, 2, false)
	if err != nil {
		return err
	}
	s, ok := sv.(value.Str)
	if !ok {
		return faults.New(faults.TypeMismatch, "GETCHAR requires a string operand")
	}
	idx, ok := iv.(value.Int)
	if !ok {
		return faults.New(faults.TypeMismatch, "GETCHAR requires an int index")
	}
	runes := []rune(string(s))
	if idx < 0 || int(idx) >= len(runes) {
		return faults.New(faults.BadIndex, "GETCHAR: index %d out of range", idx)
	}
	return m.writeVar(in.Args[0], value.Str(runes[idx]))
}

// execSetChar replaces the rune at the given index within the destination
// variable's own string value with the first rune of the source string.
func execSetChar(m *Machine, in *program.Instruction) error {
	dest, err := m.argSymb(in, 0, false)
	if err != nil {
		return err
	}
	destStr, ok := dest.(value.Str)
	if !ok {
		return faults.New(faults.TypeMismatch, "SETCHAR: destination must hold a string")
	}
	iv, err := m.argSymb(in, 1, false)
	if err != nil {
		return err
	}
	idx, ok := iv.(value.Int)
	if !ok {
		return faults.New(faults.TypeMismatch, "SETCHAR requires an int index")
	}
	sv, err := m.argSymb(in, 2, false)
	if err != nil {
		return err
	}
	src, ok := sv.(value.Str)
	if !ok {
		return faults.New(faults.TypeMismatch, "SETCHAR requires a string source")
	}
	if len(src) == 0 {
		return faults.New(faults.TypeMismatch, "SETCHAR: source string is empty")
	}

	destRunes := []rune(string(destStr))
	if idx < 0 || int(idx) >= len(destRunes) {
		return faults.New(faults.BadIndex, "SETCHAR: index %d out of range", idx)
	}
	srcRune, _ := utf8.DecodeRuneInString(string(src))
	destRunes[idx] = srcRune
	return m.writeVar(in.Args[0], value.Str(destRunes))
}
