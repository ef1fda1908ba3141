package program

import (
	"strconv"
	"strings"

	"github.com/mna/ippcode23/lang/faults"
	"github.com/mna/ippcode23/lang/value"
)

// ParseOperand converts one XML arg element's type attribute and trimmed
// text content into an Operand. It applies the per-kind normalization of
// spec §4.1: string escape decoding, int/float parsing, bool
// canonicalization. A var operand's "FRAME@NAME" text is kept raw and
// unvalidated here; it is split and checked only when the owning
// instruction is dispatched (see ParseVarRef), so a malformed or unreached
// var reference does not prevent the program from loading.
func ParseOperand(argType, text string) (Operand, error) {
	switch argType {
	case "var":
		return Operand{Kind: KindVar, VarText: text}, nil
	case "label":
		return Operand{Kind: KindLabel, Label: text}, nil
	case "type":
		return parseTypeOperand(text)
	case "nil":
		if text != "nil" {
			return Operand{}, faults.New(faults.BadStructure, "nil literal must have text %q, got %q", "nil", text)
		}
		return Operand{Kind: KindLiteral, Literal: value.Nil}, nil
	case "int":
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return Operand{}, faults.New(faults.BadStructure, "invalid int literal %q: %w", text, err)
		}
		return Operand{Kind: KindLiteral, Literal: value.Int(n)}, nil
	case "float":
		f, err := parseFloatLiteral(text)
		if err != nil {
			return Operand{}, err
		}
		return Operand{Kind: KindLiteral, Literal: value.Float(f)}, nil
	case "bool":
		b := strings.ToLower(text) == "true"
		return Operand{Kind: KindLiteral, Literal: value.Bool(b)}, nil
	case "string":
		return Operand{Kind: KindLiteral, Literal: value.Str(decodeStringEscapes(text))}, nil
	default:
		return Operand{}, faults.New(faults.BadStructure, "unknown argument type %q", argType)
	}
}

func parseTypeOperand(text string) (Operand, error) {
	t := strings.ToLower(text)
	switch t {
	case "int", "string", "bool", "float":
		return Operand{Kind: KindType, TypeName: t}, nil
	default:
		return Operand{}, faults.New(faults.MissingValue, "invalid type literal %q", text)
	}
}

// parseFloatLiteral parses text first as a hex-float, falling back to
// decimal, then requires a round-trip back to hex-float to succeed (it
// always does for a finite, successfully-parsed float64, but the check is
// kept to mirror the reference implementation's explicit verification
// step).
func parseFloatLiteral(text string) (float64, error) {
	body := text
	if len(body) > 0 && (body[0] == '+' || body[0] == '-') {
		body = body[1:]
	}
	isHex := strings.HasPrefix(body, "0x") || strings.HasPrefix(body, "0X")

	var f float64
	var err error
	if isHex {
		f, err = strconv.ParseFloat(text, 64)
	} else {
		err = strconv.ErrSyntax
	}
	if err != nil {
		f, err = strconv.ParseFloat(text, 64)
	}
	if err != nil {
		return 0, faults.New(faults.BadStructure, "invalid float literal %q: %w", text, err)
	}

	roundTrip := strconv.FormatFloat(f, 'x', -1, 64)
	if _, err := strconv.ParseFloat(roundTrip, 64); err != nil {
		return 0, faults.New(faults.BadStructure, "float literal %q does not round-trip through hex form", text)
	}
	return f, nil
}

// decodeStringEscapes resolves every \NNN (three decimal digits) occurrence
// in text to the rune with that codepoint, leaving every other character
// untouched. Performed once at load time so stored Str values are already in
// their final display form.
func decodeStringEscapes(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); {
		if text[i] == '\\' && i+3 < len(text) && isDigit3(text[i+1:i+4]) {
			code, _ := strconv.Atoi(text[i+1 : i+4])
			b.WriteRune(rune(code))
			i += 4
			continue
		}
		b.WriteByte(text[i])
		i++
	}
	return b.String()
}

func isDigit3(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
