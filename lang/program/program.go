// Package program holds the structural, XML-independent data model for an
// IPPcode23 program: operands, instructions, and the ordered instruction
// list produced by the loader and consumed by the machine.
package program

import (
	"strings"

	"github.com/mna/ippcode23/lang/faults"
	"github.com/mna/ippcode23/lang/value"
)

// Frame identifies which of the three variable scopes an operand refers to.
type Frame int

const (
	GF Frame = iota
	LF
	TF
)

func (f Frame) String() string {
	switch f {
	case GF:
		return "GF"
	case LF:
		return "LF"
	case TF:
		return "TF"
	default:
		return "?"
	}
}

// ParseFrame resolves the raw "GF"/"LF"/"TF" prefix of a var operand's text.
// ok is false for any other prefix.
func ParseFrame(s string) (Frame, bool) {
	switch s {
	case "GF":
		return GF, true
	case "LF":
		return LF, true
	case "TF":
		return TF, true
	default:
		return 0, false
	}
}

// Kind identifies the syntactic shape of an Operand, independent of the
// runtime Value kind a literal operand carries.
type Kind int

const (
	// KindVar is a variable reference; its raw "FRAME@NAME" text is held in
	// Operand.VarText and split into a Frame and name at execution time.
	KindVar Kind = iota
	// KindLiteral is a literal value (int, float, bool, string or nil).
	KindLiteral
	// KindLabel is a label name, used by jump/call targets.
	KindLabel
	// KindType is a type-literal (int|string|bool|float), used by READ.
	KindType
)

// Operand is one resolved argument of an Instruction: either a variable
// reference, a literal value, a label name, or a type-literal.
type Operand struct {
	Kind Kind

	// VarText is valid when Kind == KindVar: the raw, unsplit "FRAME@NAME"
	// text of the reference. Splitting into a Frame and a variable name, and
	// validating the frame prefix, is deferred to execution time (see
	// ParseVarRef), per spec §4.1: a var operand that is never dispatched
	// must not fail to load merely for being malformed.
	VarText string

	// Literal is valid when Kind == KindLiteral.
	Literal value.Value

	// Label is valid when Kind == KindLabel.
	Label string

	// TypeName is valid when Kind == KindType: one of int/string/bool/float.
	TypeName string
}

// ParseVarRef splits a var operand's raw "FRAME@NAME" text into its Frame
// and variable name. It is called at execution time (not at load time), so
// that a malformed or unreached var operand only faults when the owning
// instruction actually runs.
func ParseVarRef(text string) (Frame, string, error) {
	prefix, name, ok := strings.Cut(text, "@")
	if !ok {
		return 0, "", faults.New(faults.BadOperand, "malformed variable reference %q", text)
	}
	fr, ok := ParseFrame(prefix)
	if !ok {
		return 0, "", faults.New(faults.BadOperand, "unknown frame %q in variable reference %q", prefix, text)
	}
	return fr, name, nil
}

// Instruction is one opcode invocation at a given execution order.
type Instruction struct {
	Order  int64
	Opcode string
	Args   []Operand
}

// Program is the full, order-sorted instruction list of a loaded IPPcode23
// program.
type Program struct {
	Instructions []Instruction
}
