package machine

import (
	"strings"

	"github.com/mna/ippcode23/lang/faults"
	"github.com/mna/ippcode23/lang/program"
)

// formalKind describes what a formal instruction argument position expects,
// independent of the specific opcode. It drives the operand-shape check of
// spec §4.4, run once before every instruction dispatch.
type formalKind int

const (
	fVar   formalKind = iota // a variable reference
	fSymb                    // a variable reference or a literal value
	fLabel                   // a label name
	fType                    // a type-literal (int|string|bool|float)
)

// handlerFn executes one instruction against the machine. It is called only
// after the instruction's arguments have passed the shape check for its
// opSpec.formals.
type handlerFn func(m *Machine, in *program.Instruction) error

// opSpec is one entry of the opcode dispatch table: the formal shape of its
// arguments (arity is len(formals)) and the handler that implements it. This
// is a data-driven table rather than reflection over method names/arity, per
// the Design Notes' "Opcode dispatch" guidance.
type opSpec struct {
	formals []formalKind
	handler handlerFn
}

// opcodes is the full IPPcode23 instruction set, keyed by uppercased opcode
// name.
var opcodes map[string]opSpec

func init() {
	opcodes = map[string]opSpec{
		// frames
		"CREATEFRAME": {nil, execCreateFrame},
		"PUSHFRAME":   {nil, execPushFrame},
		"POPFRAME":    {nil, execPopFrame},
		"DEFVAR":      {[]formalKind{fVar}, execDefVar},

		// function calls
		"CALL":   {[]formalKind{fLabel}, execCall},
		"RETURN": {nil, execReturn},

		// data stack
		"PUSHS":  {[]formalKind{fSymb}, execPushs},
		"POPS":   {[]formalKind{fVar}, execPops},
		"CLEARS": {nil, execClears},

		// data movement
		"MOVE": {[]formalKind{fVar, fSymb}, execMove},
		"TYPE": {[]formalKind{fVar, fSymb}, execType},

		// arithmetic
		"ADD":  {[]formalKind{fVar, fSymb, fSymb}, execArith("+")},
		"SUB":  {[]formalKind{fVar, fSymb, fSymb}, execArith("-")},
		"MUL":  {[]formalKind{fVar, fSymb, fSymb}, execArith("*")},
		"DIV":  {[]formalKind{fVar, fSymb, fSymb}, execArith("/")},
		"IDIV": {[]formalKind{fVar, fSymb, fSymb}, execArith("//")},

		"ADDS":  {nil, execArithStack("+")},
		"SUBS":  {nil, execArithStack("-")},
		"MULS":  {nil, execArithStack("*")},
		"IDIVS": {nil, execArithStack("//")},

		// comparison
		"LT": {[]formalKind{fVar, fSymb, fSymb}, execCompare("<")},
		"GT": {[]formalKind{fVar, fSymb, fSymb}, execCompare(">")},
		"EQ": {[]formalKind{fVar, fSymb, fSymb}, execCompare("==")},

		"LTS": {nil, execCompareStack("<")},
		"GTS": {nil, execCompareStack(">")},
		"EQS": {nil, execCompareStack("==")},

		// logical
		"AND": {[]formalKind{fVar, fSymb, fSymb}, execLogic("and")},
		"OR":  {[]formalKind{fVar, fSymb, fSymb}, execLogic("or")},
		"NOT": {[]formalKind{fVar, fSymb}, execNot},

		"ANDS": {nil, execLogicStack("and")},
		"ORS":  {nil, execLogicStack("or")},
		"NOTS": {nil, execNotStack},

		// conversions
		"INT2CHAR":  {[]formalKind{fVar, fSymb}, execInt2Char},
		"INT2CHARS": {nil, execInt2CharStack},
		"STRI2INT":  {[]formalKind{fVar, fSymb, fSymb}, execStri2Int},
		"STRI2INTS": {nil, execStri2IntStack},
		"INT2FLOAT": {[]formalKind{fVar, fSymb}, execInt2Float},
		"FLOAT2INT": {[]formalKind{fVar, fSymb}, execFloat2Int},

		// strings
		"CONCAT":  {[]formalKind{fVar, fSymb, fSymb}, execConcat},
		"STRLEN":  {[]formalKind{fVar, fSymb}, execStrlen},
		"GETCHAR": {[]formalKind{fVar, fSymb, fSymb}, execGetChar},
		"SETCHAR": {[]formalKind{fVar, fSymb, fSymb}, execSetChar},

		// control flow
		"LABEL":      {[]formalKind{fLabel}, execLabel},
		"JUMP":       {[]formalKind{fLabel}, execJump},
		"JUMPIFEQ":   {[]formalKind{fLabel, fSymb, fSymb}, execJumpIf(true)},
		"JUMPIFNEQ":  {[]formalKind{fLabel, fSymb, fSymb}, execJumpIf(false)},
		"JUMPIFEQS":  {[]formalKind{fLabel}, execJumpIfStack(true)},
		"JUMPIFNEQS": {[]formalKind{fLabel}, execJumpIfStack(false)},

		// termination and I/O
		"EXIT":   {[]formalKind{fSymb}, execExit},
		"WRITE":  {[]formalKind{fSymb}, execWrite},
		"DPRINT": {[]formalKind{fSymb}, execDprint},
		"BREAK":  {nil, execBreak},
		"READ":   {[]formalKind{fVar, fType}, execRead},
	}
}

// checkShape validates in's arguments against spec's arity and per-position
// shape rules, independent of any particular opcode's handler logic.
func checkShape(spec opSpec, in *program.Instruction) error {
	if len(in.Args) != len(spec.formals) {
		return faults.New(faults.BadStructure, "%s: expected %d argument(s), got %d", in.Opcode, len(spec.formals), len(in.Args))
	}
	for i, fk := range spec.formals {
		arg := in.Args[i]
		switch fk {
		case fVar:
			if arg.Kind != program.KindVar {
				return faults.New(faults.BadOperand, "%s: argument %d must be a variable", in.Opcode, i+1)
			}
		case fSymb:
			if arg.Kind != program.KindVar && arg.Kind != program.KindLiteral {
				return faults.New(faults.BadOperand, "%s: argument %d must be a variable or literal", in.Opcode, i+1)
			}
		case fLabel:
			if arg.Kind != program.KindLabel {
				return faults.New(faults.BadOperand, "%s: argument %d must be a label", in.Opcode, i+1)
			}
		case fType:
			if arg.Kind != program.KindType || !validTypeLiteral(arg.TypeName) {
				return faults.New(faults.BadStructure, "%s: argument %d must be a type literal", in.Opcode, i+1)
			}
		}
	}
	return nil
}

// validTypeLiteral mirrors the wider type-literal set the reference
// implementation's (redundant) shape check accepts for a "type" formal
// position; in practice only int/string/bool/float ever reach here, since
// lang/program.ParseOperand already rejects anything else with exit 56.
func validTypeLiteral(name string) bool {
	switch name {
	case "int", "string", "bool", "label", "nil", "float":
		return true
	default:
		return false
	}
}

func lookupOpcode(name string) (opSpec, bool) {
	spec, ok := opcodes[strings.ToUpper(name)]
	return spec, ok
}
