// Package faults defines the IPPcode23 exit-code taxonomy. Every fatal
// condition in the loader and the machine is reported as an *Exit carrying
// the precise process exit code the specification assigns to it; there is no
// recoverable error surface.
package faults

import "fmt"

// Exit codes, as specified for the interpreter's CLI and runtime.
const (
	BadCLI       = 10 // missing --source/--input, or stat selector without --stats
	BadInputFile = 11 // --source or --input file could not be opened

	MalformedXML = 31 // XML does not parse
	BadStructure = 32 // program/instruction/argument shape violation

	BadOperand    = 52 // undefined label, duplicate label/variable, ill-formed operand
	TypeMismatch  = 53 // operand type does not match what the operation requires
	UndefVariable = 54 // variable does not exist in an existing frame
	UndefFrame    = 55 // frame (TF/LF) does not exist
	MissingValue  = 56 // empty stack, EXIT without value, read of Undef
	BadValue      = 57 // EXIT operand out of [0,49], or division by zero
	BadIndex      = 58 // string index out of range, invalid INT2CHAR codepoint
)

// Exit is a fatal, terminal error: the process must exit with Code and no
// further instructions execute.
type Exit struct {
	Code int
	Err  error
}

func (e *Exit) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit %d", e.Code)
	}
	return e.Err.Error()
}

func (e *Exit) Unwrap() error { return e.Err }

// New builds an *Exit with the given code and a formatted message.
func New(code int, format string, args ...any) *Exit {
	return &Exit{Code: code, Err: fmt.Errorf(format, args...)}
}

// Code extracts the process exit code carried by err, defaulting to 0 when
// err is nil and 1 for any other, non-*Exit error (defensive: the machine
// and loader are expected to only ever return *Exit or nil).
func Code(err error) int {
	if err == nil {
		return 0
	}
	if ex, ok := err.(*Exit); ok {
		return ex.Code
	}
	return 1
}
