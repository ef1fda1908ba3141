// Package value implements the runtime value representation manipulated by
// the machine: a small closed set of tagged kinds (int, float, bool, string,
// nil) plus the Undef marker left by DEFVAR before a first assignment.
package value

// Value is the interface implemented by every runtime value.
type Value interface {
	// String returns the value's textual form as produced by WRITE/DPRINT.
	String() string

	// Type returns the short name of the value's kind, as reported by the
	// TYPE instruction.
	Type() string
}
