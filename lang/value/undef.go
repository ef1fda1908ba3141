package value

// UndefType is the type of a variable slot created by DEFVAR that has not yet
// been assigned a value.
type UndefType struct{}

// Undef is the singleton uninitialized-variable marker.
var Undef = UndefType{}

var _ Value = Undef

// String returns the empty string, matching Type: an undefined value has no
// meaningful textual form outside of the TYPE instruction.
func (UndefType) String() string { return "" }

// Type returns the empty string, per TYPE's rule that reading an undefined
// symb yields an empty type name rather than failing.
func (UndefType) Type() string { return "" }
