package value

// NilType is the type of the Nil singleton.
type NilType struct{}

// Nil is the singleton nil value.
var Nil = NilType{}

var _ Value = Nil

// String returns the empty string: WRITE of Nil prints nothing.
func (NilType) String() string { return "" }
func (NilType) Type() string   { return "nil" }
