package value

import "strconv"

// Float is a 64-bit IEEE-754 floating point value. Its textual form is always
// the C99 hexadecimal-float notation, round-tripping through strconv's 'x'
// format so that WRITE output re-parses to the exact same bit pattern.
type Float float64

var _ Value = Float(0)

func (f Float) String() string { return strconv.FormatFloat(float64(f), 'x', -1, 64) }
func (f Float) Type() string { return "float" }
