package value

// Str is a string value: a logical sequence of Unicode codepoints. Escape
// sequences in the source text are decoded once at load time, so a Str
// always holds its final, display-ready form.
type Str string

var _ Value = Str("")

func (s Str) String() string { return string(s) }
func (s Str) Type() string { return "string" }
