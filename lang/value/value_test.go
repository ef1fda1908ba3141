package value_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mna/ippcode23/lang/value"
)

func TestIntString(t *testing.T) {
	assert.Equal(t, "42", value.Int(42).String())
	assert.Equal(t, "-7", value.Int(-7).String())
	assert.Equal(t, "int", value.Int(0).Type())
}

func TestFloatRoundTrip(t *testing.T) {
	f := value.Float(3.25)
	s := f.String()
	assert.Equal(t, "float", f.Type())
	assert.NotEmpty(t, s)

	back, err := strconv.ParseFloat(s, 64)
	assert.NoError(t, err)
	assert.Equal(t, 3.25, back)
}

func TestBoolString(t *testing.T) {
	assert.Equal(t, "true", value.True.String())
	assert.Equal(t, "false", value.False.String())
	assert.Equal(t, "bool", value.True.Type())
}

func TestStrString(t *testing.T) {
	s := value.Str("ahoj")
	assert.Equal(t, "ahoj", s.String())
	assert.Equal(t, "string", s.Type())
}

func TestNilAndUndefAreBlank(t *testing.T) {
	assert.Equal(t, "", value.Nil.String())
	assert.Equal(t, "nil", value.Nil.Type())
	assert.Equal(t, "", value.Undef.String())
	assert.Equal(t, "", value.Undef.Type())
}
