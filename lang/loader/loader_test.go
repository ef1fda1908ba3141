package loader_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/ippcode23/lang/faults"
	"github.com/mna/ippcode23/lang/loader"
)

func TestLoadValidProgram(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<program language="IPPcode23">
  <instruction order="2" opcode="WRITE">
    <arg1 type="string">hello</arg1>
  </instruction>
  <instruction order="1" opcode="DEFVAR">
    <arg1 type="var">GF@x</arg1>
  </instruction>
</program>`

	prog, err := loader.Load(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, prog.Instructions, 2)
	assert.Equal(t, int64(1), prog.Instructions[0].Order)
	assert.Equal(t, "DEFVAR", prog.Instructions[0].Opcode)
	assert.Equal(t, int64(2), prog.Instructions[1].Order)
	assert.Equal(t, "WRITE", prog.Instructions[1].Opcode)
}

func TestLoadMalformedXML(t *testing.T) {
	_, err := loader.Load(strings.NewReader("<program language=\"IPPcode23\">"))
	require.Error(t, err)
	assert.Equal(t, faults.MalformedXML, faults.Code(err))
}

func TestLoadWrongRootTag(t *testing.T) {
	_, err := loader.Load(strings.NewReader(`<notprogram language="IPPcode23"></notprogram>`))
	require.Error(t, err)
	assert.Equal(t, faults.BadStructure, faults.Code(err))
}

func TestLoadWrongLanguage(t *testing.T) {
	_, err := loader.Load(strings.NewReader(`<program language="Other"></program>`))
	require.Error(t, err)
	assert.Equal(t, faults.BadStructure, faults.Code(err))
}

func TestLoadDuplicateOrder(t *testing.T) {
	doc := `<program language="IPPcode23">
  <instruction order="1" opcode="CREATEFRAME"></instruction>
  <instruction order="1" opcode="PUSHFRAME"></instruction>
</program>`
	_, err := loader.Load(strings.NewReader(doc))
	require.Error(t, err)
	assert.Equal(t, faults.BadStructure, faults.Code(err))
}

func TestLoadMissingArg(t *testing.T) {
	doc := `<program language="IPPcode23">
  <instruction order="1" opcode="DEFVAR">
    <arg2 type="var">GF@x</arg2>
  </instruction>
</program>`
	_, err := loader.Load(strings.NewReader(doc))
	require.Error(t, err)
	assert.Equal(t, faults.BadStructure, faults.Code(err))
}

func TestLoadUnexpectedChildElement(t *testing.T) {
	doc := `<program language="IPPcode23">
  <notinstruction order="1" opcode="CREATEFRAME"></notinstruction>
</program>`
	_, err := loader.Load(strings.NewReader(doc))
	require.Error(t, err)
	assert.Equal(t, faults.BadStructure, faults.Code(err))
}
