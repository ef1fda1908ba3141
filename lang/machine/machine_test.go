package machine_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/ippcode23/lang/faults"
	"github.com/mna/ippcode23/lang/machine"
	"github.com/mna/ippcode23/lang/program"
	"github.com/mna/ippcode23/lang/value"
)

func varOp(fr program.Frame, name string) program.Operand {
	return program.Operand{Kind: program.KindVar, VarText: fr.String() + "@" + name}
}

func litOp(v value.Value) program.Operand {
	return program.Operand{Kind: program.KindLiteral, Literal: v}
}

func labelOp(name string) program.Operand {
	return program.Operand{Kind: program.KindLabel, Label: name}
}

func instr(order int64, opcode string, args ...program.Operand) program.Instruction {
	return program.Instruction{Order: order, Opcode: opcode, Args: args}
}

func TestMoveAndWrite(t *testing.T) {
	prog := &program.Program{Instructions: []program.Instruction{
		instr(1, "DEFVAR", varOp(program.GF, "x")),
		instr(2, "MOVE", varOp(program.GF, "x"), litOp(value.Int(42))),
		instr(3, "WRITE", varOp(program.GF, "x")),
	}}

	var out bytes.Buffer
	m := machine.New(prog, &out, &out, nil)
	require.NoError(t, m.Run())
	assert.Equal(t, "42", out.String())
}

func TestUndefVariableReadFails(t *testing.T) {
	prog := &program.Program{Instructions: []program.Instruction{
		instr(1, "DEFVAR", varOp(program.GF, "x")),
		instr(2, "WRITE", varOp(program.GF, "x")),
	}}

	m := machine.New(prog, nil, nil, nil)
	err := m.Run()
	require.Error(t, err)
	assert.Equal(t, faults.MissingValue, faults.Code(err))
}

func TestArithmeticAndDivisionByZero(t *testing.T) {
	prog := &program.Program{Instructions: []program.Instruction{
		instr(1, "DEFVAR", varOp(program.GF, "x")),
		instr(2, "IDIV", varOp(program.GF, "x"), litOp(value.Int(10)), litOp(value.Int(0))),
	}}

	m := machine.New(prog, nil, nil, nil)
	err := m.Run()
	require.Error(t, err)
	assert.Equal(t, faults.BadValue, faults.Code(err))
}

func TestCallReturn(t *testing.T) {
	prog := &program.Program{Instructions: []program.Instruction{
		instr(1, "CALL", labelOp("sub")),
		instr(2, "DEFVAR", varOp(program.GF, "done")),
		instr(3, "MOVE", varOp(program.GF, "done"), litOp(value.True)),
		instr(4, "WRITE", varOp(program.GF, "done")),
		instr(5, "JUMP", labelOp("end")),
		instr(6, "LABEL", labelOp("sub")),
		instr(7, "DEFVAR", varOp(program.GF, "sub_ran")),
		instr(8, "RETURN"),
		instr(9, "LABEL", labelOp("end")),
	}}

	var out bytes.Buffer
	m := machine.New(prog, &out, &out, nil)
	require.NoError(t, m.Run())
	assert.Equal(t, "true", out.String())
}

func TestExitCode(t *testing.T) {
	prog := &program.Program{Instructions: []program.Instruction{
		instr(1, "EXIT", litOp(value.Int(21))),
	}}

	m := machine.New(prog, nil, nil, nil)
	err := m.Run()
	require.Error(t, err)
	assert.Equal(t, 21, faults.Code(err))
}

func TestExitOutOfRange(t *testing.T) {
	prog := &program.Program{Instructions: []program.Instruction{
		instr(1, "EXIT", litOp(value.Int(50))),
	}}

	m := machine.New(prog, nil, nil, nil)
	err := m.Run()
	require.Error(t, err)
	assert.Equal(t, faults.BadValue, faults.Code(err))
}

func TestStackOperations(t *testing.T) {
	prog := &program.Program{Instructions: []program.Instruction{
		instr(1, "DEFVAR", varOp(program.GF, "a")),
		instr(2, "DEFVAR", varOp(program.GF, "b")),
		instr(3, "PUSHS", litOp(value.Int(1))),
		instr(4, "PUSHS", litOp(value.Int(2))),
		instr(5, "ADDS"),
		instr(6, "POPS", varOp(program.GF, "a")),
		instr(7, "WRITE", varOp(program.GF, "a")),
	}}

	var out bytes.Buffer
	m := machine.New(prog, &out, &out, nil)
	require.NoError(t, m.Run())
	assert.Equal(t, "3", out.String())
}

func TestStringOps(t *testing.T) {
	prog := &program.Program{Instructions: []program.Instruction{
		instr(1, "DEFVAR", varOp(program.GF, "s")),
		instr(2, "CONCAT", varOp(program.GF, "s"), litOp(value.Str("foo")), litOp(value.Str("bar"))),
		instr(3, "WRITE", varOp(program.GF, "s")),
		instr(4, "DEFVAR", varOp(program.GF, "n")),
		instr(5, "STRLEN", varOp(program.GF, "n"), varOp(program.GF, "s")),
		instr(6, "WRITE", varOp(program.GF, "n")),
	}}

	var out bytes.Buffer
	m := machine.New(prog, &out, &out, nil)
	require.NoError(t, m.Run())
	assert.Equal(t, "foobar6", out.String())
}

func TestGetCharOutOfRange(t *testing.T) {
	prog := &program.Program{Instructions: []program.Instruction{
		instr(1, "DEFVAR", varOp(program.GF, "c")),
		instr(2, "GETCHAR", varOp(program.GF, "c"), litOp(value.Str("ab")), litOp(value.Int(5))),
	}}

	m := machine.New(prog, nil, nil, nil)
	err := m.Run()
	require.Error(t, err)
	assert.Equal(t, faults.BadIndex, faults.Code(err))
}

func TestTypeOfUndefIsEmptyString(t *testing.T) {
	prog := &program.Program{Instructions: []program.Instruction{
		instr(1, "DEFVAR", varOp(program.GF, "x")),
		instr(2, "DEFVAR", varOp(program.GF, "t")),
		instr(3, "TYPE", varOp(program.GF, "t"), varOp(program.GF, "x")),
		instr(4, "WRITE", varOp(program.GF, "t")),
	}}

	var out bytes.Buffer
	m := machine.New(prog, &out, &out, nil)
	require.NoError(t, m.Run())
	assert.Equal(t, "", out.String())
}

func TestFrameLifecycle(t *testing.T) {
	prog := &program.Program{Instructions: []program.Instruction{
		instr(1, "CREATEFRAME"),
		instr(2, "DEFVAR", varOp(program.TF, "x")),
		instr(3, "MOVE", varOp(program.TF, "x"), litOp(value.Int(7))),
		instr(4, "PUSHFRAME"),
		instr(5, "WRITE", varOp(program.LF, "x")),
		instr(6, "POPFRAME"),
	}}

	var out bytes.Buffer
	m := machine.New(prog, &out, &out, nil)
	require.NoError(t, m.Run())
	assert.Equal(t, "7", out.String())
}

func TestJumpIfEq(t *testing.T) {
	prog := &program.Program{Instructions: []program.Instruction{
		instr(1, "DEFVAR", varOp(program.GF, "r")),
		instr(2, "MOVE", varOp(program.GF, "r"), litOp(value.Str("no"))),
		instr(3, "JUMPIFEQ", labelOp("eq"), litOp(value.Int(1)), litOp(value.Int(1))),
		instr(4, "JUMP", labelOp("end")),
		instr(5, "LABEL", labelOp("eq")),
		instr(6, "MOVE", varOp(program.GF, "r"), litOp(value.Str("yes"))),
		instr(7, "LABEL", labelOp("end")),
		instr(8, "WRITE", varOp(program.GF, "r")),
	}}

	var out bytes.Buffer
	m := machine.New(prog, &out, &out, nil)
	require.NoError(t, m.Run())
	assert.Equal(t, "yes", out.String())
}

func TestSnapshotStats(t *testing.T) {
	prog := &program.Program{Instructions: []program.Instruction{
		instr(1, "DEFVAR", varOp(program.GF, "x")),
		instr(2, "MOVE", varOp(program.GF, "x"), litOp(value.Int(1))),
		instr(3, "MOVE", varOp(program.GF, "x"), litOp(value.Int(2))),
	}}

	m := machine.New(prog, nil, nil, nil)
	require.NoError(t, m.Run())
	snap := m.Snapshot()
	assert.Equal(t, int64(3), snap.Insts)
	assert.Equal(t, 1, snap.Vars)
}
