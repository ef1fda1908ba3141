package maincmd_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mna/mainer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/ippcode23/internal/maincmd"
)

func runCmd(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	c := maincmd.Cmd{}
	code := c.Main(append([]string{"ippcode23"}, args...), mainer.Stdio{
		Stdin:  strings.NewReader(stdin),
		Stdout: &out,
		Stderr: &errOut,
	})
	return code, out.String(), errOut.String()
}

func TestMainRunsProgramFromSource(t *testing.T) {
	prog := `<program language="IPPcode23">
  <instruction order="1" opcode="WRITE">
    <arg1 type="string">hi</arg1>
  </instruction>
</program>`

	dir := t.TempDir()
	src := filepath.Join(dir, "prog.xml")
	require.NoError(t, os.WriteFile(src, []byte(prog), 0o644))

	code, out, _ := runCmd(t, "", "--source="+src)
	assert.Equal(t, 0, code)
	assert.Equal(t, "hi", out)
}

func TestMainStatsSelectors(t *testing.T) {
	prog := `<program language="IPPcode23">
  <instruction order="1" opcode="DEFVAR"><arg1 type="var">GF@x</arg1></instruction>
  <instruction order="2" opcode="MOVE">
    <arg1 type="var">GF@x</arg1>
    <arg2 type="int">1</arg2>
  </instruction>
</program>`

	dir := t.TempDir()
	src := filepath.Join(dir, "prog.xml")
	require.NoError(t, os.WriteFile(src, []byte(prog), 0o644))
	statsFile := filepath.Join(dir, "stats.txt")

	code, _, _ := runCmd(t, "", "--source="+src, "--stats="+statsFile, "--insts")
	assert.Equal(t, 0, code)

	out, err := os.ReadFile(statsFile)
	require.NoError(t, err)
	assert.Equal(t, "2\n", string(out))
}

func TestMainBadInputFile(t *testing.T) {
	code, _, errOut := runCmd(t, "", "--source=/no/such/file.xml")
	assert.Equal(t, 11, code)
	assert.NotEmpty(t, errOut)
}

func TestMainMissingSourceAndInput(t *testing.T) {
	code, _, errOut := runCmd(t, "")
	assert.Equal(t, 10, code)
	assert.NotEmpty(t, errOut)
}

func TestMainHelp(t *testing.T) {
	code, out, _ := runCmd(t, "", "--help")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "IPPcode23")
}
