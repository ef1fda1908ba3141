package machine

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/mna/ippcode23/lang/faults"
	"github.com/mna/ippcode23/lang/program"
	"github.com/mna/ippcode23/lang/value"
)

// formatValue renders v the way WRITE and DPRINT print it: bool as
// true/false, nil as the empty string, float in the C99 hex form preserved
// by value.Float.String, everything else via its own String.
func formatValue(v value.Value) string {
	return v.String()
}

func execExit(m *Machine, in *program.Instruction) error {
	v, err := m.argSymb(in, 0, false)
	if err != nil {
		return err
	}
	n, ok := v.(value.Int)
	if !ok {
		return faults.New(faults.TypeMismatch, "EXIT requires an int operand")
	}
	if n < 0 || n > 49 {
		return faults.New(faults.BadValue, "EXIT: code %d out of range [0,49]", n)
	}
	return &faults.Exit{Code: int(n)}
}

func execWrite(m *Machine, in *program.Instruction) error {
	v, err := m.argSymb(in, 0, false)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(m.Stdout, formatValue(v))
	return err
}

// execDprint mirrors WRITE's formatting but writes to stderr, the closest
// faithful rendering of the reference implementation's debug print without
// reproducing its host language's own repr strings for bool/nil.
func execDprint(m *Machine, in *program.Instruction) error {
	v, err := m.argSymb(in, 0, false)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(m.Stderr, formatValue(v))
	return err
}

// execBreak reports the current zero-based instruction position, not its
// XML order attribute, along with a snapshot of the live statistics.
func execBreak(m *Machine, _ *program.Instruction) error {
	snap := m.stats.snapshot(m.program.Instructions)
	_, err := fmt.Fprintf(m.Stderr, "position %d, executed %d instruction(s), %d live variable(s)\n",
		m.pc, snap.Insts, snap.Vars)
	return err
}

func (m *Machine) readLine() (string, bool) {
	if m.scanner == nil {
		m.scanner = bufio.NewScanner(m.Stdin)
		m.scanner.Buffer(make([]byte, 64*1024), 1<<20)
	}
	if !m.scanner.Scan() {
		return "", false
	}
	return m.scanner.Text(), true
}

// execRead parses one input line according to the requested type, yielding
// Nil on EOF, a blank line, or a parse failure, matching the reference
// implementation's READ behavior.
func execRead(m *Machine, in *program.Instruction) error {
	typeName := argType(in, 1)
	line, ok := m.readLine()
	if !ok || line == "" {
		return m.writeVar(in.Args[0], value.Nil)
	}

	var result value.Value = value.Nil
	switch typeName {
	case "int":
		if n, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64); err == nil {
			result = value.Int(n)
		}
	case "float":
		if f, err := strconv.ParseFloat(strings.TrimSpace(line), 64); err == nil {
			result = value.Float(f)
		}
	case "bool":
		// Case-insensitive "true" only; every other non-empty token is false.
		result = value.Bool(strings.EqualFold(strings.TrimSpace(line), "true"))
	case "string":
		result = value.Str(line)
	}
	return m.writeVar(in.Args[0], result)
}
