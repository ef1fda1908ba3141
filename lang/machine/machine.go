// Package machine implements the IPPcode23 runtime: frame/stack/label state,
// the opcode dispatch table, and the typed per-opcode execution kernel. It
// owns all mutable state for one program run; there is no reentrancy and no
// concurrency, matching spec §5.
package machine

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/mna/ippcode23/lang/faults"
	"github.com/mna/ippcode23/lang/program"
	"github.com/mna/ippcode23/lang/value"
)

// Machine holds everything one interpretation needs: the instruction list,
// frame/stack/label runtime state, I/O streams, and the statistics
// accumulator. Create one with New per program run; it is not safe to reuse
// across runs or to share across goroutines.
type Machine struct {
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader

	program   *program.Program
	frames    *Frames
	dataStack []value.Value
	callStack []int
	labels    map[string]int
	pc        int

	stats   *stats
	scanner *bufio.Scanner
}

// New builds a Machine ready to run prog. If stdout/stderr/stdin are nil,
// os.Stdout/os.Stderr/os.Stdin are used, matching the teacher's Thread
// defaulting convention.
func New(prog *program.Program, stdout, stderr io.Writer, stdin io.Reader) *Machine {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	if stdin == nil {
		stdin = os.Stdin
	}
	return &Machine{
		Stdout:  stdout,
		Stderr:  stderr,
		Stdin:   stdin,
		program: prog,
		frames:  NewFrames(),
		labels:  make(map[string]int),
		stats:   newStats(),
	}
}

// Run executes the loaded program to completion. It returns nil on normal
// termination (running past the last instruction), *faults.Exit with a code
// in [0,49] when EXIT runs, and *faults.Exit with a fault code otherwise.
func (m *Machine) Run() error {
	if err := m.buildLabels(); err != nil {
		return err
	}
	m.stats.seedFrequency(m.program.Instructions)

	for m.pc < len(m.program.Instructions) {
		in := &m.program.Instructions[m.pc]

		m.stats.recordPosition(m.pc)
		m.stats.recordPeakVars(m.frames.LiveVarCount())

		spec, ok := lookupOpcode(in.Opcode)
		if !ok {
			return faults.New(faults.BadStructure, "unknown opcode %q", in.Opcode)
		}
		if err := checkShape(spec, in); err != nil {
			return err
		}
		if err := spec.handler(m, in); err != nil {
			return err
		}
		m.stats.recordPeakVars(m.frames.LiveVarCount())

		m.stats.recordInstruction(in.Opcode)
		m.pc++
	}
	return nil
}

// Snapshot returns the read-only statistics snapshot for the run. It must be
// called after Run returns (successfully or not) to be meaningful.
func (m *Machine) Snapshot() Snapshot {
	return m.stats.snapshot(m.program.Instructions)
}

// buildLabels is the pre-execution pass that registers every LABEL
// instruction's position, per spec §4.4. A duplicate label is fatal.
func (m *Machine) buildLabels() error {
	for i, in := range m.program.Instructions {
		if !strings.EqualFold(in.Opcode, "LABEL") {
			continue
		}
		if len(in.Args) != 1 || in.Args[0].Kind != program.KindLabel {
			return faults.New(faults.BadOperand, "LABEL: argument must be a label")
		}
		name := in.Args[0].Label
		if _, dup := m.labels[name]; dup {
			return faults.New(faults.BadOperand, "duplicate label %q", name)
		}
		m.labels[name] = i
	}
	return nil
}
