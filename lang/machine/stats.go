package machine

import (
	"sort"
	"strings"

	"golang.org/x/exp/maps"

	"github.com/mna/ippcode23/lang/program"
)

// noCountOpcodes are excluded from the executed-instruction counter: they
// are either inert at run time (LABEL) or diagnostic-only (DPRINT, BREAK).
var noCountOpcodes = map[string]bool{
	"LABEL":  true,
	"DPRINT": true,
	"BREAK":  true,
}

// stats accumulates the raw counters the engine updates as it executes.
// Snapshot, taken once after Run returns, exposes them as read-only values
// for an external reporter, per spec §4.5 ("statistics coupling": the
// reporter observes a finished run, it never observes execution live).
type stats struct {
	insts      int64
	hotCounter map[int]int64 // execution count per instruction position
	peakVars   int
	frequency  map[string]int64
	freqOrder  []string // opcodes in order of first occurrence, for tie-breaks
}

func newStats() *stats {
	return &stats{hotCounter: make(map[int]int64)}
}

func (s *stats) recordPosition(pos int) {
	s.hotCounter[pos]++
}

func (s *stats) recordPeakVars(n int) {
	if n > s.peakVars {
		s.peakVars = n
	}
}

func (s *stats) recordInstruction(opcode string) {
	if !noCountOpcodes[strings.ToUpper(opcode)] {
		s.insts++
	}
}

// seedFrequency counts each instruction of the loaded program once (not per
// execution), matching the reference implementation's _frequent pass over
// the full instruction list.
func (s *stats) seedFrequency(instrs []program.Instruction) {
	s.frequency = make(map[string]int64, len(instrs))
	for _, in := range instrs {
		if _, ok := s.frequency[in.Opcode]; !ok {
			s.freqOrder = append(s.freqOrder, in.Opcode)
		}
		s.frequency[in.Opcode]++
	}
}

// Snapshot is the read-only view of the statistics counters exposed after
// Run returns.
type Snapshot struct {
	// Insts is the number of executed instructions, excluding LABEL, DPRINT
	// and BREAK.
	Insts int64

	// Hot is the order attribute of the instruction position that was
	// executed the most times, ignoring LABEL/DPRINT/BREAK occurrences; ties
	// are broken by the smallest instruction position. Zero if no countable
	// instruction ever executed.
	Hot int64

	// Vars is the peak number of initialized variable slots observed across
	// all live frames at any single point during execution.
	Vars int

	// Frequent lists every opcode name tied for the highest occurrence count
	// in the loaded program, in first-occurrence (document) order.
	Frequent []string
}

// snapshot computes the final Snapshot from the accumulated counters and the
// sorted instruction list used for this run.
func (s *stats) snapshot(instrs []program.Instruction) Snapshot {
	positions := maps.Keys(s.hotCounter)
	sort.Slice(positions, func(i, j int) bool {
		ci, cj := s.hotCounter[positions[i]], s.hotCounter[positions[j]]
		if ci != cj {
			return ci > cj
		}
		return positions[i] < positions[j]
	})

	var hot int64
	for _, pos := range positions {
		if pos < 0 || pos >= len(instrs) {
			continue
		}
		if noCountOpcodes[strings.ToUpper(instrs[pos].Opcode)] {
			continue
		}
		hot = instrs[pos].Order
		break
	}

	var maxFreq int64
	for _, n := range s.frequency {
		if n > maxFreq {
			maxFreq = n
		}
	}
	var frequent []string
	for _, op := range s.freqOrder {
		if s.frequency[op] == maxFreq {
			frequent = append(frequent, op)
		}
	}

	return Snapshot{
		Insts:    s.insts,
		Hot:      hot,
		Vars:     s.peakVars,
		Frequent: frequent,
	}
}
