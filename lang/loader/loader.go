// Package loader parses the XML representation of an IPPcode23 program into
// the structural model defined by lang/program, enforcing the document
// shape required by spec §4.2 and mapping every violation to the load-time
// exit codes (31 for malformed XML, 32 for structural faults).
package loader

import (
	"encoding/xml"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/mna/ippcode23/lang/faults"
	"github.com/mna/ippcode23/lang/program"
)

// xmlArg mirrors one <argK type="...">text</argK> child element.
type xmlArg struct {
	XMLName xml.Name
	Type    string `xml:"type,attr"`
	Text    string `xml:",chardata"`
}

// xmlInstruction mirrors one child element of <program>, which must be named
// "instruction" (checked explicitly, not via struct tag, so a wrongly-named
// child is a structural fault (32) rather than a decode fault (31)).
type xmlInstruction struct {
	XMLName xml.Name
	Order   string   `xml:"order,attr"`
	Opcode  string   `xml:"opcode,attr"`
	Args    []xmlArg `xml:",any"`
}

// xmlProgram mirrors the root element, whose tag and language attribute are
// checked explicitly rather than via struct tag, for the same reason.
type xmlProgram struct {
	XMLName  xml.Name
	Language string           `xml:"language,attr"`
	Instrs   []xmlInstruction `xml:",any"`
}

// Load reads and validates an IPPcode23 XML document from r, returning the
// program with its instructions sorted ascending by order.
func Load(r io.Reader) (*program.Program, error) {
	dec := xml.NewDecoder(r)

	var doc xmlProgram
	if err := dec.Decode(&doc); err != nil {
		return nil, faults.New(faults.MalformedXML, "parse XML: %w", err)
	}

	if doc.XMLName.Local != "program" || doc.Language != "IPPcode23" {
		return nil, faults.New(faults.BadStructure, "root element must be <program language=%q>", "IPPcode23")
	}

	seenOrder := make(map[int64]bool, len(doc.Instrs))
	instrs := make([]program.Instruction, 0, len(doc.Instrs))
	for _, xi := range doc.Instrs {
		if xi.XMLName.Local != "instruction" {
			return nil, faults.New(faults.BadStructure, "unexpected child element %q, want <instruction>", xi.XMLName.Local)
		}
		instr, err := convertInstruction(xi)
		if err != nil {
			return nil, err
		}
		if instr.Order < 1 {
			return nil, faults.New(faults.BadStructure, "instruction order must be >= 1, got %d", instr.Order)
		}
		if seenOrder[instr.Order] {
			return nil, faults.New(faults.BadStructure, "duplicate instruction order %d", instr.Order)
		}
		seenOrder[instr.Order] = true
		instrs = append(instrs, instr)
	}

	sort.Slice(instrs, func(i, j int) bool { return instrs[i].Order < instrs[j].Order })

	return &program.Program{Instructions: instrs}, nil
}

func convertInstruction(xi xmlInstruction) (program.Instruction, error) {
	if xi.Opcode == "" {
		return program.Instruction{}, faults.New(faults.BadStructure, "instruction missing opcode attribute")
	}
	order, err := strconv.ParseInt(xi.Order, 10, 64)
	if err != nil {
		return program.Instruction{}, faults.New(faults.BadStructure, "invalid instruction order %q: %w", xi.Order, err)
	}

	n := len(xi.Args)
	byIndex := make(map[int]xmlArg, n)
	for _, a := range xi.Args {
		idx, ok := argIndex(a.XMLName.Local, n)
		if !ok {
			return program.Instruction{}, faults.New(faults.BadStructure, "unexpected argument element %q", a.XMLName.Local)
		}
		if _, dup := byIndex[idx]; dup {
			return program.Instruction{}, faults.New(faults.BadStructure, "duplicate argument element %q", a.XMLName.Local)
		}
		byIndex[idx] = a
	}

	args := make([]program.Operand, n)
	for k := 1; k <= n; k++ {
		xa, ok := byIndex[k]
		if !ok || xa.Type == "" {
			return program.Instruction{}, faults.New(faults.BadStructure, "instruction missing arg%d", k)
		}
		op, err := program.ParseOperand(xa.Type, strings.TrimSpace(xa.Text))
		if err != nil {
			return program.Instruction{}, err
		}
		args[k-1] = op
	}

	return program.Instruction{Order: order, Opcode: xi.Opcode, Args: args}, nil
}

// argIndex parses "argK" into its 1-based index K, validating K is within
// [1, n].
func argIndex(name string, n int) (int, bool) {
	if !strings.HasPrefix(name, "arg") {
		return 0, false
	}
	k, err := strconv.Atoi(name[3:])
	if err != nil || k < 1 || k > n {
		return 0, false
	}
	return k, true
}
