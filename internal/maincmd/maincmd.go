// Package maincmd wires the IPPcode23 command line to the loader and
// machine packages: flag parsing and validation, the --stats reporter, and
// mapping every fault into its exact process exit code.
package maincmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mna/mainer"

	"github.com/mna/ippcode23/lang/faults"
	"github.com/mna/ippcode23/lang/loader"
	"github.com/mna/ippcode23/lang/machine"
)

const binName = "ippcode23"

var longUsage = fmt.Sprintf(`usage: %s [--source=FILE] [--input=FILE] [--stats=FILE [selector...]]
       %[1]s -h|--help

Interpreter for the IPPcode23 intermediate language.

At least one of --source or --input is required. The other one, if
omitted, is read from standard input.

Valid flag options are:
       -h --help                 Show this help and exit.
       --source=FILE             Read the XML program representation from
                                  FILE (default: standard input).
       --input=FILE              Read READ instruction input from FILE
                                  (default: standard input).
       --stats=FILE              Write the selected statistics to FILE.
       --insts                   Report the number of executed instructions.
       --hot                     Report the order of the most executed
                                  instruction.
       --vars                    Report the peak number of initialized
                                  variables.
       --frequent                Report the most frequent opcode(s).
       --eol                     Emit an empty line at this position in the
                                  --stats output.
       --print=STRING            Emit STRING literally; may be repeated and
                                  interleaves with the other selectors in
                                  command-line order.
`, binName)

// Cmd holds the parsed command line for one interpreter run. Main is the
// sole entry point; Validate is invoked by mainer.Parser after flags are
// populated.
type Cmd struct {
	Help bool `flag:"h,help"`

	Source string `flag:"source"`
	Input  string `flag:"input"`
	Stats  string `flag:"stats"`

	Insts    bool     `flag:"insts"`
	Hot      bool     `flag:"hot"`
	Vars     bool     `flag:"vars"`
	Frequent bool     `flag:"frequent"`
	EOL      bool     `flag:"eol"`
	Print    []string `flag:"print"`

	flags map[string]bool
}

func (c *Cmd) SetFlags(flags map[string]bool) { c.flags = flags }

// Validate enforces the CLI preconditions: at least one of --source or
// --input, and no stat selector without --stats.
func (c *Cmd) Validate() error {
	if c.Help {
		return nil
	}
	if c.Source == "" && c.Input == "" {
		return fmt.Errorf("at least one of --source or --input is required")
	}
	if c.Stats == "" && (c.Insts || c.Hot || c.Vars || c.Frequent || c.EOL || len(c.Print) > 0) {
		return fmt.Errorf("a statistics selector was given without --stats")
	}
	return nil
}

// Main parses args, runs the interpreter, and returns the exact process
// exit code: 0 on success, the requested code for a program EXIT in [0,49],
// or one of the fault codes in lang/faults.
func (c *Cmd) Main(args []string, stdio mainer.Stdio) int {
	p := mainer.Parser{EnvVars: false}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n", err)
		return faults.BadCLI
	}

	if c.Help {
		fmt.Fprint(stdio.Stdout, longUsage)
		return 0
	}

	return c.run(args, stdio)
}

func (c *Cmd) run(args []string, stdio mainer.Stdio) int {
	source, closeSource, err := c.openFile(c.Source, stdio.Stdin, "--source")
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "%s\n", err)
		return faults.Code(err)
	}
	defer closeSource()

	prog, err := loader.Load(source)
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "%s\n", err)
		return faults.Code(err)
	}

	input, closeInput, err := c.openFile(c.Input, stdio.Stdin, "--input")
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "%s\n", err)
		return faults.Code(err)
	}
	defer closeInput()

	m := machine.New(prog, stdio.Stdout, stdio.Stderr, input)
	runErr := m.Run()

	if c.Stats != "" && runErr == nil {
		if err := c.writeStats(args, m.Snapshot()); err != nil {
			fmt.Fprintf(stdio.Stderr, "%s\n", err)
			return faults.BadCLI
		}
	}

	return faults.Code(runErr)
}

func (c *Cmd) openFile(path string, fallback io.Reader, flagName string) (io.Reader, func(), error) {
	if path == "" {
		return fallback, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, faults.New(faults.BadInputFile, "%s: %s", flagName, err)
	}
	return f, func() { f.Close() }, nil
}

// writeStats renders the requested statistics to --stats' file, in the
// order the selector flags appear on the command line: the parsed struct
// carries no ordering of its own, so the selector sequence is recovered by
// walking args directly, per the interleaving --print supports.
func (c *Cmd) writeStats(args []string, snap machine.Snapshot) error {
	var buf bytes.Buffer
	printIdx := 0
	for _, arg := range args {
		switch {
		case arg == "--insts":
			fmt.Fprintf(&buf, "%d\n", snap.Insts)
		case arg == "--hot":
			fmt.Fprintf(&buf, "%d\n", snap.Hot)
		case arg == "--vars":
			fmt.Fprintf(&buf, "%d\n", snap.Vars)
		case arg == "--frequent":
			fmt.Fprintf(&buf, "%s\n", strings.Join(snap.Frequent, ", "))
		case arg == "--eol":
			fmt.Fprintln(&buf)
		case strings.HasPrefix(arg, "--print="):
			if printIdx < len(c.Print) {
				fmt.Fprintf(&buf, "%s\n", c.Print[printIdx])
				printIdx++
			}
		}
	}

	f, err := os.Create(c.Stats)
	if err != nil {
		return fmt.Errorf("--stats: %w", err)
	}
	defer f.Close()
	_, err = f.Write(buf.Bytes())
	return err
}
