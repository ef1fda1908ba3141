package machine

import (
	"github.com/dolthub/swiss"

	"github.com/mna/ippcode23/lang/faults"
	"github.com/mna/ippcode23/lang/program"
	"github.com/mna/ippcode23/lang/value"
)

// Frame is an insertion-independent mapping from variable name to Value,
// backed by a swiss-table hash map (the same structure the teacher pack uses
// for its own Map value, here keyed by variable name instead of Value).
type Frame struct {
	vars *swiss.Map[string, value.Value]
}

func newFrame() *Frame {
	return &Frame{vars: swiss.NewMap[string, value.Value](8)}
}

// Define creates slot name with the Undef marker. Re-defining an existing
// name is a fault.
func (f *Frame) Define(name string) error {
	if _, ok := f.vars.Get(name); ok {
		return faults.New(faults.BadOperand, "variable %q already defined", name)
	}
	f.vars.Put(name, value.Undef)
	return nil
}

// Get returns the current value of name, or a fault if it does not exist.
func (f *Frame) Get(name string) (value.Value, error) {
	v, ok := f.vars.Get(name)
	if !ok {
		return nil, faults.New(faults.UndefVariable, "variable %q does not exist", name)
	}
	return v, nil
}

// Set overwrites the value of an already-defined name, or a fault if it does
// not exist.
func (f *Frame) Set(name string, v value.Value) error {
	if _, ok := f.vars.Get(name); !ok {
		return faults.New(faults.UndefVariable, "variable %q does not exist", name)
	}
	f.vars.Put(name, v)
	return nil
}

// Len reports the number of initialized slots in the frame (slots still
// holding Undef are not counted), used by the statistics hooks to track the
// peak number of initialized variables.
func (f *Frame) Len() int {
	n := 0
	f.vars.Iter(func(_ string, v value.Value) bool {
		if _, undef := v.(value.UndefType); !undef {
			n++
		}
		return false
	})
	return n
}

// Frames holds the three frame scopes and the frame stack, per spec §4.3.
type Frames struct {
	GF    *Frame
	LF    *Frame // nil when absent
	TF    *Frame // nil when absent
	stack []*Frame
}

// NewFrames creates the frame set with a fresh, empty GF, and no LF/TF.
func NewFrames() *Frames {
	return &Frames{GF: newFrame()}
}

// Resolve returns the Frame backing fr, or a fault if that frame does not
// currently exist (LF/TF absence).
func (fs *Frames) Resolve(fr program.Frame) (*Frame, error) {
	switch fr {
	case program.GF:
		return fs.GF, nil
	case program.LF:
		if fs.LF == nil {
			return nil, faults.New(faults.UndefFrame, "local frame does not exist")
		}
		return fs.LF, nil
	case program.TF:
		if fs.TF == nil {
			return nil, faults.New(faults.UndefFrame, "temporary frame does not exist")
		}
		return fs.TF, nil
	default:
		return nil, faults.New(faults.UndefFrame, "unknown frame %v", fr)
	}
}

// CreateFrame sets TF to a fresh, empty frame, overwriting any prior TF.
func (fs *Frames) CreateFrame() {
	fs.TF = newFrame()
}

// PushFrame moves TF to LF, pushing the previous LF (possibly absent) onto
// the frame stack. TF must currently exist.
func (fs *Frames) PushFrame() error {
	if fs.TF == nil {
		return faults.New(faults.UndefFrame, "PUSHFRAME: no temporary frame to push")
	}
	fs.stack = append(fs.stack, fs.LF)
	fs.LF = fs.TF
	fs.TF = nil
	return nil
}

// PopFrame moves LF to TF, popping the top of the frame stack into LF. The
// frame stack must be non-empty.
func (fs *Frames) PopFrame() error {
	if len(fs.stack) == 0 {
		return faults.New(faults.UndefFrame, "POPFRAME: frame stack is empty")
	}
	fs.TF = fs.LF
	n := len(fs.stack) - 1
	fs.LF = fs.stack[n]
	fs.stack = fs.stack[:n]
	return nil
}

// DefVar creates a new, Undef-valued slot named name in frame fr.
func (fs *Frames) DefVar(fr program.Frame, name string) error {
	f, err := fs.Resolve(fr)
	if err != nil {
		return err
	}
	return f.Define(name)
}

// LiveVarCount sums the number of initialized slots across every frame currently
// reachable: GF, LF and TF if present, and every frame parked on the frame
// stack. Used by the statistics hooks (peak initialized variables).
func (fs *Frames) LiveVarCount() int {
	n := fs.GF.Len()
	if fs.LF != nil {
		n += fs.LF.Len()
	}
	if fs.TF != nil {
		n += fs.TF.Len()
	}
	for _, f := range fs.stack {
		if f != nil {
			n += f.Len()
		}
	}
	return n
}
