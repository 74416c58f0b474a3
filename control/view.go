package control

import (
	"github.com/xy-planning-network/webbot/dispatch"
)

// A View builds and populates the UI of a Control for each request it renders.
type View interface {
	// BuildUI constructs the UI.
	BuildUI(r *dispatch.Request) (*UI, error)

	// InitUI sets up the parts of ui not present in its template.
	InitUI(ui *UI, r *dispatch.Request) error

	// SetUIData populates ui with the data to display, after any processing.
	SetUIData(ui *UI, r *dispatch.Request) error
}

// A Binder is a View told which Control it belongs to once that Control is built.
type Binder interface {
	Bind(c *Control)
}

// A Processor handles requests of one method after they are deemed valid.
type Processor interface {
	Process(ui *UI, r *dispatch.Request) error
}

// The ProcessorFunc type is an adapter allowing the use of ordinary functions as a Processor.
type ProcessorFunc func(ui *UI, r *dispatch.Request) error

// Process calls f(ui, r).
func (f ProcessorFunc) Process(ui *UI, r *dispatch.Request) error { return f(ui, r) }

// A Validator decides whether a request is processed.
// A Processor implementing Validator guards itself.
type Validator interface {
	Valid(ui *UI, r *dispatch.Request) bool
}

// Guard pairs a predicate with a ProcessorFunc.
func Guard(valid func(ui *UI, r *dispatch.Request) bool, process ProcessorFunc) Processor {
	return guarded{valid: valid, ProcessorFunc: process}
}

type guarded struct {
	valid func(ui *UI, r *dispatch.Request) bool
	ProcessorFunc
}

func (g guarded) Valid(ui *UI, r *dispatch.Request) bool { return g.valid(ui, r) }

// A ProcessorsView is a View declaring its own processors, keyed by method.
type ProcessorsView interface {
	View
	Processors() map[string]Processor
}

// Element is a View with an empty flow UI and hooks doing nothing.
// Embed it to override only the hooks needed.
type Element struct{}

func (Element) BuildUI(*dispatch.Request) (*UI, error) { return Flow(), nil }
func (Element) InitUI(*UI, *dispatch.Request) error    { return nil }
func (Element) SetUIData(*UI, *dispatch.Request) error { return nil }
