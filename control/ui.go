package control

import (
	"bytes"
	"fmt"
	html "html/template"

	"github.com/xy-planning-network/webbot/dispatch"
)

// A Renderer produces markup for a request.
type Renderer interface {
	Render(r *dispatch.Request) (html.HTML, error)
}

// Markup is a Renderer of fixed markup.
type Markup html.HTML

// Render returns m.
func (m Markup) Render(*dispatch.Request) (html.HTML, error) { return html.HTML(m), nil }

// Text is a Renderer of text escaped for HTML.
type Text string

// Render returns t, escaped.
func (t Text) Render(*dispatch.Request) (html.HTML, error) {
	return html.HTML(html.HTMLEscapeString(string(t))), nil
}

// A UI is the renderable tree a Control builds for each request.
//
// A UI either executes a template with Data,
// or, without one, flows the markup of its parts one after the other.
type UI struct {
	// Data is passed to the template when executed.
	Data any

	// FieldErrors holds the rules each field broke, when processing found the request invalid.
	FieldErrors map[string][]string

	tmpl     *html.Template
	slots    map[string]Renderer
	parts    []Renderer
	editable bool
	calls    []string
	controls func(name string, r *dispatch.Request) (html.HTML, error)
	form     any
}

// NewUI constructs a *UI executing tmpl with data.
// tmpl is cloned before every execution and is never executed itself.
func NewUI(tmpl *html.Template, data any) *UI {
	return &UI{Data: data, tmpl: tmpl, slots: make(map[string]Renderer), editable: true}
}

// Flow constructs an empty *UI rendering its parts in order.
func Flow(parts ...Renderer) *UI {
	ui := NewUI(nil, nil)
	ui.parts = append(ui.parts, parts...)
	return ui
}

// Append adds parts rendered, in order, after the template or the parts already added.
func (ui *UI) Append(parts ...Renderer) { ui.parts = append(ui.parts, parts...) }

// ReplaceWith fills the named slot with content, rendered wherever the template calls {{ slot "name" }}.
func (ui *UI) ReplaceWith(slot string, content Renderer) { ui.slots[slot] = content }

// Slot returns the content filling the named slot.
func (ui *UI) Slot(name string) (Renderer, bool) {
	r, ok := ui.slots[name]
	return r, ok
}

// SetEditable toggles whether the UI renders for editing.
// Templates read it with {{ editable }}.
func (ui *UI) SetEditable(editable bool) { ui.editable = editable }

func (ui *UI) Editable() bool { return ui.editable }

// ClientSide schedules scripts to run on the client once the UI is rendered.
func (ui *UI) ClientSide(scripts ...string) { ui.calls = append(ui.calls, scripts...) }

// Calls returns the scripts scheduled with ClientSide.
func (ui *UI) Calls() []string { return append([]string(nil), ui.calls...) }

// Render renders ui, adding its client-side calls to the scripts of r's response.
// The calls of ui precede those of anything rendered within it.
func (ui *UI) Render(r *dispatch.Request) (html.HTML, error) {
	if len(ui.calls) > 0 {
		if r.Response.Scripts == nil {
			r.Response.Scripts = dispatch.NewScripts()
		}
		r.Response.Scripts.Add(ui.calls...)
	}

	var b bytes.Buffer

	if ui.tmpl != nil {
		tmpl, err := ui.tmpl.Clone()
		if err != nil {
			return "", fmt.Errorf("cloning %s: %w", ui.tmpl.Name(), err)
		}

		tmpl = tmpl.Funcs(ui.funcs(r))
		if err := tmpl.Execute(&b, ui.Data); err != nil {
			return "", fmt.Errorf("executing %s: %w", ui.tmpl.Name(), err)
		}
	}

	for _, p := range ui.parts {
		m, err := p.Render(r)
		if err != nil {
			return "", err
		}
		b.WriteString(string(m))
	}

	return html.HTML(b.String()), nil
}

// funcs binds the template functions of ui to r.
func (ui *UI) funcs(r *dispatch.Request) html.FuncMap {
	return html.FuncMap{
		"editable":    func() bool { return ui.editable },
		"fieldErrors": func(field string) []string { return ui.FieldErrors[field] },
		"slot": func(name string) (html.HTML, error) {
			content, ok := ui.slots[name]
			if !ok {
				return "", nil
			}

			return content.Render(r)
		},
		"control": func(name string) (html.HTML, error) {
			if ui.controls == nil {
				return "", fmt.Errorf("%w: %s", ErrNoControl, name)
			}

			return ui.controls(name, r)
		},
	}
}
