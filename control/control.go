package control

import (
	"fmt"
	html "html/template"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/xy-planning-network/webbot/dispatch"
)

// AutoLoad determines how a Control embedded in another renders its content.
type AutoLoad int

const (
	// Inline renders content along with the enclosing markup.
	Inline AutoLoad = iota

	// AJAX leaves content empty and schedules the client to request it.
	AJAX

	// Off leaves content empty.
	Off
)

const (
	loadingTmpl = `<div id="%s:Loading" class="WLoading" hidden><span class="WContent">%s</span></div>`
	sectionTmpl = `<section id="%s" handler="%s">%s</section>`
)

// A Control is a dispatch.Handler rendering a View.
type Control struct {
	id   string
	node *dispatch.Node
	view View

	processors   map[string]Processor
	valid        func(ui *UI, r *dispatch.Request) bool
	autoLoad     AutoLoad
	autoReload   time.Duration
	silentReload bool
	loadingText  string

	// request, when set, replaces the request the Control is asked to render.
	request *dispatch.Request
}

// New returns bp set up to build a *Control around the View newView returns for its node.
func New(bp dispatch.Blueprint, newView func(n *dispatch.Node) (View, error), opts ...Opt) dispatch.Blueprint {
	bp.Build = func(n *dispatch.Node) (dispatch.Handler, error) {
		if newView == nil {
			return nil, fmt.Errorf("%w: %s", ErrNoView, n.Accessor())
		}

		v, err := newView(n)
		if err != nil {
			return nil, err
		}

		if v == nil {
			return nil, fmt.Errorf("%w: %s", ErrNoView, n.Accessor())
		}

		c := &Control{
			id:           n.Accessor(),
			node:         n,
			view:         v,
			processors:   make(map[string]Processor),
			valid:        func(*UI, *dispatch.Request) bool { return true },
			silentReload: true,
			loadingText:  fmt.Sprintf("Loading %s...", n.String()),
		}

		if pv, ok := v.(ProcessorsView); ok {
			for method, p := range pv.Processors() {
				c.processors[strings.ToUpper(method)] = p
			}
		}

		for _, opt := range opts {
			opt(c)
		}

		if b, ok := v.(Binder); ok {
			b.Bind(c)
		}

		return c, nil
	}

	return bp
}

// ID returns the id identifying the markup of c.
func (c *Control) ID() string { return c.id }

// Node returns the node c responds for.
func (c *Control) Node() *dispatch.Node { return c.node }

// View returns the View c renders.
func (c *Control) View() View { return c.view }

// Discover lists the Blueprints of the controls c's View references, when it references any.
func (c *Control) Discover(cat dispatch.Catalog) ([]dispatch.Blueprint, error) {
	d, ok := c.view.(dispatch.Discoverer)
	if !ok {
		return nil, nil
	}

	return d.Discover(cat)
}

// RenderResponse builds, processes and renders the UI for r.
//
// Exactly one processor, the one for r's method, runs and only if it is valid.
// The first control rendering for a response attaches every script accumulated while rendering.
func (c *Control) RenderResponse(r *dispatch.Request) (string, error) {
	if c.request != nil {
		r = c.request
	}

	m, err := c.render(r)
	return string(m), err
}

func (c *Control) render(r *dispatch.Request) (html.HTML, error) {
	ui, err := c.view.BuildUI(r)
	if err != nil {
		return "", fmt.Errorf("building ui: %w", err)
	}
	ui.controls = c.renderChild

	if err := c.view.InitUI(ui, r); err != nil {
		return "", fmt.Errorf("initializing ui: %w", err)
	}

	if c.autoReload > 0 {
		ui.ClientSide(Get(c.silentReload, c.autoReload, c.id))
	}

	if err := c.process(ui, r); err != nil {
		return "", fmt.Errorf("processing %s: %w", r.Method, err)
	}

	if err := c.view.SetUIData(ui, r); err != nil {
		return "", fmt.Errorf("setting ui data: %w", err)
	}

	if !c.node.CanEdit(r) {
		ui.SetEditable(false)
	}

	attach := r.Response.Scripts == nil
	if attach {
		r.Response.Scripts = dispatch.NewScripts()
	}

	m, err := ui.Render(r)
	if err != nil {
		return "", err
	}

	if attach {
		m += r.Response.Scripts.HTML()
	}

	return m, nil
}

// process runs the processor for r's method, when one is set and r is valid for it.
func (c *Control) process(ui *UI, r *dispatch.Request) error {
	method := strings.ToUpper(r.Method)
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
	default:
		return nil
	}

	p, ok := c.processors[method]
	if !ok {
		return nil
	}

	var valid bool
	switch v := p.(type) {
	case Validator:
		valid = v.Valid(ui, r)
	default:
		valid = method == http.MethodGet || c.valid(ui, r)
	}

	if !valid {
		return nil
	}

	return p.Process(ui, r)
}

// Content renders the content of c as embedded in another control, according to its AutoLoad.
func (c *Control) Content(r *dispatch.Request) (html.HTML, error) {
	if c.request != nil {
		r = c.request
	}

	switch c.autoLoad {
	case AJAX:
		if r.Response.Scripts == nil {
			r.Response.Scripts = dispatch.NewScripts()
		}
		r.Response.Scripts.Add(Get(false, 0, c.id))
		return "", nil

	case Off:
		return "", nil

	default:
		return c.render(r)
	}
}

// Render renders c as embedded in another control:
// its hidden loading placeholder followed by its content within a section.
func (c *Control) Render(r *dispatch.Request) (html.HTML, error) {
	content, err := c.Content(r)
	if err != nil {
		return "", err
	}

	return c.Markup(content), nil
}

// Markup wraps content in the placeholder and section identifying c to the client.
func (c *Control) Markup(content html.HTML) html.HTML {
	id := html.HTMLEscapeString(c.id)
	loading := fmt.Sprintf(loadingTmpl, id, html.HTMLEscapeString(c.loadingText))
	section := fmt.Sprintf(sectionTmpl, id, html.HTMLEscapeString(c.node.Accessor()), content)
	return html.HTML(loading + section)
}

// Instance returns a copy of c rendering a copy of r identified by id,
// with the method and fields overridden.
// The copy shares r's response so scripts are still attached once.
func (c *Control) Instance(id string, r *dispatch.Request, fields url.Values, method string) *Control {
	req := r.Copy()
	req.Response = r.Response
	if req.Response == nil {
		req.Response = dispatch.NewResponse()
	}

	if method != "" {
		req.Method = method
	}

	for k, vs := range fields {
		req.Fields[k] = append([]string(nil), vs...)
	}

	cp := *c
	if id != "" {
		cp.id = id
	}
	cp.request = req

	return &cp
}

// renderChild renders the child control of c named in a template.
// Nested controls always render as a GET of the same fields.
func (c *Control) renderChild(name string, r *dispatch.Request) (html.HTML, error) {
	n, ok := c.node.Child(dispatch.BaseName(name))
	if !ok {
		return "", fmt.Errorf("%w: %s below %s", ErrNoControl, name, c.node.Accessor())
	}

	child, ok := n.Handler().(*Control)
	if !ok {
		return "", fmt.Errorf("%w: %s is not a control", ErrNoControl, n.Accessor())
	}

	return child.Instance("", r, nil, http.MethodGet).Render(r)
}

// Sibling returns the control of the sibling of c's node named name.
func (c *Control) Sibling(name string) (*Control, bool) {
	n, ok := c.node.Sibling(dispatch.BaseName(name))
	if !ok {
		return nil, false
	}

	sib, ok := n.Handler().(*Control)
	return sib, ok
}
