package dispatch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"runtime/debug"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/xy-planning-network/webbot/logger"
)

const (
	notFoundTmpl      = "Error: %s was not found."
	unauthorizedTmpl  = "Unauthorized Request: You are not authorized to %s this information"
	internalErrorTmpl = "Internal Server Error: %s\n%s"
)

// A Node is one handler in a tree, built from a Blueprint.
// Everything a Node holds is computed once, when the tree is built.
type Node struct {
	name     string
	accessor string

	parent   *Node
	root     *Node
	children map[string]*Node
	order    []*Node
	siblings Siblings

	grabFields    fieldSet
	grabForms     fieldSet
	sharedFields  fieldSet
	sharedForms   fieldSet
	resourceFiles []string
	initScripts   []string

	handler Handler
	auth    Authorizer
	log     logger.Logger
}

// Name returns the base name n is routed by.
func (n *Node) Name() string { return n.name }

// Accessor returns the dash-joined path from the root to n.
func (n *Node) Accessor() string { return n.accessor }

// Parent returns the node n is a child of, nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// Root returns the root of the tree n belongs to.
func (n *Node) Root() *Node { return n.root }

// IsRoot reports whether n is the root of its tree.
func (n *Node) IsRoot() bool { return n.parent == nil }

// Handler returns the Handler responding for n.
func (n *Node) Handler() Handler { return n.handler }

// Child returns the child named name.
func (n *Node) Child(name string) (*Node, bool) {
	c, ok := n.children[name]
	return c, ok
}

// Children returns the children of n in the order they were declared.
func (n *Node) Children() []*Node { return append([]*Node(nil), n.order...) }

// Sibling returns the other child of n's parent named name.
func (n *Node) Sibling(name string) (*Node, bool) {
	s, ok := n.siblings[name]
	return s, ok
}

// Siblings returns the registry of n's siblings.
func (n *Node) Siblings() Siblings { return n.siblings }

func (n *Node) GrabFields() []string   { return n.grabFields.sorted() }
func (n *Node) GrabForms() []string    { return n.grabForms.sorted() }
func (n *Node) SharedFields() []string { return n.sharedFields.sorted() }
func (n *Node) SharedForms() []string  { return n.sharedForms.sorted() }

// ResourceFiles returns the files n declares.
// At the root, these are the files declared anywhere in the tree.
func (n *Node) ResourceFiles() []string { return append([]string(nil), n.resourceFiles...) }

// InitScripts returns the scripts registering every handler of n's tree with the client.
func (n *Node) InitScripts() []string {
	if n.root == nil {
		return nil
	}

	return append([]string(nil), n.root.initScripts...)
}

// Grabbed returns the fields of r n may read from outside itself.
func (n *Node) Grabbed(r *Request) url.Values {
	out := make(url.Values)
	for k, vs := range r.Fields {
		if n.grabFields.has(k) {
			out[k] = append([]string(nil), vs...)
		}
	}

	return out
}

// AllNodes lists n and every node below it, parents before children.
func (n *Node) AllNodes() []*Node {
	out := []*Node{n}
	for _, c := range n.order {
		out = append(out, c.AllNodes()...)
	}

	return out
}

// String returns the segments of n's accessor, capitalized and joined by spaces.
func (n *Node) String() string {
	segs := strings.Split(n.accessor, Separator)
	for i, s := range segs {
		r, size := utf8.DecodeRuneInString(s)
		segs[i] = string(unicode.ToUpper(r)) + s[size:]
	}

	return strings.Join(segs, " ")
}

// CanView reports whether r may view n's information.
// Every node from the root down to n must allow it.
func (n *Node) CanView(r *Request) bool {
	if n.parent != nil && !n.parent.CanView(r) {
		return false
	}

	if n.auth != nil {
		return n.auth.AllowView(r)
	}

	if va, ok := n.handler.(ViewAuthorizer); ok {
		return va.AllowView(r)
	}

	return true
}

// CanEdit reports whether r may edit n's information.
// CanEdit never holds when CanView does not.
func (n *Node) CanEdit(r *Request) bool {
	if !n.CanView(r) {
		return false
	}

	if n.parent != nil && !n.parent.CanEdit(r) {
		return false
	}

	if n.auth != nil {
		return n.auth.AllowEdit(r)
	}

	if ea, ok := n.handler.(EditAuthorizer); ok {
		return ea.AllowEdit(r)
	}

	return true
}

// HandleRequest routes r along the path held by its HandlerField.
// HandleRequest always returns a response;
// failures are rendered into it instead of returned.
func (n *Node) HandleRequest(r *Request) *Response {
	if r.Response == nil {
		r.Response = NewResponse()
	}

	paths := r.Fields[HandlerField]
	if len(paths) > 1 {
		return n.fanOut(r, paths)
	}

	var segments []string
	if len(paths) == 1 {
		segments = strings.Split(paths[0], Separator)
	}

	return n.Route(r, segments)
}

// Route routes r along segments, the first of which names n or is empty.
func (n *Node) Route(r *Request, segments []string) *Response {
	if r.Response == nil {
		r.Response = NewResponse()
	}

	var head string
	if len(segments) > 0 {
		head, segments = segments[0], segments[1:]
	}

	if head != "" && head != n.name {
		return n.notFound(r, head)
	}

	if len(segments) == 0 {
		return n.respond(r)
	}

	child, ok := n.children[segments[0]]
	if !ok {
		return n.notFound(r, segments[0])
	}

	return child.Route(r, segments)
}

// fanOut routes each path on its own copy of r
// and collects every response into a multi-status response.
func (n *Node) fanOut(r *Request, paths []string) *Response {
	bodies := make([]string, 0, len(paths))
	for _, p := range paths {
		sub := r.Copy()
		sub.Fields[HandlerField] = []string{p}
		bodies = append(bodies, n.HandleRequest(sub).Serialize())
	}

	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(bodies); err != nil {
		return n.fail(r, &RenderError{Accessor: n.accessor, Err: err, Stack: debug.Stack()})
	}

	r.Response.Status = http.StatusMultiStatus
	r.Response.ContentType = ContentTypeJSON
	r.Response.Content = strings.TrimSuffix(b.String(), "\n")
	return r.Response
}

// respond renders the response of n as the terminal handler for r.
// Panics from authorizers, renderers and handlers alike become internal errors.
func (n *Node) respond(r *Request) (resp *Response) {
	resp = r.Response

	defer func() {
		if p := recover(); p != nil {
			err, ok := p.(error)
			if !ok {
				err = fmt.Errorf("%v", p)
			}

			resp = n.fail(r, &RenderError{Accessor: n.accessor, Err: err, Stack: debug.Stack()})
		}
	}()

	if !n.CanView(r) {
		return n.unauthorized(r, false)
	}

	if r.Method != http.MethodGet && !n.CanEdit(r) {
		return n.unauthorized(r, true)
	}

	start := time.Now()
	body, err := n.handler.RenderResponse(r)
	RenderDuration.WithLabelValues(n.root.name).Observe(time.Since(start).Seconds())
	if err != nil {
		return n.fail(r, &RenderError{Accessor: n.accessor, Err: err, Stack: debug.Stack()})
	}

	resp.Content = body
	return resp
}

func (n *Node) notFound(r *Request, resource string) *Response {
	n.log.Debug(fmt.Sprintf("%s not found below %s", resource, n.accessor), &logger.LogContext{
		Data: r.logData(),
	})

	r.Response.Status = http.StatusNotFound
	if nf, ok := n.handler.(NotFoundRenderer); ok {
		r.Response.Content = nf.RenderNotFound(r, resource)
	} else {
		r.Response.Content = fmt.Sprintf(notFoundTmpl, resource)
	}

	return r.Response
}

func (n *Node) unauthorized(r *Request, edit bool) *Response {
	action := "view"
	if edit {
		action = "edit"
	}

	n.log.Debug(fmt.Sprintf("%s denied %s", n.accessor, action), &logger.LogContext{
		Data: r.logData(),
	})

	r.Response.Status = http.StatusUnauthorized
	if ur, ok := n.handler.(UnauthorizedRenderer); ok {
		r.Response.Content = ur.RenderUnauthorized(r, edit)
	} else {
		r.Response.Content = fmt.Sprintf(unauthorizedTmpl, action)
	}

	return r.Response
}

func (n *Node) fail(r *Request, err *RenderError) *Response {
	n.log.Error(err.Error(), &logger.LogContext{
		Error: err,
		Data:  r.logData(),
	})

	r.Response.Status = http.StatusInternalServerError
	r.Response.ContentType = ContentTypeHTML
	if ier, ok := n.handler.(InternalErrorRenderer); ok {
		r.Response.Content = ier.RenderInternalError(r, err)
	} else {
		r.Response.Content = fmt.Sprintf(internalErrorTmpl, err.Err, err.Stack)
	}

	return r.Response
}
