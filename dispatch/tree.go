package dispatch

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/xy-planning-network/webbot/logger"
)

const maxMultipartMemory = 32 << 20

// A Tree is a fully built tree of handlers, ready to route requests.
type Tree struct {
	root    *Node
	scripts []string
	log     logger.Logger
}

// A BuildOpt configures how a Tree is built.
type BuildOpt func(*BuildContext)

// WithCatalog makes bps available to handlers discovering their children.
func WithCatalog(bps ...Blueprint) BuildOpt {
	return func(bc *BuildContext) {
		for k, v := range NewCatalog(bps...) {
			bc.catalog[k] = v
		}
	}
}

// WithLogger sets the logger handlers log to.
func WithLogger(l logger.Logger) BuildOpt {
	return func(bc *BuildContext) {
		bc.log = l
	}
}

// Build constructs the Tree rooted at bp, eagerly building every handler below it.
func Build(bp Blueprint, opts ...BuildOpt) (*Tree, error) {
	bc := BuildContext{
		catalog: make(Catalog),
		log:     logger.NewBotLogger(logger.WithLogger(log.New(io.Discard, "", 0))),
	}

	for _, opt := range opts {
		opt(&bc)
	}

	if bp.Abstract {
		return nil, fmt.Errorf("%w: %s is abstract", ErrNoBuild, bp.Name)
	}

	root, bc, err := build(bp, nil, bc)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var files []string
	for _, n := range root.AllNodes() {
		n.root = root
		for _, f := range n.resourceFiles {
			if !seen[f] {
				seen[f] = true
				files = append(files, f)
			}
		}
	}
	root.resourceFiles = files
	root.initScripts = bc.Scripts()

	return &Tree{root: root, scripts: bc.Scripts(), log: bc.log}, nil
}

// Root returns the root of t.
func (t *Tree) Root() *Node { return t.root }

// InitScripts returns the scripts registering every handler of t with the client, in construction order.
func (t *Tree) InitScripts() []string { return append([]string(nil), t.scripts...) }

// Find returns the node with the accessor, if any.
func (t *Tree) Find(accessor string) (*Node, bool) {
	segs := strings.Split(accessor, Separator)
	if len(segs) == 0 || segs[0] != t.root.name {
		return nil, false
	}

	n := t.root
	for _, s := range segs[1:] {
		c, ok := n.children[s]
		if !ok {
			return nil, false
		}
		n = c
	}

	return n, true
}

// HandleRequest dispatches r from the root of t.
func (t *Tree) HandleRequest(r *Request) *Response {
	resp := t.root.HandleRequest(r)
	DispatchRequests.WithLabelValues(t.root.name, strconv.Itoa(resp.Status)).Inc()
	return resp
}

// ServeHTTP converts r into a *Request, dispatches it and writes out the response.
func (t *Tree) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req, err := FromHTTP(r)
	if err != nil {
		t.log.Warn("could not read request", &logger.LogContext{Error: err, Request: r})
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp := t.HandleRequest(req)
	if err := resp.WriteTo(w); err != nil {
		t.log.Error("could not write response", &logger.LogContext{Error: err, Request: r})
	}
}

// FromHTTP converts r into a *Request.
// The query, any form body and the members of a JSON object body all become fields.
func FromHTTP(r *http.Request) (*Request, error) {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch ct {
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			return nil, fmt.Errorf("parsing multipart form: %w", err)
		}
	default:
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("parsing form: %w", err)
		}
	}

	req := NewRequest(r.Method, nil).WithContext(r.Context())
	for k, vs := range r.Form {
		req.Fields[k] = append([]string(nil), vs...)
	}

	if ct == ContentTypeJSON && r.Body != nil {
		obj := make(map[string]any)
		if err := json.NewDecoder(r.Body).Decode(&obj); err != nil && err != io.EOF {
			return nil, fmt.Errorf("decoding json body: %w", err)
		}

		for k, v := range obj {
			req.Fields[k] = jsonValues(v)
		}
	}

	return req, nil
}

// jsonValues flattens a decoded JSON value into field values.
func jsonValues(v any) []string {
	switch t := v.(type) {
	case nil:
		return []string{""}
	case string:
		return []string{t}
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			out = append(out, jsonValues(e)...)
		}
		return out
	case map[string]any:
		b, _ := json.Marshal(t)
		return []string{string(b)}
	default:
		return []string{fmt.Sprint(t)}
	}
}
