package dispatch

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/xy-planning-network/webbot"
)

const (
	// HandlerField is the reserved field naming the path a request is routed along.
	HandlerField = "requestHandler"

	// Separator joins the segments of a routing path.
	Separator = "-"
)

const (
	ContentTypeHTML = "text/html; charset=utf-8"
	ContentTypeJSON = "application/json"
)

// A Request is routed through a tree of handlers.
//
// Fields holds every top-level field of the inbound request;
// handlers may mutate it while processing.
type Request struct {
	Method   string
	Fields   url.Values
	Response *Response

	ctx context.Context
}

// NewRequest constructs a *Request for the method and fields.
// A nil fields is replaced by an empty url.Values
// and an empty method defaults to GET.
func NewRequest(method string, fields url.Values) *Request {
	if method == "" {
		method = http.MethodGet
	}

	if fields == nil {
		fields = make(url.Values)
	}

	return &Request{Method: method, Fields: fields, Response: NewResponse()}
}

// Context returns the request's context, context.Background if none was set.
func (r *Request) Context() context.Context {
	if r.ctx == nil {
		return context.Background()
	}

	return r.ctx
}

// WithContext returns a shallow copy of r with its context changed to ctx.
func (r *Request) WithContext(ctx context.Context) *Request {
	r2 := new(Request)
	*r2 = *r
	r2.ctx = ctx
	return r2
}

// Copy returns an isolated copy of r:
// its fields are deep copied and its response is brand new.
func (r *Request) Copy() *Request {
	fields := make(url.Values, len(r.Fields))
	for k, vs := range r.Fields {
		fields[k] = append([]string(nil), vs...)
	}

	return &Request{Method: r.Method, Fields: fields, Response: NewResponse(), ctx: r.ctx}
}

// Path returns the raw value of the HandlerField, joining multiple values with a comma.
func (r *Request) Path() string {
	return strings.Join(r.Fields[HandlerField], ",")
}

// RequestID returns the ID middleware assigned the HTTP request r came from, if any.
func (r *Request) RequestID() string {
	id, _ := r.Context().Value(webbot.RequestIDKey).(string)
	return id
}

// IPAddress returns the client address middleware found for the HTTP request r came from, if any.
func (r *Request) IPAddress() string {
	ip, _ := r.Context().Value(webbot.IpAddrKey).(string)
	return ip
}

// logData describes r in log entries.
func (r *Request) logData() map[string]any {
	data := map[string]any{"path": r.Path(), "method": r.Method}
	if id := r.RequestID(); id != "" {
		data["requestID"] = id
	}

	if ip := r.IPAddress(); ip != "" {
		data["ip"] = ip
	}

	return data
}

// A Response is built incrementally while a request is routed.
type Response struct {
	Status      int
	ContentType string
	Content     string

	// Scripts accumulates the client-side scripts rendered alongside Content.
	// The first handler to render markup for a response sets Scripts.
	Scripts *Scripts
}

// NewResponse constructs a *Response defaulting to a 200 HTML response.
func NewResponse() *Response {
	return &Response{Status: http.StatusOK, ContentType: ContentTypeHTML}
}

// Serialize returns the representation of the response collected into a multi-status body.
func (r *Response) Serialize() string { return r.Content }

// WriteTo writes the status, content type and content to w.
func (r *Response) WriteTo(w http.ResponseWriter) error {
	ct := r.ContentType
	if ct == "" {
		ct = ContentTypeHTML
	}

	status := r.Status
	if status == 0 {
		status = http.StatusOK
	}

	w.Header().Set("Content-Type", ct)
	w.WriteHeader(status)
	_, err := w.Write([]byte(r.Content))
	return err
}
