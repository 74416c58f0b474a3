package dispatch

// A Handler renders the body of a response for a request routed to it.
type Handler interface {
	RenderResponse(r *Request) (string, error)
}

// The HandlerFunc type is an adapter allowing the use of ordinary functions as a Handler.
type HandlerFunc func(r *Request) (string, error)

// RenderResponse calls f(r).
func (f HandlerFunc) RenderResponse(r *Request) (string, error) { return f(r) }

// A ViewAuthorizer decides whether a request may view a node's information.
type ViewAuthorizer interface {
	AllowView(r *Request) bool
}

// An EditAuthorizer decides whether a request may edit a node's information.
type EditAuthorizer interface {
	AllowEdit(r *Request) bool
}

// An Authorizer makes both decisions.
type Authorizer interface {
	ViewAuthorizer
	EditAuthorizer
}

// A NotFoundRenderer renders the body of a response when resource is not routable.
type NotFoundRenderer interface {
	RenderNotFound(r *Request, resource string) string
}

// An UnauthorizedRenderer renders the body of a response
// when a request is denied viewing or editing.
type UnauthorizedRenderer interface {
	RenderUnauthorized(r *Request, edit bool) string
}

// An InternalErrorRenderer renders the body of a response when producing one failed.
type InternalErrorRenderer interface {
	RenderInternalError(r *Request, err *RenderError) string
}
