package router

import (
	"io/fs"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/xy-planning-network/webbot"
	"github.com/xy-planning-network/webbot/http/middleware"
)

// AssetsPath is where bundled resource files are served from.
// Requests for it open the same path within the assets of a Router.
const AssetsPath = "/static/"

// A Route maps a path and HTTP method to an [http.Handler].
// An empty Method matches every method.
// Additional [middleware.Adapter] can be called when a server handles
// a request matching the Route.
type Route struct {
	Path        string
	Method      string
	Handler     http.Handler
	Middlewares []middleware.Adapter
}

// Router routes requests for resources to the handlers of a webbot app.
type Router struct {
	Env           webbot.Environment
	everyReqStack []middleware.Adapter
	logReq        middleware.Adapter
	r             *mux.Router
}

// New constructs a [*Router] for the given environment.
// Requests for AssetsPath are served out of assets, when not nil,
// so /static/app.js opens static/app.js.
func New(env webbot.Environment, logReq middleware.Adapter, assets fs.FS) *Router {
	if logReq == nil {
		logReq = middleware.NoopAdapter
	}

	r := mux.NewRouter().StrictSlash(true)
	if assets != nil {
		r.PathPrefix(AssetsPath).Handler(middleware.Chain(
			http.FileServer(http.FS(assets)),
			cacheControlMiddleware(env),
			logReq,
		))
	}

	return &Router{logReq: logReq, Env: env, r: r}
}

// CatchAll sets up a handler for all routes to funnel to for e.g. maintenance mode.
func (r *Router) CatchAll(handler http.Handler) {
	r.r.PathPrefix("/").Handler(middleware.Chain(handler, r.everyReqStack...))
}

// Handle applies the [Route] to the [*Router].
func (r *Router) Handle(route Route) {
	r.HandleRoutes([]Route{route})
}

// HandleNotFound sets the provided [http.Handler] as the default function
// for when no other registered Route is matched.
func (r *Router) HandleNotFound(handler http.Handler) {
	r.r.NotFoundHandler = middleware.Chain(
		middleware.ReportPanic(r.Env)(handler),
		r.logReq,
	)
}

// HandleRoutes registers the set of Routes on the Router
// and includes all the [middleware.Adapter] on each Route.
// Any [middleware.Adapter] already assigned to a Route is appended to middlewares,
// so are called after the default set.
func (r *Router) HandleRoutes(routes []Route, middlewares ...middleware.Adapter) {
	for _, route := range routes {
		mws := append(append([]middleware.Adapter(nil), r.everyReqStack...), middlewares...)
		mws = append(mws, route.Middlewares...)
		handler := middleware.Chain(route.Handler, mws...)

		mr := r.r.Handle(route.Path, handler)
		if route.Method != "" {
			mr.Methods(route.Method)
		}
	}
}

// OnEveryRequest appends the middlewares to the existing stack
// that the [*Router] will apply to every request.
func (r *Router) OnEveryRequest(middlewares ...middleware.Adapter) {
	r.everyReqStack = append(r.everyReqStack, middlewares...)
}

// Redirect sends requests for from to to.
func (r *Router) Redirect(from, to string) {
	r.Handle(Route{Path: from, Handler: http.RedirectHandler(to, http.StatusFound)})
}

// ServeHTTP responds to an HTTP request.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.r.ServeHTTP(w, req)
}

// Subrouter constructs a [Router] that handles requests to endpoints matching the prefix.
//
// e.g., r.Subrouter("/api/v1") handles requests to endpoints like /api/v1/users
func (r *Router) Subrouter(prefix string) *Router {
	return &Router{
		Env:           r.Env,
		r:             r.r.PathPrefix(prefix).Subrouter(),
		logReq:        r.logReq,
		everyReqStack: append([]middleware.Adapter(nil), r.everyReqStack...),
	}
}

// cacheControlMiddleware helps by adding a "Cache-Control" header to the response
// outside of development.
func cacheControlMiddleware(env webbot.Environment) middleware.Adapter {
	if env.IsDevelopment() {
		return middleware.NoopAdapter
	}

	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "max-age=2592000") // 30 days
			handler.ServeHTTP(w, r)
		})
	}
}
