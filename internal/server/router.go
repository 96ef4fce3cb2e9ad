package server

import (
	"net/http"
	"slices"
	"strings"
)

// BasicRouter is a simple HTTP router implementing the [Router] interface.
//
// Paths are matched by [http.ServeMux]; methods are matched by the router so that a path can
// serve several methods and unknown methods get a JSON 405 with an Allow header.
type BasicRouter struct {
	mux         *http.ServeMux
	middlewares []Middleware
	routes      map[string]map[string]http.Handler
}

// NewBasicRouter creates a new [BasicRouter] instance.
func NewBasicRouter() *BasicRouter {
	return &BasicRouter{
		mux:         http.NewServeMux(),
		middlewares: []Middleware{},
		routes:      map[string]map[string]http.Handler{},
	}
}

// Use adds [Middleware] to the stack, applied in the order it's added.
//
// Only routes registered after the call are wrapped.
func (r *BasicRouter) Use(middleware ...Middleware) {
	r.middlewares = append(r.middlewares, middleware...)
}

// Handle registers handler for method on path.
//
// The method check runs inside the middleware stack so [CORS] sees preflight requests.
func (r *BasicRouter) Handle(method, path string, handler http.Handler) {
	methods, ok := r.routes[path]
	if !ok {
		methods = map[string]http.Handler{}
		r.routes[path] = methods
		r.mux.Handle(path, r.Apply(r.dispatch(path)))
	}
	methods[strings.ToUpper(method)] = handler
}

func (r *BasicRouter) dispatch(path string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if h, ok := r.routes[path][req.Method]; ok {
			h.ServeHTTP(w, req)
			return
		}
		w.Header().Set("Allow", strings.Join(r.allowed(path), ", "))
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed.", req.Method+" "+path)
	})
}

func (r *BasicRouter) allowed(path string) []string {
	methods := make([]string, 0, len(r.routes[path]))
	for m := range r.routes[path] {
		methods = append(methods, m)
	}
	slices.Sort(methods)
	return methods
}

// Handler registers a [Handler] for POST on every path from [Handler.Routes].
func (r *BasicRouter) Handler(handler Handler) {
	for _, route := range handler.Routes() {
		r.Handle(http.MethodPost, route, handler)
	}
}

// Routes lists the registered routes as "METHOD /path", sorted.
func (r *BasicRouter) Routes() []string {
	routes := []string{}
	for path := range r.routes {
		for _, m := range r.allowed(path) {
			routes = append(routes, m+" "+path)
		}
	}
	slices.Sort(routes)
	return routes
}

// ServeHTTP implements [http.Handler] for the entire router.
//
// Paths with no registered route answer with a JSON 404 through the middleware stack.
func (r *BasicRouter) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if _, pattern := r.mux.Handler(req); pattern == "" {
		r.Apply(http.HandlerFunc(notFound)).ServeHTTP(w, req)
		return
	}
	r.mux.ServeHTTP(w, req)
}

func notFound(w http.ResponseWriter, req *http.Request) {
	writeError(w, http.StatusNotFound, "Not found.", req.URL.Path)
}

// Apply wraps a handler with all registered middleware.
//
// Middleware is applied in reverse order (last added wraps first).
func (r *BasicRouter) Apply(handler http.Handler) http.Handler {
	wrapped := handler

	for i := len(r.middlewares) - 1; i >= 0; i-- {
		wrapped = r.middlewares[i](wrapped)
	}

	return wrapped
}
