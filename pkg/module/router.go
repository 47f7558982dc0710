package module

import (
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strings"
)

// Router dispatches requests to mounted modules by their first path segment,
// falling back to a native ServeMux for process-level endpoints such as
// health checks and metrics.
type Router struct {
	modules map[string]*Module
	native  *http.ServeMux
}

// NewRouter creates a Router with an empty module map and native fallback mux.
func NewRouter() *Router {
	return &Router{
		modules: make(map[string]*Module),
		native:  http.NewServeMux(),
	}
}

// Handle registers handler on the native fallback mux.
func (r *Router) Handle(pattern string, handler http.Handler) {
	r.native.Handle(pattern, handler)
}

// HandleFunc registers a handler function on the native fallback mux.
func (r *Router) HandleFunc(pattern string, handler http.HandlerFunc) {
	r.native.HandleFunc(pattern, handler)
}

// Mount registers a module under its prefix. Mounting two modules on the same
// prefix panics.
func (r *Router) Mount(m *Module) {
	if _, exists := r.modules[m.prefix]; exists {
		panic(fmt.Sprintf("module prefix %q already mounted", m.prefix))
	}
	r.modules[m.prefix] = m
}

// Prefixes returns the mounted module prefixes in sorted order.
func (r *Router) Prefixes() []string {
	prefixes := make([]string, 0, len(r.modules))
	for p := range r.modules {
		prefixes = append(prefixes, p)
	}
	slices.Sort(prefixes)
	return prefixes
}

// ServeHTTP dispatches to the matching module or falls back to the native mux.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	req = trimTrailingSlash(req)

	if m, ok := r.modules[firstSegment(req.URL.Path)]; ok {
		m.Serve(w, req)
		return
	}

	r.native.ServeHTTP(w, req)
}

func firstSegment(path string) string {
	parts := strings.SplitN(path, "/", 3)
	if len(parts) >= 2 {
		return "/" + parts[1]
	}
	return path
}

// trimTrailingSlash returns req unchanged when its path has no trailing slash,
// otherwise a shallow copy with the slash removed from both path forms.
func trimTrailingSlash(req *http.Request) *http.Request {
	path := req.URL.Path
	if len(path) <= 1 || !strings.HasSuffix(path, "/") {
		return req
	}

	trimmed := new(http.Request)
	*trimmed = *req
	trimmed.URL = new(url.URL)
	*trimmed.URL = *req.URL

	trimmed.URL.Path = strings.TrimSuffix(path, "/")
	if req.URL.RawPath != "" {
		trimmed.URL.RawPath = strings.TrimSuffix(req.URL.RawPath, "/")
	}
	return trimmed
}
