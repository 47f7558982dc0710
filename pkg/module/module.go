// Package module mounts prefix-scoped HTTP handlers, each with its own
// middleware stack, under a shared router.
package module

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/pkg/middleware"
)

// Module is an HTTP handler that strips its prefix and delegates to an inner router
// with its own middleware stack.
type Module struct {
	prefix     string
	router     http.Handler
	middleware middleware.Stack
	handler    http.Handler
}

// New creates a Module with the given single-level prefix (e.g. "/api").
// Panics if the prefix is empty, missing a leading slash, or multi-level.
func New(prefix string, router http.Handler) *Module {
	if err := validatePrefix(prefix); err != nil {
		panic(err)
	}
	return &Module{
		prefix:  prefix,
		router:  router,
		handler: router,
	}
}

// Handler returns the inner router wrapped with the module's middleware stack.
func (m *Module) Handler() http.Handler {
	return m.handler
}

// Prefix returns the module's path prefix.
func (m *Module) Prefix() string {
	return m.prefix
}

// Serve strips the module prefix from the request path and dispatches to the inner router.
func (m *Module) Serve(w http.ResponseWriter, req *http.Request) {
	m.handler.ServeHTTP(w, stripPrefix(req, m.prefix))
}

// Use adds middleware to the module's stack. Call before serving traffic.
func (m *Module) Use(mw middleware.Middleware) {
	m.middleware.Use(mw)
	m.handler = m.middleware.Apply(m.router)
}

// stripPrefix clones req with prefix removed from both the decoded and the
// escaped path so encoded slashes in path values survive the hop.
func stripPrefix(req *http.Request, prefix string) *http.Request {
	request := new(http.Request)
	*request = *req
	request.URL = new(url.URL)
	*request.URL = *req.URL

	request.URL.Path = trim(req.URL.Path, prefix)
	if req.URL.RawPath != "" {
		request.URL.RawPath = trim(req.URL.RawPath, prefix)
	}
	return request
}

func trim(path, prefix string) string {
	path = strings.TrimPrefix(path, prefix)
	if path == "" {
		return "/"
	}
	return path
}

func validatePrefix(prefix string) error {
	if prefix == "" {
		return fmt.Errorf("module prefix cannot be empty")
	}
	if !strings.HasPrefix(prefix, "/") {
		return fmt.Errorf("module prefix must start with /: %s", prefix)
	}
	if strings.Count(prefix, "/") != 1 {
		return fmt.Errorf("module prefix must be single-level sub-path: %s", prefix)
	}
	return nil
}
