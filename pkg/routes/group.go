// Package routes declares handler groups that register onto a ServeMux.
package routes

import "net/http"

// Group is a set of routes sharing Prefix. Children nest under it.
type Group struct {
	Prefix   string
	Routes   []Route
	Children []Group
}

// Register adds every route in groups to mux and returns the patterns in
// registration order.
func Register(mux *http.ServeMux, groups ...Group) []string {
	var patterns []string
	for _, g := range groups {
		g.walk("", func(pattern string, r Route) {
			mux.Handle(pattern, r.handler())
			patterns = append(patterns, pattern)
		})
	}
	return patterns
}

func (g Group) walk(parent string, visit func(pattern string, r Route)) {
	prefix := parent + g.Prefix
	for _, r := range g.Routes {
		visit(r.Method+" "+prefix+r.Pattern, r)
	}
	for _, child := range g.Children {
		child.walk(prefix, visit)
	}
}
