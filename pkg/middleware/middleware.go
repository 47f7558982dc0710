// Package middleware provides the HTTP middleware shared by every module:
// CORS, request logging, and request metrics.
package middleware

import "net/http"

// Middleware wraps a handler.
type Middleware func(http.Handler) http.Handler

// Stack is an ordered middleware list. The first layer added runs outermost.
type Stack struct {
	layers []Middleware
}

// Use appends layers to the stack.
func (s *Stack) Use(layers ...Middleware) {
	s.layers = append(s.layers, layers...)
}

// Len reports the number of layers.
func (s *Stack) Len() int {
	return len(s.layers)
}

// Apply wraps handler with every layer in the stack.
func (s *Stack) Apply(handler http.Handler) http.Handler {
	return Chain(handler, s.layers...)
}

// Chain wraps handler so that layers[0] sees the request first.
func Chain(handler http.Handler, layers ...Middleware) http.Handler {
	for i := len(layers) - 1; i >= 0; i-- {
		handler = layers[i](handler)
	}
	return handler
}
