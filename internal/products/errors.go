package products

import (
	"errors"
	"net/http"
)

// Domain errors for product operations.
var (
	ErrNotFound        = errors.New("product not found")
	ErrInvalidTracking = errors.New("invalid tracking history")
	ErrInvalidBody     = errors.New("invalid request body")
	ErrBodyTooLarge    = errors.New("request body too large")
)

// MapHTTPStatus maps product domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrInvalidTracking) || errors.Is(err, ErrInvalidBody) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrBodyTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusInternalServerError
}
