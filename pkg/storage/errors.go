package storage

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound = errors.New("blob not found")
	ErrEmptyKey = errors.New("storage key must not be empty")
	// ErrInvalidKey covers absolute keys and keys with "." or ".." segments.
	ErrInvalidKey = errors.New("storage key contains invalid path segment")
	// ErrUnknownProvider is returned for a Config.Provider other than
	// ProviderFilesystem or ProviderAzure.
	ErrUnknownProvider = errors.New("unknown storage provider")
)

// MapHTTPStatus maps storage errors to HTTP status codes for the static module.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrEmptyKey), errors.Is(err, ErrInvalidKey):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
