package pipeline

import "errors"

// Input and training errors. All of them abort a run before anything is written.
var (
	ErrColumnNotFound = errors.New("required column not found")
	ErrMalformedInput = errors.New("malformed input")
	ErrEmptyInput     = errors.New("input has no data rows")
	ErrEmptyID        = errors.New("empty product id")
	ErrDuplicateID    = errors.New("duplicate product id")
	ErrPriorStore     = errors.New("prior record store unreadable")
	ErrNoRecords      = errors.New("record store is empty")
)

// ErrInvalidPrice marks a price that defaulted to 0. It is per record and
// never aborts a run.
var ErrInvalidPrice = errors.New("invalid price")
