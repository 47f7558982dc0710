package pagination

import (
	"net/url"
	"strconv"
	"strings"
)

// PageRequest represents a client request for a page of data with an optional search term.
type PageRequest struct {
	Page   int     `json:"page"`
	Limit  int     `json:"limit"`
	Search *string `json:"search,omitempty"`
}

// Normalize adjusts the request to ensure valid pagination values based on the config.
func (r *PageRequest) Normalize(cfg Config) {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 {
		r.Limit = cfg.DefaultPageSize
	}
	if r.Limit > cfg.MaxPageSize {
		r.Limit = cfg.MaxPageSize
	}
}

// Offset calculates the number of records to skip based on page and limit.
func (r *PageRequest) Offset() int {
	return (r.Page - 1) * r.Limit
}

// PageRequestFromQuery parses pagination parameters from URL query values.
// Supported parameters: page, limit, search. Unparseable numbers fall back to defaults.
func PageRequestFromQuery(values url.Values, cfg Config) PageRequest {
	page, _ := strconv.Atoi(values.Get("page"))
	limit, _ := strconv.Atoi(values.Get("limit"))

	var search *string
	if s := strings.TrimSpace(values.Get("search")); s != "" {
		search = &s
	}

	req := PageRequest{
		Page:   page,
		Limit:  limit,
		Search: search,
	}

	req.Normalize(cfg)
	return req
}

// PageResult holds a page of data along with pagination metadata.
type PageResult[T any] struct {
	Data       []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"total_pages"`
}

// NewPageResult creates a PageResult with calculated total pages.
// An empty result has zero pages.
func NewPageResult[T any](data []T, total, page, limit int) PageResult[T] {
	totalPages := 0
	if limit > 0 {
		totalPages = total / limit
		if total%limit != 0 {
			totalPages++
		}
	}

	if data == nil {
		data = []T{}
	}

	return PageResult[T]{
		Data:       data,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
}

// Paginate slices an in-memory result set according to req.
// Pages past the end yield empty data with the full total.
func Paginate[T any](items []T, req PageRequest) PageResult[T] {
	total := len(items)
	start := min(req.Offset(), total)
	end := min(start+req.Limit, total)

	page := make([]T, end-start)
	copy(page, items[start:end])

	return NewPageResult(page, total, req.Page, req.Limit)
}
