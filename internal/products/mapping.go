package products

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/cases"
)

// Filters narrows the product list. Nil fields are ignored; both match
// exactly, ignoring case.
type Filters struct {
	Color  *string `json:"color,omitempty"`
	Status *string `json:"status,omitempty"`
}

// FiltersFromQuery parses the color and status query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters
	if c := strings.TrimSpace(values.Get("color")); c != "" {
		f.Color = &c
	}
	if s := strings.TrimSpace(values.Get("status")); s != "" {
		f.Status = &s
	}
	return f
}

// matcher applies a search term and filters with Unicode case folding.
type matcher struct {
	fold   cases.Caser
	search string
	color  *string
	status *string
}

func newMatcher(search *string, f Filters) *matcher {
	m := &matcher{fold: cases.Fold()}
	if search != nil {
		m.search = m.fold.String(*search)
	}
	if f.Color != nil {
		c := m.fold.String(*f.Color)
		m.color = &c
	}
	if f.Status != nil {
		s := m.fold.String(*f.Status)
		m.status = &s
	}
	return m
}

// match reports whether p passes the search term (substring of id or name)
// and every filter.
func (m *matcher) match(p *Product) bool {
	if m.search != "" &&
		!strings.Contains(m.fold.String(p.ID), m.search) &&
		!strings.Contains(m.fold.String(p.Name), m.search) {
		return false
	}
	if m.color != nil && m.fold.String(p.Color) != *m.color {
		return false
	}
	if m.status != nil && m.fold.String(string(p.PredictedStatus)) != *m.status {
		return false
	}
	return true
}

// validateHistory requires every entry to be a JSON object.
func validateHistory(history []TrackingEvent) error {
	for i, e := range history {
		if !e.Object() {
			return fmt.Errorf("%w: entry %d is not an object", ErrInvalidTracking, i)
		}
	}
	return nil
}
