package pipeline

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

// MaxPrice is the largest price accepted from input. Larger values are
// treated as unparseable.
const MaxPrice = 1e12

var (
	nonPrice = regexp.MustCompile(`[^0-9.]`)
	maxPrice = decimal.NewFromFloat(MaxPrice)
)

// ParsePrice reads currency-formatted text such as "₹1,299.00" or "$45".
// Every character other than digits and '.' is dropped; anything that still
// fails to parse, or exceeds MaxPrice, is 0.
func ParsePrice(raw string) float64 {
	f, _ := parsePrice(raw)
	return f
}

// parsePrice is ParsePrice with the reason a non-empty value became 0.
func parsePrice(raw string) (float64, error) {
	cleaned := nonPrice.ReplaceAllString(raw, "")
	if cleaned == "" {
		return 0, nil
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPrice, raw)
	}
	if d.GreaterThan(maxPrice) {
		return 0, fmt.Errorf("%w: %q exceeds %s", ErrInvalidPrice, truncate(raw, 32), maxPrice.String())
	}

	f, _ := d.Float64()
	return f, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
