// Package formatting converts byte sizes between human-readable strings and counts.
package formatting

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

var units = []string{"B", "KB", "MB", "GB", "TB", "PB", "EB"}

var kibi = decimal.NewFromInt(1024)

var sizePattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*([A-Za-z]*)$`)

// ParseBytes parses a size such as "1MB", "1.5 kb" or "4096" into bytes
// using base-1024 units. A bare number is a byte count.
func ParseBytes(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty byte size")
	}

	m := sizePattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid byte size: %q", s)
	}

	value, err := decimal.NewFromString(m[1])
	if err != nil {
		return 0, fmt.Errorf("invalid byte size number %q: %w", m[1], err)
	}

	unit := strings.ToUpper(m[2])
	if unit == "" {
		unit = "B"
	}
	exp := slices.Index(units, unit)
	if exp < 0 {
		return 0, fmt.Errorf("unknown byte size unit: %q", m[2])
	}

	total := value.Mul(kibi.Pow(decimal.NewFromInt(int64(exp))))
	if !total.LessThanOrEqual(decimal.NewFromInt(1<<62)) {
		return 0, fmt.Errorf("byte size too large: %q", s)
	}
	return total.IntPart(), nil
}

// FormatBytes renders n with the largest unit that keeps the value at least 1,
// rounded to precision decimal places.
func FormatBytes(n int64, precision int) string {
	precision = max(precision, 0)

	value := decimal.NewFromInt(n)
	exp := 0
	for exp < len(units)-1 && value.Abs().GreaterThanOrEqual(kibi) {
		value = value.Div(kibi)
		exp++
	}

	return value.StringFixed(int32(precision)) + " " + units[exp]
}
