package pipeline

import (
	"fmt"
	"strings"
)

// Column aliases, matched case-insensitively after trimming, in priority order.
var (
	IDAliases        = []string{"productid", "id"}
	NameAliases      = []string{"productname", "productdisplayname", "name"}
	ColorAliases     = []string{"primarycolor", "basecolour", "basecolor", "color", "colour"}
	PriceAliases     = []string{"price", "mrp", "price (inr)"}
	ImageFileAliases = []string{"image_file", "imagefile", "image"}
	YearAliases      = []string{"year"}
)

// ResolveColumn returns the index of the first header matching an alias.
// Earlier aliases win over later ones regardless of header order.
func ResolveColumn(headers []string, aliases []string) (int, error) {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		key := normalizeHeader(h)
		if _, seen := index[key]; !seen {
			index[key] = i
		}
	}

	for _, alias := range aliases {
		if i, ok := index[alias]; ok {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: none of %v", ErrColumnNotFound, aliases)
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
}

// columns holds resolved indexes; optional columns are -1 when absent.
type columns struct {
	id, name, color, price, image, year int
}

func resolveColumns(headers []string) (columns, error) {
	var c columns
	var err error

	if c.id, err = ResolveColumn(headers, IDAliases); err != nil {
		return c, fmt.Errorf("id column: %w", err)
	}
	if c.name, err = ResolveColumn(headers, NameAliases); err != nil {
		return c, fmt.Errorf("name column: %w", err)
	}

	optional := func(aliases []string) int {
		i, _ := ResolveColumn(headers, aliases)
		return i
	}
	c.color = optional(ColorAliases)
	c.price = optional(PriceAliases)
	c.image = optional(ImageFileAliases)
	c.year = optional(YearAliases)

	return c, nil
}
