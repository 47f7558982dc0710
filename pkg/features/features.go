// Package features encodes raw product attributes into the fixed-width
// numeric vectors consumed by the status classifier.
package features

import (
	"errors"
	"fmt"
	"slices"
)

// ErrUnknownCategory is returned when a value was not seen while fitting the vocabulary.
var ErrUnknownCategory = errors.New("unknown category")

// Width is the number of features in a Triple vector.
const Width = 3

// Vocabulary maps categorical values to stable integer codes.
// Codes are the index of the value in the byte-ordered list of distinct values,
// so the same set of inputs always yields the same mapping.
type Vocabulary struct {
	values []string
	codes  map[string]int
}

// Fit builds a vocabulary from every observed value. The empty string is always
// part of the vocabulary so that missing attributes remain encodable.
func Fit(observed []string) *Vocabulary {
	seen := map[string]struct{}{"": {}}
	for _, v := range observed {
		seen[v] = struct{}{}
	}

	values := make([]string, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	slices.Sort(values)

	return FromValues(values)
}

// FromValues restores a vocabulary from its persisted, already ordered values.
func FromValues(values []string) *Vocabulary {
	codes := make(map[string]int, len(values))
	for i, v := range values {
		codes[v] = i
	}
	return &Vocabulary{
		values: slices.Clone(values),
		codes:  codes,
	}
}

// Encode returns the code for value. The vocabulary is never re-fit here.
func (v *Vocabulary) Encode(value string) (int, error) {
	code, ok := v.codes[value]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, value)
	}
	return code, nil
}

// Values returns the ordered vocabulary for persistence.
func (v *Vocabulary) Values() []string {
	return slices.Clone(v.values)
}

// Len reports the vocabulary size.
func (v *Vocabulary) Len() int {
	return len(v.values)
}

// Triple is the encoded feature set of one product.
type Triple struct {
	ColorCode int
	Price     float64
	Year      int
}

// Vector returns the triple in training column order: color, price, year.
func (t Triple) Vector() []float64 {
	return []float64{float64(t.ColorCode), t.Price, float64(t.Year)}
}

// EncodeTriple builds the feature triple for one product.
func (v *Vocabulary) EncodeTriple(color string, price float64, year int) (Triple, error) {
	code, err := v.Encode(color)
	if err != nil {
		return Triple{}, err
	}
	return Triple{ColorCode: code, Price: price, Year: year}, nil
}
