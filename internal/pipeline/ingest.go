package pipeline

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Row is one normalized input record.
type Row struct {
	ID        string
	Name      string
	Color     string
	Price     float64
	ImageFile *string
	Year      *int
	// PriceErr records why a non-empty price was replaced with 0.
	PriceErr error
}

// ReadFile opens path and reads its rows.
func ReadFile(path string, limit int) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input %s: %w", path, err)
	}
	defer f.Close()

	rows, err := ReadRows(f, limit)
	if err != nil {
		return nil, fmt.Errorf("read input %s: %w", path, err)
	}
	return rows, nil
}

// ReadRows parses CSV input with a header row. A positive limit keeps only the
// first limit data rows. Ids must be present and unique.
func ReadRows(r io.Reader, limit int) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyInput
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}

	cols, err := resolveColumns(headers)
	if err != nil {
		return nil, err
	}

	var rows []Row
	seen := make(map[string]int)

	for limit <= 0 || len(rows) < limit {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedInput, err)
		}

		line, _ := reader.FieldPos(0)
		row, err := parseRecord(record, cols)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		if first, dup := seen[row.ID]; dup {
			return nil, fmt.Errorf("line %d: %w: %q first seen on line %d", line, ErrDuplicateID, row.ID, first)
		}
		seen[row.ID] = line

		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, ErrEmptyInput
	}
	return rows, nil
}

func parseRecord(record []string, cols columns) (Row, error) {
	field := func(i int) string {
		if i < 0 || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	row := Row{
		ID:    field(cols.id),
		Name:  field(cols.name),
		Color: field(cols.color),
	}
	row.Price, row.PriceErr = parsePrice(field(cols.price))
	if row.ID == "" {
		return row, ErrEmptyID
	}

	if img := field(cols.image); img != "" {
		row.ImageFile = &img
	}

	if raw := field(cols.year); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil || year < 1 || year > 9999 {
			return row, fmt.Errorf("%w: invalid year %q", ErrMalformedInput, raw)
		}
		row.Year = &year
	}

	return row, nil
}
