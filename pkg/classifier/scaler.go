package classifier

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Scaler standardizes each feature to zero mean and unit variance.
// Features with zero variance keep a scale of 1 so they pass through centered.
type Scaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// FitScaler computes per-column mean and population standard deviation.
func FitScaler(x [][]float64) (*Scaler, error) {
	if len(x) == 0 {
		return nil, ErrEmptyTrainingSet
	}

	width := len(x[0])
	s := &Scaler{
		Mean:  make([]float64, width),
		Scale: make([]float64, width),
	}

	column := make([]float64, len(x))
	for j := range width {
		for i, row := range x {
			if len(row) != width {
				return nil, fmt.Errorf("%w: row %d has %d features, want %d", ErrDimensionMismatch, i, len(row), width)
			}
			column[i] = row[j]
		}

		mean, std := stat.PopMeanStdDev(column, nil)
		if std == 0 || math.IsNaN(std) {
			std = 1
		}
		s.Mean[j] = mean
		s.Scale[j] = std
	}

	return s, nil
}

// Transform returns a standardized copy of v.
func (s *Scaler) Transform(v []float64) ([]float64, error) {
	if len(v) != len(s.Mean) {
		return nil, fmt.Errorf("%w: got %d features, want %d", ErrDimensionMismatch, len(v), len(s.Mean))
	}

	out := make([]float64, len(v))
	for j, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, fmt.Errorf("%w: feature %d", ErrNonFinite, j)
		}
		out[j] = (x - s.Mean[j]) / s.Scale[j]
	}
	return out, nil
}

// TransformAll standardizes every row of x.
func (s *Scaler) TransformAll(x [][]float64) ([][]float64, error) {
	out := make([][]float64, len(x))
	for i, row := range x {
		scaled, err := s.Transform(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out[i] = scaled
	}
	return out, nil
}
