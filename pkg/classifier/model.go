// Package classifier implements the binary status classifier: a standard
// scaler followed by a seeded random forest, with an explicit fallback
// result for records that cannot be scored.
package classifier

import (
	"fmt"
	"math"
)

// Status is the label derived from the positive-class probability.
type Status string

// Labels produced by the classifier.
const (
	StatusAuthentic Status = "Authentic"
	StatusSuspect   Status = "Suspect"
)

// Threshold is the minimum probability classified as Authentic.
const Threshold = 0.5

// Outcome distinguishes a scored prediction from a fallback.
type Outcome int

const (
	Predicted Outcome = iota
	Fallback
)

func (o Outcome) String() string {
	if o == Fallback {
		return "fallback"
	}
	return "predicted"
}

// Prediction is the result of scoring one feature vector.
// A Fallback always reports Proba 0 and carries the reason it was not scored.
type Prediction struct {
	Outcome Outcome
	Proba   float64
	Reason  string
}

// NewFallback builds the fail-soft prediction for a record that could not be scored.
func NewFallback(reason string) Prediction {
	return Prediction{Outcome: Fallback, Reason: reason}
}

// IsFallback reports whether the prediction took the fallback path.
func (p Prediction) IsFallback() bool {
	return p.Outcome == Fallback
}

// Status maps the probability onto a label.
func (p Prediction) Status() Status {
	if p.Proba >= Threshold {
		return StatusAuthentic
	}
	return StatusSuspect
}

// Model couples the fitted scaler with the forest trained on its output.
type Model struct {
	Scaler *Scaler `json:"scaler"`
	Forest *Forest `json:"forest"`
}

// Train fits the scaler on x, then the forest on the scaled matrix.
func Train(x [][]float64, y []int, opts Options) (*Model, error) {
	if err := validate(x, y); err != nil {
		return nil, err
	}

	scaler, err := FitScaler(x)
	if err != nil {
		return nil, fmt.Errorf("fit scaler: %w", err)
	}

	scaled, err := scaler.TransformAll(x)
	if err != nil {
		return nil, fmt.Errorf("scale training set: %w", err)
	}

	forest, err := TrainForest(scaled, y, opts)
	if err != nil {
		return nil, fmt.Errorf("train forest: %w", err)
	}

	return &Model{Scaler: scaler, Forest: forest}, nil
}

// Predict scores one raw feature vector with the training-time scaler.
// Transform failures become a Fallback instead of an error.
func (m *Model) Predict(x []float64) Prediction {
	if m == nil || m.Scaler == nil || m.Forest == nil {
		return NewFallback("model not loaded")
	}

	scaled, err := m.Scaler.Transform(x)
	if err != nil {
		return NewFallback(err.Error())
	}

	p := m.Forest.Proba(scaled)
	if math.IsNaN(p) {
		return NewFallback("forest returned NaN")
	}
	return Prediction{Outcome: Predicted, Proba: p}
}
