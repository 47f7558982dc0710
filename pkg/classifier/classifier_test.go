package classifier_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/pkg/classifier"
)

// catalogue returns a separable training set: price above 500 is positive.
func catalogue() ([][]float64, []int) {
	var x [][]float64
	var y []int
	for i := range 40 {
		price := float64(100 + i*25)
		x = append(x, []float64{float64(i % 4), price, 2025})
		if price > 587.5 {
			y = append(y, 1)
		} else {
			y = append(y, 0)
		}
	}
	return x, y
}

func TestFitScaler(t *testing.T) {
	x := [][]float64{{1, 10, 2025}, {3, 30, 2025}}

	s, err := classifier.FitScaler(x)
	require.NoError(t, err)

	assert.Equal(t, []float64{2, 20, 2025}, s.Mean)
	assert.Equal(t, []float64{1, 10, 1}, s.Scale, "constant column keeps unit scale")

	out, err := s.Transform([]float64{3, 10, 2025})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, -1, 0}, out)
}

func TestScalerTransformErrors(t *testing.T) {
	s, err := classifier.FitScaler([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)

	_, err = s.Transform([]float64{1})
	assert.ErrorIs(t, err, classifier.ErrDimensionMismatch)

	_, err = s.Transform([]float64{math.NaN(), 1})
	assert.ErrorIs(t, err, classifier.ErrNonFinite)
}

func TestTrainRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		x    [][]float64
		y    []int
		want error
	}{
		{"empty", nil, nil, classifier.ErrEmptyTrainingSet},
		{"label count", [][]float64{{1}, {2}}, []int{1}, classifier.ErrDimensionMismatch},
		{"ragged", [][]float64{{1, 2}, {2}}, []int{0, 1}, classifier.ErrDimensionMismatch},
		{"single class", [][]float64{{1}, {2}, {3}}, []int{0, 0, 0}, classifier.ErrDegenerateLabels},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := classifier.Train(tt.x, tt.y, classifier.DefaultOptions())
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestTrainIsReproducible(t *testing.T) {
	x, y := catalogue()

	a, err := classifier.Train(x, y, classifier.DefaultOptions())
	require.NoError(t, err)
	b, err := classifier.Train(x, y, classifier.DefaultOptions())
	require.NoError(t, err)

	ja, err := json.Marshal(a)
	require.NoError(t, err)
	jb, err := json.Marshal(b)
	require.NoError(t, err)
	assert.JSONEq(t, string(ja), string(jb))

	for _, row := range x {
		assert.Equal(t, a.Predict(row), b.Predict(row))
	}
}

func TestPredictSeparatesTrainingClasses(t *testing.T) {
	x, y := catalogue()

	m, err := classifier.Train(x, y, classifier.DefaultOptions())
	require.NoError(t, err)

	low := m.Predict([]float64{0, 100, 2025})
	high := m.Predict([]float64{0, 1075, 2025})

	assert.Equal(t, classifier.Predicted, low.Outcome)
	assert.Equal(t, classifier.StatusSuspect, low.Status())
	assert.Equal(t, classifier.StatusAuthentic, high.Status())
	assert.GreaterOrEqual(t, high.Proba, 0.0)
	assert.LessOrEqual(t, high.Proba, 1.0)
}

func TestPredictFallback(t *testing.T) {
	x, y := catalogue()
	m, err := classifier.Train(x, y, classifier.DefaultOptions())
	require.NoError(t, err)

	p := m.Predict([]float64{0, math.Inf(1), 2025})
	assert.True(t, p.IsFallback())
	assert.Zero(t, p.Proba)
	assert.NotEmpty(t, p.Reason)
	assert.Equal(t, classifier.StatusSuspect, p.Status())

	var empty *classifier.Model
	assert.True(t, empty.Predict([]float64{1, 2, 3}).IsFallback())
}

func TestModelSurvivesJSON(t *testing.T) {
	x, y := catalogue()
	opts := classifier.DefaultOptions()
	opts.Trees = 10

	m, err := classifier.Train(x, y, opts)
	require.NoError(t, err)

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var restored classifier.Model
	require.NoError(t, json.Unmarshal(data, &restored))

	for _, row := range x {
		assert.Equal(t, m.Predict(row), restored.Predict(row))
	}
}

func TestMaxDepthLimitsTrees(t *testing.T) {
	x, y := catalogue()
	opts := classifier.DefaultOptions()
	opts.Trees = 5
	opts.MaxDepth = 1

	m, err := classifier.Train(x, y, opts)
	require.NoError(t, err)

	for _, tree := range m.Forest.Trees {
		assert.LessOrEqual(t, len(tree.Nodes), 3)
	}
}
