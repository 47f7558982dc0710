package features_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/pkg/features"
)

func TestFitOrdersValuesAndIncludesEmpty(t *testing.T) {
	vocab := features.Fit([]string{"Red", "Blue", "Red", "Navy Blue"})

	assert.Equal(t, []string{"", "Blue", "Navy Blue", "Red"}, vocab.Values())
	assert.Equal(t, 4, vocab.Len())
}

func TestFitIsOrderIndependent(t *testing.T) {
	a := features.Fit([]string{"White", "Black", "Green"})
	b := features.Fit([]string{"Green", "White", "Black", "Black"})

	assert.Equal(t, a.Values(), b.Values())
}

func TestEncode(t *testing.T) {
	vocab := features.Fit([]string{"Red", "Blue"})

	tests := []struct {
		value string
		want  int
	}{
		{"", 0},
		{"Blue", 1},
		{"Red", 2},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := vocab.Encode(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeUnknownCategory(t *testing.T) {
	vocab := features.Fit([]string{"Red"})

	_, err := vocab.Encode("Magenta")
	require.ErrorIs(t, err, features.ErrUnknownCategory)
	assert.Equal(t, 2, vocab.Len(), "encode must not re-fit")
}

func TestFromValuesRoundTrip(t *testing.T) {
	vocab := features.Fit([]string{"Olive", "Beige"})
	restored := features.FromValues(vocab.Values())

	for _, v := range vocab.Values() {
		want, _ := vocab.Encode(v)
		got, err := restored.Encode(v)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestEncodeTriple(t *testing.T) {
	vocab := features.Fit([]string{"Blue"})

	triple, err := vocab.EncodeTriple("Blue", 1299.5, 2025)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1299.5, 2025}, triple.Vector())

	_, err = vocab.EncodeTriple("Pink", 10, 2025)
	assert.ErrorIs(t, err, features.ErrUnknownCategory)
}
