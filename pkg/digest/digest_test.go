package digest_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/pkg/digest"
)

func TestKeccak256HexEmpty(t *testing.T) {
	assert.Equal(t,
		"0xc5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470",
		digest.Keccak256Hex(nil),
	)
}

func TestCanonical(t *testing.T) {
	tests := []struct {
		name   string
		fields digest.Fields
		want   string
	}{
		{
			name:   "integral price keeps fraction",
			fields: digest.Fields{ID: "P1", Name: "Shirt", Color: "Red", Price: 1299, Year: 2025},
			want:   `{"color":"Red","id":"P1","name":"Shirt","price":1299.0,"year":2025}`,
		},
		{
			name:   "fractional price",
			fields: digest.Fields{ID: "P2", Name: "Cap", Color: "", Price: 19.99, Year: 2024},
			want:   `{"color":"","id":"P2","name":"Cap","price":19.99,"year":2024}`,
		},
		{
			name:   "zero price",
			fields: digest.Fields{ID: "P3", Name: "Sock", Color: "Blue", Price: 0, Year: 2025},
			want:   `{"color":"Blue","id":"P3","name":"Sock","price":0.0,"year":2025}`,
		},
		{
			name:   "non-ascii escaped",
			fields: digest.Fields{ID: "P1", Name: "Café ☕ 😀", Color: "Red", Price: 1299, Year: 2025},
			want:   `{"color":"Red","id":"P1","name":"Caf\u00e9 \u2615 \ud83d\ude00","price":1299.0,"year":2025}`,
		},
		{
			name:   "quotes and control characters",
			fields: digest.Fields{ID: `a"b`, Name: "x\\y\n\x01", Color: "<b>&", Price: 1e16, Year: 1},
			want:   `{"color":"<b>&","id":"a\"b","name":"x\\y\n\u0001","price":1e+16,"year":1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, string(digest.Canonical(tt.fields)))
		})
	}
}

func TestComputeDeterministic(t *testing.T) {
	f := digest.Fields{ID: "P1", Name: "Shirt", Color: "Red", Price: 1299, Year: 2025}

	a := digest.Compute(f)
	b := digest.Compute(f)

	assert.Equal(t, a, b)
	assert.True(t, strings.HasPrefix(a.MetaHash, "0x"))
	assert.Len(t, a.MetaHash, 66)
	assert.Equal(t, digest.Keccak256Hex([]byte("P1")), a.PIDHash)
	assert.Equal(t, a.PIDHash[:10], a.ShortHash)
}

func TestComputeSensitiveToEveryField(t *testing.T) {
	base := digest.Fields{ID: "P1", Name: "Shirt", Color: "Red", Price: 1299, Year: 2025}
	want := digest.Compute(base).MetaHash

	variants := map[string]digest.Fields{
		"id":    {ID: "P2", Name: "Shirt", Color: "Red", Price: 1299, Year: 2025},
		"name":  {ID: "P1", Name: "Shirts", Color: "Red", Price: 1299, Year: 2025},
		"color": {ID: "P1", Name: "Shirt", Color: "Blue", Price: 1299, Year: 2025},
		"price": {ID: "P1", Name: "Shirt", Color: "Red", Price: 1300, Year: 2025},
		"year":  {ID: "P1", Name: "Shirt", Color: "Red", Price: 1299, Year: 2024},
	}

	for field, f := range variants {
		t.Run(field, func(t *testing.T) {
			assert.NotEqual(t, want, digest.Compute(f).MetaHash)
		})
	}
}

func TestVerify(t *testing.T) {
	f := digest.Fields{ID: "P1", Name: "Shirt", Color: "Red", Price: 1299, Year: 2025}
	d := digest.Compute(f)

	require.True(t, digest.Verify(f, d.MetaHash))
	assert.True(t, digest.Verify(f, strings.ToUpper(d.MetaHash)))

	f.Price = 1
	assert.False(t, digest.Verify(f, d.MetaHash))
}

func TestShort(t *testing.T) {
	assert.Equal(t, "0xabc", digest.Short("0xabc"))
	assert.Equal(t, "0x12345678", digest.Short("0x1234567890abcdef"))
}
