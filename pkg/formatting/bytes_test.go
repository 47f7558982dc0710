package formatting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vinayaksharma17/Blockchain-Supplychain-Management/pkg/formatting"
)

func TestParseBytes(t *testing.T) {
	tests := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{"1024", 1024, false},
		{"512B", 512, false},
		{"1KB", 1024, false},
		{"1.5kb", 1536, false},
		{"1 MB", 1 << 20, false},
		{"  2GB ", 2 << 30, false},
		{"0", 0, false},
		{"", 0, true},
		{"MB", 0, true},
		{"-5MB", 0, true},
		{"5XB", 0, true},
		{"9999999EB", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := formatting.ParseBytes(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "0 B", formatting.FormatBytes(0, 0))
	assert.Equal(t, "500 B", formatting.FormatBytes(500, 0))
	assert.Equal(t, "1 MB", formatting.FormatBytes(1<<20, 0))
	assert.Equal(t, "1.5 MB", formatting.FormatBytes(1536<<10, 1))
	assert.Equal(t, "1 KB", formatting.FormatBytes(1024, -1))
}

func TestFormatThenParse(t *testing.T) {
	for _, n := range []int64{1 << 10, 50 << 20, 1 << 30} {
		parsed, err := formatting.ParseBytes(formatting.FormatBytes(n, 0))
		require.NoError(t, err)
		assert.Equal(t, n, parsed)
	}
}
