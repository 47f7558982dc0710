// Package digest computes the content hashes stamped on every product record.
//
// The canonical form is JSON with sorted keys, "," and ":" separators, no
// whitespace, ASCII-only string escaping and floats that always carry a
// fractional part. It is written by hand rather than through encoding/json
// because the byte layout must not drift with encoder defaults.
package digest

import (
	"encoding/hex"
	"math"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/crypto/sha3"
)

// Prefix identifies the digest scheme in every hex hash.
const Prefix = "0x"

// ShortLength is the number of characters of PIDHash kept for display.
const ShortLength = 10

// Fields is the canonical subset of a product that the meta hash covers.
type Fields struct {
	ID    string
	Name  string
	Color string
	Price float64
	Year  int
}

// Digests holds the hashes derived from one record.
type Digests struct {
	MetaHash  string
	PIDHash   string
	ShortHash string
}

// Compute derives all hashes for f.
func Compute(f Fields) Digests {
	pid := Keccak256Hex([]byte(f.ID))
	return Digests{
		MetaHash:  Keccak256Hex(Canonical(f)),
		PIDHash:   pid,
		ShortHash: Short(pid),
	}
}

// Verify reports whether metaHash matches the canonical hash of f.
func Verify(f Fields, metaHash string) bool {
	return strings.EqualFold(Keccak256Hex(Canonical(f)), metaHash)
}

// Short truncates a hash for display.
func Short(hash string) string {
	if len(hash) <= ShortLength {
		return hash
	}
	return hash[:ShortLength]
}

// Keccak256Hex returns the prefixed lowercase hex of the legacy Keccak-256 digest of b.
func Keccak256Hex(b []byte) string {
	h := sha3.NewLegacyKeccak256()
	h.Write(b)
	return Prefix + hex.EncodeToString(h.Sum(nil))
}

// Canonical serializes f with keys in lexicographic order.
func Canonical(f Fields) []byte {
	var b strings.Builder
	b.WriteString(`{"color":`)
	writeString(&b, f.Color)
	b.WriteString(`,"id":`)
	writeString(&b, f.ID)
	b.WriteString(`,"name":`)
	writeString(&b, f.Name)
	b.WriteString(`,"price":`)
	b.WriteString(formatFloat(f.Price))
	b.WriteString(`,"year":`)
	b.WriteString(strconv.Itoa(f.Year))
	b.WriteByte('}')
	return []byte(b.String())
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}

	// strconv already pads the exponent to two digits.
	if abs := math.Abs(f); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

func writeString(b *strings.Builder, s string) {
	b.WriteByte('"')
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size

		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			switch {
			case r < 0x20 || (r >= 0x7f && r < 0x10000):
				writeEscape(b, r)
			case r >= 0x10000:
				r1, r2 := utf16.EncodeRune(r)
				writeEscape(b, r1)
				writeEscape(b, r2)
			default:
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
}

func writeEscape(b *strings.Builder, r rune) {
	const hexDigits = "0123456789abcdef"
	b.WriteString(`\u`)
	b.WriteByte(hexDigits[(r>>12)&0xf])
	b.WriteByte(hexDigits[(r>>8)&0xf])
	b.WriteByte(hexDigits[(r>>4)&0xf])
	b.WriteByte(hexDigits[r&0xf])
}
