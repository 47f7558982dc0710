package tracking

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// ParseLevel maps an error correction name to a go-qrcode recovery level.
func ParseLevel(name string) (qrcode.RecoveryLevel, error) {
	switch strings.ToLower(name) {
	case "low", "l":
		return qrcode.Low, nil
	case "medium", "m", "":
		return qrcode.Medium, nil
	case "high", "q":
		return qrcode.High, nil
	case "highest", "h":
		return qrcode.Highest, nil
	default:
		return qrcode.Medium, fmt.Errorf("unknown error correction level %q", name)
	}
}

// Renderer draws tracking URLs as PNG QR codes.
type Renderer struct {
	Level      qrcode.RecoveryLevel
	ModuleSize int
	Border     int
}

// NewRenderer builds a renderer from cfg.
func NewRenderer(cfg *Config) (*Renderer, error) {
	level, err := ParseLevel(cfg.ErrorCorrection)
	if err != nil {
		return nil, err
	}
	return &Renderer{
		Level:      level,
		ModuleSize: cfg.ModuleSize,
		Border:     cfg.Border,
	}, nil
}

// Render encodes content and returns the PNG bytes.
func (r *Renderer) Render(content string) ([]byte, error) {
	code, err := qrcode.New(content, r.Level)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	code.DisableBorder = true

	symbol := code.Image(-r.ModuleSize)
	pad := r.Border * r.ModuleSize
	bounds := symbol.Bounds()

	canvas := image.NewGray(image.Rect(0, 0, bounds.Dx()+2*pad, bounds.Dy()+2*pad))
	draw.Draw(canvas, canvas.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	draw.Draw(canvas, bounds.Add(image.Pt(pad, pad)).Sub(bounds.Min), symbol, bounds.Min, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
