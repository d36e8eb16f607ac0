// Package colorpick formats colours as the text snippets a stylesheet or
// script expects and inserts them into a document.
package colorpick

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/textops/internal/textops"
)

// DefaultCMYKScale is the CMYK component range used when none is given.
const DefaultCMYKScale = 100

// ErrInvalidColor is returned by Parse for text it cannot read.
var ErrInvalidColor = errors.New("invalid color")

// Color is an sRGB colour with alpha in [0, 1].
type Color struct {
	colorful.Color
	Alpha float64
}

// Opaque wraps c with full alpha.
func Opaque(c colorful.Color) Color {
	return Color{Color: c, Alpha: 1}
}

// Options control hex output.
type Options struct {
	Alpha bool // append the alpha byte
	Upper bool // upper-case digits
}

// Hex formats c as #rrggbb, or #rrggbbaa with Options.Alpha.
func Hex(c Color, opts Options) string {
	s := c.Clamped().Hex()
	if opts.Alpha {
		s += fmt.Sprintf("%02x", channel(c.Alpha))
	}
	if opts.Upper {
		s = strings.ToUpper(s)
	}
	return s
}

// RGBA formats c as rgb(r,g,b), or rgba(r,g,b,a) when it is not opaque.
func RGBA(c Color) string {
	r, g, b := c.Clamped().RGB255()
	if c.Alpha >= 1 {
		return fmt.Sprintf("rgb(%d,%d,%d)", r, g, b)
	}
	a := strconv.FormatFloat(math.Max(c.Alpha, 0), 'g', 3, 64)
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", r, g, b, a)
}

// CMYK formats c as cmyk(c,m,y,k) with components in [0, scale]. Black is
// cmyk(0,0,0,scale).
func CMYK(c Color, scale int) string {
	cc := c.Clamped()
	if cc.R == 0 && cc.G == 0 && cc.B == 0 {
		return fmt.Sprintf("cmyk(0,0,0,%d)", scale)
	}
	cy, ma, ye := 1-cc.R, 1-cc.G, 1-cc.B
	k := math.Min(cy, math.Min(ma, ye))
	s := float64(scale)
	return fmt.Sprintf("cmyk(%d,%d,%d,%d)",
		int(math.Round((cy-k)*s)),
		int(math.Round((ma-k)*s)),
		int(math.Round((ye-k)*s)),
		int(math.Round(k*s)))
}

var digits = regexp.MustCompile(`^[0-9]+$`)

// ParseScale reads a CMYK scale. Anything that is not a plain non-negative
// integer gives DefaultCMYKScale.
func ParseScale(s string) int {
	s = strings.TrimSpace(s)
	if !digits.MatchString(s) {
		return DefaultCMYKScale
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return DefaultCMYKScale
	}
	return n
}

// Parse reads #rgb, #rrggbb or #rrggbbaa.
func Parse(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	switch len(s) {
	case 4, 7:
	case 9:
		base, err := colorful.Hex(s[:7])
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		return Color{Color: base, Alpha: float64(a) / 255}, nil
	default:
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return Opaque(c), nil
}

// Insert puts text at the caret as one atomic edit.
func Insert(doc textops.Document, text string) error {
	if text == "" {
		return nil
	}
	return doc.Transaction("Pick Color", func() error {
		return doc.InsertAtCursor(text)
	})
}

func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
