package mach

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// Palette.
var (
	Red         = mustHex("#C74440")
	LightRed    = mustHex("#f2635e")
	Blue        = mustHex("#2C70B3")
	LightBlue   = mustHex("#5c9ad1")
	Green       = mustHex("#378C47")
	LightGreen  = mustHex("#5fa95a")
	Yellow      = mustHex("#E8C547")
	LightYellow = mustHex("#f2d966")
	Orange      = mustHex("#E88B2C")
	LightOrange = mustHex("#f2a94d")
	Purple      = mustHex("#A05EB5")
	LightPurple = mustHex("#b78dc9")
	Pink        = mustHex("#D97BAC")
	LightPink   = mustHex("#e2a2c1")
)

// namedColors are the names ParseColor accepts besides the CSS-style forms.
var namedColors = map[string]Color{
	"white":       ColorWhite,
	"black":       ColorBlack,
	"transparent": {},
	"red":         Red,
	"lightred":    LightRed,
	"blue":        Blue,
	"lightblue":   LightBlue,
	"green":       Green,
	"lightgreen":  LightGreen,
	"yellow":      Yellow,
	"lightyellow": LightYellow,
	"orange":      Orange,
	"lightorange": LightOrange,
	"purple":      Purple,
	"lightpurple": LightPurple,
	"pink":        Pink,
	"lightpink":   LightPink,
}

func mustHex(s string) Color {
	c, err := parseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseColor parses a color written as #rgb, #rrggbb, #rrggbbaa,
// rgb(r, g, b), rgba(r, g, b, a), hsl(h, s%, l%) or a palette name.
// rgb components are 0-255 and alpha is 0-1.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)
	if c, ok := namedColors[lower]; ok {
		return c, nil
	}

	switch {
	case strings.HasPrefix(s, "#"):
		return parseHex(s)
	case strings.HasPrefix(lower, "rgba(") || strings.HasPrefix(lower, "rgb("):
		args, err := colorArgs(lower)
		if err != nil {
			return Color{}, fmt.Errorf("parse color %q: %w", s, err)
		}
		if len(args) != 3 && len(args) != 4 {
			return Color{}, fmt.Errorf("parse color %q: want 3 or 4 components, got %d", s, len(args))
		}
		c := Color{R: args[0] / 255, G: args[1] / 255, B: args[2] / 255, A: 1}
		if len(args) == 4 {
			c.A = args[3]
		}
		return c, nil
	case strings.HasPrefix(lower, "hsla(") || strings.HasPrefix(lower, "hsl("):
		args, err := colorArgs(lower)
		if err != nil {
			return Color{}, fmt.Errorf("parse color %q: %w", s, err)
		}
		if len(args) != 3 && len(args) != 4 {
			return Color{}, fmt.Errorf("parse color %q: want 3 or 4 components, got %d", s, len(args))
		}
		hc := colorful.Hsl(args[0], args[1]/100, args[2]/100).Clamped()
		c := Color{R: hc.R, G: hc.G, B: hc.B, A: 1}
		if len(args) == 4 {
			c.A = args[3]
		}
		return c, nil
	}
	return Color{}, fmt.Errorf("parse color %q: unsupported format", s)
}

func parseHex(s string) (Color, error) {
	alpha := 1.0
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("parse color %q: %w", s, err)
		}
		alpha = float64(a) / 255
		s = s[:7]
	}
	hc, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parse color: %w", err)
	}
	return Color{R: hc.R, G: hc.G, B: hc.B, A: alpha}, nil
}

// colorArgs parses the comma separated numbers inside "name(...)". Percent
// signs are dropped.
func colorArgs(s string) ([]float64, error) {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return nil, fmt.Errorf("malformed")
	}
	parts := strings.Split(s[open+1:len(s)-1], ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSuffix(strings.TrimSpace(p), "%")
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Opacity returns c with its alpha set to a.
func Opacity(c Color, a float64) Color {
	return c.WithAlpha(clamp01(a))
}

// Hex formats c as #rrggbb, or #rrggbbaa when it is not opaque.
func (c Color) Hex() string {
	s := colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex()
	if c.A >= 1 {
		return s
	}
	return fmt.Sprintf("%s%02x", s, uint8(clamp01(c.A)*255+0.5))
}

// Blend mixes c toward other by t in RGB space, alpha included.
func (c Color) Blend(other Color, t float64) Color {
	b := colorful.Color{R: c.R, G: c.G, B: c.B}.BlendRgb(colorful.Color{R: other.R, G: other.G, B: other.B}, t)
	return Color{R: b.R, G: b.G, B: b.B, A: Lerp(c.A, other.A, t)}
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return c.Hex()
}

// UnmarshalYAML accepts any string ParseColor understands.
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("color: %w", err)
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalYAML writes the color in hex form.
func (c Color) MarshalYAML() (any, error) {
	return c.Hex(), nil
}
