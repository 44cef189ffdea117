package material

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// Color is an sRGB color with components in [0, 1].
type Color struct {
	R, G, B float32
}

// White and Black are used as scene defaults.
var (
	White = Color{1, 1, 1}
	Black = Color{0, 0, 0}
)

// Hex builds a color from a packed 0xRRGGBB value.
func Hex(v uint32) Color {
	return Color{
		R: channel(uint8(v >> 16)),
		G: channel(uint8(v >> 8)),
		B: channel(uint8(v)),
	}
}

// ParseColor accepts "#RRGGBB", "#RGB", "0xRRGGBB" or a CSS color name.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "#"):
		c, err := colorful.Hex(s)
		if err != nil {
			return Color{}, fmt.Errorf("parse color %q: %w", s, err)
		}
		return fromColorful(c), nil
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		v, err := strconv.ParseUint(s[2:], 16, 32)
		if err != nil || len(s) != 8 {
			return Color{}, fmt.Errorf("parse color %q: want 0xRRGGBB", s)
		}
		return Hex(uint32(v)), nil
	}

	rgba, ok := colornames.Map[strings.ToLower(s)]
	if !ok {
		return Color{}, fmt.Errorf("parse color %q: unknown color name", s)
	}
	return Color{R: channel(rgba.R), G: channel(rgba.G), B: channel(rgba.B)}, nil
}

// MustParseColor is ParseColor for literals known to be valid.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Linear converts to linear RGB for shading.
func (c Color) Linear() [3]float32 {
	r, g, b := c.colorful().LinearRgb()
	return [3]float32{float32(r), float32(g), float32(b)}
}

// Array returns the raw sRGB components.
func (c Color) Array() [3]float32 {
	return [3]float32{c.R, c.G, c.B}
}

// String formats the color as #rrggbb.
func (c Color) String() string {
	return c.colorful().Clamped().Hex()
}

// UnmarshalYAML accepts either a color string or a YAML integer (0x9cdba6).
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	if value.Tag == "!!int" {
		var v uint32
		if err := value.Decode(&v); err != nil {
			return fmt.Errorf("line %d: color: %w", value.Line, err)
		}
		*c = Hex(v)
		return nil
	}

	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("line %d: color: %w", value.Line, err)
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*c = parsed
	return nil
}

// MarshalYAML writes the color as a hex string.
func (c Color) MarshalYAML() (any, error) {
	return c.String(), nil
}

// channel matches colorful's byte scaling so hex and packed inputs agree.
func channel(v uint8) float32 {
	return float32(float64(v) * (1.0 / 255.0))
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B)}
}

func fromColorful(c colorful.Color) Color {
	return Color{R: float32(c.R), G: float32(c.G), B: float32(c.B)}
}
