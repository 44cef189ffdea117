// Package material describes surface appearance for drawables.
package material

import (
	"fmt"
	"strings"
)

// Shading selects the lighting model used for a surface.
type Shading int

const (
	// Lambert is matte diffuse shading with no specular term.
	Lambert Shading = iota
	// Standard is a metalness/roughness physically based model.
	Standard
	// Points renders unlit round point sprites.
	Points
)

var shadingNames = map[Shading]string{
	Lambert:  "lambert",
	Standard: "standard",
	Points:   "points",
}

func (s Shading) String() string {
	if name, ok := shadingNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Shading(%d)", int(s))
}

// ParseShading converts a scenario name to a Shading.
func ParseShading(name string) (Shading, error) {
	for s, n := range shadingNames {
		if strings.EqualFold(n, name) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown shading model %q", name)
}

// Material is an immutable surface description. Values are not validated;
// out-of-range inputs are handed to the renderer as-is.
type Material struct {
	Color     Color
	Emissive  Color
	Shading   Shading
	Roughness float32 // Standard only
	Metalness float32 // Standard only
	Size      float32 // Points only, in pixels
}

// NewLambert creates a matte material.
func NewLambert(color, emissive Color) Material {
	return Material{Color: color, Emissive: emissive, Shading: Lambert}
}

// NewStandard creates a physically based material with fully rough,
// non-metallic defaults.
func NewStandard(color, emissive Color) Material {
	return Material{
		Color:     color,
		Emissive:  emissive,
		Shading:   Standard,
		Roughness: 1,
		Metalness: 0,
	}
}

// NewPoints creates an unlit point sprite material.
func NewPoints(color Color, size float32) Material {
	return Material{Color: color, Shading: Points, Size: size}
}
