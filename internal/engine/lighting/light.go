// Package lighting describes light sources and packs them for GPU upload.
package lighting

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"

	"github.com/Faultbox/spinscene/internal/engine/material"
	"github.com/Faultbox/spinscene/pkg/math"
)

// Kind is the type of light source.
type Kind int32

// Values match the shader's light type constants.
const (
	Directional Kind = iota
	Point
	Spot
)

var kindNames = map[Kind]string{
	Directional: "directional",
	Point:       "point",
	Spot:        "spot",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind converts a scenario name to a Kind.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if strings.EqualFold(n, name) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown light kind %q", name)
}

// Light is a light source. It is set up once and read every frame.
type Light struct {
	Name      string
	Kind      Kind
	Color     material.Color
	Intensity float32
	Position  math.Vec3
	Target    math.Vec3 // Directional and spot lights aim here

	// Point and spot falloff. Distance 0 means no cutoff.
	Distance float32
	Decay    float32

	// Spot cone, radians. Penumbra is the fraction of the cone that fades.
	Angle    float32
	Penumbra float32
}

// NewDirectional creates a light shining from position toward the origin.
func NewDirectional(color material.Color, intensity float32) *Light {
	return &Light{
		Kind:      Directional,
		Color:     color,
		Intensity: intensity,
		Position:  math.Up,
	}
}

// NewPoint creates an omnidirectional light.
func NewPoint(color material.Color, intensity float32) *Light {
	return &Light{
		Kind:      Point,
		Color:     color,
		Intensity: intensity,
		Decay:     2,
	}
}

// NewSpot creates a cone light aimed at the origin.
func NewSpot(color material.Color, intensity float32) *Light {
	return &Light{
		Kind:      Spot,
		Color:     color,
		Intensity: intensity,
		Position:  math.Up,
		Decay:     2,
		Angle:     math32.Pi / 3,
	}
}

// NodeName identifies the light in the scene graph.
func (l *Light) NodeName() string {
	if l.Name != "" {
		return l.Name
	}
	return l.Kind.String() + " light"
}

// Direction returns the unit vector the light travels along.
// It is zero for point lights.
func (l *Light) Direction() math.Vec3 {
	if l.Kind == Point {
		return math.Vec3{}
	}
	return l.Target.Sub(l.Position).Normalize()
}

// ConeCos returns the cosines of the outer and inner spot cone angles.
func (l *Light) ConeCos() (outer, inner float32) {
	outer = math32.Cos(l.Angle)
	inner = math32.Cos(l.Angle * (1 - l.Penumbra))
	return outer, inner
}
