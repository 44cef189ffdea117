// Package geometry describes primitive shapes and tessellates them into meshes.
package geometry

import (
	"fmt"
	"strings"

	"github.com/Faultbox/spinscene/pkg/math"
)

// Kind identifies a primitive shape.
type Kind int

const (
	KindBox Kind = iota
	KindDodecahedron
	KindCylinder
	KindPoints
)

var kindNames = map[Kind]string{
	KindBox:          "box",
	KindDodecahedron: "dodecahedron",
	KindCylinder:     "cylinder",
	KindPoints:       "points",
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
	return 0, fmt.Errorf("unknown geometry kind %q", name)
}

// Geometry is an immutable shape descriptor. It is comparable and is used
// directly as the renderer's mesh cache key. Dimensions are not validated.
type Geometry struct {
	Kind Kind

	// Box extents
	Width, Height, Depth float32

	// Dodecahedron radius; cylinder uses RadiusTop/RadiusBottom
	Radius float32

	// Cylinder
	RadiusTop      float32
	RadiusBottom   float32
	RadialSegments int

	// Point cloud
	Count int
	Scale math.Vec3
	Seed  uint64
}

// Box describes an axis-aligned box centered on the origin.
func Box(width, height, depth float32) Geometry {
	return Geometry{Kind: KindBox, Width: width, Height: height, Depth: depth}
}

// Dodecahedron describes a regular dodecahedron with the given circumradius.
func Dodecahedron(radius float32) Geometry {
	return Geometry{Kind: KindDodecahedron, Radius: radius}
}

// Cylinder describes a capped cylinder (or frustum) along Y.
func Cylinder(radiusTop, radiusBottom, height float32, radialSegments int) Geometry {
	return Geometry{
		Kind:           KindCylinder,
		RadiusTop:      radiusTop,
		RadiusBottom:   radiusBottom,
		Height:         height,
		RadialSegments: radialSegments,
	}
}

// PointCloud describes count points scattered uniformly in a box of the
// given size. The same seed always yields the same points.
func PointCloud(count int, scale math.Vec3, seed uint64) Geometry {
	return Geometry{Kind: KindPoints, Count: count, Scale: scale, Seed: seed}
}

func (g Geometry) String() string {
	switch g.Kind {
	case KindBox:
		return fmt.Sprintf("box(%gx%gx%g)", g.Width, g.Height, g.Depth)
	case KindDodecahedron:
		return fmt.Sprintf("dodecahedron(r=%g)", g.Radius)
	case KindCylinder:
		return fmt.Sprintf("cylinder(rt=%g rb=%g h=%g seg=%d)", g.RadiusTop, g.RadiusBottom, g.Height, g.RadialSegments)
	case KindPoints:
		return fmt.Sprintf("points(n=%d)", g.Count)
	}
	return g.Kind.String()
}
