package scene

import (
	"github.com/Faultbox/spinscene/internal/engine/geometry"
	"github.com/Faultbox/spinscene/internal/engine/material"
	"github.com/Faultbox/spinscene/pkg/math"
)

// Transform is a node's local placement. Rotation is an XYZ Euler triple
// in radians and is never wrapped.
type Transform struct {
	Position math.Vec3
	Rotation math.Vec3
	Scale    math.Vec3
}

// Matrix returns the local model matrix.
func (t Transform) Matrix() math.Mat4 {
	return math.Compose(t.Position, t.Rotation, t.Scale)
}

// Drawable pairs one geometry with one material.
type Drawable struct {
	Name      string
	Geometry  geometry.Geometry
	Material  material.Material
	Transform Transform

	// Mesh, when set, replaces the tessellated geometry. Bump Version after
	// mutating it so the renderer re-uploads the vertices.
	Mesh    *geometry.Mesh
	Version uint64

	children []*Drawable
}

// NewDrawable creates a drawable at the origin with unit scale.
func NewDrawable(name string, g geometry.Geometry, m material.Material) *Drawable {
	return &Drawable{
		Name:     name,
		Geometry: g,
		Material: m,
		Transform: Transform{
			Scale: math.One3,
		},
	}
}

// NodeName identifies the drawable in the scene graph.
func (d *Drawable) NodeName() string {
	if d.Name != "" {
		return d.Name
	}
	return d.Geometry.String()
}

// RotateBy adds to the X and Y Euler angles.
func (d *Drawable) RotateBy(dx, dy float32) {
	d.Transform.Rotation.X += dx
	d.Transform.Rotation.Y += dy
}

// SetPosition moves the drawable in its parent's space.
func (d *Drawable) SetPosition(p math.Vec3) {
	d.Transform.Position = p
}

// ModelMatrix returns the local model matrix.
func (d *Drawable) ModelMatrix() math.Mat4 {
	return d.Transform.Matrix()
}

// Add attaches a child that inherits this drawable's transform.
func (d *Drawable) Add(child *Drawable) {
	if child == nil || child == d {
		return
	}
	d.children = append(d.children, child)
}

// Children returns the attached drawables.
func (d *Drawable) Children() []*Drawable {
	return append([]*Drawable(nil), d.children...)
}

func (d *Drawable) traverse(parent math.Mat4, fn func(Node, math.Mat4)) {
	world := parent.Mul(d.ModelMatrix())
	fn(d, world)
	for _, c := range d.children {
		c.traverse(world, fn)
	}
}
