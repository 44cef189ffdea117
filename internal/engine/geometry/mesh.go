package geometry

import (
	"fmt"

	"github.com/Faultbox/spinscene/pkg/math"
)

// Mode is the primitive topology of a mesh.
type Mode int

const (
	Triangles Mode = iota
	PointList
)

// FloatsPerVertex is the interleaved layout: position (3) + normal (3).
const FloatsPerVertex = 6

// Mesh is CPU-side vertex data ready for upload.
type Mesh struct {
	Vertices []float32 // Interleaved position + normal
	Indices  []uint32  // Empty for non-indexed meshes
	Mode     Mode
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / FloatsPerVertex
}

// ElementCount returns how many vertices a draw call submits.
func (m *Mesh) ElementCount() int {
	if len(m.Indices) > 0 {
		return len(m.Indices)
	}
	return m.VertexCount()
}

// Position returns the position of vertex i.
func (m *Mesh) Position(i int) math.Vec3 {
	o := i * FloatsPerVertex
	return math.Vec3{X: m.Vertices[o], Y: m.Vertices[o+1], Z: m.Vertices[o+2]}
}

// Normal returns the normal of vertex i.
func (m *Mesh) Normal(i int) math.Vec3 {
	o := i*FloatsPerVertex + 3
	return math.Vec3{X: m.Vertices[o], Y: m.Vertices[o+1], Z: m.Vertices[o+2]}
}

// Triangle returns the vertex indices of triangle t.
func (m *Mesh) Triangle(t int) (a, b, c int) {
	if len(m.Indices) > 0 {
		return int(m.Indices[t*3]), int(m.Indices[t*3+1]), int(m.Indices[t*3+2])
	}
	return t * 3, t*3 + 1, t*3 + 2
}

// TriangleCount returns the number of triangles, 0 for point lists.
func (m *Mesh) TriangleCount() int {
	if m.Mode != Triangles {
		return 0
	}
	return m.ElementCount() / 3
}

func (m *Mesh) addVertex(p, n math.Vec3) uint32 {
	idx := uint32(m.VertexCount())
	m.Vertices = append(m.Vertices, p.X, p.Y, p.Z, n.X, n.Y, n.Z)
	return idx
}

// Build tessellates a geometry descriptor.
func Build(g Geometry) (*Mesh, error) {
	switch g.Kind {
	case KindBox:
		return buildBox(g.Width, g.Height, g.Depth), nil
	case KindDodecahedron:
		return buildDodecahedron(g.Radius), nil
	case KindCylinder:
		return buildCylinder(g.RadiusTop, g.RadiusBottom, g.Height, g.RadialSegments), nil
	case KindPoints:
		return buildPoints(g.Count, g.Scale, g.Seed), nil
	}
	return nil, fmt.Errorf("build %v: unsupported geometry kind", g.Kind)
}
