package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/spinscene/pkg/math"
)

// assertOutwardWinding checks every triangle winds counter-clockwise when
// seen from the side its vertex normal points to.
func assertOutwardWinding(t *testing.T, m *Mesh) {
	t.Helper()
	for tri := 0; tri < m.TriangleCount(); tri++ {
		a, b, c := m.Triangle(tri)
		pa, pb, pc := m.Position(a), m.Position(b), m.Position(c)
		faceNormal := pb.Sub(pa).Cross(pc.Sub(pa))
		if faceNormal.Length() < 1e-9 {
			continue
		}
		assert.Greater(t, faceNormal.Dot(m.Normal(a)), float32(0), "triangle %d winds inward", tri)
	}
}

func TestBox(t *testing.T) {
	m, err := Build(Box(1, 1, 1))
	require.NoError(t, err)

	assert.Equal(t, 24, m.VertexCount())
	assert.Equal(t, 36, m.ElementCount())
	assert.Equal(t, 12, m.TriangleCount())
	assertOutwardWinding(t, m)

	for i := 0; i < m.VertexCount(); i++ {
		p := m.Position(i)
		assert.InDelta(t, 0.5, abs(p.X), 1e-6)
		assert.InDelta(t, 0.5, abs(p.Y), 1e-6)
		assert.InDelta(t, 0.5, abs(p.Z), 1e-6)
	}
}

func TestBoxSlab(t *testing.T) {
	m, err := Build(Box(2, 0.1, 2))
	require.NoError(t, err)
	assertOutwardWinding(t, m)

	for i := 0; i < m.VertexCount(); i++ {
		p := m.Position(i)
		assert.InDelta(t, 1, abs(p.X), 1e-6)
		assert.InDelta(t, 0.05, abs(p.Y), 1e-6)
	}
}

func TestDodecahedron(t *testing.T) {
	m, err := Build(Dodecahedron(1))
	require.NoError(t, err)

	assert.Equal(t, 108, m.VertexCount())
	assert.Empty(t, m.Indices)
	assert.Equal(t, 36, m.TriangleCount())
	assertOutwardWinding(t, m)

	for i := 0; i < m.VertexCount(); i++ {
		assert.InDelta(t, 1, m.Position(i).Length(), 1e-5)
		assert.InDelta(t, 1, m.Normal(i).Length(), 1e-5)
	}
}

func TestCylinder(t *testing.T) {
	m, err := Build(Cylinder(1, 1, 1, 32))
	require.NoError(t, err)

	// Side (33 columns x 2) + two caps (center + 33 ring vertices).
	assert.Equal(t, 66+34+34, m.VertexCount())
	assert.Equal(t, (32*2+32+32)*3, m.ElementCount())
	assertOutwardWinding(t, m)
}

func TestCylinderSegmentsClamped(t *testing.T) {
	m, err := Build(Cylinder(1, 1, 1, 0))
	require.NoError(t, err)
	assert.Equal(t, 8+5+5, m.VertexCount())
}

func TestConeSkipsEmptyCap(t *testing.T) {
	m, err := Build(Cylinder(0, 1, 2, 8))
	require.NoError(t, err)
	assert.Equal(t, 18+10, m.VertexCount())
}

func TestPointCloud(t *testing.T) {
	scale := math.Vec3{X: 1, Y: 1, Z: 1}
	a, err := Build(PointCloud(100, scale, 7))
	require.NoError(t, err)
	b, err := Build(PointCloud(100, scale, 7))
	require.NoError(t, err)

	assert.Equal(t, PointList, a.Mode)
	assert.Equal(t, 100, a.ElementCount())
	assert.Equal(t, 0, a.TriangleCount())
	assert.Equal(t, a.Vertices, b.Vertices, "same seed must give same points")

	for i := 0; i < a.VertexCount(); i++ {
		p := a.Position(i)
		assert.LessOrEqual(t, abs(p.X), float32(0.5))
		assert.LessOrEqual(t, abs(p.Y), float32(0.5))
		assert.LessOrEqual(t, abs(p.Z), float32(0.5))
	}
}

func TestDegenerateInputsPassThrough(t *testing.T) {
	m, err := Build(Box(-1, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 24, m.VertexCount())

	m, err = Build(PointCloud(-5, math.One3, 1))
	require.NoError(t, err)
	assert.Equal(t, 0, m.VertexCount())
}

func TestBuildUnknownKind(t *testing.T) {
	_, err := Build(Geometry{Kind: Kind(42)})
	assert.Error(t, err)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("Dodecahedron")
	require.NoError(t, err)
	assert.Equal(t, KindDodecahedron, k)

	_, err = ParseKind("torus")
	assert.Error(t, err)
}

func TestGeometryIsComparable(t *testing.T) {
	cache := map[Geometry]int{}
	cache[Box(1, 1, 1)]++
	cache[Box(1, 1, 1)]++
	cache[Box(2, 0.1, 2)]++
	assert.Len(t, cache, 2)
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
