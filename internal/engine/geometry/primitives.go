package geometry

import (
	"math/rand/v2"

	"github.com/chewxy/math32"

	"github.com/Faultbox/spinscene/pkg/math"
)

// boxFaces lists each face normal with tangent axes u, v where u x v = normal.
var boxFaces = [6][3]math.Vec3{
	{{X: 1}, {Z: -1}, {Y: 1}},
	{{X: -1}, {Z: 1}, {Y: 1}},
	{{Y: 1}, {X: 1}, {Z: -1}},
	{{Y: -1}, {X: 1}, {Z: 1}},
	{{Z: 1}, {X: 1}, {Y: 1}},
	{{Z: -1}, {X: -1}, {Y: 1}},
}

func buildBox(width, height, depth float32) *Mesh {
	half := math.Vec3{X: width / 2, Y: height / 2, Z: depth / 2}
	m := &Mesh{Mode: Triangles}

	for _, f := range boxFaces {
		n, u, v := f[0], f[1], f[2]
		corners := [4]math.Vec3{
			n.Sub(u).Sub(v),
			n.Add(u).Sub(v),
			n.Add(u).Add(v),
			n.Sub(u).Add(v),
		}
		base := uint32(m.VertexCount())
		for _, c := range corners {
			m.addVertex(mulElem(c, half), n)
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return m
}

func mulElem(a, b math.Vec3) math.Vec3 {
	return math.Vec3{X: a.X * b.X, Y: a.Y * b.Y, Z: a.Z * b.Z}
}

// Dodecahedron corners on the unit cube and golden-ratio rectangles.
var (
	phi = (1 + math32.Sqrt(5)) / 2
	ip  = 1 / phi

	dodecaVertices = []math.Vec3{
		{X: -1, Y: -1, Z: -1}, {X: -1, Y: -1, Z: 1}, {X: -1, Y: 1, Z: -1}, {X: -1, Y: 1, Z: 1},
		{X: 1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: 1}, {X: 1, Y: 1, Z: -1}, {X: 1, Y: 1, Z: 1},
		{X: 0, Y: -ip, Z: -phi}, {X: 0, Y: -ip, Z: phi}, {X: 0, Y: ip, Z: -phi}, {X: 0, Y: ip, Z: phi},
		{X: -ip, Y: -phi, Z: 0}, {X: -ip, Y: phi, Z: 0}, {X: ip, Y: -phi, Z: 0}, {X: ip, Y: phi, Z: 0},
		{X: -phi, Y: 0, Z: -ip}, {X: phi, Y: 0, Z: -ip}, {X: -phi, Y: 0, Z: ip}, {X: phi, Y: 0, Z: ip},
	}

	// Twelve pentagons, three triangles each.
	dodecaIndices = []int{
		3, 11, 7, 3, 7, 15, 3, 15, 13,
		7, 19, 17, 7, 17, 6, 7, 6, 15,
		17, 4, 8, 17, 8, 10, 17, 10, 6,
		8, 0, 16, 8, 16, 2, 8, 2, 10,
		0, 12, 1, 0, 1, 18, 0, 18, 16,
		6, 10, 2, 6, 2, 13, 6, 13, 15,
		2, 16, 18, 2, 18, 3, 2, 3, 13,
		18, 1, 9, 18, 9, 11, 18, 11, 3,
		4, 14, 12, 4, 12, 0, 4, 0, 8,
		11, 9, 5, 11, 5, 19, 11, 19, 7,
		19, 5, 14, 19, 14, 4, 19, 4, 17,
		1, 12, 14, 1, 14, 5, 1, 5, 9,
	}
)

// buildDodecahedron emits a flat-shaded, non-indexed mesh. Each pentagon
// face gets its own vertices so normals do not blend across edges.
func buildDodecahedron(radius float32) *Mesh {
	m := &Mesh{Mode: Triangles}

	for f := 0; f < len(dodecaIndices)/9; f++ {
		face := dodecaIndices[f*9 : f*9+9]

		// The pentagon centroid points along the face normal.
		var center math.Vec3
		seen := map[int]bool{}
		for _, i := range face {
			if !seen[i] {
				seen[i] = true
				center = center.Add(dodecaVertices[i])
			}
		}
		n := center.Normalize()

		for t := 0; t < 3; t++ {
			a := dodecaVertices[face[t*3]].Normalize().Scale(radius)
			b := dodecaVertices[face[t*3+1]].Normalize().Scale(radius)
			c := dodecaVertices[face[t*3+2]].Normalize().Scale(radius)

			// Keep counter-clockwise winding when seen from outside.
			if b.Sub(a).Cross(c.Sub(a)).Dot(n) < 0 {
				b, c = c, b
			}
			m.addVertex(a, n)
			m.addVertex(b, n)
			m.addVertex(c, n)
		}
	}
	return m
}

func buildCylinder(radiusTop, radiusBottom, height float32, segments int) *Mesh {
	if segments < 3 {
		segments = 3
	}
	m := &Mesh{Mode: Triangles}
	halfHeight := height / 2
	slope := float32(0)
	if height != 0 {
		slope = (radiusBottom - radiusTop) / height
	}

	// Side: one bottom and one top vertex per column, seam duplicated.
	for i := 0; i <= segments; i++ {
		theta := float32(i) / float32(segments) * 2 * math32.Pi
		sin, cos := math32.Sin(theta), math32.Cos(theta)
		n := math.Vec3{X: sin, Y: slope, Z: cos}.Normalize()
		m.addVertex(math.Vec3{X: radiusBottom * sin, Y: -halfHeight, Z: radiusBottom * cos}, n)
		m.addVertex(math.Vec3{X: radiusTop * sin, Y: halfHeight, Z: radiusTop * cos}, n)
	}
	for i := 0; i < segments; i++ {
		b0, t0 := uint32(i*2), uint32(i*2+1)
		b1, t1 := b0+2, t0+2
		m.Indices = append(m.Indices, b0, b1, t1, b0, t1, t0)
	}

	if radiusTop > 0 {
		addCap(m, radiusTop, halfHeight, segments, true)
	}
	if radiusBottom > 0 {
		addCap(m, radiusBottom, -halfHeight, segments, false)
	}
	return m
}

func addCap(m *Mesh, radius, y float32, segments int, top bool) {
	n := math.Up
	if !top {
		n = n.Scale(-1)
	}
	center := m.addVertex(math.Vec3{Y: y}, n)
	first := uint32(m.VertexCount())
	for i := 0; i <= segments; i++ {
		theta := float32(i) / float32(segments) * 2 * math32.Pi
		m.addVertex(math.Vec3{X: radius * math32.Sin(theta), Y: y, Z: radius * math32.Cos(theta)}, n)
	}
	for i := uint32(0); i < uint32(segments); i++ {
		if top {
			m.Indices = append(m.Indices, center, first+i, first+i+1)
		} else {
			m.Indices = append(m.Indices, center, first+i+1, first+i)
		}
	}
}

func buildPoints(count int, scale math.Vec3, seed uint64) *Mesh {
	if count < 0 {
		count = 0
	}
	m := &Mesh{Mode: PointList}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	for i := 0; i < count; i++ {
		p := math.Vec3{
			X: (rng.Float32() - 0.5) * scale.X,
			Y: (rng.Float32() - 0.5) * scale.Y,
			Z: (rng.Float32() - 0.5) * scale.Z,
		}
		m.addVertex(p, math.Vec3{})
	}
	return m
}
