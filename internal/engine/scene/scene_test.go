package scene

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/spinscene/internal/engine/geometry"
	"github.com/Faultbox/spinscene/internal/engine/lighting"
	"github.com/Faultbox/spinscene/internal/engine/material"
	"github.com/Faultbox/spinscene/pkg/math"
)

func newCube(name string) *Drawable {
	return NewDrawable(name, geometry.Box(1, 1, 1), material.NewLambert(material.White, material.Black))
}

func TestAddChildTraversesEveryNode(t *testing.T) {
	for _, k := range []int{0, 1, 2, 7, 50} {
		s := New(material.White)
		nodes := make([]Node, 0, k)
		for i := 0; i < k; i++ {
			if i%3 == 0 {
				nodes = append(nodes, lighting.NewPoint(material.White, 1))
			} else {
				nodes = append(nodes, newCube(""))
			}
		}
		rand.Shuffle(len(nodes), func(i, j int) { nodes[i], nodes[j] = nodes[j], nodes[i] })
		for _, n := range nodes {
			s.AddChild(n)
		}

		seen := map[Node]int{}
		s.Traverse(func(n Node, _ math.Mat4) { seen[n]++ })

		assert.Equal(t, k, s.Len())
		assert.Len(t, seen, k)
		for n, count := range seen {
			assert.Equal(t, 1, count, "node %s visited %d times", n.NodeName(), count)
		}
	}
}

func TestAddChildNilIgnored(t *testing.T) {
	s := New(material.White)
	s.AddChild(nil)
	assert.Equal(t, 0, s.Len())
}

func TestTypedViews(t *testing.T) {
	s := New(material.White)
	cube := newCube("cube")
	light := lighting.NewDirectional(material.White, 10)
	s.AddChild(cube)
	s.AddChild(light)

	assert.Equal(t, []*Drawable{cube}, s.Drawables())
	assert.Equal(t, []*lighting.Light{light}, s.Lights())
	assert.Equal(t, []Node{cube, light}, s.Children())
}

func TestRotateByAccumulates(t *testing.T) {
	const dx, dy = 0.01, 0.02
	for _, n := range []int{0, 1, 10, 100, 1000} {
		a := newCube("a")
		for i := 0; i < n; i++ {
			a.RotateBy(dx, dy)
		}
		b := newCube("b")
		b.RotateBy(float32(n)*dx, float32(n)*dy)

		assert.InDelta(t, b.Transform.Rotation.X, a.Transform.Rotation.X, 1e-3)
		assert.InDelta(t, b.Transform.Rotation.Y, a.Transform.Rotation.Y, 1e-3)
		assert.Zero(t, a.Transform.Rotation.Z)
	}
}

func TestRotationIsNotWrapped(t *testing.T) {
	d := newCube("")
	for i := 0; i < 1000; i++ {
		d.RotateBy(0.1, 0)
	}
	assert.Greater(t, d.Transform.Rotation.X, float32(99))
}

func TestNestedWorldMatrix(t *testing.T) {
	parent := newCube("parent")
	parent.SetPosition(math.Vec3{Y: -1.5})
	child := newCube("child")
	child.SetPosition(math.Vec3{X: 2})
	parent.Add(child)
	parent.Add(parent) // self-attach is ignored

	s := New(material.White)
	s.AddChild(parent)

	worlds := map[string]math.Mat4{}
	s.Traverse(func(n Node, world math.Mat4) { worlds[n.NodeName()] = world })

	assert.Len(t, worlds, 2)
	origin := worlds["child"].TransformVec3(math.Vec3{})
	assert.InDelta(t, 2, origin.X, 1e-6)
	assert.InDelta(t, -1.5, origin.Y, 1e-6)
	assert.Len(t, s.Drawables(), 2)
}

func TestNodeNameFallbacks(t *testing.T) {
	d := NewDrawable("", geometry.Dodecahedron(1), material.Material{})
	assert.Equal(t, "dodecahedron(r=1)", d.NodeName())
	assert.Equal(t, "spot light", lighting.NewSpot(material.White, 1).NodeName())
}
