package scenario

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/spinscene/internal/engine/frame"
	"github.com/Faultbox/spinscene/internal/engine/geometry"
	"github.com/Faultbox/spinscene/internal/engine/lighting"
	"github.com/Faultbox/spinscene/internal/engine/material"
	"github.com/Faultbox/spinscene/internal/engine/renderer"
	"github.com/Faultbox/spinscene/pkg/math"
)

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"cube", "cylinder", "dodecahedron"}, Names())
}

func TestLoadBuiltins(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			s, err := Load(name)
			require.NoError(t, err)
			assert.Equal(t, name, s.Name)

			b, err := Build(s, 800.0/600.0)
			require.NoError(t, err)
			assert.NotEmpty(t, b.Drawables)
			assert.NotEmpty(t, b.Scene.Lights())
		})
	}
}

func TestLoadUnknown(t *testing.T) {
	_, err := Load("teapot")
	assert.True(t, errors.Is(err, ErrUnknownScenario), "got %v", err)
}

func TestCubeScenario(t *testing.T) {
	s, err := Load("cube")
	require.NoError(t, err)
	b, err := Build(s, 1)
	require.NoError(t, err)

	assert.Equal(t, material.White, b.Scene.Background)
	assert.Equal(t, float32(75), b.Camera.FOV)
	assert.Equal(t, float32(5), b.Camera.Position.Z)
	assert.Equal(t, math.Vec3{}, b.Camera.Target, "camera looks at the origin by default")
	assert.False(t, b.Controls.Enabled)

	require.Len(t, b.Drawables, 1)
	cube := b.Drawables[0]
	assert.Equal(t, geometry.Box(1, 1, 1), cube.Geometry)
	assert.Equal(t, material.NewLambert(material.Hex(0x468585), material.Hex(0x468585)), cube.Material)

	lights := b.Scene.Lights()
	require.Len(t, lights, 1)
	assert.Equal(t, lighting.Directional, lights[0].Kind)
	assert.Equal(t, material.Hex(0x9cdba6), lights[0].Color)
	assert.Equal(t, float32(10), lights[0].Intensity)

	// Driven for 100 ticks, the cube accumulates 1 radian on X and Y.
	q := &frame.Queue{}
	r, err := renderer.New(renderer.NewNullBackend(), renderer.Config{Width: 800, Height: 600})
	require.NoError(t, err)
	d := frame.NewDriver(q, r, b.Scene, b.Camera)
	for _, m := range b.Mutators {
		d.AddMutator(m)
	}
	require.NoError(t, d.Start())
	now := time.Unix(0, 0)
	for range 100 {
		q.Flush(now)
		now = now.Add(16 * time.Millisecond)
	}

	assert.InDelta(t, 1.0, cube.Transform.Rotation.X, 1e-4)
	assert.InDelta(t, 1.0, cube.Transform.Rotation.Y, 1e-4)
}

func TestDodecahedronScenario(t *testing.T) {
	s, err := Load("dodecahedron")
	require.NoError(t, err)
	b, err := Build(s, 1)
	require.NoError(t, err)

	require.Len(t, b.Drawables, 2)
	assert.Equal(t, geometry.KindDodecahedron, b.Drawables[0].Geometry.Kind)

	slab := b.Drawables[1]
	assert.Equal(t, geometry.Box(2, 0.1, 2), slab.Geometry)
	assert.Equal(t, material.Standard, slab.Material.Shading)
	assert.Equal(t, float32(-1.5), slab.Transform.Position.Y)

	assert.True(t, b.Controls.Enabled)
	assert.True(t, b.Controls.Damping)
	assert.Equal(t, float32(0.05), b.Controls.DampingFactor)

	lights := b.Scene.Lights()
	require.Len(t, lights, 1)
	assert.Equal(t, lighting.Spot, lights[0].Kind)
	assert.Equal(t, float32(100), lights[0].Intensity)

	for _, m := range b.Mutators {
		m.Mutate(0)
	}
	assert.InDelta(t, 0.005, slab.Transform.Rotation.Y, 1e-7)
	assert.Zero(t, slab.Transform.Rotation.X)
}

func TestCylinderScenario(t *testing.T) {
	s, err := Load("cylinder")
	require.NoError(t, err)
	b, err := Build(s, 1)
	require.NoError(t, err)

	require.Len(t, b.Drawables, 1)
	cyl := b.Drawables[0]
	assert.Equal(t, geometry.Cylinder(1, 1, 1, 32), cyl.Geometry)
	assert.Equal(t, material.MustParseColor("#f0f0f0"), b.Scene.Background)

	require.Len(t, cyl.Children(), 1)
	sp := cyl.Children()[0]
	assert.Equal(t, material.Points, sp.Material.Shading)
	assert.Equal(t, material.MustParseColor("orange"), sp.Material.Color)
	require.NotNil(t, sp.Mesh)
	assert.Equal(t, 100, sp.Mesh.VertexCount())

	// Spin plus sparkles.
	assert.Len(t, b.Mutators, 2)
}

func TestParseRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"syntax", "name: [unclosed"},
		{"missing name", "title: nameless"},
		{"unknown field", "name: x\nwobble: 3"},
		{"bad color", "name: x\nbackground: not-a-color"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestBuildRejectsBadDefinitions(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"geometry kind", "name: x\ndrawables:\n  - geometry: {kind: teapot}\n    material: {shading: lambert}"},
		{"points mesh", "name: x\ndrawables:\n  - geometry: {kind: points}\n    material: {shading: lambert}"},
		{"shading", "name: x\ndrawables:\n  - geometry: {kind: box}\n    material: {shading: toon}"},
		{"light kind", "name: x\nlights:\n  - kind: area"},
		{"camera planes", "name: x\ncamera: {near: 10, far: 1}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Parse([]byte(tt.yaml))
			require.NoError(t, err)
			_, err = Build(s, 1)
			assert.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	data := `
name: custom
background: black
camera:
  position: [0, 2, 8]
drawables:
  - name: box
    geometry: {kind: box, width: 2, height: 2, depth: 2}
    material: {shading: standard, color: "#ff0000", roughness: 0.4, metalness: 0.5}
    spin: [0, 0.02]
lights:
  - kind: point
    color: white
    intensity: 5
    position: [2, 2, 2]
    decay: 1
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	s, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, float32(75), s.Camera.FOV, "unset camera fields keep defaults")

	b, err := Build(s, 2)
	require.NoError(t, err)
	assert.Equal(t, material.Black, b.Scene.Background)
	assert.Equal(t, float32(8), b.Camera.Position.Z)
	assert.Equal(t, float32(0.4), b.Drawables[0].Material.Roughness)
	assert.Equal(t, float32(0.5), b.Drawables[0].Material.Metalness)
	assert.Equal(t, float32(1), b.Scene.Lights()[0].Decay)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
