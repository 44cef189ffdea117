package lighting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/spinscene/internal/engine/material"
	"github.com/Faultbox/spinscene/pkg/math"
)

func TestDirection(t *testing.T) {
	l := NewDirectional(material.White, 10)
	l.Position = math.Vec3{X: 1, Y: 1, Z: 1}

	d := l.Direction()
	assert.InDelta(t, 1, d.Length(), 1e-6)
	assert.InDelta(t, -0.57735, d.X, 1e-4)

	p := NewPoint(material.White, 1)
	assert.Equal(t, math.Vec3{}, p.Direction())
}

func TestConeCos(t *testing.T) {
	l := NewSpot(material.White, 100)
	outer, inner := l.ConeCos()
	assert.InDelta(t, 0.5, outer, 1e-6)
	assert.Equal(t, outer, inner, "no penumbra means a hard edge")

	l.Penumbra = 0.5
	_, inner = l.ConeCos()
	assert.Greater(t, inner, outer)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("Spot")
	require.NoError(t, err)
	assert.Equal(t, Spot, k)

	_, err = ParseKind("area")
	assert.Error(t, err)
}

func TestBufferAdd(t *testing.T) {
	b := NewBuffer()
	for i := 0; i < MaxLights; i++ {
		assert.True(t, b.Add(NewPoint(material.White, 1)))
	}
	assert.False(t, b.Add(NewPoint(material.White, 1)), "buffer should be full")
	assert.Equal(t, MaxLights, b.Count)

	b.Clear()
	assert.Equal(t, 0, b.Count)
	assert.Empty(t, b.Lights)
}

func TestBufferSetTruncates(t *testing.T) {
	lights := make([]*Light, MaxLights+3)
	for i := range lights {
		lights[i] = NewPoint(material.White, 1)
	}

	b := NewBuffer()
	dropped := b.Set(lights)
	assert.Equal(t, 3, dropped)
	assert.Equal(t, MaxLights, b.Count)
}

func TestBufferArrays(t *testing.T) {
	b := NewBuffer()
	spot := NewSpot(material.Hex(0x006769), 100)
	spot.Position = math.Vec3{X: 1, Y: 1, Z: 1}
	dir := NewDirectional(material.White, 2)
	b.Add(spot)
	b.Add(dir)

	assert.Len(t, b.Positions(), MaxLights*3)
	assert.Len(t, b.Types(), MaxLights)
	assert.Equal(t, int32(Spot), b.Types()[0])
	assert.Equal(t, int32(Directional), b.Types()[1])

	pos := b.Positions()
	assert.Equal(t, []float32{1, 1, 1}, pos[0:3])

	rad := b.Radiance()
	assert.InDelta(t, 2, rad[3], 1e-6, "white x intensity 2")

	cones := b.Cones()
	assert.NotZero(t, cones[0])
	assert.Zero(t, cones[2], "directional light has no cone")

	falloff := b.Falloff()
	assert.Equal(t, float32(2), falloff[1])
}

func TestBufferVectorsPerLight(t *testing.T) {
	spot := NewSpot(material.White, 1)
	spot.Position = math.Vec3{X: 1, Y: 1, Z: 1}
	spot.Target = math.Vec3{X: 1, Y: 1, Z: -1}
	dir := NewDirectional(material.White, 1)
	dir.Position = math.Vec3{Y: 2}

	b := NewBuffer()
	require.Zero(t, b.Set([]*Light{spot, dir}))

	pos := b.Positions()
	assert.Equal(t, []float32{1, 1, 1}, pos[0:3])
	assert.Equal(t, []float32{0, 2, 0}, pos[3:6])
	assert.Equal(t, make([]float32, (MaxLights-2)*3), pos[6:], "unused slots stay zero")

	dirs := b.Directions()
	assert.Len(t, dirs, MaxLights*3)
	assert.InDeltaSlice(t, []float32{0, 0, -1}, dirs[0:3], 1e-6)
	assert.InDeltaSlice(t, []float32{0, -1, 0}, dirs[3:6], 1e-6)
	assert.Equal(t, make([]float32, (MaxLights-2)*3), dirs[6:])
}
