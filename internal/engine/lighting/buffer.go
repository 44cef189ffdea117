package lighting

// MaxLights is the maximum number of lights supported in shaders.
const MaxLights = 8

// Buffer holds lights for GPU upload. Arrays are padded to MaxLights so
// they can be passed straight to uniform array calls.
type Buffer struct {
	Lights []*Light
	Count  int
}

// NewBuffer creates an empty light buffer.
func NewBuffer() *Buffer {
	return &Buffer{
		Lights: make([]*Light, 0, MaxLights),
	}
}

// Clear removes all lights from the buffer.
func (b *Buffer) Clear() {
	b.Lights = b.Lights[:0]
	b.Count = 0
}

// Add appends a light. Returns false if the buffer is full.
func (b *Buffer) Add(light *Light) bool {
	if b.Count >= MaxLights {
		return false
	}
	b.Lights = append(b.Lights, light)
	b.Count++
	return true
}

// Set replaces all lights, truncating to MaxLights.
// Returns the number of lights dropped.
func (b *Buffer) Set(lights []*Light) int {
	b.Clear()
	dropped := 0
	for _, l := range lights {
		if !b.Add(l) {
			dropped++
		}
	}
	return dropped
}

// Types returns the light kinds for the shader's type array.
func (b *Buffer) Types() []int32 {
	result := make([]int32, MaxLights)
	for i, l := range b.Lights {
		result[i] = int32(l.Kind)
	}
	return result
}

// Positions returns positions as a flat slice: [x0, y0, z0, x1, ...].
func (b *Buffer) Positions() []float32 {
	result := make([]float32, MaxLights*3)
	for i, l := range b.Lights {
		p := l.Position.Array()
		copy(result[i*3:], p[:])
	}
	return result
}

// Directions returns normalized light directions as a flat slice.
func (b *Buffer) Directions() []float32 {
	result := make([]float32, MaxLights*3)
	for i, l := range b.Lights {
		d := l.Direction().Array()
		copy(result[i*3:], d[:])
	}
	return result
}

// Radiance returns linear color premultiplied by intensity.
func (b *Buffer) Radiance() []float32 {
	result := make([]float32, MaxLights*3)
	for i, l := range b.Lights {
		c := l.Color.Linear()
		result[i*3+0] = c[0] * l.Intensity
		result[i*3+1] = c[1] * l.Intensity
		result[i*3+2] = c[2] * l.Intensity
	}
	return result
}

// Falloff returns (distance, decay) pairs.
func (b *Buffer) Falloff() []float32 {
	result := make([]float32, MaxLights*2)
	for i, l := range b.Lights {
		result[i*2+0] = l.Distance
		result[i*2+1] = l.Decay
	}
	return result
}

// Cones returns (cos outer, cos inner) pairs; unused for non-spot lights.
func (b *Buffer) Cones() []float32 {
	result := make([]float32, MaxLights*2)
	for i, l := range b.Lights {
		if l.Kind != Spot {
			continue
		}
		result[i*2+0], result[i*2+1] = l.ConeCos()
	}
	return result
}
