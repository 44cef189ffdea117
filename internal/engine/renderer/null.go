package renderer

import (
	"fmt"

	"github.com/Faultbox/spinscene/internal/engine/geometry"
	"github.com/Faultbox/spinscene/internal/engine/material"
)

// NullBackend records submitted work without touching a GPU. It backs
// headless runs and tests.
type NullBackend struct {
	Width, Height int
	Background    material.Color
	Frame         FrameUniforms
	Frames        int
	Draws         []DrawParams
	Uploads       int
	Updates       int
	Closed        bool

	lost      bool
	meshes    map[MeshHandle]*geometry.Mesh
	next      MeshHandle
	viewports int
}

// NewNullBackend creates an empty null backend.
func NewNullBackend() *NullBackend {
	return &NullBackend{meshes: make(map[MeshHandle]*geometry.Mesh)}
}

// LoseSurface makes the next EndFrame fail with ErrSurfaceLost.
func (b *NullBackend) LoseSurface() {
	b.lost = true
}

// ViewportCalls returns how many times the viewport was set.
func (b *NullBackend) ViewportCalls() int {
	return b.viewports
}

// Mesh returns the mesh data behind a handle.
func (b *NullBackend) Mesh(h MeshHandle) *geometry.Mesh {
	return b.meshes[h]
}

// Viewport implements Backend.
func (b *NullBackend) Viewport(width, height int) {
	b.Width, b.Height = width, height
	b.viewports++
}

// BeginFrame implements Backend.
func (b *NullBackend) BeginFrame(bg material.Color, f FrameUniforms) {
	b.Background = bg
	b.Frame = f
	b.Draws = b.Draws[:0]
}

// UploadMesh implements Backend.
func (b *NullBackend) UploadMesh(m *geometry.Mesh) (MeshHandle, error) {
	b.next++
	b.meshes[b.next] = m
	b.Uploads++
	return b.next, nil
}

// UpdateMesh implements Backend.
func (b *NullBackend) UpdateMesh(h MeshHandle, m *geometry.Mesh) error {
	if _, ok := b.meshes[h]; !ok {
		return fmt.Errorf("update: unknown mesh %d", h)
	}
	b.meshes[h] = m
	b.Updates++
	return nil
}

// DeleteMesh implements Backend.
func (b *NullBackend) DeleteMesh(h MeshHandle) {
	delete(b.meshes, h)
}

// Draw implements Backend.
func (b *NullBackend) Draw(_ MeshHandle, p DrawParams) {
	b.Draws = append(b.Draws, p)
}

// EndFrame implements Backend.
func (b *NullBackend) EndFrame() error {
	if b.lost {
		return fmt.Errorf("null surface: %w", ErrSurfaceLost)
	}
	b.Frames++
	return nil
}

// ReadPixels implements Backend. Every pixel is the last clear color.
func (b *NullBackend) ReadPixels(width, height int) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("read pixels: invalid size %dx%d", width, height)
	}
	c := b.Background
	r, g, bl := byte(c.R*255+0.5), byte(c.G*255+0.5), byte(c.B*255+0.5)
	pixels := make([]byte, width*height*4)
	for i := 0; i < len(pixels); i += 4 {
		pixels[i], pixels[i+1], pixels[i+2], pixels[i+3] = r, g, bl, 255
	}
	return pixels, nil
}

// Close implements Backend.
func (b *NullBackend) Close() {
	b.meshes = map[MeshHandle]*geometry.Mesh{}
	b.Closed = true
}
