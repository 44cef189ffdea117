package renderer

import (
	"github.com/Faultbox/spinscene/internal/engine/geometry"
	"github.com/Faultbox/spinscene/internal/engine/lighting"
	"github.com/Faultbox/spinscene/internal/engine/material"
	"github.com/Faultbox/spinscene/pkg/math"
)

// MeshHandle identifies a mesh uploaded to a backend. Zero is invalid.
type MeshHandle uint32

// FrameUniforms is the per-frame state shared by every draw.
type FrameUniforms struct {
	View       math.Mat4
	Projection math.Mat4
	CameraPos  math.Vec3
	Lights     *lighting.Buffer
	PixelRatio float32
}

// DrawParams is the per-drawable state for one draw call.
type DrawParams struct {
	Model    math.Mat4
	Normal   [9]float32
	Material material.Material
}

// Backend is the GPU device the renderer submits work to.
type Backend interface {
	// Viewport sets the drawable area in device pixels.
	Viewport(width, height int)
	// BeginFrame clears the target and uploads frame uniforms.
	BeginFrame(background material.Color, frame FrameUniforms)
	// UploadMesh copies mesh data to the device.
	UploadMesh(m *geometry.Mesh) (MeshHandle, error)
	// UpdateMesh replaces the vertex data of an uploaded mesh.
	UpdateMesh(h MeshHandle, m *geometry.Mesh) error
	// DeleteMesh frees an uploaded mesh.
	DeleteMesh(h MeshHandle)
	// Draw submits one mesh.
	Draw(h MeshHandle, p DrawParams)
	// EndFrame reports device errors. A lost device wraps ErrSurfaceLost.
	EndFrame() error
	// ReadPixels returns the last frame as bottom-up RGBA rows.
	ReadPixels(width, height int) ([]byte, error)
	// Close frees all device resources.
	Close()
}
