package renderer

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/spinscene/internal/engine/geometry"
	"github.com/Faultbox/spinscene/internal/engine/material"
	"github.com/Faultbox/spinscene/internal/engine/renderer/shaders"
	"github.com/Faultbox/spinscene/internal/engine/shader"
	"github.com/Faultbox/spinscene/internal/logger"
)

// glContextLost is GL_CONTEXT_LOST from KHR_robustness, absent in the 4.1 bindings.
const glContextLost = 0x0507

type glMesh struct {
	vao, vbo, ebo uint32
	count         int32
	mode          uint32
	indexed       bool
	capacity      int
}

// GLBackend renders with OpenGL 4.1 core. The context must be current on
// the calling thread for every method.
type GLBackend struct {
	program *shader.Program
	meshes  map[MeshHandle]*glMesh
	next    MeshHandle
	log     *zap.Logger
}

// GLOptions configures context-wide state.
type GLOptions struct {
	MSAA bool
}

// NewGLBackend initializes GL function pointers and compiles shaders.
func NewGLBackend(opts GLOptions) (*GLBackend, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("initializing OpenGL: %w", err)
	}

	log := logger.Named("gl")
	log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	if opts.MSAA {
		gl.Enable(gl.MULTISAMPLE)
	}

	program, err := shader.NewProgram("mesh", shaders.MeshVertex, shaders.MeshFragment)
	if err != nil {
		return nil, err
	}

	return &GLBackend{
		program: program,
		meshes:  make(map[MeshHandle]*glMesh),
		log:     log,
	}, nil
}

// Viewport implements Backend.
func (b *GLBackend) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// BeginFrame implements Backend.
func (b *GLBackend) BeginFrame(bg material.Color, f FrameUniforms) {
	gl.ClearColor(bg.R, bg.G, bg.B, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	p := b.program
	p.Use()
	p.SetMat4("uView", f.View)
	p.SetMat4("uProjection", f.Projection)
	p.SetVec3("uCameraPos", f.CameraPos.Array())
	p.SetFloat("uPixelRatio", f.PixelRatio)

	lights := f.Lights
	p.SetInt("uLightCount", int32(lights.Count))
	p.SetIntArray("uLightTypes", lights.Types())
	p.SetVec3Array("uLightPositions", lights.Positions())
	p.SetVec3Array("uLightDirections", lights.Directions())
	p.SetVec3Array("uLightRadiance", lights.Radiance())
	p.SetVec2Array("uLightFalloff", lights.Falloff())
	p.SetVec2Array("uLightCones", lights.Cones())
}

// UploadMesh implements Backend.
func (b *GLBackend) UploadMesh(m *geometry.Mesh) (MeshHandle, error) {
	if m.VertexCount() == 0 {
		return 0, errors.New("upload: empty mesh")
	}

	gm := &glMesh{mode: gl.TRIANGLES}
	if m.Mode == geometry.PointList {
		gm.mode = gl.POINTS
	}

	gl.GenVertexArrays(1, &gm.vao)
	gl.BindVertexArray(gm.vao)

	gl.GenBuffers(1, &gm.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, gm.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*4, gl.Ptr(m.Vertices), gl.DYNAMIC_DRAW)
	gm.capacity = len(m.Vertices)

	stride := int32(geometry.FloatsPerVertex * 4)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)

	if len(m.Indices) > 0 {
		gl.GenBuffers(1, &gm.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gm.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)
		gm.indexed = true
	}
	gm.count = int32(m.ElementCount())

	gl.BindVertexArray(0)

	b.next++
	b.meshes[b.next] = gm
	return b.next, nil
}

// UpdateMesh implements Backend.
func (b *GLBackend) UpdateMesh(h MeshHandle, m *geometry.Mesh) error {
	gm, ok := b.meshes[h]
	if !ok {
		return fmt.Errorf("update: unknown mesh %d", h)
	}
	if gm.indexed {
		return fmt.Errorf("update: mesh %d is indexed", h)
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, gm.vbo)
	if len(m.Vertices) > gm.capacity {
		gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*4, gl.Ptr(m.Vertices), gl.DYNAMIC_DRAW)
		gm.capacity = len(m.Vertices)
	} else if len(m.Vertices) > 0 {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(m.Vertices)*4, gl.Ptr(m.Vertices))
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gm.count = int32(m.ElementCount())
	return nil
}

// DeleteMesh implements Backend.
func (b *GLBackend) DeleteMesh(h MeshHandle) {
	gm, ok := b.meshes[h]
	if !ok {
		return
	}
	gl.DeleteVertexArrays(1, &gm.vao)
	gl.DeleteBuffers(1, &gm.vbo)
	if gm.indexed {
		gl.DeleteBuffers(1, &gm.ebo)
	}
	delete(b.meshes, h)
}

// Draw implements Backend.
func (b *GLBackend) Draw(h MeshHandle, d DrawParams) {
	gm, ok := b.meshes[h]
	if !ok {
		return
	}

	p := b.program
	mat := d.Material
	p.SetMat4("uModel", d.Model)
	p.SetMat3("uNormalMatrix", d.Normal)
	p.SetInt("uShading", int32(mat.Shading))
	p.SetVec3("uColor", mat.Color.Linear())
	p.SetVec3("uEmissive", mat.Emissive.Linear())
	p.SetFloat("uRoughness", mat.Roughness)
	p.SetFloat("uMetalness", mat.Metalness)
	p.SetFloat("uPointSize", mat.Size)

	gl.BindVertexArray(gm.vao)
	if gm.indexed {
		gl.DrawElements(gm.mode, gm.count, gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawArrays(gm.mode, 0, gm.count)
	}
	gl.BindVertexArray(0)
}

// EndFrame implements Backend. Context loss and allocation failure are
// reported as ErrSurfaceLost; other GL errors are logged.
func (b *GLBackend) EndFrame() error {
	for {
		code := gl.GetError()
		switch code {
		case gl.NO_ERROR:
			return nil
		case glContextLost:
			return fmt.Errorf("GL context lost: %w", ErrSurfaceLost)
		case gl.OUT_OF_MEMORY:
			return fmt.Errorf("GL out of memory: %w", ErrSurfaceLost)
		default:
			b.log.Warn("GL error", zap.Uint32("code", code))
		}
	}
}

// ReadPixels implements Backend.
func (b *GLBackend) ReadPixels(width, height int) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("read pixels: invalid size %dx%d", width, height)
	}
	pixels := make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	if code := gl.GetError(); code != gl.NO_ERROR {
		return nil, fmt.Errorf("read pixels: GL error 0x%x", code)
	}
	return pixels, nil
}

// Close implements Backend.
func (b *GLBackend) Close() {
	for h := range b.meshes {
		b.DeleteMesh(h)
	}
	b.program.Delete()
}
