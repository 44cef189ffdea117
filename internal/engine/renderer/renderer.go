// Package renderer draws a scene through a camera onto a bound surface.
package renderer

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/spinscene/internal/engine/camera"
	"github.com/Faultbox/spinscene/internal/engine/geometry"
	"github.com/Faultbox/spinscene/internal/engine/lighting"
	"github.com/Faultbox/spinscene/internal/engine/scene"
	"github.com/Faultbox/spinscene/internal/logger"
	"github.com/Faultbox/spinscene/pkg/math"
)

// ErrSurfaceLost means the output surface or device became unusable.
// The renderer does not recover from it.
var ErrSurfaceLost = errors.New("render surface lost")

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	PixelRatio float32
}

// Surface is the bound output target. Width and Height are logical
// (window) units; the device buffer is scaled by PixelRatio.
type Surface struct {
	Width      int
	Height     int
	PixelRatio float32
}

// DrawableSize returns the device pixel size.
func (s Surface) DrawableSize() (int, int) {
	return int(math32.Round(float32(s.Width) * s.PixelRatio)),
		int(math32.Round(float32(s.Height) * s.PixelRatio))
}

// Stats describes the last rendered frame.
type Stats struct {
	Frames       uint64
	NodesVisited int
	DrawCalls    int
	Lights       int
	Meshes       int
}

type dynamicMesh struct {
	handle  MeshHandle
	version uint64
}

// Renderer handles all scene rendering. It is not safe for concurrent use.
type Renderer struct {
	backend Backend
	surface Surface
	log     *zap.Logger

	meshes  map[geometry.Geometry]MeshHandle
	dynamic map[*scene.Drawable]dynamicMesh
	lights  *lighting.Buffer
	stats   Stats

	warnedStale  bool
	warnedLights bool
}

// New binds a renderer to a backend and sizes the surface.
func New(backend Backend, cfg Config) (*Renderer, error) {
	if backend == nil {
		return nil, errors.New("renderer: nil backend")
	}
	if cfg.PixelRatio <= 0 {
		cfg.PixelRatio = 1
	}

	r := &Renderer{
		backend: backend,
		log:     logger.Named("renderer"),
		meshes:  make(map[geometry.Geometry]MeshHandle),
		dynamic: make(map[*scene.Drawable]dynamicMesh),
		lights:  lighting.NewBuffer(),
	}
	r.surface = Surface{Width: cfg.Width, Height: cfg.Height, PixelRatio: cfg.PixelRatio}
	r.applyViewport()

	return r, nil
}

// Close frees every uploaded mesh and the backend.
func (r *Renderer) Close() {
	r.log.Info("closing renderer", zap.Int("meshes", len(r.meshes)+len(r.dynamic)))
	for _, h := range r.meshes {
		r.backend.DeleteMesh(h)
	}
	for _, d := range r.dynamic {
		r.backend.DeleteMesh(d.handle)
	}
	r.meshes = map[geometry.Geometry]MeshHandle{}
	r.dynamic = map[*scene.Drawable]dynamicMesh{}
	r.backend.Close()
}

// Surface returns the bound surface.
func (r *Renderer) Surface() Surface {
	return r.surface
}

// Stats returns counters for the last frame.
func (r *Renderer) Stats() Stats {
	return r.stats
}

// SetSize resizes the surface in logical units. Repeating the current
// size does nothing.
func (r *Renderer) SetSize(width, height int) {
	if width == r.surface.Width && height == r.surface.Height {
		return
	}
	r.surface.Width = width
	r.surface.Height = height
	r.applyViewport()
}

// SetPixelRatio sets the device pixels per logical unit.
func (r *Renderer) SetPixelRatio(ratio float32) {
	if ratio <= 0 || ratio == r.surface.PixelRatio {
		return
	}
	r.surface.PixelRatio = ratio
	r.applyViewport()
}

func (r *Renderer) applyViewport() {
	w, h := r.surface.DrawableSize()
	r.backend.Viewport(w, h)
	r.log.Debug("surface resized",
		zap.Int("width", r.surface.Width),
		zap.Int("height", r.surface.Height),
		zap.Float32("pixel_ratio", r.surface.PixelRatio),
	)
}

// Render draws one frame of the scene as seen by the camera. It must be
// called after all mutations for the frame. Surface loss is returned
// wrapped in ErrSurfaceLost.
func (r *Renderer) Render(s *scene.Scene, cam *camera.Perspective) error {
	if cam.Stale() && !r.warnedStale {
		r.log.Warn("camera projection is stale; call Recompute after changing it")
		r.warnedStale = true
	}

	if dropped := r.lights.Set(s.Lights()); dropped > 0 && !r.warnedLights {
		r.log.Warn("light limit reached, ignoring lights",
			zap.Int("dropped", dropped),
			zap.Int("max", lighting.MaxLights),
		)
		r.warnedLights = true
	}

	r.backend.BeginFrame(s.Background, FrameUniforms{
		View:       cam.View(),
		Projection: cam.Projection(),
		CameraPos:  cam.Position,
		Lights:     r.lights,
		PixelRatio: r.surface.PixelRatio,
	})

	stats := Stats{Frames: r.stats.Frames + 1, Lights: r.lights.Count}
	var drawErr error
	s.Traverse(func(n scene.Node, world math.Mat4) {
		stats.NodesVisited++
		d, ok := n.(*scene.Drawable)
		if !ok || drawErr != nil {
			return
		}
		h, err := r.meshFor(d)
		if err != nil {
			drawErr = fmt.Errorf("drawable %s: %w", d.NodeName(), err)
			return
		}
		r.backend.Draw(h, DrawParams{
			Model:    world,
			Normal:   world.NormalMatrix(),
			Material: d.Material,
		})
		stats.DrawCalls++
	})

	endErr := r.backend.EndFrame()
	stats.Meshes = len(r.meshes) + len(r.dynamic)
	r.stats = stats

	if endErr != nil {
		return fmt.Errorf("frame %d: %w", stats.Frames, endErr)
	}
	return drawErr
}

// meshFor returns the uploaded mesh for a drawable, uploading on first use.
// Static geometry is shared by descriptor; custom meshes are per drawable.
func (r *Renderer) meshFor(d *scene.Drawable) (MeshHandle, error) {
	if d.Mesh != nil {
		dm, ok := r.dynamic[d]
		if !ok {
			h, err := r.backend.UploadMesh(d.Mesh)
			if err != nil {
				return 0, err
			}
			r.dynamic[d] = dynamicMesh{handle: h, version: d.Version}
			return h, nil
		}
		if dm.version != d.Version {
			if err := r.backend.UpdateMesh(dm.handle, d.Mesh); err != nil {
				return 0, err
			}
			dm.version = d.Version
			r.dynamic[d] = dm
		}
		return dm.handle, nil
	}

	if h, ok := r.meshes[d.Geometry]; ok {
		return h, nil
	}
	m, err := geometry.Build(d.Geometry)
	if err != nil {
		return 0, err
	}
	h, err := r.backend.UploadMesh(m)
	if err != nil {
		return 0, err
	}
	r.meshes[d.Geometry] = h
	r.log.Debug("mesh uploaded",
		zap.Stringer("geometry", d.Geometry),
		zap.Int("vertices", m.VertexCount()),
		zap.Uint32("handle", uint32(h)),
	)
	return h, nil
}

// ReadPixels captures the last frame at device resolution.
func (r *Renderer) ReadPixels() ([]byte, int, int, error) {
	w, h := r.surface.DrawableSize()
	pixels, err := r.backend.ReadPixels(w, h)
	return pixels, w, h, err
}
