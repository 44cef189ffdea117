// Package app wires a scenario to a window, renderer and frame driver.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/spinscene/internal/config"
	"github.com/Faultbox/spinscene/internal/engine/camera"
	"github.com/Faultbox/spinscene/internal/engine/debug"
	"github.com/Faultbox/spinscene/internal/engine/frame"
	"github.com/Faultbox/spinscene/internal/engine/input"
	"github.com/Faultbox/spinscene/internal/engine/renderer"
	"github.com/Faultbox/spinscene/internal/engine/scene"
	"github.com/Faultbox/spinscene/internal/engine/window"
	"github.com/Faultbox/spinscene/internal/logger"
	"github.com/Faultbox/spinscene/internal/scenario"
)

// headlessInterval paces headless runs at roughly 60 Hz.
const headlessInterval = time.Second / 60

// Option customizes an App before Init.
type Option func(*App)

// WithBackend renders through b instead of a window. Used by tests.
func WithBackend(b renderer.Backend) Option {
	return func(a *App) {
		a.backend = b
	}
}

// WithFrameInterval sets the pacing of windowless runs.
func WithFrameInterval(d time.Duration) Option {
	return func(a *App) {
		a.interval = d
	}
}

// App owns every object of one render session.
type App struct {
	cfg      *config.Config
	scenario *scenario.Scenario
	log      *zap.Logger

	window   *window.Window
	input    *input.Input
	backend  renderer.Backend
	renderer *renderer.Renderer

	scene    *scene.Scene
	camera   *camera.Perspective
	controls *camera.OrbitControls
	binding  *input.OrbitBinding

	queue  *frame.Queue
	driver *frame.Driver

	screenshots *debug.ScreenshotCapture
	capture     bool // Save the next rendered frame
	interval    time.Duration
	frames      int
}

// New creates an uninitialized App.
func New(cfg *config.Config, s *scenario.Scenario, opts ...Option) *App {
	a := &App{
		cfg:      cfg,
		scenario: s,
		log:      logger.Named("app"),
		interval: headlessInterval,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *App) windowed() bool {
	return a.backend == nil && !a.cfg.Scene.Headless
}

// Init creates the host surface, then the scene, camera, drawables and
// lights, then the renderer binding, controls and driver.
func (a *App) Init() error {
	width, height := a.cfg.Graphics.Width, a.cfg.Graphics.Height
	pixelRatio := float32(1)

	if a.windowed() {
		title := "spinscene"
		if a.scenario.Title != "" {
			title += " - " + a.scenario.Title
		}
		w, err := window.New(window.Config{
			Title:      title,
			Width:      width,
			Height:     height,
			Fullscreen: a.cfg.Graphics.Fullscreen,
			VSync:      a.cfg.Graphics.VSync,
			MSAA:       a.cfg.Graphics.MSAA,
		})
		if err != nil {
			return fmt.Errorf("failed to create window: %w", err)
		}
		a.window = w
		a.input = input.New()
		width, height = w.GetSize()
		pixelRatio = w.PixelRatio()

		// Backend needs the GL context created by the window.
		b, err := renderer.NewGLBackend(renderer.GLOptions{MSAA: a.cfg.Graphics.MSAA > 0})
		if err != nil {
			a.Dispose()
			return fmt.Errorf("failed to create GL backend: %w", err)
		}
		a.backend = b
	} else if a.backend == nil {
		a.backend = renderer.NewNullBackend()
	}

	aspect := float32(1)
	if height > 0 {
		aspect = float32(width) / float32(height)
	}
	built, err := scenario.Build(a.scenario, aspect)
	if err != nil {
		a.Dispose()
		return err
	}
	a.scene = built.Scene
	a.camera = built.Camera

	a.renderer, err = renderer.New(a.backend, renderer.Config{
		Width:      width,
		Height:     height,
		PixelRatio: pixelRatio,
	})
	if err != nil {
		a.Dispose()
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	if built.Controls.Enabled {
		a.controls = a.newControls(built.Controls, height)
		a.binding = input.NewOrbitBinding(a.controls)
	}

	a.queue = &frame.Queue{}
	a.driver = frame.NewDriver(a.queue, a.renderer, a.scene, a.camera)
	for _, m := range built.Mutators {
		a.driver.AddMutator(m)
	}
	if a.controls != nil {
		a.driver.SetControls(a.controls)
	}

	a.screenshots = debug.NewScreenshotCapture(a.cfg.Debug.ScreenshotDir, a.scenario.Name)

	a.log.Info("scene ready",
		zap.String("scenario", a.scenario.Name),
		zap.Int("nodes", a.scene.Len()),
		zap.Int("mutators", len(built.Mutators)),
		zap.Bool("controls", a.controls != nil),
		zap.Bool("windowed", a.window != nil),
	)
	return nil
}

// newControls merges scenario control flags with user tuning.
func (a *App) newControls(sc scenario.Controls, viewportHeight int) *camera.OrbitControls {
	cc := a.cfg.Controls
	c := camera.NewOrbitControls(a.camera)
	c.EnableZoom = sc.Zoom
	c.EnablePan = sc.Pan
	c.EnableDamping = sc.Damping && cc.Damping
	c.DampingFactor = sc.DampingFactor
	if cc.DampingFactor > 0 {
		c.DampingFactor = cc.DampingFactor
	}
	c.TimeScaled = cc.TimeScaled
	c.RotateSpeed = cc.RotateSpeed
	c.ZoomSpeed = cc.ZoomSpeed
	c.PanSpeed = cc.PanSpeed
	c.SetViewportHeight(viewportHeight)
	return c
}

// Dispose releases resources in reverse creation order. Safe to call on
// a partially initialized App.
func (a *App) Dispose() {
	if a.driver != nil {
		a.driver.Stop()
	}
	if a.renderer != nil {
		a.renderer.Close()
	} else if a.backend != nil {
		a.backend.Close()
	}
	a.renderer = nil
	a.backend = nil
	if a.window != nil {
		a.window.Close()
		a.window = nil
	}
}

// Resize updates the camera aspect, recomputes the projection and resizes
// the renderer. Zero sizes are ignored and repeated sizes change nothing.
func (a *App) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	a.camera.SetAspect(width, height)
	a.camera.Recompute()
	a.renderer.SetSize(width, height)
	if a.window != nil {
		a.renderer.SetPixelRatio(a.window.PixelRatio())
	}
	if a.controls != nil {
		a.controls.SetViewportHeight(height)
	}
}

// Scene returns the session scene.
func (a *App) Scene() *scene.Scene {
	return a.scene
}

// Camera returns the session camera.
func (a *App) Camera() *camera.Perspective {
	return a.camera
}

// Renderer returns the session renderer.
func (a *App) Renderer() *renderer.Renderer {
	return a.renderer
}

// Controls returns the orbit controls, or nil when the scenario has none.
func (a *App) Controls() *camera.OrbitControls {
	return a.controls
}

// Driver returns the frame driver.
func (a *App) Driver() *frame.Driver {
	return a.driver
}

// Frames returns the number of host loop iterations that ran a tick.
func (a *App) Frames() int {
	return a.frames
}

// Run drives frames until the context is cancelled, the window closes,
// the configured frame count is reached or rendering fails.
func (a *App) Run(ctx context.Context) error {
	if a.driver == nil {
		return errors.New("app not initialized")
	}
	if err := a.driver.Start(); err != nil {
		return err
	}
	a.log.Info("starting render loop", zap.Int("frame_limit", a.cfg.Scene.Frames))

	var ticker *time.Ticker
	if a.window == nil && a.interval > 0 {
		ticker = time.NewTicker(a.interval)
		defer ticker.Stop()
	}
	titleTimer := time.Now()

	for {
		select {
		case <-ctx.Done():
			a.log.Info("render loop cancelled", zap.Int("frames", a.frames))
			return nil
		default:
		}

		if a.window != nil {
			if quit := a.handleInput(); quit {
				a.log.Info("window closed", zap.Int("frames", a.frames))
				return nil
			}
		}

		if a.queue.Flush(time.Now()) > 0 {
			a.frames++
		}
		if err := a.driver.Err(); err != nil {
			return err
		}

		if a.capture {
			a.capture = false
			if _, err := a.Screenshot(); err != nil {
				a.log.Warn("screenshot failed", zap.Error(err))
			}
		}

		if a.window != nil {
			a.window.SwapBuffers()
			if a.cfg.Debug.ShowFPS && time.Since(titleTimer) >= time.Second {
				a.window.SetTitle(fmt.Sprintf("spinscene - %s (%.0f fps)", a.scenario.Title, a.driver.FPS()))
				titleTimer = time.Now()
			}
		}

		if a.cfg.Scene.Frames > 0 && a.frames >= a.cfg.Scene.Frames {
			a.log.Info("frame limit reached", zap.Int("frames", a.frames))
			return nil
		}
		if a.driver.State() == frame.Stopped {
			return nil
		}

		if ticker != nil {
			select {
			case <-ctx.Done():
			case <-ticker.C:
			}
		}
	}
}

// handleInput dispatches window events. Returns true on quit.
func (a *App) handleInput() bool {
	quit := a.input.Update()
	if a.input.IsKeyPressed(sdl.SCANCODE_ESCAPE) {
		quit = true
	}
	if a.input.IsKeyPressed(sdl.SCANCODE_F12) {
		a.capture = true
	}
	for _, e := range a.input.Events() {
		switch e.Type {
		case input.EventWindowResize:
			a.Resize(e.Width, e.Height)
		case input.EventKeyDown, input.EventKeyUp:
		default:
			if a.binding != nil {
				a.binding.Handle(e)
			}
		}
	}
	return quit
}

// Screenshot saves the last rendered frame as a PNG.
func (a *App) Screenshot() (string, error) {
	pixels, w, h, err := a.renderer.ReadPixels()
	if err != nil {
		return "", fmt.Errorf("reading frame: %w", err)
	}
	path, err := a.screenshots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		return "", err
	}
	a.log.Info("screenshot saved", zap.String("path", path))
	return path, nil
}
