// Package frame drives the per-frame update and render loop.
package frame

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/spinscene/internal/engine/camera"
	"github.com/Faultbox/spinscene/internal/engine/scene"
	"github.com/Faultbox/spinscene/internal/logger"
)

// State is the driver lifecycle state.
type State int

const (
	Idle State = iota
	Scheduled
	Running
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Scheduled:
		return "scheduled"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// ErrAlreadyStarted is returned by Start on a driver that left Idle.
var ErrAlreadyStarted = errors.New("frame driver already started")

// Renderer draws one frame.
type Renderer interface {
	Render(s *scene.Scene, cam *camera.Perspective) error
}

// Controls is advanced once per tick after the mutators.
type Controls interface {
	Update(dt float64)
}

// maxDelta caps dt after stalls such as a dragged window.
const maxDelta = 0.25

// Driver runs mutators, controls and render in that order once per
// scheduled frame and re-registers itself until stopped.
type Driver struct {
	sched    Scheduler
	renderer Renderer
	scene    *scene.Scene
	camera   *camera.Perspective

	mutators []Mutator
	controls Controls

	// OnError is called once when a render error stops the driver.
	OnError func(error)

	state State
	err   error
	ticks uint64
	last  time.Time

	// FPS tracking
	fpsFrames int
	fpsStart  time.Time
	fps       float64
	log       *zap.Logger
}

// NewDriver creates an idle driver.
func NewDriver(sched Scheduler, r Renderer, s *scene.Scene, cam *camera.Perspective) *Driver {
	return &Driver{
		sched:    sched,
		renderer: r,
		scene:    s,
		camera:   cam,
		log:      logger.Named("frame"),
	}
}

// AddMutator appends a mutator. Mutators run in insertion order.
func (d *Driver) AddMutator(m Mutator) {
	if m != nil {
		d.mutators = append(d.mutators, m)
	}
}

// SetControls sets the controller advanced each tick.
func (d *Driver) SetControls(c Controls) {
	d.controls = c
}

// Start registers the first tick.
func (d *Driver) Start() error {
	if d.state != Idle {
		return ErrAlreadyStarted
	}
	d.state = Scheduled
	d.sched.RequestFrame(d.tick)
	d.log.Debug("driver started", zap.Int("mutators", len(d.mutators)))
	return nil
}

// Stop prevents further ticks. A pending callback becomes a no-op.
func (d *Driver) Stop() {
	if d.state == Stopped {
		return
	}
	d.state = Stopped
	d.log.Debug("driver stopped", zap.Uint64("ticks", d.ticks))
}

// State returns the current lifecycle state.
func (d *Driver) State() State {
	return d.state
}

// Err returns the render error that stopped the driver, if any.
func (d *Driver) Err() error {
	return d.err
}

// Ticks returns the number of completed ticks.
func (d *Driver) Ticks() uint64 {
	return d.ticks
}

// FPS returns the frame rate measured over the last full second.
func (d *Driver) FPS() float64 {
	return d.fps
}

func (d *Driver) tick(now time.Time) {
	if d.state != Scheduled {
		return
	}
	d.state = Running

	dt := 0.0
	if !d.last.IsZero() {
		dt = min(now.Sub(d.last).Seconds(), maxDelta)
	}
	d.last = now

	for _, m := range d.mutators {
		m.Mutate(dt)
	}
	if d.controls != nil {
		d.controls.Update(dt)
	}

	if err := d.renderer.Render(d.scene, d.camera); err != nil {
		d.fail(fmt.Errorf("tick %d: %w", d.ticks+1, err))
		return
	}
	d.ticks++
	d.trackFPS(now)

	// Stop may be called from a mutator or the renderer.
	if d.state != Running {
		return
	}
	d.state = Scheduled
	d.sched.RequestFrame(d.tick)
}

func (d *Driver) fail(err error) {
	d.state = Stopped
	d.err = err
	d.log.Error("render failed, stopping driver", zap.Error(err))
	if d.OnError != nil {
		d.OnError(err)
	}
}

func (d *Driver) trackFPS(now time.Time) {
	if d.fpsStart.IsZero() {
		d.fpsStart = now
	}
	d.fpsFrames++
	if elapsed := now.Sub(d.fpsStart); elapsed >= time.Second {
		d.fps = float64(d.fpsFrames) / elapsed.Seconds()
		d.log.Debug("fps",
			zap.Float64("fps", d.fps),
			zap.Uint64("ticks", d.ticks),
		)
		d.fpsFrames = 0
		d.fpsStart = now
	}
}
