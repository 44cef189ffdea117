package app

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/spinscene/internal/config"
	"github.com/Faultbox/spinscene/internal/engine/frame"
	"github.com/Faultbox/spinscene/internal/engine/renderer"
	"github.com/Faultbox/spinscene/internal/scenario"
)

func newTestApp(t *testing.T, name string, mutate func(*config.Config)) (*App, *renderer.NullBackend) {
	t.Helper()
	cfg := config.Default()
	cfg.Graphics.Width = 800
	cfg.Graphics.Height = 600
	cfg.Scene.Headless = true
	cfg.Debug.ScreenshotDir = t.TempDir()
	if mutate != nil {
		mutate(cfg)
	}

	s, err := scenario.Load(name)
	require.NoError(t, err)

	b := renderer.NewNullBackend()
	a := New(cfg, s, WithBackend(b), WithFrameInterval(0))
	require.NoError(t, a.Init())
	t.Cleanup(a.Dispose)
	return a, b
}

func TestInitBuildsSession(t *testing.T) {
	a, b := newTestApp(t, "dodecahedron", nil)

	assert.Equal(t, 3, a.Scene().Len())
	assert.InDelta(t, 800.0/600.0, a.Camera().Aspect, 1e-6)
	assert.Equal(t, 800, b.Width)
	assert.Equal(t, 600, b.Height)
	require.NotNil(t, a.Controls())
	assert.True(t, a.Controls().EnableDamping)
	assert.Equal(t, frame.Idle, a.Driver().State())
}

func TestInitWithoutControls(t *testing.T) {
	a, _ := newTestApp(t, "cube", nil)
	assert.Nil(t, a.Controls())
}

func TestControlsFollowConfig(t *testing.T) {
	a, _ := newTestApp(t, "cylinder", func(c *config.Config) {
		c.Controls.Damping = false
		c.Controls.TimeScaled = true
		c.Controls.ZoomSpeed = 2
	})

	c := a.Controls()
	require.NotNil(t, c)
	assert.False(t, c.EnableDamping)
	assert.True(t, c.TimeScaled)
	assert.Equal(t, float32(2), c.ZoomSpeed)
}

func TestRunCubeHundredFrames(t *testing.T) {
	a, b := newTestApp(t, "cube", func(c *config.Config) {
		c.Scene.Frames = 100
	})

	require.NoError(t, a.Run(context.Background()))

	assert.Equal(t, 100, a.Frames())
	assert.Equal(t, 100, b.Frames)
	cube := a.Scene().Drawables()[0]
	assert.InDelta(t, 1.0, cube.Transform.Rotation.X, 1e-4)
	assert.InDelta(t, 1.0, cube.Transform.Rotation.Y, 1e-4)
}

func TestRunStopsOnCancel(t *testing.T) {
	a, _ := newTestApp(t, "cube", nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, a.Run(ctx))
	assert.Zero(t, a.Frames())
}

func TestRunSurfaceLost(t *testing.T) {
	a, b := newTestApp(t, "cylinder", nil)
	b.LoseSurface()

	err := a.Run(context.Background())
	assert.True(t, errors.Is(err, renderer.ErrSurfaceLost), "got %v", err)
	assert.Equal(t, frame.Stopped, a.Driver().State())
}

func TestRunRequiresInit(t *testing.T) {
	s, err := scenario.Load("cube")
	require.NoError(t, err)
	a := New(config.Default(), s)
	assert.Error(t, a.Run(context.Background()))
}

func TestResize(t *testing.T) {
	a, b := newTestApp(t, "dodecahedron", nil)
	a.Renderer().SetPixelRatio(2)

	a.Resize(400, 300)

	assert.InDelta(t, 400.0/300.0, a.Camera().ProjectionAspect(), 1e-6)
	assert.False(t, a.Camera().Stale())
	assert.Equal(t, 400, a.Renderer().Surface().Width)
	assert.Equal(t, 300, a.Renderer().Surface().Height)
	assert.Equal(t, 800, b.Width)
	assert.Equal(t, 600, b.Height)
}

func TestResizeIdempotent(t *testing.T) {
	a, b := newTestApp(t, "cube", nil)

	a.Resize(640, 480)
	proj := a.Camera().Projection()
	calls := b.ViewportCalls()

	a.Resize(640, 480)
	assert.Equal(t, proj, a.Camera().Projection())
	assert.Equal(t, calls, b.ViewportCalls())
}

func TestResizeIgnoresZero(t *testing.T) {
	a, _ := newTestApp(t, "cube", nil)
	before := a.Camera().Projection()

	a.Resize(640, 0)
	a.Resize(0, 480)

	assert.Equal(t, before, a.Camera().Projection())
	assert.Equal(t, 800, a.Renderer().Surface().Width)
}

func TestScreenshot(t *testing.T) {
	a, _ := newTestApp(t, "cube", func(c *config.Config) {
		c.Scene.Frames = 1
	})
	require.NoError(t, a.Run(context.Background()))

	path, err := a.Screenshot()
	require.NoError(t, err)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestDisposeTwice(t *testing.T) {
	a, b := newTestApp(t, "cube", nil)
	a.Dispose()
	a.Dispose()
	assert.True(t, b.Closed)
}
