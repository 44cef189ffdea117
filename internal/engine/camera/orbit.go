package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/spinscene/pkg/math"
)

// restEpsilon is the velocity below which damped motion snaps to zero.
const restEpsilon = 1e-6

// OrbitControls orbits a camera around its target: drag rotates, wheel
// zooms, and secondary drag pans. Input accumulates into a velocity that
// Update applies once per frame.
type OrbitControls struct {
	camera *Perspective

	Enabled       bool
	EnableRotate  bool
	EnableZoom    bool
	EnablePan     bool
	EnableDamping bool
	DampingFactor float32 // Fraction of the velocity applied per frame
	TimeScaled    bool    // Scale decay by frame time (60 Hz reference)

	RotateSpeed float32
	ZoomSpeed   float32
	PanSpeed    float32

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPolar    float32 // Polar angle from +Y, radians
	MaxPolar    float32

	viewportHeight float32

	// Pending motion
	deltaTheta float32
	deltaPhi   float32
	scale      float32
	panOffset  math.Vec3
}

// NewOrbitControls attaches controls to a camera with default settings.
func NewOrbitControls(cam *Perspective) *OrbitControls {
	return &OrbitControls{
		camera:         cam,
		Enabled:        true,
		EnableRotate:   true,
		EnableZoom:     true,
		EnablePan:      true,
		DampingFactor:  0.05,
		RotateSpeed:    1,
		ZoomSpeed:      1,
		PanSpeed:       1,
		MinDistance:    0.1,
		MaxDistance:    1000,
		MinPolar:       0.001,
		MaxPolar:       math32.Pi - 0.001,
		viewportHeight: 600,
		scale:          1,
	}
}

// SetViewportHeight sets the pixel height drag distances are measured against.
func (c *OrbitControls) SetViewportHeight(h int) {
	if h > 0 {
		c.viewportHeight = float32(h)
	}
}

// Rotate handles a primary-button drag of (dx, dy) pixels.
// Dragging the full viewport height turns the camera one full circle.
func (c *OrbitControls) Rotate(dx, dy float32) {
	if !c.Enabled || !c.EnableRotate {
		return
	}
	k := 2 * math32.Pi / c.viewportHeight * c.RotateSpeed
	c.deltaTheta -= dx * k
	c.deltaPhi -= dy * k
}

// Zoom handles wheel motion; positive delta moves the camera closer.
func (c *OrbitControls) Zoom(delta float32) {
	if !c.Enabled || !c.EnableZoom || delta == 0 {
		return
	}
	step := math32.Pow(0.95, c.ZoomSpeed*math32.Abs(delta))
	if delta > 0 {
		c.scale *= step
	} else {
		c.scale /= step
	}
}

// Pan handles a secondary-button drag of (dx, dy) pixels, moving the
// target in the camera's screen plane.
func (c *OrbitControls) Pan(dx, dy float32) {
	if !c.Enabled || !c.EnablePan {
		return
	}
	offset := c.camera.Position.Sub(c.camera.Target)
	// Distance covered by the full viewport height at the target.
	span := 2 * offset.Length() * math32.Tan(math.Radians(c.camera.FOV)/2)
	k := span / c.viewportHeight * c.PanSpeed

	view := c.camera.View()
	right := math.Vec3{X: view[0], Y: view[4], Z: view[8]}
	up := math.Vec3{X: view[1], Y: view[5], Z: view[9]}
	c.panOffset = c.panOffset.Add(right.Scale(-dx * k)).Add(up.Scale(dy * k))
}

// Velocity returns the pending angular motion (azimuth, polar) in radians.
func (c *OrbitControls) Velocity() (theta, phi float32) {
	return c.deltaTheta, c.deltaPhi
}

// PanVelocity returns the pending target motion.
func (c *OrbitControls) PanVelocity() math.Vec3 {
	return c.panOffset
}

// Update applies pending motion to the camera. dt is the frame time in
// seconds and only matters when TimeScaled is set. With damping, a fraction
// of the velocity is applied and the rest decays geometrically, so it never
// changes sign or grows.
func (c *OrbitControls) Update(dt float64) {
	if !c.Enabled {
		return
	}
	cam := c.camera

	keep := float32(0)
	if c.EnableDamping {
		keep = c.decay(dt)
	}
	apply := 1 - keep

	sph := math.SphericalFromVec3(cam.Position.Sub(cam.Target))
	sph.Theta += c.deltaTheta * apply
	sph.Phi = math.Clamp(sph.Phi+c.deltaPhi*apply, c.MinPolar, c.MaxPolar)
	sph.Radius = math.Clamp(sph.Radius*c.scale, c.MinDistance, c.MaxDistance)

	cam.Target = cam.Target.Add(c.panOffset.Scale(apply))
	cam.Position = cam.Target.Add(sph.Vec3())

	c.scale = 1
	c.deltaTheta = settle(c.deltaTheta * keep)
	c.deltaPhi = settle(c.deltaPhi * keep)
	c.panOffset = math.Vec3{
		X: settle(c.panOffset.X * keep),
		Y: settle(c.panOffset.Y * keep),
		Z: settle(c.panOffset.Z * keep),
	}
}

// decay returns the fraction of velocity kept after one frame.
func (c *OrbitControls) decay(dt float64) float32 {
	keep := math.Clamp(1-c.DampingFactor, 0, 1)
	if !c.TimeScaled {
		return keep
	}
	frames := float32(dt * 60)
	if frames <= 0 {
		frames = 1
	}
	return math32.Pow(keep, frames)
}

func settle(v float32) float32 {
	if math32.Abs(v) < restEpsilon {
		return 0
	}
	return v
}
