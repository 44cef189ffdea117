// Package camera provides the perspective camera and orbit controls.
package camera

import (
	"errors"
	"fmt"

	"github.com/Faultbox/spinscene/pkg/math"
)

// ErrInvalidPlanes is returned for a frustum that cannot be projected.
var ErrInvalidPlanes = errors.New("invalid camera planes")

type projectionParams struct {
	fov, aspect, near, far float32
}

// Perspective is a pinhole camera looking from Position at Target.
//
// The projection matrix is cached. After changing FOV, Aspect, Near or Far
// call Recompute before the next render, or the old projection is used.
type Perspective struct {
	FOV    float32 // Vertical field of view, degrees
	Aspect float32 // Width / height
	Near   float32
	Far    float32

	Position math.Vec3
	Target   math.Vec3
	Up       math.Vec3

	projection math.Mat4
	built      projectionParams
}

// NewPerspective creates a camera at the origin looking down -Z.
// It requires 0 < near < far and 0 < fov < 180.
func NewPerspective(fov, aspect, near, far float32) (*Perspective, error) {
	if near <= 0 || far <= near {
		return nil, fmt.Errorf("%w: near=%v far=%v", ErrInvalidPlanes, near, far)
	}
	if fov <= 0 || fov >= 180 {
		return nil, fmt.Errorf("%w: fov=%v", ErrInvalidPlanes, fov)
	}
	if aspect <= 0 {
		return nil, fmt.Errorf("%w: aspect=%v", ErrInvalidPlanes, aspect)
	}

	c := &Perspective{
		FOV:    fov,
		Aspect: aspect,
		Near:   near,
		Far:    far,
		Target: math.Vec3{Z: -1},
		Up:     math.Up,
	}
	c.Recompute()
	return c, nil
}

// SetAspect stores width/height as the new aspect ratio. It does not touch
// the projection; call Recompute afterwards. Non-positive sizes are ignored.
func (c *Perspective) SetAspect(width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	c.Aspect = float32(width) / float32(height)
	return true
}

// Recompute rebuilds the projection matrix from the current parameters.
func (c *Perspective) Recompute() {
	c.built = projectionParams{c.FOV, c.Aspect, c.Near, c.Far}
	c.projection = math.Perspective(math.Radians(c.FOV), c.Aspect, c.Near, c.Far)
}

// Stale reports whether parameters changed since the last Recompute.
func (c *Perspective) Stale() bool {
	return c.built != projectionParams{c.FOV, c.Aspect, c.Near, c.Far}
}

// Projection returns the cached projection matrix.
func (c *Perspective) Projection() math.Mat4 {
	return c.projection
}

// ProjectionAspect returns the aspect ratio the cached projection was built with.
func (c *Perspective) ProjectionAspect() float32 {
	return c.built.aspect
}

// LookAt points the camera at a world position.
func (c *Perspective) LookAt(target math.Vec3) {
	c.Target = target
}

// View returns the world-to-camera matrix.
func (c *Perspective) View() math.Mat4 {
	return math.LookAt(c.Position, c.Target, c.Up)
}

// ViewProjection returns Projection * View.
func (c *Perspective) ViewProjection() math.Mat4 {
	return c.projection.Mul(c.View())
}
