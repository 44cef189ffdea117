package input

import "github.com/veandco/go-sdl2/sdl"

// OrbitTarget receives pointer gestures in pixels and wheel ticks.
type OrbitTarget interface {
	Rotate(dx, dy float32)
	Pan(dx, dy float32)
	Zoom(delta float32)
}

type dragMode int

const (
	dragNone dragMode = iota
	dragRotate
	dragPan
)

// OrbitBinding maps mouse events onto orbit gestures: left drag rotates,
// right or middle drag pans, the wheel zooms.
type OrbitBinding struct {
	target OrbitTarget
	mode   dragMode
}

// NewOrbitBinding creates a binding for target.
func NewOrbitBinding(target OrbitTarget) *OrbitBinding {
	return &OrbitBinding{target: target}
}

// Dragging reports whether a drag gesture is in progress.
func (b *OrbitBinding) Dragging() bool {
	return b.mode != dragNone
}

// Handle feeds one event. Returns true if the event was consumed.
func (b *OrbitBinding) Handle(e Event) bool {
	switch e.Type {
	case EventMouseDown:
		switch e.Button {
		case sdl.BUTTON_LEFT:
			b.mode = dragRotate
		case sdl.BUTTON_RIGHT, sdl.BUTTON_MIDDLE:
			b.mode = dragPan
		default:
			return false
		}
		return true

	case EventMouseUp:
		if b.mode == dragNone {
			return false
		}
		b.mode = dragNone
		return true

	case EventMouseMove:
		switch b.mode {
		case dragRotate:
			b.target.Rotate(float32(e.DeltaX), float32(e.DeltaY))
		case dragPan:
			b.target.Pan(float32(e.DeltaX), float32(e.DeltaY))
		default:
			return false
		}
		return true

	case EventMouseWheel:
		if e.DeltaY == 0 {
			return false
		}
		// Wheel up moves closer.
		b.target.Zoom(float32(e.DeltaY))
		return true
	}
	return false
}
