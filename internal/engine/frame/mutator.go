package frame

import "github.com/Faultbox/spinscene/internal/engine/scene"

// Mutator changes scene state once per tick, before controls and render.
// dt is the time since the previous tick in seconds.
type Mutator interface {
	Mutate(dt float64)
}

// MutatorFunc adapts a function to Mutator.
type MutatorFunc func(dt float64)

// Mutate implements Mutator.
func (f MutatorFunc) Mutate(dt float64) { f(dt) }

// Spin rotates a drawable by a fixed angle per tick about X and Y.
// Rotation speed follows the tick rate, not wall time.
func Spin(d *scene.Drawable, dx, dy float32) Mutator {
	return MutatorFunc(func(float64) {
		d.RotateBy(dx, dy)
	})
}
