// Package sparkles animates a cloud of glowing points around a drawable.
package sparkles

import (
	"math/rand/v2"

	"github.com/chewxy/math32"

	"github.com/Faultbox/spinscene/internal/engine/geometry"
	"github.com/Faultbox/spinscene/internal/engine/material"
	"github.com/Faultbox/spinscene/internal/engine/scene"
	"github.com/Faultbox/spinscene/pkg/math"
)

// Options configures a sparkle cloud.
type Options struct {
	Count int
	Size  float32   // Point size in pixels at unit distance scale
	Scale math.Vec3 // Extent of the cloud
	Speed float32   // Phase advance per tick
	Noise float32   // Drift amplitude
	Color material.Color
	Seed  uint64
}

// DefaultOptions returns a small orange cloud.
func DefaultOptions() Options {
	return Options{
		Count: 100,
		Size:  6,
		Scale: math.One3,
		Speed: 0.002,
		Noise: 0.2,
		Color: material.Hex(0xffa500),
		Seed:  1,
	}
}

type particle struct {
	base  math.Vec3
	phase math.Vec3
	freq  float32
}

// Sparkles owns a point-cloud drawable and drifts its points each tick.
type Sparkles struct {
	Drawable *scene.Drawable

	opts      Options
	particles []particle
	time      float32
}

// New builds the cloud. Attach Drawable to a parent to make it follow.
func New(opts Options) (*Sparkles, error) {
	g := geometry.PointCloud(opts.Count, opts.Scale, opts.Seed)
	mesh, err := geometry.Build(g)
	if err != nil {
		return nil, err
	}

	d := scene.NewDrawable("sparkles", g, material.NewPoints(opts.Color, opts.Size))
	d.Mesh = mesh

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed+1))
	particles := make([]particle, mesh.VertexCount())
	for i := range particles {
		particles[i] = particle{
			base: mesh.Position(i),
			phase: math.Vec3{
				X: rng.Float32() * 2 * math32.Pi,
				Y: rng.Float32() * 2 * math32.Pi,
				Z: rng.Float32() * 2 * math32.Pi,
			},
			freq: 0.5 + rng.Float32(),
		}
	}

	return &Sparkles{Drawable: d, opts: opts, particles: particles}, nil
}

// Len returns the number of points.
func (s *Sparkles) Len() int {
	return len(s.particles)
}

// Mutate advances the animation by one tick.
func (s *Sparkles) Mutate(float64) {
	s.time += s.opts.Speed * 60
	v := s.Drawable.Mesh.Vertices
	for i, p := range s.particles {
		t := s.time * p.freq
		o := i * geometry.FloatsPerVertex
		v[o+0] = p.base.X + math32.Sin(t+p.phase.X)*s.opts.Noise
		v[o+1] = p.base.Y + math32.Sin(t+p.phase.Y)*s.opts.Noise
		v[o+2] = p.base.Z + math32.Sin(t+p.phase.Z)*s.opts.Noise
	}
	s.Drawable.Version++
}
