package scenario

import (
	"fmt"

	"github.com/Faultbox/spinscene/internal/engine/camera"
	"github.com/Faultbox/spinscene/internal/engine/frame"
	"github.com/Faultbox/spinscene/internal/engine/geometry"
	"github.com/Faultbox/spinscene/internal/engine/lighting"
	"github.com/Faultbox/spinscene/internal/engine/material"
	"github.com/Faultbox/spinscene/internal/engine/scene"
	"github.com/Faultbox/spinscene/internal/engine/sparkles"
	"github.com/Faultbox/spinscene/pkg/math"
)

// Built is a scenario instantiated into live engine objects.
type Built struct {
	Scene     *scene.Scene
	Camera    *camera.Perspective
	Drawables []*scene.Drawable // Top-level drawables in definition order
	Mutators  []frame.Mutator
	Controls  Controls
}

// Build creates the scene, camera and drawables, then lights, in that
// order. Aspect is the initial surface width over height.
func Build(s *Scenario, aspect float32) (*Built, error) {
	b := &Built{
		Scene:    scene.New(s.Background),
		Controls: s.Controls,
	}

	cam, err := camera.NewPerspective(s.Camera.FOV, aspect, s.Camera.Near, s.Camera.Far)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: camera: %w", s.Name, err)
	}
	cam.Position = s.Camera.Position.Math()
	cam.LookAt(s.Camera.Target.Math())
	b.Camera = cam

	for i, def := range s.Drawables {
		d, err := buildDrawable(def)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: drawable %d (%s): %w", s.Name, i, def.Name, err)
		}
		b.Scene.AddChild(d)
		b.Drawables = append(b.Drawables, d)

		if def.Spin != [2]float32{} {
			b.Mutators = append(b.Mutators, frame.Spin(d, def.Spin[0], def.Spin[1]))
		}

		if def.Sparkles != nil {
			sp, err := sparkles.New(sparkleOptions(*def.Sparkles))
			if err != nil {
				return nil, fmt.Errorf("scenario %s: drawable %s: sparkles: %w", s.Name, def.Name, err)
			}
			d.Add(sp.Drawable)
			b.Mutators = append(b.Mutators, sp)
		}
	}

	for i, def := range s.Lights {
		l, err := buildLight(def)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: light %d (%s): %w", s.Name, i, def.Name, err)
		}
		b.Scene.AddChild(l)
	}

	return b, nil
}

func buildDrawable(def Drawable) (*scene.Drawable, error) {
	g, err := buildGeometry(def.Geometry)
	if err != nil {
		return nil, err
	}
	m, err := buildMaterial(def.Material)
	if err != nil {
		return nil, err
	}

	d := scene.NewDrawable(def.Name, g, m)
	d.SetPosition(def.Position.Math())
	d.Transform.Rotation = def.Rotation.Math()
	return d, nil
}

func buildGeometry(def Geometry) (geometry.Geometry, error) {
	kind, err := geometry.ParseKind(def.Kind)
	if err != nil {
		return geometry.Geometry{}, err
	}

	switch kind {
	case geometry.KindBox:
		return geometry.Box(def.Width, def.Height, def.Depth), nil
	case geometry.KindDodecahedron:
		return geometry.Dodecahedron(def.Radius), nil
	case geometry.KindCylinder:
		return geometry.Cylinder(def.RadiusTop, def.RadiusBottom, def.Height, def.RadialSegments), nil
	}
	return geometry.Geometry{}, fmt.Errorf("geometry %s cannot be used for a mesh", kind)
}

func buildMaterial(def Material) (material.Material, error) {
	shading, err := material.ParseShading(def.Shading)
	if err != nil {
		return material.Material{}, err
	}

	var m material.Material
	switch shading {
	case material.Lambert:
		m = material.NewLambert(def.Color, def.Emissive)
	case material.Standard:
		m = material.NewStandard(def.Color, def.Emissive)
	default:
		return material.Material{}, fmt.Errorf("material %s cannot be used for a mesh", shading)
	}

	if def.Roughness != nil {
		m.Roughness = *def.Roughness
	}
	if def.Metalness != nil {
		m.Metalness = *def.Metalness
	}
	return m, nil
}

func buildLight(def Light) (*lighting.Light, error) {
	kind, err := lighting.ParseKind(def.Kind)
	if err != nil {
		return nil, err
	}

	var l *lighting.Light
	switch kind {
	case lighting.Directional:
		l = lighting.NewDirectional(def.Color, def.Intensity)
	case lighting.Point:
		l = lighting.NewPoint(def.Color, def.Intensity)
	case lighting.Spot:
		l = lighting.NewSpot(def.Color, def.Intensity)
		if def.Angle > 0 {
			l.Angle = math.Radians(def.Angle)
		}
		l.Penumbra = def.Penumbra
	}

	l.Name = def.Name
	l.Position = def.Position.Math()
	l.Target = def.Target.Math()
	l.Distance = def.Distance
	if def.Decay != nil {
		l.Decay = *def.Decay
	}
	return l, nil
}

func sparkleOptions(def Sparkles) sparkles.Options {
	opts := sparkles.DefaultOptions()
	if def.Count > 0 {
		opts.Count = def.Count
	}
	if def.Size > 0 {
		opts.Size = def.Size
	}
	if def.Scale != (Vec3{}) {
		opts.Scale = def.Scale.Math()
	}
	opts.Speed = def.Speed
	opts.Noise = def.Noise
	if def.Color != (material.Color{}) {
		opts.Color = def.Color
	}
	if def.Seed != 0 {
		opts.Seed = def.Seed
	}
	return opts
}
