// Package scenario describes demo scenes as YAML and builds them into a
// scene graph, camera and per-tick mutators.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/spinscene/internal/engine/material"
	"github.com/Faultbox/spinscene/pkg/math"
)

// ErrUnknownScenario is returned when no built-in scenario has the name.
var ErrUnknownScenario = errors.New("unknown scenario")

// Vec3 is a YAML [x, y, z] triple.
type Vec3 [3]float32

// Math converts to a vector.
func (v Vec3) Math() math.Vec3 {
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}

// Scenario is one demo scene definition.
type Scenario struct {
	Name       string         `yaml:"name"`
	Title      string         `yaml:"title"`
	Background material.Color `yaml:"background"`
	Camera     Camera         `yaml:"camera"`
	Controls   Controls       `yaml:"controls"`
	Drawables  []Drawable     `yaml:"drawables"`
	Lights     []Light        `yaml:"lights"`
}

// Camera holds perspective camera parameters.
type Camera struct {
	FOV      float32 `yaml:"fov"`
	Near     float32 `yaml:"near"`
	Far      float32 `yaml:"far"`
	Position Vec3    `yaml:"position"`
	Target   Vec3    `yaml:"target"`
}

// Controls enables orbit interaction.
type Controls struct {
	Enabled       bool    `yaml:"enabled"`
	Damping       bool    `yaml:"damping"`
	DampingFactor float32 `yaml:"damping_factor"`
	Zoom          bool    `yaml:"zoom"`
	Pan           bool    `yaml:"pan"`
}

// Geometry is a shape descriptor. Only the fields of its kind are used.
type Geometry struct {
	Kind           string  `yaml:"kind"`
	Width          float32 `yaml:"width"`
	Height         float32 `yaml:"height"`
	Depth          float32 `yaml:"depth"`
	Radius         float32 `yaml:"radius"`
	RadiusTop      float32 `yaml:"radius_top"`
	RadiusBottom   float32 `yaml:"radius_bottom"`
	RadialSegments int     `yaml:"radial_segments"`
}

// Material is a surface descriptor.
type Material struct {
	Shading   string         `yaml:"shading"`
	Color     material.Color `yaml:"color"`
	Emissive  material.Color `yaml:"emissive"`
	Roughness *float32       `yaml:"roughness"`
	Metalness *float32       `yaml:"metalness"`
}

// Sparkles attaches an animated point cloud to a drawable.
type Sparkles struct {
	Count int            `yaml:"count"`
	Size  float32        `yaml:"size"`
	Scale Vec3           `yaml:"scale"`
	Speed float32        `yaml:"speed"`
	Noise float32        `yaml:"noise"`
	Color material.Color `yaml:"color"`
	Seed  uint64         `yaml:"seed"`
}

// Drawable is a mesh placed in the scene. Spin is the per-tick rotation
// added to the X and Y Euler angles.
type Drawable struct {
	Name     string     `yaml:"name"`
	Geometry Geometry   `yaml:"geometry"`
	Material Material   `yaml:"material"`
	Position Vec3       `yaml:"position"`
	Rotation Vec3       `yaml:"rotation"`
	Spin     [2]float32 `yaml:"spin"`
	Sparkles *Sparkles  `yaml:"sparkles"`
}

// Light is a light source descriptor.
type Light struct {
	Name      string         `yaml:"name"`
	Kind      string         `yaml:"kind"`
	Color     material.Color `yaml:"color"`
	Intensity float32        `yaml:"intensity"`
	Position  Vec3           `yaml:"position"`
	Target    Vec3           `yaml:"target"`
	Distance  float32        `yaml:"distance"`
	Decay     *float32       `yaml:"decay"`
	Angle     float32        `yaml:"angle"` // Degrees
	Penumbra  float32        `yaml:"penumbra"`
}

// Parse decodes a scenario. Unknown fields are rejected.
func Parse(data []byte) (*Scenario, error) {
	s := &Scenario{
		Background: material.White,
		Camera: Camera{
			FOV:      75,
			Near:     0.1,
			Far:      1000,
			Position: Vec3{0, 0, 5},
		},
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	if s.Name == "" {
		return nil, errors.New("parsing scenario: missing name")
	}
	return s, nil
}

// Names lists the built-in scenarios in sorted order.
func Names() []string {
	entries, err := fs.ReadDir(builtin, "scenarios")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	slices.Sort(names)
	return names
}

// Load returns a built-in scenario by name.
func Load(name string) (*Scenario, error) {
	data, err := builtin.ReadFile(path.Join("scenarios", name+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownScenario, name, strings.Join(Names(), ", "))
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", name, err)
	}
	return s, nil
}

// LoadFile reads a scenario from disk.
func LoadFile(filename string) (*Scenario, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return s, nil
}
