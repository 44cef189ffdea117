// Package scene provides the retained-mode scene graph: a root scene that
// owns drawables and lights and is traversed by the renderer every frame.
package scene

import (
	"github.com/Faultbox/spinscene/internal/engine/lighting"
	"github.com/Faultbox/spinscene/internal/engine/material"
	"github.com/Faultbox/spinscene/pkg/math"
)

// Node is anything that can be added to a scene: *Drawable or *lighting.Light.
type Node interface {
	NodeName() string
}

// Scene is the root of the graph. There is one per render session.
type Scene struct {
	Background material.Color

	children []Node
}

// New creates an empty scene with the given background color.
func New(background material.Color) *Scene {
	return &Scene{Background: background}
}

// AddChild inserts a node. Order does not affect the rendered result.
// Nil nodes are ignored.
func (s *Scene) AddChild(n Node) {
	if n == nil {
		return
	}
	s.children = append(s.children, n)
}

// Len returns the number of direct children.
func (s *Scene) Len() int {
	return len(s.children)
}

// Children returns the direct children in insertion order.
func (s *Scene) Children() []Node {
	return append([]Node(nil), s.children...)
}

// Traverse visits every node, nested drawables included, depth first.
// world is the node's model-to-world matrix; lights are visited with identity.
func (s *Scene) Traverse(fn func(n Node, world math.Mat4)) {
	for _, n := range s.children {
		switch v := n.(type) {
		case *Drawable:
			v.traverse(math.Identity(), fn)
		default:
			fn(n, math.Identity())
		}
	}
}

// Drawables returns all drawables in traversal order.
func (s *Scene) Drawables() []*Drawable {
	var out []*Drawable
	s.Traverse(func(n Node, _ math.Mat4) {
		if d, ok := n.(*Drawable); ok {
			out = append(out, d)
		}
	})
	return out
}

// Lights returns all lights in traversal order.
func (s *Scene) Lights() []*lighting.Light {
	var out []*lighting.Light
	for _, n := range s.children {
		if l, ok := n.(*lighting.Light); ok {
			out = append(out, l)
		}
	}
	return out
}
