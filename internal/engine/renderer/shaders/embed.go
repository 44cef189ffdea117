// Package shaders embeds the GLSL sources used by the GL backend.
package shaders

import _ "embed"

//go:embed mesh.vert
var MeshVertex string

//go:embed mesh.frag
var MeshFragment string
