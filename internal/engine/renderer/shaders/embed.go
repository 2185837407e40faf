// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// HoleVertexShader is the vertex shader for hole surfaces and furniture.
//
//go:embed hole.vert
var HoleVertexShader string

// HoleFragmentShader is the fragment shader for hole surfaces and furniture.
//
//go:embed hole.frag
var HoleFragmentShader string
