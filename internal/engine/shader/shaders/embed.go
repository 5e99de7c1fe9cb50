// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// EntityVertexShader is the vertex shader for lit, textured entities.
//
//go:embed entity.vert
var EntityVertexShader string

// EntityFragmentShader is the fragment shader for lit, textured entities.
//
//go:embed entity.frag
var EntityFragmentShader string

// TerrainVertexShader is the vertex shader for terrain rendering.
//
//go:embed terrain.vert
var TerrainVertexShader string

// TerrainFragmentShader blends the four terrain textures by the blend map.
//
//go:embed terrain.frag
var TerrainFragmentShader string

// SkyboxVertexShader is the vertex shader for the sky cube.
//
//go:embed skybox.vert
var SkyboxVertexShader string

// SkyboxFragmentShader mixes the night and day cube maps.
//
//go:embed skybox.frag
var SkyboxFragmentShader string

//go:embed gui.vert
var GUIVertexShader string

//go:embed gui.frag
var GUIFragmentShader string
