package game

import (
	"github.com/Faultbox/meadow/internal/engine/renderer"
	"github.com/Faultbox/meadow/pkg/math"
)

// ModelAsset names the mesh and texture of one entity kind and its surface
// flags.
type ModelAsset struct {
	OBJ     string
	Texture string

	HasTransparency bool
	UseFakeLighting bool
	AtlasRows       int
	ShineDamper     float32
	Reflectivity    float32
}

// GUIAsset is a screen overlay.
type GUIAsset struct {
	Texture  string
	Position math.Vec2
	Scale    math.Vec2
}

// Manifest lists every asset the scene loads, relative to the assets root.
type Manifest struct {
	Player      ModelAsset
	Tree        ModelAsset
	LowPolyTree ModelAsset
	Grass       ModelAsset
	Fern        ModelAsset
	Flower      ModelAsset
	Lamp        ModelAsset

	TerrainBackground string
	TerrainR          string
	TerrainG          string
	TerrainB          string
	BlendMap          string

	DaySky   renderer.SkyboxFaces
	NightSky renderer.SkyboxFaces

	GUIs []GUIAsset
}

// DefaultManifest returns the stock asset layout.
func DefaultManifest() Manifest {
	foliage := func(tex string) ModelAsset {
		return ModelAsset{
			OBJ:             "models/grassModel.obj",
			Texture:         tex,
			HasTransparency: true,
			UseFakeLighting: true,
		}
	}
	return Manifest{
		Player:      ModelAsset{OBJ: "models/stanfordBunny.obj", Texture: "textures/white.png"},
		Tree:        ModelAsset{OBJ: "models/tree.obj", Texture: "textures/tree.png"},
		LowPolyTree: ModelAsset{OBJ: "models/lowPolyTree.obj", Texture: "textures/lowPolyTree.png"},
		Grass:       foliage("textures/grassTexture.png"),
		Fern: ModelAsset{
			OBJ:             "models/fern.obj",
			Texture:         "textures/fern.png",
			HasTransparency: true,
			AtlasRows:       2,
		},
		Flower: foliage("textures/flower.png"),
		Lamp:   ModelAsset{OBJ: "models/lamp.obj", Texture: "textures/lamp.png", UseFakeLighting: true},

		TerrainBackground: "textures/grassy.png",
		TerrainR:          "textures/dirt.png",
		TerrainG:          "textures/pinkFlowers.png",
		TerrainB:          "textures/path.png",
		BlendMap:          "textures/blendMap.png",

		DaySky: renderer.SkyboxFaces{
			"textures/right.png", "textures/left.png", "textures/top.png",
			"textures/bottom.png", "textures/back.png", "textures/front.png",
		},
		NightSky: renderer.SkyboxFaces{
			"textures/nightRight.png", "textures/nightLeft.png", "textures/nightTop.png",
			"textures/nightBottom.png", "textures/nightBack.png", "textures/nightFront.png",
		},

		GUIs: []GUIAsset{
			{Texture: "textures/emblem.png", Position: math.Vec2{X: -0.8, Y: -0.5}, Scale: math.Vec2{X: 0.2, Y: 0.4}},
			{Texture: "textures/badge.png", Position: math.Vec2{X: 0.8, Y: 0.8}, Scale: math.Vec2{X: 0.05, Y: 0.1}},
		},
	}
}

// models returns the model assets in a fixed order.
func (m Manifest) models() []ModelAsset {
	return []ModelAsset{m.Player, m.Tree, m.LowPolyTree, m.Grass, m.Fern, m.Flower, m.Lamp}
}

// Textures returns every distinct 2D texture path, in first-use order.
// Sky faces are loaded as cube maps and are not included.
func (m Manifest) Textures() []string {
	seen := make(map[string]bool)
	var out []string
	add := func(p string) {
		if p != "" && !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	for _, a := range m.models() {
		add(a.Texture)
	}
	for _, p := range []string{m.TerrainBackground, m.TerrainR, m.TerrainG, m.TerrainB, m.BlendMap} {
		add(p)
	}
	for _, g := range m.GUIs {
		add(g.Texture)
	}
	return out
}

// Resolve returns a copy of m with every path rewritten by resolve.
func (m Manifest) Resolve(resolve func(string) string) Manifest {
	model := func(a ModelAsset) ModelAsset {
		a.OBJ = resolve(a.OBJ)
		a.Texture = resolve(a.Texture)
		return a
	}
	m.Player = model(m.Player)
	m.Tree = model(m.Tree)
	m.LowPolyTree = model(m.LowPolyTree)
	m.Grass = model(m.Grass)
	m.Fern = model(m.Fern)
	m.Flower = model(m.Flower)
	m.Lamp = model(m.Lamp)

	m.TerrainBackground = resolve(m.TerrainBackground)
	m.TerrainR = resolve(m.TerrainR)
	m.TerrainG = resolve(m.TerrainG)
	m.TerrainB = resolve(m.TerrainB)
	m.BlendMap = resolve(m.BlendMap)

	for i := range m.DaySky {
		m.DaySky[i] = resolve(m.DaySky[i])
		m.NightSky[i] = resolve(m.NightSky[i])
	}

	guis := make([]GUIAsset, len(m.GUIs))
	for i, g := range m.GUIs {
		g.Texture = resolve(g.Texture)
		guis[i] = g
	}
	m.GUIs = guis
	return m
}
