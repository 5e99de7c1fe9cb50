package shaders

import (
	"strings"
	"testing"
)

func TestSourcesAreEmbedded(t *testing.T) {
	sources := map[string]string{
		"entity.vert":  EntityVertexShader,
		"entity.frag":  EntityFragmentShader,
		"terrain.vert": TerrainVertexShader,
		"terrain.frag": TerrainFragmentShader,
		"skybox.vert":  SkyboxVertexShader,
		"skybox.frag":  SkyboxFragmentShader,
		"gui.vert":     GUIVertexShader,
		"gui.frag":     GUIFragmentShader,
	}

	for name, src := range sources {
		if !strings.HasPrefix(src, "#version 410 core") {
			t.Errorf("%s: expected a 410 core version header", name)
		}
		if !strings.Contains(src, "void main()") {
			t.Errorf("%s: expected a main function", name)
		}
	}
}

func TestUniformsDeclared(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		uniforms []string
	}{
		{"entity", EntityVertexShader + EntityFragmentShader, []string{
			"transformationMatrix", "projectionMatrix", "viewMatrix",
			"lightPosition[MAX_LIGHTS]", "lightColour[MAX_LIGHTS]", "attenuation[MAX_LIGHTS]",
			"shineDamper", "reflectivity", "useFakeLighting", "skyColour", "numberOfRows", "offset",
		}},
		{"terrain", TerrainVertexShader + TerrainFragmentShader, []string{
			"transformationMatrix", "lightPosition[MAX_LIGHTS]",
			"backgroundTexture", "rTexture", "gTexture", "bTexture", "blendMap", "skyColour",
		}},
		{"skybox", SkyboxVertexShader + SkyboxFragmentShader, []string{
			"projectionMatrix", "viewMatrix", "cubeMap", "cubeMap2", "blendFactor", "fogColour",
		}},
		{"gui", GUIVertexShader + GUIFragmentShader, []string{
			"transformationMatrix", "guiTexture",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, u := range tt.uniforms {
				if !strings.Contains(tt.src, " "+u+";") {
					t.Errorf("expected uniform %s to be declared", u)
				}
			}
		})
	}
}

func TestLightCountMatches(t *testing.T) {
	// The lighting package packs exactly four lights.
	for _, src := range []string{EntityVertexShader, EntityFragmentShader, TerrainVertexShader, TerrainFragmentShader} {
		if !strings.Contains(src, "const int MAX_LIGHTS = 4;") {
			t.Error("expected MAX_LIGHTS = 4")
		}
	}
}
