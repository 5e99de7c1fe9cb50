package model

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quadOBJ = `# unit quad
o quad
v 0 0 0
v 1 0 0
v 1 0 1
v 0 0 1
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 1 0
f 1/1/1 2/2/1 3/3/1
f 1/1/1 3/3/1 4/4/1
`

func TestParseOBJ(t *testing.T) {
	mesh, err := ParseOBJ(strings.NewReader(quadOBJ))
	require.NoError(t, err)

	assert.Equal(t, 4, mesh.VertexCount(), "shared corners must be reused")
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, mesh.Indices)
	assert.Len(t, mesh.UVs, 8)
	assert.Len(t, mesh.Normals, 12)

	t.Run("flips v", func(t *testing.T) {
		// Corner 3 carries vt (1, 1).
		assert.Equal(t, float32(1), mesh.UVs[4])
		assert.Equal(t, float32(0), mesh.UVs[5])
		// Corner 1 carries vt (0, 0).
		assert.Equal(t, float32(1), mesh.UVs[1])
	})

	t.Run("normals", func(t *testing.T) {
		for i := 0; i < mesh.VertexCount(); i++ {
			assert.Equal(t, []float32{0, 1, 0}, mesh.Normals[3*i:3*i+3])
		}
	})

	t.Run("bounds", func(t *testing.T) {
		b := mesh.Bounds()
		assert.Equal(t, [3]float32{0, 0, 0}, b.Min)
		assert.Equal(t, [3]float32{1, 0, 1}, b.Max)
	})
}

func TestParseOBJSplitsAttributes(t *testing.T) {
	// The same position with two different normals must become two vertices.
	src := `v 0 0 0
v 1 0 0
v 0 1 0
vn 0 0 1
vn 0 0 -1
f 1//1 2//1 3//1
f 1//2 3//2 2//2
`
	mesh, err := ParseOBJ(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, 6, mesh.VertexCount())
	assert.Len(t, mesh.Indices, 6)
	assert.Equal(t, []float32{0, 0, 0, 0}, mesh.UVs[:4], "missing texture coordinates default to zero")
}

func TestParseOBJPolygonFan(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
v -1 0.5 0
f 1 2 3 4 5
`
	mesh, err := ParseOBJ(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3, 0, 3, 4}, mesh.Indices)
}

func TestParseOBJNegativeIndices(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 0 0 1
f -3 -2 -1
`
	mesh, err := ParseOBJ(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 0, 0, 1, 0, 0, 0, 0, 1}, mesh.Positions)
}

func TestParseOBJErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"short vertex", "v 1 2\n", "line 1"},
		{"bad float", "v 1 x 3\n", "line 1"},
		{"index out of range", "v 0 0 0\nf 1 2 3\n", "out of range"},
		{"two-corner face", "v 0 0 0\nv 1 1 1\nf 1 2\n", "at least 3"},
		{"no faces", "v 0 0 0\n", "no faces"},
		{"missing texture index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1/1 2/1 3/1\n", "out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOBJ(strings.NewReader(tt.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadOBJ(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.obj")
	require.NoError(t, os.WriteFile(path, []byte(quadOBJ), 0644))

	mesh, err := LoadOBJ(path)
	require.NoError(t, err)
	assert.Equal(t, 4, mesh.VertexCount())

	_, err = LoadOBJ(filepath.Join(t.TempDir(), "missing.obj"))
	assert.Error(t, err)
}

func TestNewModelTexture(t *testing.T) {
	tex := NewModelTexture(3)
	assert.Equal(t, float32(1), tex.ShineDamper)
	assert.Equal(t, 1, tex.NumberOfRows)
	assert.False(t, tex.HasTransparency)
}
