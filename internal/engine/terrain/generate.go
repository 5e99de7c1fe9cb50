// Package terrain builds square height-field tiles from heightmap images and
// answers height queries on them.
package terrain

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/meadow/internal/engine/model"
	"github.com/Faultbox/meadow/pkg/math"
)

const (
	// DefaultSize is the world-space side length of one tile.
	DefaultSize float32 = 800
	// DefaultMaxHeight bounds generated heights to [-DefaultMaxHeight, DefaultMaxHeight].
	DefaultMaxHeight float32 = 40
	// MaxPixelColour is the number of distinct packed 24-bit colours.
	MaxPixelColour = 256 * 256 * 256

	// normalGrain keeps finite-difference samples inside the tile at its edges.
	normalGrain float32 = 0.99
)

var (
	// ErrNotSquare is returned for heightmaps whose width differs from their height.
	ErrNotSquare = errors.New("heightmap is not square")
	// ErrTooSmall is returned for heightmaps with fewer than two pixels per side.
	ErrTooSmall = errors.New("heightmap needs at least 2 pixels per side")
)

// PixelSource is a decoded heightmap image.
type PixelSource interface {
	Width() int
	Height() int
	// RGB returns the pixel at (x, y) packed as R<<16 | G<<8 | B.
	RGB(x, y int) int32
}

// Options controls tile generation.
type Options struct {
	Size      float32
	MaxHeight float32
}

// DefaultOptions returns the reference tile size and height range.
func DefaultOptions() Options {
	return Options{
		Size:      DefaultSize,
		MaxHeight: DefaultMaxHeight,
	}
}

// HeightValue converts a packed 24-bit colour to a height in
// [-maxHeight, maxHeight). The colour range is centred on 2^23, so
// RGB(128, 0, 0) is exactly zero; flat mid-gray (128, 128, 128) lands at
// 32896/2^23*maxHeight, about 0.157 for a max height of 40.
func HeightValue(rgb int32, maxHeight float32) float32 {
	const half = MaxPixelColour / 2
	h := float32(rgb) - half
	h /= half
	return h * maxHeight
}

// Generate samples every pixel of src into a height grid and builds the
// matching mesh in one pass. The grid is indexed heights[x][z].
//
// Vertex (x, z) sits at (x/(n-1)*Size, height, z/(n-1)*Size). Each grid cell
// emits the triangles (topLeft, bottomLeft, topRight) and
// (topRight, bottomLeft, bottomRight).
func Generate(src PixelSource, opts Options) (*model.MeshData, [][]float32, error) {
	n := src.Height()
	if src.Width() != n {
		return nil, nil, fmt.Errorf("%w: %dx%d", ErrNotSquare, src.Width(), n)
	}
	if n < 2 {
		return nil, nil, fmt.Errorf("%w: %dx%d", ErrTooSmall, src.Width(), n)
	}

	heights := make([][]float32, n)
	for x := range heights {
		heights[x] = make([]float32, n)
		for z := range heights[x] {
			heights[x][z] = HeightValue(src.RGB(x, z), opts.MaxHeight)
		}
	}

	count := n * n
	mesh := &model.MeshData{
		Positions: make([]float32, 0, count*3),
		Normals:   make([]float32, 0, count*3),
		UVs:       make([]float32, 0, count*2),
		Indices:   make([]uint32, 0, 6*(n-1)*(n-1)),
	}

	last := float32(n - 1)
	for z := 0; z < n; z++ {
		for x := 0; x < n; x++ {
			u := float32(x) / last
			v := float32(z) / last
			mesh.Positions = append(mesh.Positions, u*opts.Size, heights[x][z], v*opts.Size)

			normal := calculateNormal(heights, x, z)
			mesh.Normals = append(mesh.Normals, normal.X, normal.Y, normal.Z)

			mesh.UVs = append(mesh.UVs, u, v)
		}
	}

	for gz := 0; gz < n-1; gz++ {
		for gx := 0; gx < n-1; gx++ {
			topLeft := uint32(gz*n + gx)
			topRight := topLeft + 1
			bottomLeft := uint32((gz+1)*n + gx)
			bottomRight := bottomLeft + 1
			mesh.Indices = append(mesh.Indices,
				topLeft, bottomLeft, topRight,
				topRight, bottomLeft, bottomRight,
			)
		}
	}

	return mesh, heights, nil
}

// calculateNormal estimates the surface normal at grid vertex (x, z) from
// neighbouring heights sampled normalGrain cells away.
func calculateNormal(heights [][]float32, x, z int) math.Vec3 {
	fx, fz := float32(x), float32(z)
	left := gridHeight(heights, int(fx-normalGrain), z)
	right := gridHeight(heights, int(fx+normalGrain), z)
	down := gridHeight(heights, x, int(fz-normalGrain))
	up := gridHeight(heights, x, int(fz+normalGrain))

	return math.Vec3{X: left - right, Y: 2, Z: down - up}.Normalize()
}

func gridHeight(heights [][]float32, x, z int) float32 {
	if x < 0 || z < 0 || x >= len(heights) || z >= len(heights[x]) {
		return 0
	}
	return heights[x][z]
}

// floorCell returns floor(v / cell) and the fractional position inside that
// cell.
func floorCell(v, cell float32) (float32, float32) {
	return math32.Floor(v / cell), math32.Mod(v, cell) / cell
}
