package terrain

import (
	"encoding/binary"
	"fmt"
	gomath "math"

	"github.com/cespare/xxhash/v2"
	"github.com/chewxy/math32"

	"github.com/Faultbox/meadow/internal/engine/model"
	"github.com/Faultbox/meadow/internal/engine/resource"
	"github.com/Faultbox/meadow/pkg/math"
)

// Uploader hands mesh arrays to the GPU and returns the uploaded model.
type Uploader interface {
	LoadToVAO(positions, uvs, normals []float32, indices []uint32) (model.RawModel, error)
}

// TexturePack holds the textures a terrain tile blends between: the
// background texture and one texture per blend-map channel.
type TexturePack struct {
	Background resource.Handle
	R          resource.Handle
	G          resource.Handle
	B          resource.Handle
	BlendMap   resource.Handle
}

// HeightField is one terrain tile. Its heights are fixed at construction.
type HeightField struct {
	x, z        float32
	size        float32
	vertexCount int
	heights     [][]float32

	model    model.RawModel
	textures TexturePack
}

// New builds the tile at grid position (gridX, gridZ) from src and uploads
// its mesh through up. The tile's origin is (gridX*Size, gridZ*Size).
func New(gridX, gridZ int, src PixelSource, opts Options, up Uploader) (*HeightField, error) {
	mesh, heights, err := Generate(src, opts)
	if err != nil {
		return nil, err
	}

	raw, err := up.LoadToVAO(mesh.Positions, mesh.UVs, mesh.Normals, mesh.Indices)
	if err != nil {
		return nil, fmt.Errorf("upload terrain mesh: %w", err)
	}

	hf := newHeightField(gridX, gridZ, opts.Size, heights)
	hf.model = raw
	return hf, nil
}

// FromHeights builds a tile directly from a square height grid indexed
// [x][z], without a GPU mesh.
func FromHeights(gridX, gridZ int, size float32, heights [][]float32) (*HeightField, error) {
	n := len(heights)
	if n < 2 {
		return nil, fmt.Errorf("%w: %d rows", ErrTooSmall, n)
	}
	for _, col := range heights {
		if len(col) != n {
			return nil, fmt.Errorf("%w: column of %d in a grid of %d", ErrNotSquare, len(col), n)
		}
	}
	return newHeightField(gridX, gridZ, size, cloneGrid(heights)), nil
}

func newHeightField(gridX, gridZ int, size float32, heights [][]float32) *HeightField {
	return &HeightField{
		x:           float32(gridX) * size,
		z:           float32(gridZ) * size,
		size:        size,
		vertexCount: len(heights),
		heights:     heights,
	}
}

// HeightAt returns the terrain height at world position (worldX, worldZ),
// interpolated across the triangle of the grid cell that contains it.
// Positions outside the tile return 0.
func (hf *HeightField) HeightAt(worldX, worldZ float32) float32 {
	terrainX := worldX - hf.x
	terrainZ := worldZ - hf.z
	gridSquare := hf.size / float32(hf.vertexCount-1)

	cellX, xCoord := floorCell(terrainX, gridSquare)
	cellZ, zCoord := floorCell(terrainZ, gridSquare)

	limit := float32(hf.vertexCount - 1)
	if !(cellX >= 0 && cellZ >= 0 && cellX < limit && cellZ < limit) {
		return 0
	}
	gx, gz := int(cellX), int(cellZ)

	h := hf.heights
	pos := math.Vec2{X: xCoord, Y: zCoord}
	if xCoord <= 1-zCoord {
		return math.Barycentric(
			math.Vec3{X: 0, Y: h[gx][gz], Z: 0},
			math.Vec3{X: 1, Y: h[gx+1][gz], Z: 0},
			math.Vec3{X: 0, Y: h[gx][gz+1], Z: 1},
			pos,
		)
	}
	return math.Barycentric(
		math.Vec3{X: 1, Y: h[gx+1][gz], Z: 0},
		math.Vec3{X: 1, Y: h[gx+1][gz+1], Z: 1},
		math.Vec3{X: 0, Y: h[gx][gz+1], Z: 1},
		pos,
	)
}

// Contains reports whether (worldX, worldZ) lies on the tile.
func (hf *HeightField) Contains(worldX, worldZ float32) bool {
	tx, tz := worldX-hf.x, worldZ-hf.z
	return tx >= 0 && tz >= 0 && tx < hf.size && tz < hf.size
}

// Clone returns a copy of the tile with its own height grid. The GPU model
// and textures are shared handles.
func (hf *HeightField) Clone() *HeightField {
	c := *hf
	c.heights = cloneGrid(hf.heights)
	return &c
}

// VertexCount returns the number of grid vertices per side.
func (hf *HeightField) VertexCount() int { return hf.vertexCount }

// Size returns the world-space side length of the tile.
func (hf *HeightField) Size() float32 { return hf.size }

// Origin returns the world-space X and Z of the tile's corner.
func (hf *HeightField) Origin() (x, z float32) { return hf.x, hf.z }

// GridHeight returns the stored height at grid vertex (x, z), or 0 outside
// the grid.
func (hf *HeightField) GridHeight(x, z int) float32 {
	return gridHeight(hf.heights, x, z)
}

// Model returns the uploaded terrain mesh.
func (hf *HeightField) Model() model.RawModel { return hf.model }

// Textures returns the texture pack used to shade the tile.
func (hf *HeightField) Textures() TexturePack { return hf.textures }

// SetTextures assigns the texture pack used to shade the tile.
func (hf *HeightField) SetTextures(pack TexturePack) { hf.textures = pack }

// Stats summarises the height grid.
type Stats struct {
	Min, Max, Mean float32
}

// Stats returns the minimum, maximum and mean stored height.
func (hf *HeightField) Stats() Stats {
	s := Stats{Min: math32.Inf(1), Max: math32.Inf(-1)}
	var sum float64
	for _, col := range hf.heights {
		for _, h := range col {
			s.Min = math32.Min(s.Min, h)
			s.Max = math32.Max(s.Max, h)
			sum += float64(h)
		}
	}
	s.Mean = float32(sum / float64(hf.vertexCount*hf.vertexCount))
	return s
}

// Fingerprint hashes the height grid, so two tiles built from the same
// heightmap report the same value.
func (hf *HeightField) Fingerprint() uint64 {
	d := xxhash.New()
	var buf [4]byte
	for _, col := range hf.heights {
		for _, h := range col {
			binary.LittleEndian.PutUint32(buf[:], gomath.Float32bits(h))
			_, _ = d.Write(buf[:])
		}
	}
	return d.Sum64()
}

func cloneGrid(src [][]float32) [][]float32 {
	dst := make([][]float32, len(src))
	for i, col := range src {
		dst[i] = append([]float32(nil), col...)
	}
	return dst
}
