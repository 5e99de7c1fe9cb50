package renderer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/meadow/internal/engine/model"
	"github.com/Faultbox/meadow/internal/engine/resource"
	"github.com/Faultbox/meadow/internal/engine/shader"
	"github.com/Faultbox/meadow/internal/engine/texture"
	"github.com/Faultbox/meadow/internal/logger"
)

// ErrBadMesh is returned when mesh arrays disagree on the vertex count.
var ErrBadMesh = errors.New("malformed mesh arrays")

// vertexArray is a VAO and the buffers it owns.
type vertexArray struct {
	vao     uint32
	buffers []uint32
	count   int32
}

// Loader uploads meshes and textures to the GPU and owns the GL names.
// All methods must be called on the thread that owns the GL context.
type Loader struct {
	vaos     *resource.Registry[vertexArray]
	textures *resource.Registry[uint32]

	// Anisotropy is the maximum anisotropic filtering level for textures.
	Anisotropy float32

	log *zap.Logger
}

// NewLoader creates an empty loader.
func NewLoader() *Loader {
	return &Loader{
		vaos:       resource.NewRegistry(deleteVertexArray),
		textures:   resource.NewRegistry(deleteTexture),
		Anisotropy: 8,
		log:        logger.Named("loader"),
	}
}

func deleteVertexArray(va vertexArray) error {
	gl.DeleteVertexArrays(1, &va.vao)
	if len(va.buffers) > 0 {
		gl.DeleteBuffers(int32(len(va.buffers)), &va.buffers[0])
	}
	return glError("delete vertex array")
}

func deleteTexture(id uint32) error {
	gl.DeleteTextures(1, &id)
	return glError("delete texture")
}

func glError(op string) error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("%s: gl error 0x%x", op, code)
	}
	return nil
}

// checkArrays reports whether indexed mesh arrays describe the same vertices.
func checkArrays(positions, uvs, normals []float32, indices []uint32) error {
	if len(positions) == 0 || len(positions)%3 != 0 {
		return fmt.Errorf("%w: %d position floats", ErrBadMesh, len(positions))
	}
	n := len(positions) / 3
	if len(uvs) != n*2 {
		return fmt.Errorf("%w: %d uv floats for %d vertices", ErrBadMesh, len(uvs), n)
	}
	if len(normals) != n*3 {
		return fmt.Errorf("%w: %d normal floats for %d vertices", ErrBadMesh, len(normals), n)
	}
	if len(indices) == 0 || len(indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices", ErrBadMesh, len(indices))
	}
	for _, idx := range indices {
		if int(idx) >= n {
			return fmt.Errorf("%w: index %d out of %d vertices", ErrBadMesh, idx, n)
		}
	}
	return nil
}

// LoadToVAO uploads an indexed mesh with position, texture coordinate and
// normal attributes.
func (l *Loader) LoadToVAO(positions, uvs, normals []float32, indices []uint32) (model.RawModel, error) {
	return l.loadIndexed("", positions, uvs, normals, indices)
}

func (l *Loader) loadIndexed(key string, positions, uvs, normals []float32, indices []uint32) (model.RawModel, error) {
	if err := checkArrays(positions, uvs, normals, indices); err != nil {
		return model.RawModel{}, err
	}

	va := vertexArray{count: int32(len(indices))}
	gl.GenVertexArrays(1, &va.vao)
	gl.BindVertexArray(va.vao)

	va.buffers = append(va.buffers, bindIndices(indices))
	va.buffers = append(va.buffers, storeAttribute(shader.AttribPosition, 3, positions))
	va.buffers = append(va.buffers, storeAttribute(shader.AttribUV, 2, uvs))
	va.buffers = append(va.buffers, storeAttribute(shader.AttribNormal, 3, normals))

	gl.BindVertexArray(0)

	if err := glError("upload mesh"); err != nil {
		_ = deleteVertexArray(va)
		return model.RawModel{}, err
	}

	h := l.vaos.AddNamed(key, va)
	l.log.Debug("mesh uploaded",
		zap.String("key", key),
		zap.Uint32("vao", va.vao),
		zap.Int("vertices", len(positions)/3),
		zap.Int("indices", len(indices)),
	)
	return model.RawModel{VAO: h, VertexCount: va.count}, nil
}

// LoadMesh uploads parsed mesh data.
func (l *Loader) LoadMesh(m *model.MeshData) (model.RawModel, error) {
	return l.LoadToVAO(m.Positions, m.UVs, m.Normals, m.Indices)
}

// LoadOBJ parses and uploads a Wavefront OBJ file. Repeated paths share
// one upload.
func (l *Loader) LoadOBJ(path string) (model.RawModel, error) {
	if h, ok := l.vaos.Lookup(path); ok {
		va, _ := l.vaos.Get(h)
		return model.RawModel{VAO: h, VertexCount: va.count}, nil
	}

	mesh, err := model.LoadOBJ(path)
	if err != nil {
		return model.RawModel{}, err
	}
	raw, err := l.loadIndexed(path, mesh.Positions, mesh.UVs, mesh.Normals, mesh.Indices)
	if err != nil {
		return model.RawModel{}, fmt.Errorf("upload %s: %w", path, err)
	}
	return raw, nil
}

// LoadPositions uploads a non-indexed array of positions with dimensions
// components each. It serves the sky cube and the GUI quad.
func (l *Loader) LoadPositions(positions []float32, dimensions int32) (model.RawModel, error) {
	if dimensions <= 0 || len(positions) == 0 || len(positions)%int(dimensions) != 0 {
		return model.RawModel{}, fmt.Errorf("%w: %d floats of %d components", ErrBadMesh, len(positions), dimensions)
	}

	va := vertexArray{count: int32(len(positions)) / dimensions}
	gl.GenVertexArrays(1, &va.vao)
	gl.BindVertexArray(va.vao)
	va.buffers = append(va.buffers, storeAttribute(shader.AttribPosition, dimensions, positions))
	gl.BindVertexArray(0)

	if err := glError("upload positions"); err != nil {
		_ = deleteVertexArray(va)
		return model.RawModel{}, err
	}

	h := l.vaos.Add(va)
	return model.RawModel{VAO: h, VertexCount: va.count}, nil
}

func bindIndices(indices []uint32) uint32 {
	var ebo uint32
	gl.GenBuffers(1, &ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)
	return ebo
}

func storeAttribute(slot uint32, size int32, data []float32) uint32 {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, unsafe.Pointer(&data[0]), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(slot, size, gl.FLOAT, false, 0, 0)
	gl.EnableVertexAttribArray(slot)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return vbo
}

// VAO returns the GL vertex array name behind h, or 0.
func (l *Loader) VAO(h resource.Handle) uint32 {
	va, _ := l.vaos.Get(h)
	return va.vao
}

// Texture returns the GL texture name behind h, or 0.
func (l *Loader) Texture(h resource.Handle) uint32 {
	id, _ := l.textures.Get(h)
	return id
}

// LoadTexture decodes and uploads a 2D texture with mipmaps. Repeated paths
// share one upload.
func (l *Loader) LoadTexture(path string) (resource.Handle, error) {
	if h, ok := l.textures.Lookup(path); ok {
		return h, nil
	}
	img, err := texture.LoadRGBA(path)
	if err != nil {
		return 0, fmt.Errorf("load texture: %w", err)
	}
	return l.UploadTexture(path, img), nil
}

// PreloadTextures decodes paths in parallel and uploads them in order on the
// calling thread. The returned handles match paths.
func (l *Loader) PreloadTextures(ctx context.Context, paths []string) ([]resource.Handle, error) {
	handles := make([]resource.Handle, len(paths))
	var pending []string
	var slots []int
	for i, path := range paths {
		if h, ok := l.textures.Lookup(path); ok {
			handles[i] = h
			continue
		}
		pending = append(pending, path)
		slots = append(slots, i)
	}

	images, err := texture.DecodeAll(ctx, pending)
	if err != nil {
		return nil, fmt.Errorf("preload textures: %w", err)
	}
	for j, img := range images {
		handles[slots[j]] = l.UploadTexture(pending[j], img)
	}

	l.log.Info("textures preloaded",
		zap.Int("requested", len(paths)),
		zap.Int("decoded", len(pending)),
	)
	return handles, nil
}

// UploadTexture uploads img as a mipmapped, repeating 2D texture registered
// under key.
func (l *Loader) UploadTexture(key string, img *image.RGBA) resource.Handle {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)

	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA,
		int32(img.Bounds().Dx()), int32(img.Bounds().Dy()),
		0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))

	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameterf(gl.TEXTURE_2D, gl.TEXTURE_LOD_BIAS, -0.4)
	if l.Anisotropy > 0 {
		gl.TexParameterf(gl.TEXTURE_2D, gl.TEXTURE_MAX_ANISOTROPY, l.Anisotropy)
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)

	h := l.textures.AddNamed(key, id)
	l.log.Debug("texture uploaded",
		zap.String("key", key),
		zap.Uint32("id", id),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()),
	)
	return h
}

// LoadCubeMap uploads six faces in the order right, left, top, bottom, back,
// front.
func (l *Loader) LoadCubeMap(ctx context.Context, faces [6]string) (resource.Handle, error) {
	key := cubeMapKey(faces)
	if h, ok := l.textures.Lookup(key); ok {
		return h, nil
	}

	images, err := texture.DecodeAll(ctx, faces[:])
	if err != nil {
		return 0, fmt.Errorf("load cube map: %w", err)
	}

	var id uint32
	gl.GenTextures(1, &id)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, id)
	for i, img := range images {
		gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(i), 0, gl.RGBA,
			int32(img.Bounds().Dx()), int32(img.Bounds().Dy()),
			0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	}
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)

	if err := glError("upload cube map"); err != nil {
		_ = deleteTexture(id)
		return 0, err
	}
	return l.textures.AddNamed(key, id), nil
}

func cubeMapKey(faces [6]string) string {
	return fmt.Sprintf("cube:%q", faces)
}

// Stats returns the number of live vertex arrays and textures.
func (l *Loader) Stats() (vaos, textures int) {
	return l.vaos.Len(), l.textures.Len()
}

// Close deletes every GL object the loader created.
func (l *Loader) Close() error {
	vaos, textures := l.Stats()
	l.log.Info("releasing GPU resources", zap.Int("vaos", vaos), zap.Int("textures", textures))
	return multierr.Combine(l.vaos.Close(), l.textures.Close())
}
