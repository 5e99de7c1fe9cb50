// Package texture decodes image files into RGBA images for GPU upload and into
// packed RGB pixel buffers for heightmap sampling.
package texture

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
)

// ErrNotImage is returned when data does not carry a known image signature.
var ErrNotImage = errors.New("not an image")

// Decode decodes image bytes. The content is sniffed before decoding so a
// mislabelled file fails with ErrNotImage instead of a decoder error.
func Decode(data []byte) (image.Image, error) {
	if !filetype.IsImage(data) {
		return nil, ErrNotImage
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return img, nil
}

// Load reads and decodes an image file.
func Load(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	img, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// ToRGBA converts any image to a zero-origin *image.RGBA.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// LoadRGBA reads, decodes and converts an image file to RGBA.
func LoadRGBA(path string) (*image.RGBA, error) {
	img, err := Load(path)
	if err != nil {
		return nil, err
	}
	return ToRGBA(img), nil
}

// DecodeAll loads every path concurrently. Results keep the order of paths.
// The first failure cancels the remaining work and is returned.
func DecodeAll(ctx context.Context, paths []string) ([]*image.RGBA, error) {
	out := make([]*image.RGBA, len(paths))
	g, ctx := errgroup.WithContext(ctx)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rgba, err := LoadRGBA(path)
			if err != nil {
				return err
			}
			out[i] = rgba
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
