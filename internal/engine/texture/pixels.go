package texture

import (
	"image"
)

// PixelBuffer is an interleaved RGB byte buffer, three bytes per pixel, rows
// top to bottom. Alpha is dropped.
type PixelBuffer struct {
	width  int
	height int
	pix    []byte
}

// NewPixelBuffer copies the colour channels of img into a PixelBuffer.
func NewPixelBuffer(img image.Image) *PixelBuffer {
	rgba := ToRGBA(img)
	w, h := rgba.Rect.Dx(), rgba.Rect.Dy()

	pb := &PixelBuffer{
		width:  w,
		height: h,
		pix:    make([]byte, 3*w*h),
	}
	for y := 0; y < h; y++ {
		row := rgba.Pix[y*rgba.Stride:]
		for x := 0; x < w; x++ {
			src := row[4*x:]
			dst := pb.pix[3*(y*w+x):]
			dst[0], dst[1], dst[2] = src[0], src[1], src[2]
		}
	}
	return pb
}

// LoadPixelBuffer reads an image file into a PixelBuffer.
func LoadPixelBuffer(path string) (*PixelBuffer, error) {
	img, err := Load(path)
	if err != nil {
		return nil, err
	}
	return NewPixelBuffer(img), nil
}

// Width returns the image width in pixels.
func (pb *PixelBuffer) Width() int { return pb.width }

// Height returns the image height in pixels.
func (pb *PixelBuffer) Height() int { return pb.height }

// RGB returns the pixel at (x, y) packed as R<<16 | G<<8 | B.
// Coordinates outside the image read as 0.
func (pb *PixelBuffer) RGB(x, y int) int32 {
	if x < 0 || y < 0 || x >= pb.width || y >= pb.height {
		return 0
	}
	i := 3*y*pb.width + 3*x
	return int32(pb.pix[i])<<16 | int32(pb.pix[i+1])<<8 | int32(pb.pix[i+2])
}
