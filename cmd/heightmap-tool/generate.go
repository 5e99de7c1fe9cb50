package main

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/noise"
)

const maxGenerateSize = 4096

func cmdGenerate(args []string) {
	if len(args) < 2 {
		usage("generate <out.png> <size> [blur]")
	}
	size := parseInt("size", args[1])
	if size < 2 || size > maxGenerateSize {
		fail("size must be between 2 and %d", maxGenerateSize)
	}
	radius := 4.0
	if len(args) > 2 {
		radius = float64(parseFloat("blur", args[2]))
	}

	if err := saveGenerated(args[0], size, radius); err != nil {
		fail("%v", err)
	}
	fmt.Printf("wrote %s (%dx%d, blur %.1f)\n", style.path(args[0]), size, size, radius)

	if err := inspect(args[0]); err != nil {
		fail("%v", err)
	}
}

// generate returns a smooth grey heightmap: uniform noise softened by a
// gaussian blur of the given radius.
func generate(size int, radius float64) *image.RGBA {
	img := noise.Generate(size, size, &noise.Options{NoiseFn: noise.Uniform, Monochrome: true})
	if radius > 0 {
		img = blur.Gaussian(img, radius)
	}
	return img
}

func saveGenerated(path string, size int, radius float64) error {
	if err := imgio.Save(path, generate(size, radius), imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
