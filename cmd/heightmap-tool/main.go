// heightmap-tool is a CLI utility for inspecting and generating terrain
// heightmaps.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/Faultbox/meadow/internal/engine/model"
	"github.com/Faultbox/meadow/internal/engine/terrain"
	"github.com/Faultbox/meadow/internal/engine/texture"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "inspect", "info":
		cmdInspect(args)
	case "height":
		cmdHeight(args)
	case "pick":
		cmdPick(args)
	case "generate", "gen":
		cmdGenerate(args)
	case "watch":
		cmdWatch(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`heightmap-tool - terrain heightmap utility

Usage:
  heightmap-tool <command> [options]

Commands:
  inspect <heightmap>                          Show size, height range and fingerprint
  height <heightmap> <x> <z> [gridX gridZ]     Terrain height at a world position
  pick <heightmap> <camX> <camY> <camZ> <pitch> <yaw> <cursorX> <cursorY> [width height]
                                               Terrain point under a cursor
  generate <out.png> <size> [blur]             Write a blurred noise heightmap
  watch <heightmap>                            Re-inspect on every change

Tiles default to grid (0,-1), size 800 and max height 40.

Examples:
  heightmap-tool inspect res/textures/heightmap.png
  heightmap-tool height res/textures/heightmap.png 100 -300
  heightmap-tool pick res/textures/heightmap.png 400 100 -400 30 0 640 360
  heightmap-tool generate island.png 256 6`)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func usage(line string) {
	fmt.Fprintln(os.Stderr, "Usage: heightmap-tool "+line)
	os.Exit(1)
}

// headless satisfies terrain.Uploader without a GPU.
type headless struct{}

func (headless) LoadToVAO(_, _, _ []float32, indices []uint32) (model.RawModel, error) {
	return model.RawModel{VertexCount: int32(len(indices))}, nil
}

func loadTile(path string, gridX, gridZ int) (*terrain.HeightField, error) {
	pixels, err := texture.LoadPixelBuffer(path)
	if err != nil {
		return nil, err
	}
	return terrain.New(gridX, gridZ, pixels, terrain.DefaultOptions(), headless{})
}

func parseFloat(name, s string) float32 {
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		fail("%s: %v", name, err)
	}
	return float32(v)
}

func parseInt(name, s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		fail("%s: %v", name, err)
	}
	return v
}
