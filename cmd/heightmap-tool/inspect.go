package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/Faultbox/meadow/internal/engine/terrain"
)

func cmdInspect(args []string) {
	if len(args) < 1 {
		usage("inspect <heightmap>")
	}
	if err := inspect(args[0]); err != nil {
		fail("%v", err)
	}
}

func inspect(path string) error {
	tile, err := loadTile(path, 0, -1)
	if err != nil {
		return err
	}
	printInspection(path, tile)
	return nil
}

func printInspection(path string, tile *terrain.HeightField) {
	stats := tile.Stats()
	x, z := tile.Origin()

	fmt.Printf("Heightmap:    %s\n", style.path(path))
	fmt.Printf("Vertices:     %d x %d\n", tile.VertexCount(), tile.VertexCount())
	fmt.Printf("Tile:         origin (%.0f, %.0f), size %.0f\n", x, z, tile.Size())
	fmt.Printf("Height min:   %s\n", style.height(stats.Min))
	fmt.Printf("Height max:   %s\n", style.height(stats.Max))
	fmt.Printf("Height mean:  %s\n", style.height(stats.Mean))
	fmt.Printf("Fingerprint:  %s\n", style.accent(fmt.Sprintf("%016x", tile.Fingerprint())))
}

func cmdHeight(args []string) {
	if len(args) != 3 && len(args) != 5 {
		usage("height <heightmap> <x> <z> [gridX gridZ]")
	}

	gridX, gridZ := 0, -1
	if len(args) == 5 {
		gridX = parseInt("gridX", args[3])
		gridZ = parseInt("gridZ", args[4])
	}
	x := parseFloat("x", args[1])
	z := parseFloat("z", args[2])

	tile, err := loadTile(args[0], gridX, gridZ)
	if err != nil {
		fail("%v", err)
	}

	if !tile.Contains(x, z) {
		fmt.Printf("(%g, %g) is outside tile (%d, %d): %s\n", x, z, gridX, gridZ, style.warn("0"))
		return
	}
	fmt.Printf("height at (%g, %g): %s\n", x, z, style.height(tile.HeightAt(x, z)))
}

func cmdWatch(args []string) {
	if len(args) < 1 {
		usage("watch <heightmap>")
	}
	path, err := filepath.Abs(args[0])
	if err != nil {
		fail("%v", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		fail("watch: %v", err)
	}
	defer watcher.Close()

	// Editors often replace the file, so watch its directory.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		fail("watch %s: %v", filepath.Dir(path), err)
	}

	if err := inspect(path); err != nil {
		fmt.Fprintln(os.Stderr, style.warn(err.Error()))
	}
	fmt.Println(style.dim("watching for changes, Ctrl+C to stop"))

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != path || !event.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			fmt.Println()
			fmt.Println(style.dim(event.Op.String()))
			if err := inspect(path); err != nil {
				fmt.Fprintln(os.Stderr, style.warn(err.Error()))
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			fmt.Fprintln(os.Stderr, style.warn(err.Error()))
		}
	}
}
