package main

import (
	"fmt"

	"github.com/Faultbox/meadow/internal/engine/picking"
	"github.com/Faultbox/meadow/pkg/math"
)

type fixedCamera struct {
	position   math.Vec3
	pitch, yaw float32
}

func (c fixedCamera) Position() math.Vec3 { return c.position }
func (c fixedCamera) Pitch() float32      { return c.pitch }
func (c fixedCamera) Yaw() float32        { return c.yaw }

type cursor struct{ x, y float32 }

func (c cursor) Cursor() (float32, float32) { return c.x, c.y }

func cmdPick(args []string) {
	if len(args) != 8 && len(args) != 10 {
		usage("pick <heightmap> <camX> <camY> <camZ> <pitch> <yaw> <cursorX> <cursorY> [width height]")
	}

	cam := fixedCamera{
		position: math.Vec3{
			X: parseFloat("camX", args[1]),
			Y: parseFloat("camY", args[2]),
			Z: parseFloat("camZ", args[3]),
		},
		pitch: parseFloat("pitch", args[4]),
		yaw:   parseFloat("yaw", args[5]),
	}
	cur := cursor{x: parseFloat("cursorX", args[6]), y: parseFloat("cursorY", args[7])}
	vp := picking.Viewport{Width: 1280, Height: 720}
	if len(args) == 10 {
		vp.Width = parseFloat("width", args[8])
		vp.Height = parseFloat("height", args[9])
	}
	if !vp.Valid() {
		fail("viewport %gx%g is empty", vp.Width, vp.Height)
	}

	tile, err := loadTile(args[0], 0, -1)
	if err != nil {
		fail("%v", err)
	}

	picker := picking.NewMousePicker(math.DefaultProjection(vp.Width, vp.Height), vp, tile, picking.DefaultOptions())
	picker.Update(cam, cur)

	if ray, ok := picker.CurrentRay(); ok {
		fmt.Printf("ray:    %s\n", style.dim(fmt.Sprintf("(%.4f, %.4f, %.4f)", ray.Direction.X, ray.Direction.Y, ray.Direction.Z)))
	} else {
		fmt.Printf("ray:    %s\n", style.warn("none"))
	}

	point, ok := picker.CurrentTerrainPoint()
	if !ok {
		fmt.Printf("point:  %s\n", style.warn("no terrain under cursor"))
		return
	}
	fmt.Printf("point:  %s\n", style.accent(fmt.Sprintf("(%.2f, %.2f, %.2f)", point.X, point.Y, point.Z)))
	fmt.Printf("ground: %s\n", style.height(tile.HeightAt(point.X, point.Z)))
}
