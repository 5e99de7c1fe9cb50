// Package config handles application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
)

// ErrInvalid is returned by Validate for settings the renderer or the picker
// cannot work with.
var ErrInvalid = errors.New("invalid config")

// Config holds all settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics" toml:"graphics"`
	Terrain  TerrainConfig  `yaml:"terrain" toml:"terrain"`
	Picker   PickerConfig   `yaml:"picker" toml:"picker"`
	Camera   CameraConfig   `yaml:"camera" toml:"camera"`
	Player   PlayerConfig   `yaml:"player" toml:"player"`
	Scene    SceneConfig    `yaml:"scene" toml:"scene"`
	Assets   AssetsConfig   `yaml:"assets" toml:"assets"`
	Logging  LoggingConfig  `yaml:"logging" toml:"logging"`
}

// GraphicsConfig holds display and projection settings.
type GraphicsConfig struct {
	Width      int     `yaml:"width" toml:"width"`
	Height     int     `yaml:"height" toml:"height"`
	Fullscreen bool    `yaml:"fullscreen" toml:"fullscreen"`
	VSync      bool    `yaml:"vsync" toml:"vsync"`
	FPSLimit   int     `yaml:"fps_limit" toml:"fps_limit"`
	FOV        float32 `yaml:"fov" toml:"fov"`
	Near       float32 `yaml:"near" toml:"near"`
	Far        float32 `yaml:"far" toml:"far"`
}

// TerrainConfig describes the terrain tile.
type TerrainConfig struct {
	Heightmap string  `yaml:"heightmap" toml:"heightmap"` // relative to assets.root unless absolute
	GridX     int     `yaml:"grid_x" toml:"grid_x"`
	GridZ     int     `yaml:"grid_z" toml:"grid_z"`
	Size      float32 `yaml:"size" toml:"size"`
	MaxHeight float32 `yaml:"max_height" toml:"max_height"`
}

// PickerConfig tunes the mouse picker's ray search.
type PickerConfig struct {
	RayRange       float32 `yaml:"ray_range" toml:"ray_range"`
	RecursionCount int     `yaml:"recursion_count" toml:"recursion_count"`
}

// CameraConfig tunes the third-person camera.
type CameraConfig struct {
	Distance    float32 `yaml:"distance" toml:"distance"`
	MinDistance float32 `yaml:"min_distance" toml:"min_distance"`
	MaxDistance float32 `yaml:"max_distance" toml:"max_distance"`
	Pitch       float32 `yaml:"pitch" toml:"pitch"`
	MinPitch    float32 `yaml:"min_pitch" toml:"min_pitch"`
	MaxPitch    float32 `yaml:"max_pitch" toml:"max_pitch"`
	ZoomSpeed   float32 `yaml:"zoom_speed" toml:"zoom_speed"`
	PitchSpeed  float32 `yaml:"pitch_speed" toml:"pitch_speed"`
	AngleSpeed  float32 `yaml:"angle_speed" toml:"angle_speed"`
}

// PlayerConfig tunes player movement.
type PlayerConfig struct {
	RunSpeed  float32 `yaml:"run_speed" toml:"run_speed"`
	TurnSpeed float32 `yaml:"turn_speed" toml:"turn_speed"`
	Gravity   float32 `yaml:"gravity" toml:"gravity"`
	JumpPower float32 `yaml:"jump_power" toml:"jump_power"`
}

// SceneConfig controls scenery placement.
type SceneConfig struct {
	Seed                uint64 `yaml:"seed" toml:"seed"`
	Iterations          int    `yaml:"iterations" toml:"iterations"`
	TreeEvery           int    `yaml:"tree_every" toml:"tree_every"`
	GrassEvery          int    `yaml:"grass_every" toml:"grass_every"`
	LowPolyTreeEvery    int    `yaml:"lowpoly_tree_every" toml:"lowpoly_tree_every"`
	FernsPerIteration   int    `yaml:"ferns_per_iteration" toml:"ferns_per_iteration"`
	FlowersPerIteration int    `yaml:"flowers_per_iteration" toml:"flowers_per_iteration"`
}

// AssetsConfig locates models and textures.
type AssetsConfig struct {
	Root string `yaml:"root" toml:"root"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Default returns a Config with the reference values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
			FOV:        70,
			Near:       0.1,
			Far:        1000,
		},
		Terrain: TerrainConfig{
			Heightmap: "textures/heightmap.png",
			GridX:     0,
			GridZ:     -1,
			Size:      800,
			MaxHeight: 40,
		},
		Picker: PickerConfig{
			RayRange:       600,
			RecursionCount: 200,
		},
		Camera: CameraConfig{
			Distance:    50,
			MinDistance: 5,
			MaxDistance: 400,
			Pitch:       20,
			MinPitch:    -10,
			MaxPitch:    89,
			ZoomSpeed:   0.1,
			PitchSpeed:  0.2,
			AngleSpeed:  0.3,
		},
		Player: PlayerConfig{
			RunSpeed:  20,
			TurnSpeed: 160,
			Gravity:   -50,
			JumpPower: 30,
		},
		Scene: SceneConfig{
			Seed:                1,
			Iterations:          500,
			TreeEvery:           20,
			GrassEvery:          5,
			LowPolyTreeEvery:    50,
			FernsPerIteration:   1,
			FlowersPerIteration: 1,
		},
		Assets: AssetsConfig{
			Root: "res",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports settings that cannot produce a picture.
func (c *Config) Validate() error {
	switch {
	case c.Graphics.Width <= 0 || c.Graphics.Height <= 0:
		return fmt.Errorf("%w: viewport %dx%d", ErrInvalid, c.Graphics.Width, c.Graphics.Height)
	case c.Graphics.Near <= 0 || c.Graphics.Near >= c.Graphics.Far:
		return fmt.Errorf("%w: clip planes near=%g far=%g", ErrInvalid, c.Graphics.Near, c.Graphics.Far)
	case c.Graphics.FOV <= 0 || c.Graphics.FOV >= 180:
		return fmt.Errorf("%w: fov %g", ErrInvalid, c.Graphics.FOV)
	case c.Picker.RecursionCount < 1:
		return fmt.Errorf("%w: recursion count %d", ErrInvalid, c.Picker.RecursionCount)
	case c.Picker.RayRange <= 0:
		return fmt.Errorf("%w: ray range %g", ErrInvalid, c.Picker.RayRange)
	case c.Terrain.Size <= 0:
		return fmt.Errorf("%w: terrain size %g", ErrInvalid, c.Terrain.Size)
	case c.Scene.Iterations < 0:
		return fmt.Errorf("%w: %d scene iterations", ErrInvalid, c.Scene.Iterations)
	}
	return nil
}

// AssetPath resolves rel against the assets root. Absolute paths are
// returned unchanged.
func (c *Config) AssetPath(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(c.Assets.Root, rel)
}

// HeightmapPath returns the resolved heightmap path.
func (c *Config) HeightmapPath() string {
	return c.AssetPath(c.Terrain.Heightmap)
}
