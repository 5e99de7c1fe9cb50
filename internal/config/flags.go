package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file (.yaml, .yml or .toml)")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagHeightmap  = flag.String("heightmap", "", "Heightmap image")
	flagSeed       = flag.Uint64("seed", 0, "Scenery placement seed")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	applyFlagsWith(cfg, setFlags())
}

// setFlags returns the names of the flags given on the command line.
func setFlags() map[string]bool {
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	return set
}

// applyFlagsWith applies overrides. Flags whose zero value is meaningful are
// only applied when named in set.
func applyFlagsWith(cfg *Config, set map[string]bool) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagHeightmap != "" {
		cfg.Terrain.Heightmap = *flagHeightmap
	}
	if set["seed"] {
		cfg.Scene.Seed = *flagSeed
	}
}
