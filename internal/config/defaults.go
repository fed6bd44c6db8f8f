package config

const (
	defaultConfigPath   = "~/.config/panostitch/config.toml"
	defaultMode         = ModePanorama
	defaultPanoConf     = 0.1
	defaultResize       = 0.85
	defaultResizeFilter = "auto"
	defaultOutput       = "ai-panorama.jpg"
	defaultEngineKind   = EngineBuiltin
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
)

// Recognised stitch modes.
const (
	ModePanorama = "panorama"
	ModeScans    = "scans"
)

// Recognised engine kinds.
const (
	EngineBuiltin = "builtin"
	EngineCommand = "command"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Stitch: Stitch{
			Mode:         defaultMode,
			PanoConf:     defaultPanoConf,
			Resize:       defaultResize,
			ResizeFilter: defaultResizeFilter,
			Output:       defaultOutput,
		},
		Engine: Engine{
			Kind: defaultEngineKind,
			Args: []string{"--mode", "{mode}", "--conf_thresh", "{conf}", "--output", "{output}", "{inputs}"},
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
