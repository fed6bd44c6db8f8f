package testsupport

import (
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"panostitch/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config whose output lands in a per-test temp directory.
// Resize defaults to 1 so fixture geometry is preserved.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Stitch.Resize = 1
	cfgVal.Stitch.Output = filepath.Join(base, "out", "composite.png")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.Normalize(); err != nil {
		t.Fatalf("normalize test config: %v", err)
	}
	return builder.cfg
}

// WithMode overrides the stitch mode.
func WithMode(mode string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Stitch.Mode = mode
	}
}

// WithResize overrides the resize factor.
func WithResize(scale float64) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Stitch.Resize = scale
	}
}

// WithOutput places the composite at name inside the test's base directory.
func WithOutput(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Stitch.Output = filepath.Join(b.baseDir, name)
	}
}

// WriteConfig marshals cfg as TOML to path.
func WriteConfig(t testing.TB, path string, cfg *config.Config) {
	t.Helper()

	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	WriteFile(t, path, data)
}

// WithCommandEngine switches the engine to an external stitcher binary.
func WithCommandEngine(binary string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Engine.Kind = config.EngineCommand
		b.cfg.Engine.Command = binary
	}
}

// WithLogFile sends a copy of every log line to name inside the test's base
// directory.
func WithLogFile(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Logging.File = filepath.Join(b.baseDir, name)
	}
}
