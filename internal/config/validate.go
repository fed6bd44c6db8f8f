package config

import (
	"errors"
	"fmt"
	"math"
)

var resizeFilters = map[string]struct{}{
	"auto":       {},
	"nearest":    {},
	"approx":     {},
	"bilinear":   {},
	"catmullrom": {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateStitch(); err != nil {
		return err
	}
	if err := c.validateEngine(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateStitch() error {
	switch c.Stitch.Mode {
	case ModePanorama, ModeScans:
	default:
		return fmt.Errorf("stitch.mode must be %q or %q, got %q", ModePanorama, ModeScans, c.Stitch.Mode)
	}
	if math.IsNaN(c.Stitch.PanoConf) || c.Stitch.PanoConf < 0 || c.Stitch.PanoConf > 1 {
		return errors.New("stitch.pano_conf must be between 0 and 1")
	}
	if math.IsNaN(c.Stitch.Resize) || math.IsInf(c.Stitch.Resize, 0) || c.Stitch.Resize <= 0 {
		return errors.New("stitch.resize must be greater than 0")
	}
	if _, ok := resizeFilters[c.Stitch.ResizeFilter]; !ok {
		return fmt.Errorf("stitch.resize_filter: unsupported value %q", c.Stitch.ResizeFilter)
	}
	if c.Stitch.Output == "" {
		return errors.New("stitch.output must be set")
	}
	return nil
}

func (c *Config) validateEngine() error {
	switch c.Engine.Kind {
	case EngineBuiltin:
		return nil
	case EngineCommand:
		if c.Engine.Command == "" {
			return errors.New("engine.command must be set when engine.kind is \"command\"")
		}
		return nil
	default:
		return fmt.Errorf("engine.kind must be %q or %q, got %q", EngineBuiltin, EngineCommand, c.Engine.Kind)
	}
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
