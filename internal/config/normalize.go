package config

import (
	"fmt"
	"strings"
)

// Normalize trims and lowercases enum fields and expands path fields. Load calls
// it automatically; callers that apply flag overrides afterwards call it again.
func (c *Config) Normalize() error {
	if err := c.normalizeStitch(); err != nil {
		return err
	}
	c.normalizeEngine()
	if err := c.normalizeLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) normalizeStitch() error {
	c.Stitch.Mode = strings.ToLower(strings.TrimSpace(c.Stitch.Mode))
	if c.Stitch.Mode == "" {
		c.Stitch.Mode = defaultMode
	}
	c.Stitch.ResizeFilter = strings.ToLower(strings.TrimSpace(c.Stitch.ResizeFilter))
	if c.Stitch.ResizeFilter == "" {
		c.Stitch.ResizeFilter = defaultResizeFilter
	}
	output := strings.TrimSpace(c.Stitch.Output)
	if output == "" {
		output = defaultOutput
	}
	var err error
	if c.Stitch.Output, err = expandPath(output); err != nil {
		return fmt.Errorf("stitch.output: %w", err)
	}
	return nil
}

func (c *Config) normalizeEngine() {
	c.Engine.Kind = strings.ToLower(strings.TrimSpace(c.Engine.Kind))
	if c.Engine.Kind == "" {
		c.Engine.Kind = defaultEngineKind
	}
	c.Engine.Command = strings.TrimSpace(c.Engine.Command)
	if c.Engine.TimeoutSeconds < 0 {
		c.Engine.TimeoutSeconds = 0
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.File) == "" {
		c.Logging.File = ""
		return nil
	}
	var err error
	if c.Logging.File, err = expandPath(strings.TrimSpace(c.Logging.File)); err != nil {
		return fmt.Errorf("logging.file: %w", err)
	}
	return nil
}
