package main

import (
	"bytes"
	"context"
	"image"
	"path/filepath"
	"strings"
	"testing"

	"panostitch/internal/config"
	"panostitch/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	imageDir   string
}

// setupCLITestEnv isolates HOME and the working directory, writes cfg to a
// config file, and returns the paths the tests need.
func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	t.Setenv("HOME", filepath.Join(base, "home"))
	t.Chdir(base)

	cfg := testsupport.NewConfig(t, opts...)
	configPath := filepath.Join(base, "panostitch-test.toml")
	testsupport.WriteConfig(t, configPath, cfg)

	return &cliTestEnv{
		cfg:        cfg,
		configPath: configPath,
		imageDir:   filepath.Join(base, "images"),
	}
}

// writeTiles cuts three overlapping tiles from one texture and writes them
// under names whose lexical order differs from their natural order.
func (e *cliTestEnv) writeTiles(t *testing.T) []string {
	t.Helper()

	world := testsupport.ValueNoise(420, 120, 12, 42)
	names := []string{"tile_1.png", "tile_2.png", "tile_10.png"}
	paths := make([]string, len(names))
	for i, tile := range testsupport.Tiles(world, len(names), 160, 100) {
		paths[i] = filepath.Join(e.imageDir, names[i])
		testsupport.WritePNG(t, paths[i], tile)
	}
	return paths
}

func (e *cliTestEnv) writeImage(t *testing.T, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(e.imageDir, name)
	testsupport.WritePNG(t, path, img)
	return path
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	return runCLIContext(t, context.Background(), args, configPath)
}

func runCLIContext(t *testing.T, ctx context.Context, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.ExecuteContext(ctx)
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func requireOrder(t *testing.T, output string, parts ...string) {
	t.Helper()
	offset := 0
	for _, part := range parts {
		idx := strings.Index(output[offset:], part)
		if idx < 0 {
			t.Fatalf("expected %q to appear after previous parts in %q", part, output)
		}
		offset += idx + len(part)
	}
}
