package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"panostitch/internal/services"
	"panostitch/internal/testsupport"
)

func TestOrderCommand(t *testing.T) {
	out, _, err := runCLI(t, []string{"order", "shot10.jpg", "shot2.jpg", "Shot1.jpg"}, "")
	if err != nil {
		t.Fatalf("order: %v", err)
	}
	requireOrder(t, out, "Order:", "Shot1.jpg", "shot2.jpg", "shot10.jpg")
}

func TestOrderCommandPrintsIdentifiers(t *testing.T) {
	args := []string{"order", filepath.Join("scans", "frame10.png"), filepath.Join("scans", "frame2.png")}
	out, _, err := runCLI(t, args, "")
	if err != nil {
		t.Fatalf("order: %v", err)
	}
	requireOrder(t, out, "Order:", "frame2.png", "frame10.png")
	if strings.Contains(out, "scans") {
		t.Fatalf("expected base names only, got %q", out)
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, env.configPath)

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected init to refuse overwriting without --overwrite")
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}, ""); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}

	out, _, err = runCLI(t, []string{"config", "validate"}, target)
	if err != nil {
		t.Fatalf("validate sample: %v", err)
	}
	requireContains(t, out, "engine: builtin")
}

func TestConfigValidateReportsBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	testsupport.WriteFile(t, path, []byte("[stitch]\npano_conf = 3.0\n"))

	_, _, err := runCLI(t, []string{"config", "validate"}, path)
	if err == nil || !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if code := services.ExitCode(err); code != services.ExitUsage {
		t.Fatalf("unexpected exit code %d", code)
	}
}

func TestCheckCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"check"}, env.configPath)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	requireContains(t, out, "Output directory")
	requireContains(t, out, "[OK]")
}

func TestCheckCommandMissingStitcher(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithCommandEngine("clearly-not-present-stitcher"))

	out, _, err := runCLI(t, []string{"check"}, env.configPath)
	if err == nil {
		t.Fatal("expected check to fail")
	}
	requireContains(t, out, "Stitcher")
	requireContains(t, out, "[ERROR]")
}

func TestLogFormatOverride(t *testing.T) {
	env := setupCLITestEnv(t)
	paths := env.writeTiles(t)

	_, stderr, err := runCLI(t, append([]string{"--log-format", "json", "stitch"}, paths...), env.configPath)
	if err != nil {
		t.Fatalf("stitch: %v", err)
	}
	requireContains(t, stderr, `"run_id"`)
	requireContains(t, stderr, `"msg":"assembly finished"`)
}

func TestStitchWritesLogFile(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithLogFile(filepath.Join("logs", "panostitch.log")))
	paths := env.writeTiles(t)

	if _, _, err := runCLI(t, append([]string{"stitch"}, paths...), env.configPath); err != nil {
		t.Fatalf("stitch: %v", err)
	}
	content, err := os.ReadFile(env.cfg.Logging.File)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	requireContains(t, string(content), "assembly finished")
}
