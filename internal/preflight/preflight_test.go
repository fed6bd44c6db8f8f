package preflight

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"panostitch/internal/config"
	"panostitch/internal/deps"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckOutputDirectory_Creatable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b")
	result := CheckOutputDirectory("out", path)
	if !result.Passed {
		t.Fatalf("expected missing but creatable dir to pass, got: %s", result.Detail)
	}
	if !strings.Contains(result.Detail, "will be created") {
		t.Fatalf("unexpected detail: %s", result.Detail)
	}
}

func TestCheckOutputDirectory_UnderFile(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckOutputDirectory("out", filepath.Join(f, "sub"))
	if result.Passed {
		t.Fatal("expected failure when ancestor is a file")
	}
}

func TestRunAllBuiltinEngine(t *testing.T) {
	cfg := config.Default()
	cfg.Stitch.Output = filepath.Join(t.TempDir(), "pano.jpg")

	results := RunAll(&cfg)
	if len(results) != 1 {
		t.Fatalf("expected only the output check for builtin engine, got %#v", results)
	}
	if len(Failed(results)) != 0 {
		t.Fatalf("unexpected failures: %#v", Failed(results))
	}
}

func TestRunAllCommandEngineMissingBinary(t *testing.T) {
	cfg := config.Default()
	cfg.Stitch.Output = filepath.Join(t.TempDir(), "pano.jpg")
	cfg.Engine.Kind = config.EngineCommand
	cfg.Engine.Command = "clearly-not-present-stitcher"

	failed := Failed(RunAll(&cfg))
	if len(failed) != 1 || failed[0].Name != "Stitcher" {
		t.Fatalf("expected missing stitcher failure, got %#v", failed)
	}
}

func TestRunAllCommandEngineFound(t *testing.T) {
	bin := filepath.Join(t.TempDir(), "stitcher")
	if err := os.WriteFile(bin, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.Stitch.Output = filepath.Join(t.TempDir(), "pano.jpg")
	cfg.Engine.Kind = config.EngineCommand
	cfg.Engine.Command = bin

	results := RunAll(&cfg)
	if len(Failed(results)) != 0 {
		t.Fatalf("unexpected failures: %#v", Failed(results))
	}
	if results[1].Detail != bin {
		t.Fatalf("expected resolved path in detail, got %q", results[1].Detail)
	}
}

func TestDependencyResultsPassMissingOptional(t *testing.T) {
	results := dependencyResults([]deps.Status{
		{Name: "Stitcher", Detail: `binary "stitch" not found`},
		{Name: "Viewer", Optional: true, Detail: `binary "feh" not found`},
		{Name: "Shell", Available: true, Path: "/bin/sh"},
	})
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].Passed {
		t.Fatal("expected missing required binary to fail")
	}
	if !results[1].Passed {
		t.Fatal("expected missing optional binary to pass")
	}
	if !results[2].Passed || results[2].Detail != "/bin/sh" {
		t.Fatalf("expected resolved path for available binary, got %+v", results[2])
	}
	if failed := Failed(results); len(failed) != 1 || failed[0].Name != "Stitcher" {
		t.Fatalf("unexpected failed set: %+v", failed)
	}
}
