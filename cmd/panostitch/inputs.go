package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"panostitch/internal/services"
)

// expandInputs resolves glob patterns so quoted patterns behave like shell
// globs. Plain paths pass through untouched; a pattern with no match is an
// error.
func expandInputs(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		arg = strings.TrimSpace(arg)
		if arg == "" {
			continue
		}
		if !strings.ContainsAny(arg, "*?[") {
			paths = append(paths, arg)
			continue
		}
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, services.Wrap(services.ErrValidation, "cli", "expand inputs", arg, err)
		}
		if len(matches) == 0 {
			return nil, services.Wrap(services.ErrValidation, "cli", "expand inputs", fmt.Sprintf("no files match %q", arg), nil)
		}
		paths = append(paths, matches...)
	}
	if len(paths) == 0 {
		return nil, services.Wrap(services.ErrValidation, "cli", "expand inputs", "no input images given", nil)
	}
	return paths, nil
}
