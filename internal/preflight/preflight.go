package preflight

import (
	"panostitch/internal/config"
	"panostitch/internal/deps"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes the checks that apply to cfg. The output directory is always
// checked; the stitcher binary only when an external engine is configured.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{CheckOutputDirectory("Output directory", cfg.OutputDir())}
	return append(results, dependencyResults(CheckSystemDeps(cfg))...)
}

// dependencyResults converts binary statuses to results. A missing optional
// binary still passes.
func dependencyResults(statuses []deps.Status) []Result {
	missing := make(map[string]struct{})
	for _, status := range deps.MissingRequired(statuses) {
		missing[status.Name] = struct{}{}
	}
	results := make([]Result, 0, len(statuses))
	for _, status := range statuses {
		_, blocked := missing[status.Name]
		result := Result{Name: status.Name, Passed: !blocked, Detail: status.Detail}
		if status.Available {
			result.Detail = status.Path
		}
		results = append(results, result)
	}
	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}
