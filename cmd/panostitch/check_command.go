package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"panostitch/internal/preflight"
	"panostitch/internal/report"
	"panostitch/internal/services"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify the output directory and stitcher are usable",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := report.ShouldColorize(out)

			lines := renderSectionHeader("Configuration", colorize)
			configDetail := ctx.configPath
			if !ctx.configExists {
				configDetail += " (not found, using defaults)"
			}
			lines = append(lines,
				renderStatusLine("Config", statusInfo, configDetail, colorize),
				renderStatusLine("Engine", statusInfo, cfg.Engine.Kind, colorize),
				"",
			)
			lines = append(lines, renderSectionHeader("Preflight", colorize)...)

			results := preflight.RunAll(cfg)
			for _, r := range results {
				kind := statusOK
				if !r.Passed {
					kind = statusError
				}
				lines = append(lines, renderStatusLine(r.Name, kind, r.Detail, colorize))
			}
			writeLines(out, lines)

			if failed := preflight.Failed(results); len(failed) > 0 {
				return services.Wrap(services.ErrConfiguration, "cli", "check", fmt.Sprintf("%d preflight check(s) failed", len(failed)), nil)
			}
			return nil
		},
	}
}
