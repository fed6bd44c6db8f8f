package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"panostitch/internal/assembly"
	"panostitch/internal/config"
	"panostitch/internal/imageio"
	"panostitch/internal/logging"
	"panostitch/internal/preflight"
	"panostitch/internal/report"
	"panostitch/internal/services"
)

type stitchFlags struct {
	mode       string
	panoConf   float64
	resize     float64
	output     string
	engine     string
	reportPath string
}

func newStitchCommand(ctx *commandContext) *cobra.Command {
	var flags stitchFlags

	cmd := &cobra.Command{
		Use:   "stitch [flags] IMAGE...",
		Short: "Stitch images into a single composite",
		Long: "Stitch orders the given images naturally by file name and grows a composite one image at a time.\n" +
			"Images that cannot be registered are retried with their neighbours and skipped when that fails too.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cfg := *base
			if err := applyStitchFlags(cmd, &cfg, flags); err != nil {
				return err
			}

			paths, err := expandInputs(args)
			if err != nil {
				return err
			}
			if failed := preflight.Failed(preflight.RunAll(&cfg)); len(failed) > 0 {
				details := make([]string, 0, len(failed))
				for _, r := range failed {
					details = append(details, r.Name+": "+r.Detail)
				}
				return services.Wrap(services.ErrConfiguration, "cli", "preflight", strings.Join(details, "; "), nil)
			}

			logger, closeLog, err := ctx.newLogger(cmd, &cfg)
			if err != nil {
				return services.Wrap(services.ErrConfiguration, "cli", "init logger", "", err)
			}
			defer func() { _ = closeLog() }()
			runID := uuid.NewString()
			runCtx := services.WithRunID(cmd.Context(), runID)
			runLogger := logging.WithContext(runCtx, logger)

			filter, err := imageio.ParseFilter(cfg.Stitch.ResizeFilter)
			if err != nil {
				return services.Wrap(services.ErrValidation, "cli", "resize filter", "", err)
			}
			started := time.Now()
			seq, err := assembly.Load(paths, assembly.LoadOptions{
				Scale:  cfg.Stitch.Resize,
				Filter: filter,
				Loaded: func(item assembly.Item) {
					b := item.Image.Bounds()
					runLogger.Debug("image loaded",
						logging.String(logging.FieldImage, item.ID),
						logging.Int("width", b.Dx()),
						logging.Int("height", b.Dy()),
					)
				},
			})
			if err != nil {
				logging.ErrorWithContext(runLogger, "image load failed", "image_load_failed",
					logging.Error(err),
					logging.String(logging.FieldErrorHint, "remove or replace the unreadable file and rerun"),
				)
				return err
			}
			runLogger.Info("images loaded",
				logging.Int("count", len(seq)),
				logging.Duration("elapsed", time.Since(started)),
			)

			engine, err := newEngine(&cfg, logger)
			if err != nil {
				return err
			}
			run, err := assembly.NewController(engine, logger).Run(runCtx, runID, seq)
			if err != nil {
				return err
			}

			if err := report.SaveComposite(cfg.Stitch.Output, run.Final.Composite); err != nil {
				return err
			}
			runLogger.Info("composite written",
				logging.String("output", cfg.Stitch.Output),
				logging.Duration("elapsed", time.Since(started)),
			)

			opts := report.Options{
				Mode:     cfg.Stitch.Mode,
				PanoConf: cfg.Stitch.PanoConf,
				Resize:   cfg.Stitch.Resize,
				Output:   cfg.Stitch.Output,
			}
			out := cmd.OutOrStdout()
			if flags.reportPath != "" {
				reportPath, err := config.ExpandPath(flags.reportPath)
				if err != nil {
					return services.Wrap(services.ErrValidation, "cli", "report path", flags.reportPath, err)
				}
				if err := report.SaveText(reportPath, report.Render(run, opts)); err != nil {
					return err
				}
			}
			opts.Colorize = report.ShouldColorize(out)
			return report.Write(out, run, opts)
		},
	}

	cmd.Flags().StringVar(&flags.mode, "mode", config.ModePanorama, "Stitching mode (panorama or scans)")
	cmd.Flags().Float64Var(&flags.panoConf, "pano-conf", 0.1, "Minimum registration confidence between 0 and 1")
	cmd.Flags().Float64Var(&flags.resize, "resize", 0.85, "Scale factor applied to every image before stitching (1.0 keeps the original size)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "ai-panorama.jpg", "Composite output path; the extension selects the format")
	cmd.Flags().StringVar(&flags.engine, "engine", config.EngineBuiltin, "Stitch engine (builtin or command)")
	cmd.Flags().StringVar(&flags.reportPath, "report", "", "Also write the run report to this file")
	return cmd
}

// applyStitchFlags layers explicitly set flags over the loaded configuration
// and revalidates the result.
func applyStitchFlags(cmd *cobra.Command, cfg *config.Config, flags stitchFlags) error {
	set := cmd.Flags().Changed
	if set("mode") {
		cfg.Stitch.Mode = flags.mode
	}
	if set("pano-conf") {
		cfg.Stitch.PanoConf = flags.panoConf
	}
	if set("resize") {
		cfg.Stitch.Resize = flags.resize
	}
	if set("output") {
		cfg.Stitch.Output = flags.output
	}
	if set("engine") {
		cfg.Engine.Kind = flags.engine
	}
	if err := cfg.Normalize(); err != nil {
		return services.Wrap(services.ErrValidation, "cli", "apply flags", "", err)
	}
	if err := cfg.Validate(); err != nil {
		return services.Wrap(services.ErrValidation, "cli", "apply flags", "", err)
	}
	if _, err := imageio.FormatFromPath(cfg.Stitch.Output); err != nil {
		return services.Wrap(services.ErrValidation, "cli", "apply flags", "", fmt.Errorf("--output: %w", err))
	}
	return nil
}
