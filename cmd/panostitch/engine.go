package main

import (
	"log/slog"
	"time"

	"panostitch/internal/config"
	"panostitch/internal/services"
	"panostitch/internal/stitch"
	"panostitch/internal/stitch/command"
	"panostitch/internal/stitch/overlap"
)

func newEngine(cfg *config.Config, logger *slog.Logger) (stitch.Engine, error) {
	mode, err := stitch.ParseMode(cfg.Stitch.Mode)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "cli", "select engine", "", err)
	}
	opts := stitch.Options{Mode: mode, ConfidenceThreshold: cfg.Stitch.PanoConf}

	switch cfg.Engine.Kind {
	case config.EngineCommand:
		engine, err := command.New(command.Config{
			Binary:  cfg.Engine.Command,
			Args:    cfg.Engine.Args,
			Timeout: time.Duration(cfg.Engine.TimeoutSeconds) * time.Second,
		}, opts, logger)
		if err != nil {
			return nil, services.Wrap(services.ErrConfiguration, "cli", "select engine", "", err)
		}
		return engine, nil
	default:
		return overlap.New(opts, logger), nil
	}
}
