package overlap

import (
	"context"
	"fmt"
	"image"
	"log/slog"

	"panostitch/internal/logging"
	"panostitch/internal/stitch"
)

// Engine is the built-in stitcher. It registers consecutive inputs by pure
// translation and blends them onto one canvas. Panorama mode limits vertical
// drift and requires a consistent horizontal direction across a batch; Scans
// mode searches both axes freely.
type Engine struct {
	opts   stitch.Options
	logger *slog.Logger
}

// New constructs the built-in engine.
func New(opts stitch.Options, logger *slog.Logger) *Engine {
	return &Engine{
		opts:   opts,
		logger: logging.NewComponentLogger(logger, "overlap"),
	}
}

// Name identifies the engine in reports.
func (e *Engine) Name() string { return "builtin" }

// Stitch registers images[i] against images[i-1] for every i, accumulates the
// offsets, and composes the result.
func (e *Engine) Stitch(ctx context.Context, images []image.Image) stitch.Attempt {
	n := len(images)
	if n < 2 {
		return stitch.Failed(n, stitch.StatusNeedMoreImages, fmt.Errorf("need at least 2 images, got %d", n))
	}

	s := searcher{mode: e.opts.Mode}
	positions := make([]image.Point, n)
	planes := make([]*plane, n)
	planes[0] = newPlane(images[0])
	prevDX := 0
	for i := 1; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return stitch.Failed(n, stitch.StatusOther, err)
		}
		planes[i] = newPlane(images[i])
		m, status, err := s.register(planes[i-1], planes[i])
		planes[i-1] = nil
		if status != stitch.StatusSuccess {
			return stitch.Failed(n, status, fmt.Errorf("pair %d/%d: %w", i, n-1, err))
		}
		e.logger.Debug("pair registered",
			logging.Int("pair", i),
			logging.Int("dx", m.dx),
			logging.Int("dy", m.dy),
			logging.Float64("confidence", m.confidence),
		)
		if m.confidence < e.opts.ConfidenceThreshold {
			return stitch.Failed(n, stitch.StatusNeedMoreImages,
				fmt.Errorf("pair %d/%d: confidence %.3f below threshold %.3f", i, n-1, m.confidence, e.opts.ConfidenceThreshold))
		}
		if e.opts.Mode == stitch.ModePanorama && i > 1 && m.dx*prevDX < 0 {
			return stitch.Failed(n, stitch.StatusCameraParamsAdjustFailed,
				fmt.Errorf("pair %d/%d: pan direction reversed (dx %d after %d)", i, n-1, m.dx, prevDX))
		}
		prevDX = m.dx
		positions[i] = positions[i-1].Add(image.Pt(m.dx, m.dy))
	}

	composite, err := compose(images, positions)
	if err != nil {
		return stitch.Failed(n, stitch.StatusOther, err)
	}
	return stitch.Attempt{Inputs: n, Status: stitch.StatusSuccess, Composite: composite}
}
