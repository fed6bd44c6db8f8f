package command

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"panostitch/internal/imageio"
	"panostitch/internal/logging"
	"panostitch/internal/stitch"
)

// Placeholders recognised in argument templates.
const (
	PlaceholderMode   = "{mode}"
	PlaceholderConf   = "{conf}"
	PlaceholderOutput = "{output}"
	PlaceholderInputs = "{inputs}"
)

// Config describes how to invoke the external stitcher.
type Config struct {
	Binary  string
	Args    []string
	Timeout time.Duration
}

// Engine shells out to an external stitcher for every attempt. Inputs are
// handed over as PNG files in a private temp directory; the exit code carries
// the stitch status (0 success, 1 need more images, 2 homography estimation
// failed, 3 camera parameter adjustment failed).
type Engine struct {
	cfg    Config
	opts   stitch.Options
	logger *slog.Logger
}

// New constructs a command engine.
func New(cfg Config, opts stitch.Options, logger *slog.Logger) (*Engine, error) {
	cfg.Binary = strings.TrimSpace(cfg.Binary)
	if cfg.Binary == "" {
		return nil, errors.New("command engine: binary not configured")
	}
	return &Engine{
		cfg:    cfg,
		opts:   opts,
		logger: logging.NewComponentLogger(logger, "command"),
	}, nil
}

// Name identifies the engine in reports.
func (e *Engine) Name() string { return "command:" + filepath.Base(e.cfg.Binary) }

// Stitch writes images to disk, runs the stitcher, and reads the composite back.
func (e *Engine) Stitch(ctx context.Context, images []image.Image) stitch.Attempt {
	n := len(images)
	if n < 2 {
		return stitch.Failed(n, stitch.StatusNeedMoreImages, fmt.Errorf("need at least 2 images, got %d", n))
	}

	workDir, err := os.MkdirTemp("", "panostitch-*")
	if err != nil {
		return stitch.Failed(n, stitch.StatusOther, fmt.Errorf("create work dir: %w", err))
	}
	defer os.RemoveAll(workDir)

	inputs := make([]string, 0, n)
	for i, img := range images {
		path := filepath.Join(workDir, fmt.Sprintf("input_%03d.png", i))
		if err := writePNG(path, img); err != nil {
			return stitch.Failed(n, stitch.StatusOther, err)
		}
		inputs = append(inputs, path)
	}
	output := filepath.Join(workDir, "output.png")
	args := ExpandArgs(e.cfg.Args, e.opts, output, inputs)

	if e.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.Timeout)
		defer cancel()
	}

	started := time.Now()
	cmd := exec.CommandContext(ctx, e.cfg.Binary, args...)
	out, runErr := cmd.CombinedOutput()
	detail := strings.TrimSpace(string(out))
	e.logger.Debug("external stitcher finished",
		logging.String("binary", e.cfg.Binary),
		logging.Int("inputs", n),
		logging.Duration("elapsed", time.Since(started)),
	)

	code := 0
	if runErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) || exitErr.ExitCode() < 0 {
			return stitch.Failed(n, stitch.StatusOther, fmt.Errorf("run %s: %w: %s", e.cfg.Binary, runErr, detail))
		}
		code = exitErr.ExitCode()
	}

	status := stitch.StatusFromCode(code)
	if status != stitch.StatusSuccess {
		return stitch.Failed(n, status, fmt.Errorf("%s exited with status %d: %s", filepath.Base(e.cfg.Binary), code, detail))
	}

	composite, err := imageio.Load(output)
	if err != nil {
		return stitch.Failed(n, stitch.StatusOther, fmt.Errorf("read stitcher output: %w", err))
	}
	return stitch.Attempt{Inputs: n, Status: stitch.StatusSuccess, Composite: composite}
}

// ExpandArgs substitutes placeholders in the argument template. {inputs} must
// stand alone and expands to one argument per input; when the template lacks
// it, inputs are appended.
func ExpandArgs(template []string, opts stitch.Options, output string, inputs []string) []string {
	replacer := strings.NewReplacer(
		PlaceholderMode, opts.Mode.String(),
		PlaceholderConf, strconv.FormatFloat(opts.ConfidenceThreshold, 'f', -1, 64),
		PlaceholderOutput, output,
	)
	args := make([]string, 0, len(template)+len(inputs))
	sawInputs := false
	for _, arg := range template {
		if strings.TrimSpace(arg) == PlaceholderInputs {
			args = append(args, inputs...)
			sawInputs = true
			continue
		}
		args = append(args, replacer.Replace(arg))
	}
	if !sawInputs {
		args = append(args, inputs...)
	}
	return args
}

func writePNG(path string, img image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := imageio.Encode(file, img, imageio.FormatPNG); err != nil {
		_ = file.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return file.Close()
}
