package assembly

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"strings"

	"panostitch/internal/logging"
	"panostitch/internal/services"
	"panostitch/internal/stitch"
)

// MaxCallsPerStep is the number of engine calls a single image can cost: the
// primary attempt, the window batch, and the merge.
const MaxCallsPerStep = 3

// Call names the purpose of one engine invocation within a step.
type Call string

const (
	CallPrimary Call = "primary"
	CallWindow  Call = "window"
	CallMerge   Call = "merge"
)

// AttemptRecord is the observable trace of one engine call.
type AttemptRecord struct {
	Call   Call
	Inputs []string
	Status stitch.Status
	Detail string
}

// StepRecord describes how index Index was handled.
type StepRecord struct {
	Index    int
	ID       string
	Outcome  Outcome
	Trace    []Phase
	Attempts []AttemptRecord
}

// Status returns the status of the named call, or false when the step never
// made it.
func (r StepRecord) Status(call Call) (stitch.Status, bool) {
	for _, a := range r.Attempts {
		if a.Call == call {
			return a.Status, true
		}
	}
	return stitch.StatusOther, false
}

// Run is the complete outcome of assembling a sequence.
type Run struct {
	ID     string
	Engine string
	Order  []string
	Steps  []StepRecord
	Final  State
}

// Skipped lists identifiers that were left out, in sequence order.
func (r Run) Skipped() []string {
	var out []string
	for _, step := range r.Steps {
		if !step.Outcome.Incorporated() {
			out = append(out, step.ID)
		}
	}
	return out
}

// Controller drives the per-image state machine against a stitch engine.
type Controller struct {
	engine stitch.Engine
	logger *slog.Logger
}

// NewController builds a controller. The engine is shared across all steps and
// must be stateless between calls.
func NewController(engine stitch.Engine, logger *slog.Logger) *Controller {
	return &Controller{
		engine: engine,
		logger: logging.NewComponentLogger(logger, "assembly"),
	}
}

// Run assembles seq in order. Stitch failures become skips recorded in the
// returned Run. An empty sequence is an error, and so is a context cancelled
// before the last step completes: no partial Run is returned then.
func (c *Controller) Run(ctx context.Context, runID string, seq Sequence) (Run, error) {
	if len(seq) == 0 {
		return Run{}, services.Wrap(services.ErrValidation, "assembly", "run", "no images to assemble", nil)
	}
	ctx = services.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, c.logger)

	run := Run{ID: runID, Engine: c.engine.Name(), Order: seq.IDs()}
	state := Seed(seq[0])
	logger.Info("assembly started",
		logging.String(logging.FieldEventType, "assembly_start"),
		logging.Int("images", len(seq)),
		logging.String("seed", seq[0].ID),
		logging.String("engine", run.Engine),
	)

	for i := 1; i < len(seq); i++ {
		if err := ctx.Err(); err != nil {
			return Run{}, c.interrupted(logger, i, err)
		}
		var record StepRecord
		state, record = c.Step(ctx, seq, i, state)
		// A cancelled engine call looks like a stitch failure.
		if err := ctx.Err(); err != nil {
			return Run{}, c.interrupted(logger, i, err)
		}
		run.Steps = append(run.Steps, record)
	}
	run.Final = state

	logger.Info("assembly finished",
		logging.String(logging.FieldEventType, "assembly_complete"),
		logging.Int("used", len(state.Used)),
		logging.Int("skipped", len(run.Skipped())),
	)
	return run, nil
}

func (c *Controller) interrupted(logger *slog.Logger, step int, err error) error {
	logging.ErrorWithContext(logger, "assembly interrupted", "assembly_interrupted",
		logging.Int(logging.FieldStepIndex, step),
		logging.Error(err),
	)
	return services.Wrap(services.ErrInterrupted, "assembly", "run", fmt.Sprintf("stopped at step %d", step), err)
}

// Step runs the state machine for index i and returns the next state.
//
//	PRIMARY        stitch [composite, raw(i)]        ok -> ADVANCE, fail -> FALLBACK_BUILD
//	FALLBACK_BUILD window [raw(i-1), raw(i), raw(i+1)?]          -> FALLBACK_BATCH
//	FALLBACK_BATCH stitch window as one batch        ok -> FALLBACK_MERGE, fail -> SKIP
//	FALLBACK_MERGE stitch [composite, window result] ok -> ADVANCE, fail -> SKIP
//	SKIP           leave state unchanged                         -> ADVANCE
func (c *Controller) Step(ctx context.Context, seq Sequence, i int, state State) (State, StepRecord) {
	item := seq[i]
	stepCtx := services.WithImage(services.WithStepIndex(ctx, i), item.ID)
	logger := logging.WithContext(stepCtx, c.logger)

	record := StepRecord{Index: i, ID: item.ID}
	var (
		window          Window
		windowComposite image.Image
	)

	phase := PhasePrimary
	for {
		record.Trace = append(record.Trace, phase)
		logger.Debug("controller state", logging.String(logging.FieldState, phase.String()))
		switch phase {
		case PhasePrimary:
			attempt := c.call(stepCtx, &record, CallPrimary, []string{"composite", item.ID}, state.Composite, item.Image)
			if attempt.OK() {
				state = state.incorporate(attempt.Composite, item.ID)
				record.Outcome = OutcomeOK
				logger.Info("image stitched",
					logging.String(logging.FieldEventType, "stitch_ok"),
					logging.Int("used", len(state.Used)),
				)
				phase = PhaseAdvance
				continue
			}
			logging.WarnWithContext(logger, "primary stitch failed", "stitch_primary_failed",
				logging.String(logging.FieldStatus, attempt.Status.String()),
				logging.String(logging.FieldErrorHint, errorHint(attempt)),
				logging.String(logging.FieldImpact, "retrying with fallback window"),
			)
			phase = PhaseFallbackBuild

		case PhaseFallbackBuild:
			window = BuildWindow(seq, i)
			logger.Debug("fallback window built",
				logging.String("window", strings.Join(window.IDs(), ",")),
			)
			phase = PhaseFallbackBatch

		case PhaseFallbackBatch:
			attempt := c.call(stepCtx, &record, CallWindow, window.IDs(), window.Images()...)
			if !attempt.OK() {
				logging.WarnWithContext(logger, "fallback window stitch failed", "stitch_window_failed",
					logging.String(logging.FieldStatus, attempt.Status.String()),
					logging.String(logging.FieldErrorHint, errorHint(attempt)),
					logging.String(logging.FieldImpact, "image skipped"),
				)
				phase = PhaseSkip
				continue
			}
			windowComposite = attempt.Composite
			phase = PhaseFallbackMerge

		case PhaseFallbackMerge:
			attempt := c.call(stepCtx, &record, CallMerge, []string{"composite", "window"}, state.Composite, windowComposite)
			if !attempt.OK() {
				logging.WarnWithContext(logger, "fallback merge failed", "stitch_merge_failed",
					logging.String(logging.FieldStatus, attempt.Status.String()),
					logging.String(logging.FieldErrorHint, errorHint(attempt)),
					logging.String(logging.FieldImpact, "image skipped"),
				)
				phase = PhaseSkip
				continue
			}
			state = state.incorporate(attempt.Composite, item.ID)
			record.Outcome = OutcomeFallback
			logger.Info("image stitched via fallback window",
				logging.String(logging.FieldEventType, "stitch_fallback_ok"),
				logging.Int("used", len(state.Used)),
			)
			phase = PhaseAdvance

		case PhaseSkip:
			record.Outcome = OutcomeSkipped
			logging.WarnWithContext(logger, "image skipped", "image_skipped",
				logging.String(logging.FieldImpact, "composite continues without this image"),
			)
			phase = PhaseAdvance

		case PhaseAdvance:
			return state, record
		}
	}
}

func (c *Controller) call(ctx context.Context, record *StepRecord, call Call, inputs []string, images ...image.Image) stitch.Attempt {
	attempt := c.engine.Stitch(ctx, images)
	// An engine that claims success without a composite is treated as a failure.
	if attempt.Status == stitch.StatusSuccess && attempt.Composite == nil {
		attempt = stitch.Failed(len(images), stitch.StatusOther, errors.New("engine returned no composite"))
	}
	entry := AttemptRecord{Call: call, Inputs: inputs, Status: attempt.Status}
	if attempt.Err != nil {
		entry.Detail = attempt.Err.Error()
	}
	record.Attempts = append(record.Attempts, entry)
	return attempt
}

func errorHint(attempt stitch.Attempt) string {
	if attempt.Err != nil {
		return attempt.Err.Error()
	}
	switch attempt.Status {
	case stitch.StatusNeedMoreImages:
		return "overlap too small or confidence below pano_conf"
	case stitch.StatusHomographyEstimationFailed:
		return "no consistent alignment between inputs"
	case stitch.StatusCameraParamsAdjustFailed:
		return "inconsistent camera motion across inputs"
	default:
		return "stitcher reported an unclassified failure"
	}
}
