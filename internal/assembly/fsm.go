package assembly

// Phase is a controller state within one step.
type Phase int

const (
	PhasePrimary Phase = iota
	PhaseFallbackBuild
	PhaseFallbackBatch
	PhaseFallbackMerge
	PhaseSkip
	PhaseAdvance
)

func (p Phase) String() string {
	switch p {
	case PhasePrimary:
		return "PRIMARY"
	case PhaseFallbackBuild:
		return "FALLBACK_BUILD"
	case PhaseFallbackBatch:
		return "FALLBACK_BATCH"
	case PhaseFallbackMerge:
		return "FALLBACK_MERGE"
	case PhaseSkip:
		return "SKIP"
	case PhaseAdvance:
		return "ADVANCE"
	default:
		return "UNKNOWN"
	}
}

// Outcome summarizes how a step ended.
type Outcome int

const (
	// OutcomeOK means the primary pairwise stitch succeeded.
	OutcomeOK Outcome = iota
	// OutcomeFallback means the primary stitch failed but the window and merge
	// stitches succeeded.
	OutcomeFallback
	// OutcomeSkipped means the image was left out of the composite.
	OutcomeSkipped
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeFallback:
		return "warn"
	case OutcomeSkipped:
		return "skip"
	default:
		return "unknown"
	}
}

// Incorporated reports whether the step added its image to the composite.
func (o Outcome) Incorporated() bool {
	return o == OutcomeOK || o == OutcomeFallback
}
