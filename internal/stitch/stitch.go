package stitch

import (
	"context"
	"fmt"
	"image"
	"strings"
)

// Status classifies the outcome of one stitch attempt. Values follow the
// OpenCV stitcher status codes so external stitchers can report them as exit
// codes.
type Status int

const (
	StatusSuccess Status = iota
	StatusNeedMoreImages
	StatusHomographyEstimationFailed
	StatusCameraParamsAdjustFailed
	StatusOther
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusNeedMoreImages:
		return "need_more_images"
	case StatusHomographyEstimationFailed:
		return "homography_estimation_failed"
	case StatusCameraParamsAdjustFailed:
		return "camera_params_adjust_failed"
	default:
		return "other"
	}
}

// StatusFromCode maps an OpenCV-style numeric status to a Status.
func StatusFromCode(code int) Status {
	switch code {
	case 0:
		return StatusSuccess
	case 1:
		return StatusNeedMoreImages
	case 2:
		return StatusHomographyEstimationFailed
	case 3:
		return StatusCameraParamsAdjustFailed
	default:
		return StatusOther
	}
}

// Mode selects the stitching model.
type Mode int

const (
	// ModePanorama assumes a camera rotating about its centre, so neighbours
	// mostly shift horizontally.
	ModePanorama Mode = iota
	// ModeScans assumes flat subjects captured with free translation.
	ModeScans
)

func (m Mode) String() string {
	if m == ModeScans {
		return "scans"
	}
	return "panorama"
}

// ParseMode converts a configured mode name.
func ParseMode(value string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "panorama":
		return ModePanorama, nil
	case "scans":
		return ModeScans, nil
	default:
		return ModePanorama, fmt.Errorf("unknown stitch mode %q", value)
	}
}

// Options are fixed for a whole run.
type Options struct {
	Mode                Mode
	ConfidenceThreshold float64
}

// Attempt is the result of one engine call. Composite is set only on success.
// Err carries diagnostic detail for failures and is never returned to callers
// as an error.
type Attempt struct {
	Inputs    int
	Status    Status
	Composite image.Image
	Err       error
}

// OK reports whether the attempt produced a composite.
func (a Attempt) OK() bool {
	return a.Status == StatusSuccess && a.Composite != nil
}

// Engine stitches an ordered list of at least two images. Implementations keep
// no state between calls and never panic on stitch failures; every failure is
// reported through Attempt.Status.
type Engine interface {
	Name() string
	Stitch(ctx context.Context, images []image.Image) Attempt
}

// Failed builds a failed attempt.
func Failed(inputs int, status Status, err error) Attempt {
	if status == StatusSuccess {
		status = StatusOther
	}
	return Attempt{Inputs: inputs, Status: status, Err: err}
}
