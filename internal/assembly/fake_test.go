package assembly_test

import (
	"context"
	"image"
	"image/color"
	"strings"
	"sync"

	"panostitch/internal/assembly"
	"panostitch/internal/stitch"
)

// tagged is a 1x1 image carrying a label so tests can follow which inputs
// produced a composite.
type tagged struct {
	*image.NRGBA
	tag string
}

func newTagged(tag string) tagged {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, color.NRGBA{A: 255})
	return tagged{NRGBA: img, tag: tag}
}

func tagOf(img image.Image) string {
	if t, ok := img.(tagged); ok {
		return t.tag
	}
	return "?"
}

func sequence(ids ...string) assembly.Sequence {
	seq := make(assembly.Sequence, len(ids))
	for i, id := range ids {
		seq[i] = assembly.Item{ID: id, Path: "/photos/" + id, Image: newTagged(id)}
	}
	return seq
}

// scriptedEngine joins input tags with "+" and fails any call whose joined tag
// is listed in fail.
type scriptedEngine struct {
	mu    sync.Mutex
	fail  map[string]stitch.Status
	calls []string
}

func newScriptedEngine(fail map[string]stitch.Status) *scriptedEngine {
	if fail == nil {
		fail = map[string]stitch.Status{}
	}
	return &scriptedEngine{fail: fail}
}

func (e *scriptedEngine) Name() string { return "scripted" }

func (e *scriptedEngine) Stitch(_ context.Context, images []image.Image) stitch.Attempt {
	tags := make([]string, len(images))
	for i, img := range images {
		tags[i] = tagOf(img)
	}
	joined := strings.Join(tags, "+")

	e.mu.Lock()
	e.calls = append(e.calls, joined)
	e.mu.Unlock()

	if status, ok := e.fail[joined]; ok {
		return stitch.Failed(len(images), status, nil)
	}
	return stitch.Attempt{Inputs: len(images), Status: stitch.StatusSuccess, Composite: newTagged("(" + joined + ")")}
}

func (e *scriptedEngine) Calls() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.calls...)
}

// liarEngine reports success without producing a composite.
type liarEngine struct{}

func (liarEngine) Name() string { return "liar" }

func (liarEngine) Stitch(_ context.Context, images []image.Image) stitch.Attempt {
	return stitch.Attempt{Inputs: len(images), Status: stitch.StatusSuccess}
}

// cancelingEngine cancels the run after the given number of calls and then
// fails every call, the way an engine observing a cancelled context does.
type cancelingEngine struct {
	*scriptedEngine
	after  int
	cancel context.CancelFunc
}

func (e *cancelingEngine) Stitch(ctx context.Context, images []image.Image) stitch.Attempt {
	if len(e.Calls()) >= e.after {
		e.cancel()
	}
	if err := ctx.Err(); err != nil {
		return stitch.Failed(len(images), stitch.StatusOther, err)
	}
	return e.scriptedEngine.Stitch(ctx, images)
}
