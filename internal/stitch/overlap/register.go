package overlap

import (
	"fmt"
	"math"

	"panostitch/internal/stitch"
)

const (
	coarseTarget     = 64
	minCoarseSide    = 8
	minOverlapFrac   = 0.15
	coarseSamples    = 1024
	fineSamples      = 16384
	minSamples       = 16
	refineRadius     = 2
	minVariance      = 1.0
	panoramaDriftDiv = 4
)

// match places image b relative to image a: b's origin sits at (dx, dy) in a's
// coordinates.
type match struct {
	dx, dy     int
	confidence float64
}

type searcher struct {
	mode stitch.Mode
}

// register estimates the translation between a and b. It reports
// HomographyEstimationFailed when no candidate has enough textured overlap.
func (s searcher) register(a, b *plane) (match, stitch.Status, error) {
	levels := levelsFor(a, b)
	pa := pyramid(a, levels)
	pb := pyramid(b, levels)

	coarse, ok := s.exhaustive(pa[levels], pb[levels])
	if !ok {
		return match{}, stitch.StatusHomographyEstimationFailed,
			fmt.Errorf("no overlap candidate with enough texture (coarse %dx%d vs %dx%d)", pa[levels].w, pa[levels].h, pb[levels].w, pb[levels].h)
	}

	best := coarse
	for l := levels - 1; l >= 0; l-- {
		best = s.refine(pa[l], pb[l], best.dx*2, best.dy*2)
	}
	if best.confidence < 0 {
		best.confidence = 0
	}
	return best, stitch.StatusSuccess, nil
}

func (s searcher) exhaustive(a, b *plane) (match, bool) {
	best := match{confidence: math.Inf(-1)}
	found := false
	minDY, maxDY := -(b.h - 1), a.h-1
	if s.mode == stitch.ModePanorama {
		drift := max(1, min(a.h, b.h)/panoramaDriftDiv)
		minDY, maxDY = max(minDY, -drift), min(maxDY, drift)
	}
	for dy := minDY; dy <= maxDY; dy++ {
		for dx := -(b.w - 1); dx <= a.w-1; dx++ {
			score, ok := s.score(a, b, dx, dy, coarseSamples)
			if ok && score > best.confidence {
				best = match{dx: dx, dy: dy, confidence: score}
				found = true
			}
		}
	}
	return best, found
}

func (s searcher) refine(a, b *plane, cx, cy int) match {
	best := match{dx: cx, dy: cy, confidence: math.Inf(-1)}
	for dy := cy - refineRadius; dy <= cy+refineRadius; dy++ {
		for dx := cx - refineRadius; dx <= cx+refineRadius; dx++ {
			score, ok := s.score(a, b, dx, dy, fineSamples)
			if ok && score > best.confidence {
				best = match{dx: dx, dy: dy, confidence: score}
			}
		}
	}
	if math.IsInf(best.confidence, -1) {
		best.confidence = 0
	}
	return best
}

// score is the zero-mean normalized cross-correlation of the covered overlap,
// sampled on a regular stride so at most budget pixels are visited.
func (s searcher) score(a, b *plane, dx, dy, budget int) (float64, bool) {
	x0, y0 := max(0, dx), max(0, dy)
	x1, y1 := min(a.w, dx+b.w), min(a.h, dy+b.h)
	ow, oh := x1-x0, y1-y0
	if ow <= 0 || oh <= 0 {
		return 0, false
	}
	if !s.enoughOverlap(a, b, ow, oh) {
		return 0, false
	}

	stride := 1
	for (ow/stride)*(oh/stride) > budget {
		stride++
	}

	var n, sa, sb, saa, sbb, sab float64
	for y := y0; y < y1; y += stride {
		for x := x0; x < x1; x += stride {
			va, okA := a.at(x, y)
			if !okA {
				continue
			}
			vb, okB := b.at(x-dx, y-dy)
			if !okB {
				continue
			}
			fa, fb := float64(va), float64(vb)
			n++
			sa += fa
			sb += fb
			saa += fa * fa
			sbb += fb * fb
			sab += fa * fb
		}
	}
	if n < minSamples {
		return 0, false
	}
	varA := saa - sa*sa/n
	varB := sbb - sb*sb/n
	if varA < minVariance*n || varB < minVariance*n {
		return 0, false
	}
	return (sab - sa*sb/n) / math.Sqrt(varA*varB), true
}

func (s searcher) enoughOverlap(a, b *plane, ow, oh int) bool {
	if s.mode == stitch.ModePanorama {
		return float64(ow) >= minOverlapFrac*float64(min(a.w, b.w))
	}
	return float64(ow*oh) >= minOverlapFrac*float64(min(a.w*a.h, b.w*b.h))
}
