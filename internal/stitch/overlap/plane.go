package overlap

import (
	"image"
	"image/color"
)

// plane is a luminance raster with a coverage mask. Uncovered pixels (fully
// transparent areas of a composite) never take part in registration.
type plane struct {
	w, h int
	lum  []float32
	mask []bool
}

func (p *plane) at(x, y int) (float32, bool) {
	i := y*p.w + x
	return p.lum[i], p.mask[i]
}

type rgba8 func(x, y int) (r, g, b, a uint8)

// pixels returns a fast accessor for the common decoded types and a generic
// fallback for everything else. Coordinates are relative to the bounds origin.
func pixels(img image.Image) rgba8 {
	b := img.Bounds()
	switch src := img.(type) {
	case *image.NRGBA:
		return func(x, y int) (uint8, uint8, uint8, uint8) {
			i := src.PixOffset(b.Min.X+x, b.Min.Y+y)
			p := src.Pix[i : i+4 : i+4]
			return p[0], p[1], p[2], p[3]
		}
	case *image.Gray:
		return func(x, y int) (uint8, uint8, uint8, uint8) {
			v := src.Pix[src.PixOffset(b.Min.X+x, b.Min.Y+y)]
			return v, v, v, 255
		}
	default:
		return func(x, y int) (uint8, uint8, uint8, uint8) {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			return c.R, c.G, c.B, c.A
		}
	}
}

func newPlane(img image.Image) *plane {
	b := img.Bounds()
	p := &plane{
		w:    b.Dx(),
		h:    b.Dy(),
		lum:  make([]float32, b.Dx()*b.Dy()),
		mask: make([]bool, b.Dx()*b.Dy()),
	}
	px := pixels(img)
	for y := 0; y < p.h; y++ {
		for x := 0; x < p.w; x++ {
			r, g, bl, a := px(x, y)
			i := y*p.w + x
			p.lum[i] = 0.299*float32(r) + 0.587*float32(g) + 0.114*float32(bl)
			p.mask[i] = a >= 128
		}
	}
	return p
}

// half box-filters p down by two. A coarse pixel is covered only when all four
// of its sources are.
func (p *plane) half() *plane {
	w, h := p.w/2, p.h/2
	out := &plane{w: w, h: h, lum: make([]float32, w*h), mask: make([]bool, w*h)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i0 := (2*y)*p.w + 2*x
			i1 := i0 + p.w
			out.lum[y*w+x] = (p.lum[i0] + p.lum[i0+1] + p.lum[i1] + p.lum[i1+1]) / 4
			out.mask[y*w+x] = p.mask[i0] && p.mask[i0+1] && p.mask[i1] && p.mask[i1+1]
		}
	}
	return out
}

// pyramid returns levels+1 planes, finest first.
func pyramid(base *plane, levels int) []*plane {
	out := make([]*plane, 0, levels+1)
	out = append(out, base)
	for i := 0; i < levels; i++ {
		out = append(out, out[len(out)-1].half())
	}
	return out
}

// levelsFor picks how many halvings bring the smaller image's longer side to
// coarseTarget while keeping both images at least minCoarseSide pixels on each
// axis.
func levelsFor(a, b *plane) int {
	small := max(a.w, a.h)
	if s := max(b.w, b.h); s < small {
		small = s
	}
	minSide := min(a.w, a.h, b.w, b.h)
	levels := 0
	for small>>levels > coarseTarget && minSide>>(levels+1) >= minCoarseSide {
		levels++
	}
	return levels
}
