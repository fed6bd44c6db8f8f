package imageio

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"
)

// ParseFilter maps a configured filter name to an interpolator. "auto" and the
// empty name return nil, which lets Resize pick DefaultFilter per scale.
func ParseFilter(name string) (draw.Interpolator, error) {
	switch name {
	case "", "auto":
		return nil, nil
	case "nearest":
		return draw.NearestNeighbor, nil
	case "approx":
		return draw.ApproxBiLinear, nil
	case "bilinear":
		return draw.BiLinear, nil
	case "catmullrom":
		return draw.CatmullRom, nil
	default:
		return nil, fmt.Errorf("unknown resize filter %q", name)
	}
}

// ScaledSize applies scale to a width and height, rounding half away from zero
// and never returning less than one pixel.
func ScaledSize(width, height int, scale float64) (int, int) {
	w := int(math.Round(float64(width) * scale))
	h := int(math.Round(float64(height) * scale))
	return max(w, 1), max(h, 1)
}

// DefaultFilter is the interpolator used when none is configured: Catmull-Rom
// when shrinking, since its kernel widens with the scale factor and averages
// the covered source area, and bilinear otherwise.
func DefaultFilter(scale float64) draw.Interpolator {
	if scale < 1 {
		return draw.CatmullRom
	}
	return draw.BiLinear
}

// Resize scales img by scale using interp, or DefaultFilter(scale) when interp
// is nil. A scale of exactly 1 returns img unchanged.
func Resize(img image.Image, scale float64, interp draw.Interpolator) image.Image {
	if scale == 1 {
		return img
	}
	if interp == nil {
		interp = DefaultFilter(scale)
	}
	src := img.Bounds()
	w, h := ScaledSize(src.Dx(), src.Dy(), scale)
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	interp.Scale(dst, dst.Bounds(), img, src, draw.Src, nil)
	return dst
}
