package overlap

import (
	"fmt"
	"image"
	"image/color"
	"math"
)

// maxCanvasPixels keeps a runaway registration from allocating an absurd canvas.
const maxCanvasPixels = 1 << 28

// compose feather-blends images placed at positions (relative to the first
// image) onto a fresh canvas. Each pixel's weight is its distance to the
// nearest edge of its source image, so seams fade across the overlap.
// Canvas areas no image covers stay transparent.
func compose(images []image.Image, positions []image.Point) (*image.NRGBA, error) {
	var bounds image.Rectangle
	for i, img := range images {
		r := image.Rectangle{Min: positions[i], Max: positions[i].Add(img.Bounds().Size())}
		if i == 0 {
			bounds = r
		} else {
			bounds = bounds.Union(r)
		}
	}
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 || w*h > maxCanvasPixels {
		return nil, fmt.Errorf("canvas %dx%d out of range", w, h)
	}

	acc := make([]float32, w*h*4)
	for i, img := range images {
		origin := positions[i].Sub(bounds.Min)
		size := img.Bounds().Size()
		px := pixels(img)
		for y := 0; y < size.Y; y++ {
			for x := 0; x < size.X; x++ {
				r, g, b, a := px(x, y)
				if a < 128 {
					continue
				}
				weight := float32(min(x+1, size.X-x, y+1, size.Y-y))
				j := ((origin.Y+y)*w + origin.X + x) * 4
				acc[j] += weight * float32(r)
				acc[j+1] += weight * float32(g)
				acc[j+2] += weight * float32(b)
				acc[j+3] += weight
			}
		}
	}

	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			j := (y*w + x) * 4
			total := acc[j+3]
			if total == 0 {
				continue
			}
			out.SetNRGBA(x, y, color.NRGBA{
				R: channel(acc[j] / total),
				G: channel(acc[j+1] / total),
				B: channel(acc[j+2] / total),
				A: 255,
			})
		}
	}
	return out, nil
}

func channel(v float32) uint8 {
	return uint8(math.Min(255, math.Max(0, math.Round(float64(v)))))
}
