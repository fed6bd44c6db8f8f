package testsupport

import (
	"image"
	"image/color"
	"image/draw"
	"math/rand/v2"
)

// ValueNoise renders a smooth, non-periodic grayscale-ish texture: random values
// on a grid every cell pixels, bilinearly interpolated. Tiles cut from one
// world register unambiguously against each other.
func ValueNoise(width, height, cell int, seed uint64) *image.NRGBA {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	gw, gh := width/cell+2, height/cell+2
	grid := make([]float64, gw*gh*3)
	for i := range grid {
		grid[i] = rng.Float64() * 255
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		gy, fy := y/cell, float64(y%cell)/float64(cell)
		for x := 0; x < width; x++ {
			gx, fx := x/cell, float64(x%cell)/float64(cell)
			var rgb [3]uint8
			for c := 0; c < 3; c++ {
				at := func(ix, iy int) float64 { return grid[(iy*gw+ix)*3+c] }
				top := at(gx, gy)*(1-fx) + at(gx+1, gy)*fx
				bottom := at(gx, gy+1)*(1-fx) + at(gx+1, gy+1)*fx
				rgb[c] = uint8(top*(1-fy) + bottom*fy)
			}
			img.SetNRGBA(x, y, color.NRGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255})
		}
	}
	return img
}

// Crop copies r out of src into a new image whose bounds start at the origin.
func Crop(src image.Image, r image.Rectangle) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(dst, dst.Bounds(), src, r.Min, draw.Src)
	return dst
}

// Solid returns a uniformly coloured image.
func Solid(width, height int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

// Tiles cuts count horizontally overlapping tiles of width tileWidth out of
// world, each starting step pixels after the previous one.
func Tiles(world image.Image, count, tileWidth, step int) []*image.NRGBA {
	h := world.Bounds().Dy()
	tiles := make([]*image.NRGBA, 0, count)
	for i := 0; i < count; i++ {
		x := i * step
		tiles = append(tiles, Crop(world, image.Rect(x, 0, x+tileWidth, h)))
	}
	return tiles
}
