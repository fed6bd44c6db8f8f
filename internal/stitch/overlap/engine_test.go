package overlap_test

import (
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"panostitch/internal/logging"
	"panostitch/internal/stitch"
	"panostitch/internal/stitch/overlap"
	"panostitch/internal/testsupport"
)

func newEngine(mode stitch.Mode, conf float64) *overlap.Engine {
	return overlap.New(stitch.Options{Mode: mode, ConfidenceThreshold: conf}, logging.NewNop())
}

func panoramaTiles(t *testing.T) (*image.NRGBA, []image.Image) {
	t.Helper()
	world := testsupport.ValueNoise(420, 120, 12, 42)
	var images []image.Image
	for _, tile := range testsupport.Tiles(world, 3, 160, 100) {
		images = append(images, tile)
	}
	return world, images
}

func assertMatchesWorld(t *testing.T, world *image.NRGBA, got image.Image) {
	t.Helper()
	b := got.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			want := world.NRGBAAt(x-b.Min.X, y-b.Min.Y)
			have := color.NRGBAModel.Convert(got.At(x, y)).(color.NRGBA)
			if want != have {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, have, want)
			}
		}
	}
}

func TestStitchPairReconstructsWorld(t *testing.T) {
	world, tiles := panoramaTiles(t)

	attempt := newEngine(stitch.ModePanorama, 0.1).Stitch(context.Background(), tiles[:2])

	require.True(t, attempt.OK(), "status=%s err=%v", attempt.Status, attempt.Err)
	assert.Equal(t, 2, attempt.Inputs)
	assert.Equal(t, image.Pt(260, 120), attempt.Composite.Bounds().Size())
	assertMatchesWorld(t, world, attempt.Composite)
}

func TestStitchBatchOfThree(t *testing.T) {
	world, tiles := panoramaTiles(t)

	attempt := newEngine(stitch.ModePanorama, 0.5).Stitch(context.Background(), tiles)

	require.True(t, attempt.OK(), "status=%s err=%v", attempt.Status, attempt.Err)
	assert.Equal(t, image.Pt(360, 120), attempt.Composite.Bounds().Size())
	assertMatchesWorld(t, world, attempt.Composite)
}

func TestStitchGrowsExistingComposite(t *testing.T) {
	world, tiles := panoramaTiles(t)
	engine := newEngine(stitch.ModePanorama, 0.5)

	first := engine.Stitch(context.Background(), tiles[:2])
	require.True(t, first.OK())
	second := engine.Stitch(context.Background(), []image.Image{first.Composite, tiles[2]})

	require.True(t, second.OK(), "status=%s err=%v", second.Status, second.Err)
	assert.Equal(t, image.Pt(360, 120), second.Composite.Bounds().Size())
	assertMatchesWorld(t, world, second.Composite)
}

func TestStitchScansVerticalOffset(t *testing.T) {
	world := testsupport.ValueNoise(200, 300, 12, 9)
	top := testsupport.Crop(world, image.Rect(0, 0, 200, 120))
	bottom := testsupport.Crop(world, image.Rect(0, 80, 200, 200))

	attempt := newEngine(stitch.ModeScans, 0.5).Stitch(context.Background(), []image.Image{top, bottom})

	require.True(t, attempt.OK(), "status=%s err=%v", attempt.Status, attempt.Err)
	assert.Equal(t, image.Pt(200, 200), attempt.Composite.Bounds().Size())
	assertMatchesWorld(t, world, attempt.Composite)
}

func TestStitchNeedsTwoImages(t *testing.T) {
	_, tiles := panoramaTiles(t)
	attempt := newEngine(stitch.ModePanorama, 0.1).Stitch(context.Background(), tiles[:1])
	assert.Equal(t, stitch.StatusNeedMoreImages, attempt.Status)
	assert.Nil(t, attempt.Composite)
}

func TestStitchFlatImagesFailEstimation(t *testing.T) {
	gray := color.NRGBA{R: 90, G: 90, B: 90, A: 255}
	images := []image.Image{testsupport.Solid(160, 120, gray), testsupport.Solid(160, 120, gray)}

	attempt := newEngine(stitch.ModePanorama, 0.1).Stitch(context.Background(), images)

	assert.Equal(t, stitch.StatusHomographyEstimationFailed, attempt.Status)
	assert.Error(t, attempt.Err)
	assert.Nil(t, attempt.Composite)
}

func TestStitchUnrelatedImagesBelowThreshold(t *testing.T) {
	images := []image.Image{
		testsupport.ValueNoise(160, 120, 12, 1),
		testsupport.ValueNoise(160, 120, 12, 2),
	}

	attempt := newEngine(stitch.ModePanorama, 0.95).Stitch(context.Background(), images)

	assert.Equal(t, stitch.StatusNeedMoreImages, attempt.Status)
	assert.Nil(t, attempt.Composite)
}

func TestStitchPanoramaRejectsDirectionReversal(t *testing.T) {
	_, tiles := panoramaTiles(t)
	images := []image.Image{tiles[1], tiles[0], tiles[1]}

	attempt := newEngine(stitch.ModePanorama, 0.5).Stitch(context.Background(), images)

	assert.Equal(t, stitch.StatusCameraParamsAdjustFailed, attempt.Status)
}

func TestStitchCancelledContext(t *testing.T) {
	_, tiles := panoramaTiles(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	attempt := newEngine(stitch.ModePanorama, 0.1).Stitch(ctx, tiles)

	assert.Equal(t, stitch.StatusOther, attempt.Status)
	assert.ErrorIs(t, attempt.Err, context.Canceled)
}
