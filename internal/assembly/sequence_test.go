package assembly_test

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/draw"

	"panostitch/internal/assembly"
	"panostitch/internal/services"
	"panostitch/internal/testsupport"
)

func writeImages(t *testing.T, dir string, names ...string) []string {
	t.Helper()
	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(dir, name)
		testsupport.WritePNG(t, paths[i], testsupport.Solid(40, 20, color.NRGBA{R: uint8(i * 30), A: 255}))
	}
	return paths
}

func TestOrderUsesNaturalOrder(t *testing.T) {
	got := assembly.Order([]string{"img10.png", "img2.png", "img1.png", "./img2.png"})
	assert.Equal(t, []string{"img1.png", "img2.png", "img10.png"}, got)
}

func TestOrderIDsUseBaseNames(t *testing.T) {
	got := assembly.OrderIDs([]string{"scans/b/page10.png", "scans/a/page2.png", "page1.png"})
	assert.Equal(t, []string{"page1.png", "page2.png", "page10.png"}, got)
}

func TestOrderIDsKeepPathsForDuplicateNames(t *testing.T) {
	got := assembly.OrderIDs([]string{"b/shot1.png", "a/shot1.png", "shot2.png"})
	assert.Equal(t, []string{"a/shot1.png", "b/shot1.png", "shot2.png"}, got)
}

func TestLoadOrdersAndDecodesEveryImage(t *testing.T) {
	dir := t.TempDir()
	paths := writeImages(t, dir, "shot_10.png", "shot_2.png", "shot_1.png")

	var loaded []string
	seq, err := assembly.Load(paths, assembly.LoadOptions{
		Scale:  1,
		Loaded: func(item assembly.Item) { loaded = append(loaded, item.ID) },
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"shot_1.png", "shot_2.png", "shot_10.png"}, seq.IDs())
	assert.Equal(t, seq.IDs(), loaded)
	for _, item := range seq {
		assert.Equal(t, image.Rect(0, 0, 40, 20), item.Image.Bounds())
		assert.Equal(t, filepath.Join(dir, item.ID), item.Path)
	}
}

func TestLoadAppliesResize(t *testing.T) {
	paths := writeImages(t, t.TempDir(), "a.png", "b.png")

	seq, err := assembly.Load(paths, assembly.LoadOptions{Scale: 0.5, Filter: draw.ApproxBiLinear})
	require.NoError(t, err)
	for _, item := range seq {
		assert.Equal(t, 20, item.Image.Bounds().Dx())
		assert.Equal(t, 10, item.Image.Bounds().Dy())
	}
}

func TestLoadAbortsOnUnreadableImage(t *testing.T) {
	dir := t.TempDir()
	paths := writeImages(t, dir, "1.png", "3.png")
	broken := filepath.Join(dir, "2.png")
	testsupport.WriteFile(t, broken, []byte("not an image"))

	var loaded []string
	_, err := assembly.Load(append(paths, broken), assembly.LoadOptions{
		Loaded: func(item assembly.Item) { loaded = append(loaded, item.ID) },
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrDecode)
	assert.Contains(t, err.Error(), "2.png")
	assert.Equal(t, []string{"1.png"}, loaded)
}

func TestLoadKeepsIdentifiersUnique(t *testing.T) {
	root := t.TempDir()
	left := writeImages(t, filepath.Join(root, "left"), "frame.png")
	right := writeImages(t, filepath.Join(root, "right"), "frame.png", "other.png")

	seq, err := assembly.Load(append(left, right...), assembly.LoadOptions{})
	require.NoError(t, err)
	require.Len(t, seq, 3)

	ids := seq.IDs()
	assert.ElementsMatch(t, []string{left[0], right[0], "other.png"}, ids)
}

func TestBuildWindow(t *testing.T) {
	seq := sequence("a", "b", "c", "d")

	assert.Equal(t, []string{"a", "b", "c"}, assembly.BuildWindow(seq, 1).IDs())
	assert.Equal(t, []string{"b", "c", "d"}, assembly.BuildWindow(seq, 2).IDs())
	assert.Equal(t, []string{"c", "d"}, assembly.BuildWindow(seq, 3).IDs())
	assert.Len(t, assembly.BuildWindow(seq, 2).Images(), 3)

	assert.Panics(t, func() { assembly.BuildWindow(seq, 0) })
	assert.Panics(t, func() { assembly.BuildWindow(seq, 4) })
}

func TestBuildWindowDoesNotAliasSequence(t *testing.T) {
	seq := sequence("a", "b", "c")
	window := assembly.BuildWindow(seq, 1)
	window[0].ID = "changed"
	assert.Equal(t, "a", seq[0].ID)
}

func TestStateContains(t *testing.T) {
	state := assembly.Seed(sequence("a")[0])
	assert.True(t, state.Contains("a"))
	assert.False(t, state.Contains("b"))
}
