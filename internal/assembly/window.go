package assembly

import (
	"fmt"
	"image"
)

// Window is the raw neighbourhood re-stitched when a primary attempt fails:
// [previous, current] plus the next item when one exists.
type Window []Item

// BuildWindow returns the fallback window around index i. It reads only raw
// items, never the running composite. i must satisfy 1 <= i < len(seq).
func BuildWindow(seq Sequence, i int) Window {
	if i < 1 || i >= len(seq) {
		panic(fmt.Sprintf("assembly: fallback window index %d out of range [1,%d)", i, len(seq)))
	}
	end := min(i+2, len(seq))
	window := make(Window, 0, end-(i-1))
	return append(window, seq[i-1:end]...)
}

// Images returns the window's pixel buffers in window order.
func (w Window) Images() []image.Image {
	images := make([]image.Image, len(w))
	for i, item := range w {
		images[i] = item.Image
	}
	return images
}

// IDs returns the identifiers of the window's items.
func (w Window) IDs() []string {
	ids := make([]string, len(w))
	for i, item := range w {
		ids[i] = item.ID
	}
	return ids
}
