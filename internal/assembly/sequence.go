package assembly

import (
	"image"
	"path/filepath"

	"golang.org/x/image/draw"

	"panostitch/internal/imageio"
	"panostitch/internal/natsort"
)

// Item is one decoded source photograph. Items are read-only for a whole run.
type Item struct {
	ID    string
	Path  string
	Image image.Image
}

// Sequence is the naturally ordered list of items. Its order is fixed when it
// is loaded.
type Sequence []Item

// IDs returns the item identifiers in sequence order.
func (s Sequence) IDs() []string {
	ids := make([]string, len(s))
	for i, item := range s {
		ids[i] = item.ID
	}
	return ids
}

// LoadOptions control how source files become items.
type LoadOptions struct {
	Scale  float64
	Filter draw.Interpolator
	// Loaded, when set, is called after each image is decoded and resized.
	Loaded func(item Item)
}

// Order dedupes paths and sorts them by the natural order of their base names.
func Order(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	unique := make([]string, 0, len(paths))
	for _, p := range paths {
		clean := filepath.Clean(p)
		if _, ok := seen[clean]; ok {
			continue
		}
		seen[clean] = struct{}{}
		unique = append(unique, clean)
	}
	return natsort.Sort(unique)
}

// OrderIDs returns the identifiers of paths in natural order, as Load assigns
// them to items.
func OrderIDs(paths []string) []string {
	return identifiers(Order(paths))
}

// Load orders paths, then decodes and resizes every image before returning.
// The first unreadable file aborts the load, so no stitching ever starts on a
// partial sequence.
func Load(paths []string, opts LoadOptions) (Sequence, error) {
	ordered := Order(paths)
	ids := identifiers(ordered)
	scale := opts.Scale
	if scale == 0 {
		scale = 1
	}

	seq := make(Sequence, 0, len(ordered))
	for i, path := range ordered {
		img, err := imageio.Load(path)
		if err != nil {
			return nil, err
		}
		item := Item{ID: ids[i], Path: path, Image: imageio.Resize(img, scale, opts.Filter)}
		if opts.Loaded != nil {
			opts.Loaded(item)
		}
		seq = append(seq, item)
	}
	return seq, nil
}

// identifiers uses base names, falling back to the full path for names that
// occur more than once so every identifier stays unique.
func identifiers(paths []string) []string {
	counts := make(map[string]int, len(paths))
	for _, p := range paths {
		counts[filepath.Base(p)]++
	}
	ids := make([]string, len(paths))
	for i, p := range paths {
		if base := filepath.Base(p); counts[base] == 1 {
			ids[i] = base
		} else {
			ids[i] = p
		}
	}
	return ids
}
