package assembly

import (
	"image"
	"slices"
)

// State is the running assembly: the current composite and the identifiers
// incorporated so far, in sequence order. Steps take a State and return a new
// one; a returned State never shares its Used backing array with its input.
type State struct {
	Composite image.Image
	Used      []string
}

// Seed starts a run from the first item.
func Seed(first Item) State {
	return State{Composite: first.Image, Used: []string{first.ID}}
}

// Contains reports whether id has been incorporated.
func (s State) Contains(id string) bool {
	return slices.Contains(s.Used, id)
}

// incorporate replaces the composite and records id. An id already present is
// not appended again.
func (s State) incorporate(composite image.Image, id string) State {
	used := slices.Clone(s.Used)
	if !slices.Contains(used, id) {
		used = append(used, id)
	}
	return State{Composite: composite, Used: used}
}
