package natsort

import (
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// Chunk is one span of a split name: either a run of ASCII digits or a run of
// everything else.
type Chunk struct {
	Text    string
	Numeric bool
}

// Split breaks name into alternating literal and digit spans.
func Split(name string) []Chunk {
	if name == "" {
		return nil
	}
	var chunks []Chunk
	start := 0
	numeric := isDigit(name[0])
	for i := 1; i < len(name); i++ {
		if d := isDigit(name[i]); d != numeric {
			chunks = append(chunks, Chunk{Text: name[start:i], Numeric: numeric})
			start = i
			numeric = d
		}
	}
	return append(chunks, Chunk{Text: name[start:], Numeric: numeric})
}

// Compare orders a and b naturally: digit runs compare by integer value,
// literal runs compare case-insensitively, and a name that is a strict prefix of
// another sorts first. Names that are equal under those rules fall back to a
// byte comparison so the order is total.
func Compare(a, b string) int {
	if c := compareChunks(Split(a), Split(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

// Sort returns paths ordered by the natural order of their base names. The
// input slice is not modified.
func Sort(paths []string) []string {
	sorted := slices.Clone(paths)
	slices.SortStableFunc(sorted, func(a, b string) int {
		if c := Compare(filepath.Base(a), filepath.Base(b)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	return sorted
}

func compareChunks(a, b []Chunk) int {
	fold := cases.Fold()
	for i := 0; i < len(a) && i < len(b); i++ {
		x, y := a[i], b[i]
		switch {
		case x.Numeric && y.Numeric:
			if c := compareDigits(x.Text, y.Text); c != 0 {
				return c
			}
		case x.Numeric != y.Numeric:
			// Digits sort ahead of text at the same position.
			if x.Numeric {
				return -1
			}
			return 1
		default:
			if c := strings.Compare(fold.String(x.Text), fold.String(y.Text)); c != 0 {
				return c
			}
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// compareDigits compares two digit strings by value without parsing, so runs
// longer than any integer type still order correctly.
func compareDigits(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
