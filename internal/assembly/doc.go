// Package assembly builds a composite from a naturally ordered image sequence
// by growing it one image at a time.
//
// The Controller runs a small state machine per image. The primary attempt
// stitches the running composite with the next raw image. When that fails, a
// fallback window of raw neighbours [previous, current, next] is stitched as a
// batch and the result merged into the composite. When either fallback call
// fails the image is skipped and the run continues with the next index. Each
// image therefore costs at most MaxCallsPerStep engine calls, and stitch
// failures never surface as errors.
//
// State is passed into and returned from every Step, so a caller can inspect
// or replay individual transitions without any shared mutable state.
package assembly
