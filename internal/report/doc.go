// Package report persists the final composite and renders the textual run
// report.
//
// SaveComposite is the only writer of the output image. It picks the encoder
// from the file extension, holds a lock beside the output while writing, and
// replaces the file atomically. Render and Write describe a finished
// assembly.Run: processing order, one ok/warn/skip row per step, and the
// identifiers incorporated into the composite in sequence order. Colour codes
// are only emitted when requested, which the CLI does for terminals.
package report
