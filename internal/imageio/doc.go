// Package imageio decodes source photographs, rescales them before stitching,
// and encodes composites.
//
// Decoding understands PNG, JPEG, GIF, BMP, TIFF and WebP. Encoding picks the
// format from the output extension. Every load failure is tagged with
// services.ErrDecode so the CLI can abort before any stitching begins.
package imageio
