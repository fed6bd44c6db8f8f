// Package preflight provides readiness checks for the filesystem paths and
// external binaries a stitch run depends on.
//
// These checks run in two contexts:
//   - The stitch command calls RunAll before loading any image. If any check
//     fails, the run stops before spending time on decoding and stitching.
//   - The "panostitch check" command prints every result.
//
// The stitcher binary is only checked when the command engine is configured.
package preflight
