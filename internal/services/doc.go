// Package services defines shared utilities consumed by the assembly controller,
// the stitch engines, and the CLI.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs, step indexes, and image identifiers
//     for logging.
//   - Structured error markers plus the Wrap helper so fatal failures (decode,
//     configuration, output) can be classified with errors.Is and mapped to
//     exit codes.
//
// Stitch failures are not errors: engines report them as statuses and the
// controller turns them into fallback or skip transitions.
package services
