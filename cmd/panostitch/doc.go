// Package main hosts the panostitch CLI entrypoint and command graph.
//
// The Cobra-based command tree loads configuration, layers command-line flags
// over it, runs preflight checks, and hands the ordered image sequence to the
// assembly controller. The stitch command persists the composite and prints
// the run report; order, check, and config expose the supporting pieces on
// their own.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
