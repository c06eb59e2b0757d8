// Package main hosts the faceoff CLI entrypoint and command graph.
//
// The Cobra-based command tree covers session lifecycle (new, play, list,
// show, delete), library exploration (top, sources), and configuration
// scaffolding. It centralizes configuration resolution, library export
// loading, and structured logging setup so subcommands can focus on user
// experience instead of wiring.
//
// Keep this package lean: the ranking engine and library model live in the
// internal packages; commands translate flags and arguments into calls on
// them and format the results.
package main
