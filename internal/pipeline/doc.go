// Package pipeline orchestrates listing runs.
//
// A [Runner] moves each run through a fixed sequence of stages: concept
// generation, image prompt derivation, artwork generation, SEO copy, print
// preparation, mockup rendering, and persistence. The concept and artwork
// stages sit behind human approval gates from the approval package; a
// rejection there regenerates, it never aborts.
//
// The aspect ratio chosen at concept time is copied verbatim across every
// stage boundary. A missing or unrecognized value at any boundary aborts the
// run with a contract violation rather than guessing an orientation.
//
// Runners hold no per-run state; [Runner.RunBatch] drives several runs
// through the same Runner with a bounded worker pool.
package pipeline
