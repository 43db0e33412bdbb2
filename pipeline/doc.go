// Package pipeline orchestrates batch lead analysis. A BatchAnalyzer runs
// an Analyzer over a lead list in bounded concurrent chunks, isolates
// per-lead failures, and optionally persists results through a
// store.AnalysisStore keyed by a per-run UUID.
package pipeline
