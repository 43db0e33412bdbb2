// Package store defines persistence for agent analysis results. The
// AnalysisStore interface has in-memory, SQLite, Redis and PostgreSQL
// implementations in subpackages; the batch orchestrator writes per-lead
// results through whichever one the caller wires in.
package store
