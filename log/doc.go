// Package log provides a simple, leveled logging interface for the sales
// agent pipeline.
//
// Agents and the batch orchestrator log through the package-level logger by
// default, so applications can enable or silence pipeline logging globally:
//
//	log.SetLevel(log.LevelDebug)
//
// or plug in an existing golog logger:
//
//	log.SetDefaultLogger(log.NewGologLogger(golog.Default))
//
// The Logger interface has four methods (Debug, Info, Warn, Error) with
// Printf-style formatting. DefaultLogger writes to stderr via the standard
// library; NoOpLogger discards everything and is useful in tests.
package log
