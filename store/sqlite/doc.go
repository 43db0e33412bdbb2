// Package sqlite provides a file-based AnalysisStore using SQLite.
//
// Suited to single-process deployments that want durable results without a
// database server. Use ":memory:" for tests:
//
//	s, err := sqlite.NewSqliteStore(sqlite.SqliteOptions{
//		Path: "./data/salespipe.db",
//	})
//	if err != nil {
//		return err
//	}
//	defer s.Close()
package sqlite
