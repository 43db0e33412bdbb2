// Package postgres provides a PostgreSQL-backed AnalysisStore using pgx.
//
// Payloads are stored as JSONB with a run ID index for batch listing. The
// DBPool interface lets tests substitute a pgxmock pool:
//
//	s, err := postgres.NewPostgresStore(ctx, postgres.PostgresOptions{
//		ConnString: os.Getenv("DATABASE_URL"),
//	})
//	if err != nil {
//		return err
//	}
//	defer s.Close()
//	if err := s.InitSchema(ctx); err != nil {
//		return err
//	}
package postgres
