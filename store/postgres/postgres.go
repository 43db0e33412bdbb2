package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/leadforge/salespipe/store"
)

// DBPool defines the interface for database connection pool
type DBPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresStore implements store.AnalysisStore using PostgreSQL.
type PostgresStore struct {
	pool      DBPool
	tableName string
}

// PostgresOptions configuration for Postgres connection
type PostgresOptions struct {
	ConnString string
	TableName  string // Default "analysis_records"
}

// NewPostgresStore creates a new Postgres-backed analysis store.
func NewPostgresStore(ctx context.Context, opts PostgresOptions) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, opts.ConnString)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	tableName := opts.TableName
	if tableName == "" {
		tableName = "analysis_records"
	}

	return &PostgresStore{pool: pool, tableName: tableName}, nil
}

// NewPostgresStoreWithPool creates a store with an existing pool.
// Useful for testing with mocks.
func NewPostgresStoreWithPool(pool DBPool, tableName string) *PostgresStore {
	if tableName == "" {
		tableName = "analysis_records"
	}
	return &PostgresStore{pool: pool, tableName: tableName}
}

// InitSchema creates the necessary table if it doesn't exist.
func (s *PostgresStore) InitSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			tenant_id TEXT NOT NULL,
			lead_key TEXT NOT NULL,
			run_id TEXT NOT NULL,
			kind TEXT NOT NULL,
			payload JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_%s_run_id ON %s (run_id);
	`, s.tableName, s.tableName, s.tableName)

	if _, err := s.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Save stores a record, replacing any existing record with the same ID.
func (s *PostgresStore) Save(ctx context.Context, record *store.AnalysisRecord) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, tenant_id, lead_key, run_id, kind, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			tenant_id = EXCLUDED.tenant_id,
			lead_key = EXCLUDED.lead_key,
			run_id = EXCLUDED.run_id,
			kind = EXCLUDED.kind,
			payload = EXCLUDED.payload,
			created_at = EXCLUDED.created_at
	`, s.tableName)

	_, err := s.pool.Exec(ctx, query,
		record.ID, record.TenantID, record.LeadKey, record.RunID,
		record.Kind, record.Payload, record.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}
	return nil
}

// Load retrieves a record by ID.
func (s *PostgresStore) Load(ctx context.Context, id string) (*store.AnalysisRecord, error) {
	query := fmt.Sprintf(`
		SELECT id, tenant_id, lead_key, run_id, kind, payload, created_at
		FROM %s WHERE id = $1
	`, s.tableName)

	var record store.AnalysisRecord
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&record.ID, &record.TenantID, &record.LeadKey, &record.RunID,
		&record.Kind, &record.Payload, &record.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load record: %w", err)
	}
	return &record, nil
}

// ListByRun returns all records for a batch run, ordered by creation time.
func (s *PostgresStore) ListByRun(ctx context.Context, runID string) ([]*store.AnalysisRecord, error) {
	query := fmt.Sprintf(`
		SELECT id, tenant_id, lead_key, run_id, kind, payload, created_at
		FROM %s WHERE run_id = $1 ORDER BY created_at
	`, s.tableName)

	rows, err := s.pool.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	var records []*store.AnalysisRecord
	for rows.Next() {
		var record store.AnalysisRecord
		if err := rows.Scan(&record.ID, &record.TenantID, &record.LeadKey,
			&record.RunID, &record.Kind, &record.Payload, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, &record)
	}
	return records, rows.Err()
}

// Delete removes a record.
func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, s.tableName)
	tag, err := s.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ClearRun removes all records for a batch run.
func (s *PostgresStore) ClearRun(ctx context.Context, runID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE run_id = $1`, s.tableName)
	if _, err := s.pool.Exec(ctx, query, runID); err != nil {
		return fmt.Errorf("failed to clear run: %w", err)
	}
	return nil
}
