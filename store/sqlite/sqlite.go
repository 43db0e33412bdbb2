package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/leadforge/salespipe/store"
)

// SqliteStore implements store.AnalysisStore using SQLite.
type SqliteStore struct {
	db        *sql.DB
	tableName string
}

// SqliteOptions configuration for SQLite connection
type SqliteOptions struct {
	Path      string
	TableName string // Default "analysis_records"
}

// NewSqliteStore opens (or creates) a SQLite-backed store. Use ":memory:"
// as the path for an ephemeral database.
func NewSqliteStore(opts SqliteOptions) (*SqliteStore, error) {
	db, err := sql.Open("sqlite3", opts.Path)
	if err != nil {
		return nil, fmt.Errorf("unable to open database: %w", err)
	}

	tableName := opts.TableName
	if tableName == "" {
		tableName = "analysis_records"
	}

	s := &SqliteStore{db: db, tableName: tableName}
	if err := s.InitSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// InitSchema creates the necessary table if it doesn't exist.
func (s *SqliteStore) InitSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			tenant_id TEXT NOT NULL,
			lead_key TEXT NOT NULL,
			run_id TEXT NOT NULL,
			kind TEXT NOT NULL,
			payload TEXT NOT NULL,
			created_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_%s_run_id ON %s (run_id);
	`, s.tableName, s.tableName, s.tableName)

	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SqliteStore) Close() error {
	return s.db.Close()
}

// Save stores a record, replacing any existing record with the same ID.
func (s *SqliteStore) Save(ctx context.Context, record *store.AnalysisRecord) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, tenant_id, lead_key, run_id, kind, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			tenant_id = excluded.tenant_id,
			lead_key = excluded.lead_key,
			run_id = excluded.run_id,
			kind = excluded.kind,
			payload = excluded.payload,
			created_at = excluded.created_at
	`, s.tableName)

	_, err := s.db.ExecContext(ctx, query,
		record.ID, record.TenantID, record.LeadKey, record.RunID,
		record.Kind, string(record.Payload), record.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}
	return nil
}

// Load retrieves a record by ID.
func (s *SqliteStore) Load(ctx context.Context, id string) (*store.AnalysisRecord, error) {
	query := fmt.Sprintf(`
		SELECT id, tenant_id, lead_key, run_id, kind, payload, created_at
		FROM %s WHERE id = ?
	`, s.tableName)

	record, err := scanRecord(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load record: %w", err)
	}
	return record, nil
}

// ListByRun returns all records for a batch run, ordered by creation time.
func (s *SqliteStore) ListByRun(ctx context.Context, runID string) ([]*store.AnalysisRecord, error) {
	query := fmt.Sprintf(`
		SELECT id, tenant_id, lead_key, run_id, kind, payload, created_at
		FROM %s WHERE run_id = ? ORDER BY created_at
	`, s.tableName)

	rows, err := s.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	var records []*store.AnalysisRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Delete removes a record.
func (s *SqliteStore) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, s.tableName)
	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ClearRun removes all records for a batch run.
func (s *SqliteStore) ClearRun(ctx context.Context, runID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE run_id = ?`, s.tableName)
	if _, err := s.db.ExecContext(ctx, query, runID); err != nil {
		return fmt.Errorf("failed to clear run: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*store.AnalysisRecord, error) {
	var record store.AnalysisRecord
	var payload string
	if err := row.Scan(&record.ID, &record.TenantID, &record.LeadKey,
		&record.RunID, &record.Kind, &payload, &record.CreatedAt); err != nil {
		return nil, err
	}
	record.Payload = []byte(payload)
	return &record, nil
}
