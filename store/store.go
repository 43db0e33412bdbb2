package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a record ID does not exist.
var ErrNotFound = errors.New("analysis record not found")

// Record kinds.
const (
	KindSDRAnalysis = "sdr_analysis"
	KindEnrichment  = "enrichment"
	KindOutreach    = "outreach"
	KindCadence     = "cadence"
)

// AnalysisRecord is one persisted agent result. Payload is the agent
// output serialized as JSON; the store never inspects it.
type AnalysisRecord struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	LeadKey   string    `json:"lead_key"`
	RunID     string    `json:"run_id"`
	Kind      string    `json:"kind"`
	Payload   []byte    `json:"payload"`
	CreatedAt time.Time `json:"created_at"`
}

// AnalysisStore defines the interface for analysis result persistence.
type AnalysisStore interface {
	// Save stores a record, replacing any existing record with the same ID.
	Save(ctx context.Context, record *AnalysisRecord) error

	// Load retrieves a record by ID.
	Load(ctx context.Context, id string) (*AnalysisRecord, error)

	// ListByRun returns all records for a batch run.
	ListByRun(ctx context.Context, runID string) ([]*AnalysisRecord, error)

	// Delete removes a record.
	Delete(ctx context.Context, id string) error

	// ClearRun removes all records for a batch run.
	ClearRun(ctx context.Context, runID string) error
}
