package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/leadforge/salespipe/store"
)

func record(id, runID string, at time.Time) *store.AnalysisRecord {
	return &store.AnalysisRecord{
		ID:        id,
		TenantID:  "tenant-1",
		LeadKey:   "Acme Roofing-Jane Doe",
		RunID:     runID,
		Kind:      store.KindSDRAnalysis,
		Payload:   []byte(`{"icpScore": 80}`),
		CreatedAt: at,
	}
}

func TestSaveAndLoad(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	rec := record("r1", "run-a", time.Now())
	assert.NoError(t, s.Save(ctx, rec))

	loaded, err := s.Load(ctx, "r1")
	assert.NoError(t, err)
	assert.Equal(t, rec.LeadKey, loaded.LeadKey)
	assert.Equal(t, rec.Payload, loaded.Payload)

	// stored record is a copy, not an alias
	rec.LeadKey = "mutated"
	loaded, _ = s.Load(ctx, "r1")
	assert.Equal(t, "Acme Roofing-Jane Doe", loaded.LeadKey)
}

func TestLoadMissing(t *testing.T) {
	s := NewMemoryStore()
	_, err := s.Load(context.Background(), "nope")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestListByRunOrdered(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	base := time.Now()

	assert.NoError(t, s.Save(ctx, record("r2", "run-a", base.Add(time.Second))))
	assert.NoError(t, s.Save(ctx, record("r1", "run-a", base)))
	assert.NoError(t, s.Save(ctx, record("r3", "run-b", base)))

	records, err := s.ListByRun(ctx, "run-a")
	assert.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, "r1", records[0].ID)
	assert.Equal(t, "r2", records[1].ID)
}

func TestDelete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	assert.NoError(t, s.Save(ctx, record("r1", "run-a", time.Now())))
	assert.NoError(t, s.Delete(ctx, "r1"))
	assert.ErrorIs(t, s.Delete(ctx, "r1"), store.ErrNotFound)
}

func TestClearRun(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	assert.NoError(t, s.Save(ctx, record("r1", "run-a", time.Now())))
	assert.NoError(t, s.Save(ctx, record("r2", "run-b", time.Now())))
	assert.NoError(t, s.ClearRun(ctx, "run-a"))

	_, err := s.Load(ctx, "r1")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.Load(ctx, "r2")
	assert.NoError(t, err)
}
