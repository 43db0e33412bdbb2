package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"

	"github.com/leadforge/salespipe/store"
)

func TestRedisStore(t *testing.T) {
	mr, err := miniredis.Run()
	assert.NoError(t, err)
	defer mr.Close()

	s := NewRedisStore(RedisOptions{Addr: mr.Addr()})
	defer s.Close()

	ctx := context.Background()

	rec := &store.AnalysisRecord{
		ID:        "r1",
		TenantID:  "tenant-1",
		LeadKey:   "Acme Roofing-Jane Doe",
		RunID:     "run-a",
		Kind:      store.KindSDRAnalysis,
		Payload:   []byte(`{"icpScore": 80}`),
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}

	// Save
	assert.NoError(t, s.Save(ctx, rec))

	// Load
	loaded, err := s.Load(ctx, "r1")
	assert.NoError(t, err)
	assert.Equal(t, rec.LeadKey, loaded.LeadKey)
	assert.Equal(t, rec.Payload, loaded.Payload)

	// ListByRun
	records, err := s.ListByRun(ctx, "run-a")
	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, "r1", records[0].ID)

	// Delete
	assert.NoError(t, s.Delete(ctx, "r1"))
	_, err = s.Load(ctx, "r1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRedisStoreListOrdering(t *testing.T) {
	mr, err := miniredis.Run()
	assert.NoError(t, err)
	defer mr.Close()

	s := NewRedisStore(RedisOptions{Addr: mr.Addr()})
	defer s.Close()

	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Second)

	for i, id := range []string{"r3", "r1", "r2"} {
		offsets := map[string]time.Duration{"r1": 0, "r2": time.Second, "r3": 2 * time.Second}
		assert.NoError(t, s.Save(ctx, &store.AnalysisRecord{
			ID:        id,
			RunID:     "run-a",
			Kind:      store.KindOutreach,
			Payload:   []byte(`{}`),
			CreatedAt: base.Add(offsets[id]),
		}), "record %d", i)
	}

	records, err := s.ListByRun(ctx, "run-a")
	assert.NoError(t, err)
	assert.Len(t, records, 3)
	assert.Equal(t, "r1", records[0].ID)
	assert.Equal(t, "r3", records[2].ID)
}

func TestRedisStoreClearRun(t *testing.T) {
	mr, err := miniredis.Run()
	assert.NoError(t, err)
	defer mr.Close()

	s := NewRedisStore(RedisOptions{Addr: mr.Addr()})
	defer s.Close()

	ctx := context.Background()
	assert.NoError(t, s.Save(ctx, &store.AnalysisRecord{ID: "r1", RunID: "run-a", Payload: []byte(`{}`)}))
	assert.NoError(t, s.Save(ctx, &store.AnalysisRecord{ID: "r2", RunID: "run-b", Payload: []byte(`{}`)}))

	assert.NoError(t, s.ClearRun(ctx, "run-a"))

	_, err = s.Load(ctx, "r1")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.Load(ctx, "r2")
	assert.NoError(t, err)
}

func TestRedisStoreTTL(t *testing.T) {
	mr, err := miniredis.Run()
	assert.NoError(t, err)
	defer mr.Close()

	s := NewRedisStore(RedisOptions{Addr: mr.Addr(), TTL: time.Minute})
	defer s.Close()

	ctx := context.Background()
	assert.NoError(t, s.Save(ctx, &store.AnalysisRecord{ID: "r1", RunID: "run-a", Payload: []byte(`{}`)}))

	mr.FastForward(2 * time.Minute)

	_, err = s.Load(ctx, "r1")
	assert.ErrorIs(t, err, store.ErrNotFound)

	// expired members are skipped, not errors
	records, err := s.ListByRun(ctx, "run-a")
	assert.NoError(t, err)
	assert.Empty(t, records)
}
