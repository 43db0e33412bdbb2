// Package memory provides an in-memory AnalysisStore for tests and
// single-process use.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/leadforge/salespipe/store"
)

// MemoryStore implements store.AnalysisStore with a mutex-guarded map.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*store.AnalysisRecord
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]*store.AnalysisRecord),
	}
}

// Save stores a record, replacing any existing record with the same ID.
func (s *MemoryStore) Save(ctx context.Context, record *store.AnalysisRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *record
	s.records[record.ID] = &copied
	return nil
}

// Load retrieves a record by ID.
func (s *MemoryStore) Load(ctx context.Context, id string) (*store.AnalysisRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *record
	return &copied, nil
}

// ListByRun returns all records for a batch run, ordered by creation time.
func (s *MemoryStore) ListByRun(ctx context.Context, runID string) ([]*store.AnalysisRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var records []*store.AnalysisRecord
	for _, record := range s.records {
		if record.RunID == runID {
			copied := *record
			records = append(records, &copied)
		}
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
	return records, nil
}

// Delete removes a record.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.records, id)
	return nil
}

// ClearRun removes all records for a batch run.
func (s *MemoryStore) ClearRun(ctx context.Context, runID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, record := range s.records {
		if record.RunID == runID {
			delete(s.records, id)
		}
	}
	return nil
}
