package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leadforge/salespipe/agent"
	"github.com/leadforge/salespipe/store"
	"github.com/leadforge/salespipe/store/memory"
)

// fakeAnalyzer records call concurrency and fails for configured leads.
type fakeAnalyzer struct {
	mu        sync.Mutex
	inFlight  int
	maxFlight int
	calls     int
	failLeads map[string]bool
	gate      chan struct{} // optional: blocks calls until released
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, lead agent.LeadIdentity) (*agent.SDRAnalysis, error) {
	f.mu.Lock()
	f.calls++
	f.inFlight++
	if f.inFlight > f.maxFlight {
		f.maxFlight = f.inFlight
	}
	f.mu.Unlock()

	if f.gate != nil {
		<-f.gate
	}

	f.mu.Lock()
	f.inFlight--
	fail := f.failLeads[lead.Key()]
	f.mu.Unlock()

	if fail {
		return nil, errors.New("analysis blew up")
	}
	return &agent.SDRAnalysis{ICPScore: 70, ICPFitReason: lead.CompanyName}, nil
}

func leads(n int) []agent.LeadIdentity {
	out := make([]agent.LeadIdentity, n)
	for i := range out {
		out[i] = agent.LeadIdentity{
			Name:        fmt.Sprintf("Lead %d", i),
			CompanyName: fmt.Sprintf("Company %d", i),
		}
	}
	return out
}

func TestAnalyzeAll(t *testing.T) {
	analyzer := &fakeAnalyzer{}
	batch := NewBatchAnalyzer(analyzer)

	results := batch.AnalyzeAll(context.Background(), leads(7))
	assert.Len(t, results, 7)
	assert.Equal(t, 7, analyzer.calls)

	for key, result := range results {
		assert.NoError(t, result.Err, key)
		assert.NotNil(t, result.Analysis, key)
	}

	res, ok := results["Company 3-Lead 3"]
	assert.True(t, ok)
	assert.Equal(t, "Company 3", res.Analysis.ICPFitReason)
}

func TestAnalyzeAllIsolatesFailures(t *testing.T) {
	analyzer := &fakeAnalyzer{failLeads: map[string]bool{
		"Company 1-Lead 1": true,
		"Company 5-Lead 5": true,
	}}
	batch := NewBatchAnalyzer(analyzer)

	results := batch.AnalyzeAll(context.Background(), leads(8))
	assert.Len(t, results, 8)

	failed := 0
	for _, result := range results {
		if result.Err != nil {
			failed++
			assert.Nil(t, result.Analysis)
		} else {
			assert.NotNil(t, result.Analysis)
		}
	}
	assert.Equal(t, 2, failed)
}

func TestChunkBoundsConcurrency(t *testing.T) {
	gate := make(chan struct{})
	analyzer := &fakeAnalyzer{gate: gate}
	batch := NewBatchAnalyzer(analyzer, WithChunkSize(3))

	done := make(chan map[string]LeadResult)
	go func() {
		done <- batch.AnalyzeAll(context.Background(), leads(9))
	}()

	// release every call; the analyzer records peak concurrency
	for i := 0; i < 9; i++ {
		gate <- struct{}{}
	}
	results := <-done

	assert.Len(t, results, 9)
	assert.LessOrEqual(t, analyzer.maxFlight, 3)
}

func TestAnalyzeBatchPersistsToSink(t *testing.T) {
	analyzer := &fakeAnalyzer{failLeads: map[string]bool{"Company 2-Lead 2": true}}
	sink := memory.NewMemoryStore()
	batch := NewBatchAnalyzer(analyzer, WithSink(sink, "tenant-1"))

	runID, results := batch.AnalyzeBatch(context.Background(), leads(4))
	assert.Len(t, results, 4)
	assert.NotEmpty(t, runID)

	// only successes are persisted
	records, err := sink.ListByRun(context.Background(), runID)
	assert.NoError(t, err)
	assert.Len(t, records, 3)
	for _, record := range records {
		assert.Equal(t, "tenant-1", record.TenantID)
		assert.Equal(t, store.KindSDRAnalysis, record.Kind)
		assert.Contains(t, string(record.Payload), `"icpScore":70`)
	}
}

func TestAnalyzeAllEmpty(t *testing.T) {
	batch := NewBatchAnalyzer(&fakeAnalyzer{})
	results := batch.AnalyzeAll(context.Background(), nil)
	assert.Empty(t, results)
}
