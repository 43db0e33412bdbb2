package pipeline

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/leadforge/salespipe/agent"
	"github.com/leadforge/salespipe/log"
	"github.com/leadforge/salespipe/store"
)

// DefaultChunkSize bounds how many leads are analyzed concurrently.
const DefaultChunkSize = 5

// Analyzer is the per-lead analysis the batch runs. *agent.SDRAgent
// satisfies it.
type Analyzer interface {
	Analyze(ctx context.Context, lead agent.LeadIdentity) (*agent.SDRAnalysis, error)
}

// LeadResult is the isolated outcome for one lead. Exactly one of Analysis
// and Err is set.
type LeadResult struct {
	Analysis *agent.SDRAnalysis
	Err      error
}

// BatchAnalyzer fans a lead list out over an Analyzer in bounded chunks.
type BatchAnalyzer struct {
	analyzer  Analyzer
	chunkSize int
	sink      store.AnalysisStore
	tenantID  string
}

// BatchOption configures a BatchAnalyzer.
type BatchOption func(*BatchAnalyzer)

// WithChunkSize overrides the concurrency bound. Values below 1 are
// ignored.
func WithChunkSize(size int) BatchOption {
	return func(b *BatchAnalyzer) {
		if size >= 1 {
			b.chunkSize = size
		}
	}
}

// WithSink persists each successful analysis to the given store under the
// tenant ID. Sink failures are logged, never surfaced into lead results.
func WithSink(sink store.AnalysisStore, tenantID string) BatchOption {
	return func(b *BatchAnalyzer) {
		b.sink = sink
		b.tenantID = tenantID
	}
}

// NewBatchAnalyzer creates a batch orchestrator around an analyzer.
func NewBatchAnalyzer(analyzer Analyzer, opts ...BatchOption) *BatchAnalyzer {
	b := &BatchAnalyzer{
		analyzer:  analyzer,
		chunkSize: DefaultChunkSize,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// AnalyzeAll analyzes every lead and returns per-lead results keyed by
// LeadIdentity.Key. One lead's failure never discards another's result.
func (b *BatchAnalyzer) AnalyzeAll(ctx context.Context, leads []agent.LeadIdentity) map[string]LeadResult {
	_, results := b.AnalyzeBatch(ctx, leads)
	return results
}

// AnalyzeBatch is AnalyzeAll plus the generated run ID, for callers that
// will query the sink for this run's records afterwards.
//
// Chunks run sequentially; leads within a chunk run concurrently.
func (b *BatchAnalyzer) AnalyzeBatch(ctx context.Context, leads []agent.LeadIdentity) (string, map[string]LeadResult) {
	runID := uuid.NewString()
	results := make(map[string]LeadResult, len(leads))

	log.Info("batch %s: analyzing %d leads in chunks of %d", runID, len(leads), b.chunkSize)

	for start := 0; start < len(leads); start += b.chunkSize {
		end := start + b.chunkSize
		if end > len(leads) {
			end = len(leads)
		}
		b.analyzeChunk(ctx, runID, leads[start:end], results)
	}

	return runID, results
}

func (b *BatchAnalyzer) analyzeChunk(ctx context.Context, runID string, chunk []agent.LeadIdentity, results map[string]LeadResult) {
	type leadOutcome struct {
		key      string
		analysis *agent.SDRAnalysis
		err      error
	}

	outcomes := make(chan leadOutcome, len(chunk))
	var wg sync.WaitGroup

	for _, lead := range chunk {
		wg.Add(1)
		go func(lead agent.LeadIdentity) {
			defer wg.Done()

			analysis, err := b.analyzer.Analyze(ctx, lead)
			outcomes <- leadOutcome{
				key:      lead.Key(),
				analysis: analysis,
				err:      err,
			}
		}(lead)
	}

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	for outcome := range outcomes {
		results[outcome.key] = LeadResult{Analysis: outcome.analysis, Err: outcome.err}

		if outcome.err != nil {
			log.Warn("batch %s: lead %s failed: %v", runID, outcome.key, outcome.err)
			continue
		}
		b.persist(ctx, runID, outcome.key, outcome.analysis)
	}
}

func (b *BatchAnalyzer) persist(ctx context.Context, runID, leadKey string, analysis *agent.SDRAnalysis) {
	if b.sink == nil {
		return
	}

	payload, err := json.Marshal(analysis)
	if err != nil {
		log.Warn("batch %s: marshal analysis for %s: %v", runID, leadKey, err)
		return
	}

	record := &store.AnalysisRecord{
		ID:        uuid.NewString(),
		TenantID:  b.tenantID,
		LeadKey:   leadKey,
		RunID:     runID,
		Kind:      store.KindSDRAnalysis,
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
	}
	if err := b.sink.Save(ctx, record); err != nil {
		log.Warn("batch %s: persist analysis for %s: %v", runID, leadKey, err)
	}
}
