// Package agent implements the sales agents built on the structured
// generation client: SDR qualification, lead enrichment, outreach drafting,
// and follow-up cadence planning. Each agent owns its output schema and its
// prompts; callers inject the shared gen.Client and receive typed results.
package agent
