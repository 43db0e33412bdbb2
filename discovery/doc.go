// Package discovery seeds the agent pipeline with leads from an external
// places/business directory.
//
// The Ingester geocodes a location, runs a nearby search built from an
// industry plus keywords, and assembles a DiscoveredLead per candidate
// from its detail record. Detail fetches go through a token-bucket rate
// limiter parameterized by the provider quota.
//
// Discovery is best-effort by design: an unresolvable location is a hard
// ErrLocationNotFound, but a failed nearby search degrades to zero leads
// and a failed detail fetch drops only that candidate.
package discovery
