// Package gen wraps a text-generation backend to produce output that
// conforms to a caller-supplied schema.
//
// The Client accepts any langchaingo llms.Model, so the provider is a
// construction-time choice: OpenAI-compatible endpoints via
// llms/openaichat, or anything else implementing the interface. Model name
// and sampling parameters live in an injected Config rather than at call
// sites.
//
// Generate builds a system prompt that embeds the schema as shape
// instructions, issues exactly one backend request, extracts the JSON
// object from the completion (markdown code fences are tolerated) and
// routes it through the schema validator. There is no caching and no
// automatic retry; repeated identical calls produce fresh, potentially
// different, but still schema-valid results.
//
// Failures carry a kind so callers can route them: KindBackend for
// transport/provider failures, KindSchemaViolation for content that failed
// validation (wrapping the validator's structured error). A caller wrapping
// Generate in a timeout should treat the timeout as a backend failure.
package gen
