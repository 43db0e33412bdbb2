package gen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	lcschema "github.com/tmc/langchaingo/schema"

	"github.com/leadforge/salespipe/log"
	"github.com/leadforge/salespipe/schema"
)

// ErrEmptyResponse is returned when the backend answers with no choices.
var ErrEmptyResponse = errors.New("backend returned no choices")

// Config selects the backend model and sampling parameters. It is injected
// at construction so the model can be swapped per environment without
// touching agent logic.
type Config struct {
	// Model is the backend model identifier, e.g. "gpt-4o-mini".
	Model string
	// Temperature controls sampling randomness. Zero means backend default.
	Temperature float64
	// MaxTokens caps the completion length. Zero means backend default.
	MaxTokens int
}

// Client produces schema-valid structured output from a text-generation
// backend. Every call is a fresh generation; there is no caching, no
// automatic retry and no prompt repair.
type Client struct {
	model llms.Model
	cfg   Config
}

// NewClient creates a structured generation client over any langchaingo
// model.
func NewClient(model llms.Model, cfg Config) *Client {
	return &Client{model: model, cfg: cfg}
}

// Config returns the injected configuration.
func (c *Client) Config() Config {
	return c.cfg
}

// Generate issues one backend request instructed to emit output in the
// schema's shape, then validates the raw result.
//
// Failures are typed: a backend failure (unreachable, empty response)
// yields *Error with KindBackend; content that fails validation yields
// *Error with KindSchemaViolation wrapping the validator's error, so a
// caller can decide whether to retry with a repaired prompt.
func (c *Client) Generate(ctx context.Context, s *schema.Schema, systemPrompt, userPrompt string) (map[string]any, error) {
	messages := []llms.MessageContent{
		{
			Role:  lcschema.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(systemPrompt + "\n\n" + renderSchema(s))},
		},
		{
			Role:  lcschema.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(userPrompt)},
		},
	}

	opts := []llms.CallOption{}
	if c.cfg.Model != "" {
		opts = append(opts, llms.WithModel(c.cfg.Model))
	}
	if c.cfg.Temperature != 0 {
		opts = append(opts, llms.WithTemperature(c.cfg.Temperature))
	}
	if c.cfg.MaxTokens != 0 {
		opts = append(opts, llms.WithMaxTokens(c.cfg.MaxTokens))
	}

	log.Debug("generating %q with model %s", s.Name, c.cfg.Model)

	resp, err := c.model.GenerateContent(ctx, messages, opts...)
	if err != nil {
		return nil, &Error{Kind: KindBackend, Schema: s.Name, Err: err}
	}
	if len(resp.Choices) == 0 {
		return nil, &Error{Kind: KindBackend, Schema: s.Name, Err: ErrEmptyResponse}
	}

	raw := extractJSON(resp.Choices[0].Content)

	var candidate map[string]any
	if err := json.Unmarshal([]byte(raw), &candidate); err != nil {
		return nil, &Error{
			Kind:   KindSchemaViolation,
			Schema: s.Name,
			Err:    fmt.Errorf("response is not a JSON object: %w", err),
		}
	}

	validated, err := s.Validate(candidate)
	if err != nil {
		return nil, &Error{Kind: KindSchemaViolation, Schema: s.Name, Err: err}
	}

	return validated, nil
}
