package openaichat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
)

var (
	// ErrEmptyResponse is returned when the API answers with no choices.
	ErrEmptyResponse = errors.New("no response")
	// ErrMissingAPIKey is returned when no API key could be resolved.
	ErrMissingAPIKey = errors.New("OPENAI_API_KEY not set")
)

// LLM is a langchaingo model backed by an OpenAI-compatible chat completion
// API via the go-openai SDK. Any provider exposing the OpenAI wire format
// (OpenRouter, Azure OpenAI, local gateways) works by pointing BaseURL at it.
type LLM struct {
	client *openai.Client
	model  string
}

var _ llms.Model = (*LLM)(nil)

// New returns a new chat model client.
//
// Authentication options:
//  1. WithAPIKey(apiKey) - pass the API key directly
//  2. Set the OPENAI_API_KEY environment variable
//
// Example:
//
//	model, err := openaichat.New(
//		openaichat.WithModel("gpt-4o-mini"),
//	)
func New(opts ...Option) (*LLM, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	if options.apiKey == "" {
		return nil, fmt.Errorf(`%w
You can pass auth info by using openaichat.New(openaichat.WithAPIKey("{API Key}"))
or
export OPENAI_API_KEY={API Key}`, ErrMissingAPIKey)
	}

	cfg := openai.DefaultConfig(options.apiKey)
	if options.baseURL != "" {
		cfg.BaseURL = options.baseURL
	}
	if options.httpClient != nil {
		cfg.HTTPClient = options.httpClient
	}

	return &LLM{
		client: openai.NewClientWithConfig(cfg),
		model:  options.model,
	}, nil
}

// Call generates a response for a single prompt.
func (o *LLM) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, o, prompt, options...)
}

// GenerateContent implements the llms.Model interface.
func (o *LLM) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	opts := &llms.CallOptions{}
	for _, opt := range options {
		opt(opts)
	}

	chatMessages := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, msg := range messages {
		role := openai.ChatMessageRoleUser
		switch msg.Role {
		case schema.ChatMessageTypeSystem:
			role = openai.ChatMessageRoleSystem
		case schema.ChatMessageTypeAI:
			role = openai.ChatMessageRoleAssistant
		case schema.ChatMessageTypeHuman, schema.ChatMessageTypeGeneric:
			role = openai.ChatMessageRoleUser
		}

		var content strings.Builder
		for _, part := range msg.Parts {
			if text, ok := part.(llms.TextContent); ok {
				content.WriteString(text.Text)
			}
		}

		chatMessages = append(chatMessages, openai.ChatCompletionMessage{
			Role:    role,
			Content: content.String(),
		})
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.modelFor(opts),
		Messages:    chatMessages,
		Temperature: float32(opts.Temperature),
		TopP:        float32(opts.TopP),
		MaxTokens:   opts.MaxTokens,
	})
	if err != nil {
		return nil, err
	}

	if len(resp.Choices) == 0 {
		return nil, ErrEmptyResponse
	}

	choices := make([]*llms.ContentChoice, 0, len(resp.Choices))
	for _, c := range resp.Choices {
		choices = append(choices, &llms.ContentChoice{
			Content:    c.Message.Content,
			StopReason: string(c.FinishReason),
			GenerationInfo: map[string]any{
				"prompt_tokens":     resp.Usage.PromptTokens,
				"completion_tokens": resp.Usage.CompletionTokens,
				"total_tokens":      resp.Usage.TotalTokens,
			},
		})
	}

	return &llms.ContentResponse{Choices: choices}, nil
}

func (o *LLM) modelFor(opts *llms.CallOptions) string {
	if opts.Model != "" {
		return opts.Model
	}
	return o.model
}
