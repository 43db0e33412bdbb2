package openaichat

import (
	"net/http"
	"os"
)

const defaultModel = "gpt-4o-mini"

type options struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

func defaultOptions() *options {
	return &options{
		apiKey: os.Getenv("OPENAI_API_KEY"),
		model:  defaultModel,
	}
}

// Option configures the client.
type Option func(*options)

// WithAPIKey sets the API key, overriding the OPENAI_API_KEY environment
// variable.
func WithAPIKey(apiKey string) Option {
	return func(o *options) {
		o.apiKey = apiKey
	}
}

// WithBaseURL points the client at an OpenAI-compatible endpoint.
func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		o.baseURL = baseURL
	}
}

// WithModel sets the default model used when a call does not override it.
func WithModel(model string) Option {
	return func(o *options) {
		o.model = model
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}
