package research

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
)

// Source is one citation backing a research finding.
type Source struct {
	Title   string
	URL     string
	Snippet string
}

// Findings is the raw output of a web research call: a readable summary of
// what was found plus the sources it came from.
type Findings struct {
	Query   string
	Summary string
	Sources []Source
}

// Researcher is the external web-research boundary consumed by the
// enrichment agent's companion call.
type Researcher interface {
	Research(ctx context.Context, query string) (*Findings, error)
}

// BraveClient implements Researcher against the Brave Search API.
type BraveClient struct {
	APIKey     string
	BaseURL    string
	Count      int
	Country    string
	Lang       string
	HTTPClient *http.Client
}

var _ Researcher = (*BraveClient)(nil)

// BraveOption configures a BraveClient.
type BraveOption func(*BraveClient)

// WithBraveBaseURL sets the base URL for the Brave Search API.
func WithBraveBaseURL(baseURL string) BraveOption {
	return func(b *BraveClient) {
		b.BaseURL = baseURL
	}
}

// WithBraveCount sets the number of results to request (1-20).
func WithBraveCount(count int) BraveOption {
	return func(b *BraveClient) {
		if count < 1 {
			count = 1
		}
		if count > 20 {
			count = 20
		}
		b.Count = count
	}
}

// WithBraveCountry sets the country code for search results (e.g., "US").
func WithBraveCountry(country string) BraveOption {
	return func(b *BraveClient) {
		b.Country = country
	}
}

// WithBraveHTTPClient sets a custom HTTP client.
func WithBraveHTTPClient(client *http.Client) BraveOption {
	return func(b *BraveClient) {
		b.HTTPClient = client
	}
}

// NewBraveClient creates a research client backed by Brave Search.
// If apiKey is empty, it tries the BRAVE_API_KEY environment variable.
func NewBraveClient(apiKey string, opts ...BraveOption) (*BraveClient, error) {
	if apiKey == "" {
		apiKey = os.Getenv("BRAVE_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("BRAVE_API_KEY not set")
	}

	b := &BraveClient{
		APIKey:     apiKey,
		BaseURL:    "https://api.search.brave.com/res/v1/web/search",
		Count:      10,
		Country:    "US",
		Lang:       "en",
		HTTPClient: http.DefaultClient,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b, nil
}

// Research runs a web search and returns the findings with citations.
func (b *BraveClient) Research(ctx context.Context, query string) (*Findings, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("count", fmt.Sprintf("%d", b.Count))
	if b.Country != "" {
		params.Set("country", b.Country)
	}
	if b.Lang != "" {
		params.Set("search_lang", b.Lang)
	}

	reqURL := fmt.Sprintf("%s?%s", b.BaseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", b.APIKey)

	resp, err := b.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search api returned status: %d", resp.StatusCode)
	}

	var result struct {
		Web struct {
			Results []struct {
				Title       string `json:"title"`
				URL         string `json:"url"`
				Description string `json:"description"`
			} `json:"results"`
		} `json:"web"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	findings := &Findings{Query: query}
	var sb strings.Builder
	for i, r := range result.Web.Results {
		findings.Sources = append(findings.Sources, Source{
			Title:   r.Title,
			URL:     r.URL,
			Snippet: r.Description,
		})
		fmt.Fprintf(&sb, "%d. %s\n%s\n\n", i+1, r.Title, r.Description)
	}

	if sb.Len() == 0 {
		findings.Summary = "No results found"
	} else {
		findings.Summary = strings.TrimSpace(sb.String())
	}

	return findings, nil
}
