package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
)

// LatLng is a geographic coordinate.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// NearbyQuery describes a nearby search around a geocoded point.
type NearbyQuery struct {
	Location LatLng
	// Radius is the search distance in the provider's distance units.
	Radius int
	// Keyword is the free-text query, e.g. "plumbing emergency repair".
	Keyword string
}

// PlaceSummary is one candidate from a nearby search.
type PlaceSummary struct {
	PlaceID    string
	Name       string
	Address    string
	Categories []string
	Location   LatLng
}

// PlaceDetails is the per-place detail record.
type PlaceDetails struct {
	PlaceID     string
	Name        string
	Address     string
	Phone       string
	Website     string
	Rating      float64
	ReviewCount int
}

// Directory is the geocoding/places boundary the ingester consumes. The
// provider's wire format is an implementation detail of the Directory.
type Directory interface {
	// Geocode resolves a free-text location to candidate coordinates.
	// An unknown location yields an empty slice, not an error.
	Geocode(ctx context.Context, location string) ([]LatLng, error)
	// NearbySearch returns ranked place candidates around a point.
	NearbySearch(ctx context.Context, q NearbyQuery) ([]PlaceSummary, error)
	// PlaceDetails fetches the detail record for one place.
	PlaceDetails(ctx context.Context, placeID string) (*PlaceDetails, error)
}

// HTTPDirectory implements Directory against a places web service using the
// common geocode / nearbysearch / details endpoint layout.
type HTTPDirectory struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

var _ Directory = (*HTTPDirectory)(nil)

// DirectoryOption configures an HTTPDirectory.
type DirectoryOption func(*HTTPDirectory)

// WithDirectoryBaseURL sets the service base URL.
func WithDirectoryBaseURL(baseURL string) DirectoryOption {
	return func(d *HTTPDirectory) {
		d.BaseURL = baseURL
	}
}

// WithDirectoryHTTPClient sets a custom HTTP client.
func WithDirectoryHTTPClient(client *http.Client) DirectoryOption {
	return func(d *HTTPDirectory) {
		d.HTTPClient = client
	}
}

// NewHTTPDirectory creates a places directory client. If apiKey is empty,
// it tries the PLACES_API_KEY environment variable.
func NewHTTPDirectory(apiKey string, opts ...DirectoryOption) (*HTTPDirectory, error) {
	if apiKey == "" {
		apiKey = os.Getenv("PLACES_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("PLACES_API_KEY not set")
	}

	d := &HTTPDirectory{
		APIKey:     apiKey,
		BaseURL:    "https://maps.googleapis.com/maps/api",
		HTTPClient: http.DefaultClient,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d, nil
}

// Geocode resolves a location string to coordinates.
func (d *HTTPDirectory) Geocode(ctx context.Context, location string) ([]LatLng, error) {
	params := url.Values{}
	params.Set("address", location)

	var payload struct {
		Status  string `json:"status"`
		Results []struct {
			Geometry struct {
				Location LatLng `json:"location"`
			} `json:"geometry"`
		} `json:"results"`
	}
	if err := d.get(ctx, "/geocode/json", params, &payload); err != nil {
		return nil, err
	}

	if payload.Status == "ZERO_RESULTS" {
		return nil, nil
	}
	if payload.Status != "OK" {
		return nil, fmt.Errorf("geocode returned status %q", payload.Status)
	}

	points := make([]LatLng, 0, len(payload.Results))
	for _, r := range payload.Results {
		points = append(points, r.Geometry.Location)
	}
	return points, nil
}

// NearbySearch returns place candidates around a point.
func (d *HTTPDirectory) NearbySearch(ctx context.Context, q NearbyQuery) ([]PlaceSummary, error) {
	params := url.Values{}
	params.Set("location", fmt.Sprintf("%f,%f", q.Location.Lat, q.Location.Lng))
	params.Set("radius", strconv.Itoa(q.Radius))
	params.Set("keyword", q.Keyword)

	var payload struct {
		Status  string `json:"status"`
		Results []struct {
			PlaceID  string   `json:"place_id"`
			Name     string   `json:"name"`
			Vicinity string   `json:"vicinity"`
			Types    []string `json:"types"`
			Geometry struct {
				Location LatLng `json:"location"`
			} `json:"geometry"`
		} `json:"results"`
	}
	if err := d.get(ctx, "/place/nearbysearch/json", params, &payload); err != nil {
		return nil, err
	}

	if payload.Status != "OK" && payload.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("nearby search returned status %q", payload.Status)
	}

	places := make([]PlaceSummary, 0, len(payload.Results))
	for _, r := range payload.Results {
		places = append(places, PlaceSummary{
			PlaceID:    r.PlaceID,
			Name:       r.Name,
			Address:    r.Vicinity,
			Categories: r.Types,
			Location:   r.Geometry.Location,
		})
	}
	return places, nil
}

// PlaceDetails fetches the detail record for one place.
func (d *HTTPDirectory) PlaceDetails(ctx context.Context, placeID string) (*PlaceDetails, error) {
	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("fields", "name,formatted_address,formatted_phone_number,website,rating,user_ratings_total")

	var payload struct {
		Status string `json:"status"`
		Result struct {
			Name             string  `json:"name"`
			FormattedAddress string  `json:"formatted_address"`
			FormattedPhone   string  `json:"formatted_phone_number"`
			Website          string  `json:"website"`
			Rating           float64 `json:"rating"`
			UserRatingsTotal int     `json:"user_ratings_total"`
		} `json:"result"`
	}
	if err := d.get(ctx, "/place/details/json", params, &payload); err != nil {
		return nil, err
	}

	if payload.Status != "OK" {
		return nil, fmt.Errorf("place details returned status %q", payload.Status)
	}

	return &PlaceDetails{
		PlaceID:     placeID,
		Name:        payload.Result.Name,
		Address:     payload.Result.FormattedAddress,
		Phone:       payload.Result.FormattedPhone,
		Website:     payload.Result.Website,
		Rating:      payload.Result.Rating,
		ReviewCount: payload.Result.UserRatingsTotal,
	}, nil
}

func (d *HTTPDirectory) get(ctx context.Context, path string, params url.Values, out any) error {
	params.Set("key", d.APIKey)
	reqURL := fmt.Sprintf("%s%s?%s", d.BaseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := d.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("places api returned status: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
