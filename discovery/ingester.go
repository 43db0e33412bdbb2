package discovery

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/leadforge/salespipe/log"
)

// ErrLocationNotFound is returned when the geocoder yields zero results
// for a location string. Discovery fails fast rather than guessing a
// fallback location.
var ErrLocationNotFound = errors.New("location not found")

const (
	// DefaultRadius is the nearby-search radius in provider distance units.
	DefaultRadius = 50000
	// DefaultMaxResults caps how many leads one discovery call returns.
	DefaultMaxResults = 20
)

// DiscoveredLead is a normalized business record from the places directory.
// Name and Address are always populated; the remaining fields depend on
// what the provider knows about the place.
type DiscoveredLead struct {
	PlaceID     string   `json:"placeId"`
	Name        string   `json:"name"`
	Address     string   `json:"address"`
	Phone       string   `json:"phone,omitempty"`
	Website     string   `json:"website,omitempty"`
	Rating      float64  `json:"rating,omitempty"`
	ReviewCount int      `json:"reviewCount,omitempty"`
	Categories  []string `json:"categories,omitempty"`
	Lat         float64  `json:"lat"`
	Lng         float64  `json:"lng"`
}

// DiscoverRequest describes one discovery run.
type DiscoverRequest struct {
	Industry string
	Location string
	// Radius overrides DefaultRadius when positive.
	Radius   int
	Keywords []string
	// MaxResults overrides DefaultMaxResults when positive.
	MaxResults int
}

// Ingester turns directory searches into normalized discovered leads.
type Ingester struct {
	dir     Directory
	limiter *TokenBucket
}

// IngesterOption configures an Ingester.
type IngesterOption func(*Ingester)

// WithLimiter sets the rate limiter applied to detail fetches. The default
// allows 10 requests per second.
func WithLimiter(limiter *TokenBucket) IngesterOption {
	return func(in *Ingester) {
		in.limiter = limiter
	}
}

// NewIngester creates a lead discovery ingester over a places directory.
func NewIngester(dir Directory, opts ...IngesterOption) *Ingester {
	in := &Ingester{
		dir:     dir,
		limiter: NewTokenBucket(10, time.Second),
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Discover geocodes the request location, runs a nearby search for the
// industry and keywords, and assembles a DiscoveredLead per candidate from
// its detail record.
//
// Failure policy: a location that geocodes to nothing returns
// ErrLocationNotFound without searching. A failed nearby search degrades to
// an empty result set rather than an error. A failed detail fetch drops
// that one candidate and discovery continues.
func (in *Ingester) Discover(ctx context.Context, req DiscoverRequest) ([]DiscoveredLead, error) {
	points, err := in.dir.Geocode(ctx, req.Location)
	if err != nil {
		return nil, fmt.Errorf("geocode %q: %w", req.Location, err)
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrLocationNotFound, req.Location)
	}
	origin := points[0]

	radius := req.Radius
	if radius <= 0 {
		radius = DefaultRadius
	}
	maxResults := req.MaxResults
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	keyword := strings.TrimSpace(strings.Join(append([]string{req.Industry}, req.Keywords...), " "))

	summaries, err := in.dir.NearbySearch(ctx, NearbyQuery{
		Location: origin,
		Radius:   radius,
		Keyword:  keyword,
	})
	if err != nil {
		log.Warn("discovery: nearby search failed, returning no leads: %v", err)
		return []DiscoveredLead{}, nil
	}

	if len(summaries) > maxResults {
		summaries = summaries[:maxResults]
	}

	leads := make([]DiscoveredLead, 0, len(summaries))
	for _, summary := range summaries {
		if err := in.limiter.Wait(ctx); err != nil {
			return leads, err
		}

		details, err := in.dir.PlaceDetails(ctx, summary.PlaceID)
		if err != nil {
			log.Debug("discovery: dropping place %s: %v", summary.PlaceID, err)
			continue
		}

		lead := DiscoveredLead{
			PlaceID:     summary.PlaceID,
			Name:        details.Name,
			Address:     details.Address,
			Phone:       details.Phone,
			Website:     details.Website,
			Rating:      details.Rating,
			ReviewCount: details.ReviewCount,
			Categories:  summary.Categories,
			Lat:         summary.Location.Lat,
			Lng:         summary.Location.Lng,
		}
		if lead.Name == "" {
			lead.Name = summary.Name
		}
		if lead.Address == "" {
			lead.Address = summary.Address
		}
		leads = append(leads, lead)
	}

	log.Info("discovery: %d leads from %d candidates for %q near %q", len(leads), len(summaries), keyword, req.Location)
	return leads, nil
}
