package discovery

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeDirectory is a scripted Directory for testing.
type fakeDirectory struct {
	geocodeResults []LatLng
	geocodeErr     error

	nearbyResults []PlaceSummary
	nearbyErr     error
	nearbyCalls   int

	details    map[string]*PlaceDetails
	detailErr  map[string]error
	detailCalls int
}

func (f *fakeDirectory) Geocode(ctx context.Context, location string) ([]LatLng, error) {
	return f.geocodeResults, f.geocodeErr
}

func (f *fakeDirectory) NearbySearch(ctx context.Context, q NearbyQuery) ([]PlaceSummary, error) {
	f.nearbyCalls++
	return f.nearbyResults, f.nearbyErr
}

func (f *fakeDirectory) PlaceDetails(ctx context.Context, placeID string) (*PlaceDetails, error) {
	f.detailCalls++
	if err, ok := f.detailErr[placeID]; ok {
		return nil, err
	}
	if d, ok := f.details[placeID]; ok {
		return d, nil
	}
	return nil, fmt.Errorf("unknown place %q", placeID)
}

func summaries(n int) []PlaceSummary {
	out := make([]PlaceSummary, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, PlaceSummary{
			PlaceID:  fmt.Sprintf("place-%d", i),
			Name:     fmt.Sprintf("Business %d", i),
			Address:  fmt.Sprintf("%d Main St", i),
			Location: LatLng{Lat: 39.7, Lng: -104.9},
		})
	}
	return out
}

func detailsFor(places []PlaceSummary) map[string]*PlaceDetails {
	out := make(map[string]*PlaceDetails, len(places))
	for _, p := range places {
		out[p.PlaceID] = &PlaceDetails{
			PlaceID: p.PlaceID,
			Name:    p.Name,
			Address: p.Address,
			Phone:   "555-0100",
			Website: "https://example.com",
		}
	}
	return out
}

func fastIngester(dir Directory) *Ingester {
	return NewIngester(dir, WithLimiter(NewTokenBucket(1000, time.Second)))
}

func TestDiscoverLocationNotFound(t *testing.T) {
	dir := &fakeDirectory{geocodeResults: nil}
	in := fastIngester(dir)

	_, err := in.Discover(context.Background(), DiscoverRequest{
		Industry: "roofing",
		Location: "Nowhereville ZZ",
	})
	assert.ErrorIs(t, err, ErrLocationNotFound)
	// must not proceed to a places search
	assert.Equal(t, 0, dir.nearbyCalls)
}

func TestDiscoverNearbyFailureDegradesToEmpty(t *testing.T) {
	dir := &fakeDirectory{
		geocodeResults: []LatLng{{Lat: 39.7, Lng: -104.9}},
		nearbyErr:      errors.New("quota exceeded"),
	}
	in := fastIngester(dir)

	leads, err := in.Discover(context.Background(), DiscoverRequest{
		Industry: "roofing",
		Location: "Denver, CO",
	})
	assert.NoError(t, err)
	assert.Empty(t, leads)
}

func TestDiscoverCapsAtMaxResults(t *testing.T) {
	places := summaries(20)
	dir := &fakeDirectory{
		geocodeResults: []LatLng{{Lat: 39.7, Lng: -104.9}},
		nearbyResults:  places,
		details:        detailsFor(places),
	}
	in := fastIngester(dir)

	leads, err := in.Discover(context.Background(), DiscoverRequest{
		Industry:   "roofing",
		Location:   "Denver, CO",
		MaxResults: 5,
	})
	assert.NoError(t, err)
	assert.Len(t, leads, 5)
	assert.Equal(t, 5, dir.detailCalls)

	for _, lead := range leads {
		assert.NotEmpty(t, lead.Name)
		assert.NotEmpty(t, lead.Address)
	}
}

func TestDiscoverDropsFailedDetailFetches(t *testing.T) {
	places := summaries(3)
	dir := &fakeDirectory{
		geocodeResults: []LatLng{{Lat: 39.7, Lng: -104.9}},
		nearbyResults:  places,
		details:        detailsFor(places),
		detailErr:      map[string]error{"place-1": errors.New("details unavailable")},
	}
	in := fastIngester(dir)

	leads, err := in.Discover(context.Background(), DiscoverRequest{
		Industry: "roofing",
		Location: "Denver, CO",
	})
	assert.NoError(t, err)
	assert.Len(t, leads, 2)
	for _, lead := range leads {
		assert.NotEqual(t, "place-1", lead.PlaceID)
	}
}

func TestDiscoverMissingOptionalFields(t *testing.T) {
	places := summaries(1)
	dir := &fakeDirectory{
		geocodeResults: []LatLng{{Lat: 39.7, Lng: -104.9}},
		nearbyResults:  places,
		details: map[string]*PlaceDetails{
			// no phone, website or rating; name/address fall back to summary
			"place-0": {PlaceID: "place-0"},
		},
	}
	in := fastIngester(dir)

	leads, err := in.Discover(context.Background(), DiscoverRequest{
		Industry: "roofing",
		Location: "Denver, CO",
	})
	assert.NoError(t, err)
	assert.Len(t, leads, 1)
	assert.Equal(t, "Business 0", leads[0].Name)
	assert.Equal(t, "0 Main St", leads[0].Address)
	assert.Empty(t, leads[0].Phone)
	assert.Zero(t, leads[0].Rating)
}

func TestDiscoverQueryJoinsIndustryAndKeywords(t *testing.T) {
	var captured NearbyQuery
	dir := &capturingDirectory{
		fakeDirectory: fakeDirectory{
			geocodeResults: []LatLng{{Lat: 1, Lng: 2}},
		},
		onNearby: func(q NearbyQuery) { captured = q },
	}
	in := fastIngester(dir)

	_, err := in.Discover(context.Background(), DiscoverRequest{
		Industry: "plumbing",
		Location: "Austin, TX",
		Keywords: []string{"emergency", "repair"},
	})
	assert.NoError(t, err)
	assert.Equal(t, "plumbing emergency repair", captured.Keyword)
	assert.Equal(t, DefaultRadius, captured.Radius)
}

type capturingDirectory struct {
	fakeDirectory
	onNearby func(NearbyQuery)
}

func (c *capturingDirectory) NearbySearch(ctx context.Context, q NearbyQuery) ([]PlaceSummary, error) {
	c.onNearby(q)
	return c.fakeDirectory.NearbySearch(ctx, q)
}
