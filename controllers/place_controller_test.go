package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpatel17-ucsc/Campus-Hive-CSE115a-sub000/types"
)

func TestExtractAddressComponents(t *testing.T) {
	components := []types.AddressComponent{
		{LongName: "123", Types: []string{"street_number"}},
		{LongName: "Santa Cruz", ShortName: "Santa Cruz", Types: []string{"locality", "political"}},
		{LongName: "Santa Cruz County", Types: []string{"administrative_area_level_2"}},
		{LongName: "California", ShortName: "CA", Types: []string{"administrative_area_level_1", "political"}},
		{LongName: "95060", Types: []string{"postal_code"}},
	}

	city, state, zip := extractAddressComponents(components)

	assert.Equal(t, "Santa Cruz", city)
	assert.Equal(t, "CA", state)
	assert.Equal(t, "95060", zip)
}

func TestExtractAddressComponents_MissingPieces(t *testing.T) {
	components := []types.AddressComponent{
		{LongName: "Somewhere", Types: []string{"locality"}},
	}

	city, state, zip := extractAddressComponents(components)

	assert.Equal(t, "Somewhere", city)
	assert.Empty(t, state)
	assert.Empty(t, zip)
}

func TestPlaceCacheKey_NormalizesQuery(t *testing.T) {
	assert.Equal(t, placeCacheKey("Coffee  Shops\tSanta Cruz"), placeCacheKey("coffee shops santa cruz"))
	assert.NotEqual(t, placeCacheKey("coffee"), placeCacheKey("tea"))
}

func newCacheController(t *testing.T) (*PlaceController, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return &PlaceController{
		Redis:      client,
		HTTPClient: &http.Client{Timeout: time.Second},
	}, mr
}

func TestPlaceCache_RoundTrip(t *testing.T) {
	pc, _ := newCacheController(t)
	ctx := context.Background()

	_, ok := pc.cacheGet(ctx, "west cliff")
	assert.False(t, ok)

	candidates := []types.PlaceCandidate{
		{PlaceID: "abc", Name: "West Cliff Drive", City: "Santa Cruz", State: "CA", Zip: "95060"},
	}
	pc.cacheSet(ctx, "west cliff", candidates)

	got, ok := pc.cacheGet(ctx, "West  Cliff")
	require.True(t, ok, "normalized query must hit the same key")
	assert.Equal(t, candidates, got)
}

func TestPlaceCache_NilClientDisablesCache(t *testing.T) {
	pc := &PlaceController{}
	ctx := context.Background()

	pc.cacheSet(ctx, "q", []types.PlaceCandidate{{Name: "x"}})
	_, ok := pc.cacheGet(ctx, "q")
	assert.False(t, ok)
}

func TestLookupPlaces_ParsesSearchAndDetails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/textsearch/json":
			w.Write([]byte(`{
				"status": "OK",
				"results": [{
					"name": "Natural Bridges State Beach",
					"formatted_address": "2531 W Cliff Dr, Santa Cruz, CA 95060",
					"place_id": "p1",
					"geometry": {"location": {"lat": 36.95, "lng": -122.06}}
				}]
			}`))
		case r.URL.Path == "/details/json":
			w.Write([]byte(`{
				"status": "OK",
				"result": {
					"place_id": "p1",
					"address_components": [
						{"long_name": "Santa Cruz", "short_name": "Santa Cruz", "types": ["locality"]},
						{"long_name": "California", "short_name": "CA", "types": ["administrative_area_level_1"]},
						{"long_name": "95060", "short_name": "95060", "types": ["postal_code"]}
					]
				}
			}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	pc := &PlaceController{
		BaseURL:    server.URL,
		HTTPClient: server.Client(),
	}

	candidates, err := pc.lookupPlaces(context.Background(), "natural bridges")

	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "Natural Bridges State Beach", candidates[0].Name)
	assert.Equal(t, "Santa Cruz", candidates[0].City)
	assert.Equal(t, "CA", candidates[0].State)
	assert.Equal(t, "95060", candidates[0].Zip)
	assert.InDelta(t, 36.95, candidates[0].Latitude, 0.001)
}

func TestLookupPlaces_NonOKStatusIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "REQUEST_DENIED", "error_message": "bad key"}`))
	}))
	defer server.Close()

	pc := &PlaceController{
		BaseURL:    server.URL,
		HTTPClient: server.Client(),
	}

	_, err := pc.lookupPlaces(context.Background(), "anything")
	assert.Error(t, err)
}
