package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/mpatel17-ucsc/Campus-Hive-CSE115a-sub000/types"
)

type PlaceController struct {
	Redis      *redis.Client
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

const (
	placeCacheTTL      = 24 * time.Hour
	maxPlaceCandidates = 5
)

func NewPlaceController(redisClient *redis.Client) *PlaceController {
	return &PlaceController{
		Redis:      redisClient,
		APIKey:     os.Getenv("GOOGLE_MAPS_API_KEY"),
		BaseURL:    "https://maps.googleapis.com/maps/api/place",
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// SearchPlaces godoc
// @Summary Search places by free-text query
// @Description Geocodes a text query into place candidates with city/state/zip
// @Tags places
// @Produce json
// @Param q query string true "Search text"
// @Success 200 {object} StandardResponse
// @Router /places/search [get]
func (pc *PlaceController) SearchPlaces(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Search query is required"})
		return
	}

	ctx := c.Request.Context()

	if cached, ok := pc.cacheGet(ctx, query); ok {
		c.JSON(http.StatusOK, StandardResponse{Success: true, Data: cached})
		return
	}

	candidates, err := pc.lookupPlaces(ctx, query)
	if err != nil {
		log.Printf("place search %q failed: %v", query, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Place search failed"})
		return
	}

	pc.cacheSet(ctx, query, candidates)

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: candidates})
}

func (pc *PlaceController) lookupPlaces(ctx context.Context, query string) ([]types.PlaceCandidate, error) {
	searchURL := fmt.Sprintf("%s/textsearch/json?query=%s&key=%s",
		pc.BaseURL, url.QueryEscape(query), pc.APIKey)

	var search types.GooglePlacesSearchResponse
	if err := pc.getJSON(ctx, searchURL, &search); err != nil {
		return nil, err
	}
	if search.Status != "OK" && search.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("places api status %s: %s", search.Status, search.ErrorMessage)
	}

	results := search.Results
	if len(results) > maxPlaceCandidates {
		results = results[:maxPlaceCandidates]
	}

	candidates := make([]types.PlaceCandidate, 0, len(results))
	for _, result := range results {
		candidate := types.PlaceCandidate{
			PlaceID:   result.PlaceID,
			Name:      result.Name,
			Address:   result.FormattedAddress,
			Latitude:  result.Geometry.Location.Lat,
			Longitude: result.Geometry.Location.Lng,
		}

		// Text search results carry no address components; details does.
		details, err := pc.lookupDetails(ctx, result.PlaceID)
		if err != nil {
			log.Printf("place details for %s failed: %v", result.PlaceID, err)
		} else {
			candidate.City, candidate.State, candidate.Zip = extractAddressComponents(details.AddressComponents)
		}

		candidates = append(candidates, candidate)
	}

	return candidates, nil
}

func (pc *PlaceController) lookupDetails(ctx context.Context, placeID string) (*types.GooglePlaceDetails, error) {
	detailsURL := fmt.Sprintf("%s/details/json?place_id=%s&fields=address_component&key=%s",
		pc.BaseURL, url.QueryEscape(placeID), pc.APIKey)

	var details types.GooglePlaceDetailsResponse
	if err := pc.getJSON(ctx, detailsURL, &details); err != nil {
		return nil, err
	}
	if details.Status != "OK" {
		return nil, fmt.Errorf("place details status %s", details.Status)
	}

	return &details.Result, nil
}

func (pc *PlaceController) getJSON(ctx context.Context, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}

	resp, err := pc.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// extractAddressComponents reduces a structured component list to the
// city, state, and zip the activity form stores, matching on the
// component-type tags.
func extractAddressComponents(components []types.AddressComponent) (city, state, zip string) {
	for _, component := range components {
		for _, t := range component.Types {
			switch t {
			case "locality":
				city = component.LongName
			case "administrative_area_level_1":
				state = component.ShortName
			case "postal_code":
				zip = component.LongName
			}
		}
	}
	return city, state, zip
}

// ---- cache ----------------------------------------------------------------

func placeCacheKey(query string) string {
	return "places:search:" + strings.ToLower(strings.Join(strings.Fields(query), " "))
}

func (pc *PlaceController) cacheGet(ctx context.Context, query string) ([]types.PlaceCandidate, bool) {
	if pc.Redis == nil {
		return nil, false
	}

	raw, err := pc.Redis.Get(ctx, placeCacheKey(query)).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("place cache read failed: %v", err)
		}
		return nil, false
	}

	var candidates []types.PlaceCandidate
	if err := json.Unmarshal([]byte(raw), &candidates); err != nil {
		return nil, false
	}
	return candidates, true
}

func (pc *PlaceController) cacheSet(ctx context.Context, query string, candidates []types.PlaceCandidate) {
	if pc.Redis == nil {
		return
	}

	raw, err := json.Marshal(candidates)
	if err != nil {
		return
	}
	if err := pc.Redis.Set(ctx, placeCacheKey(query), raw, placeCacheTTL).Err(); err != nil {
		log.Printf("place cache write failed: %v", err)
	}
}
