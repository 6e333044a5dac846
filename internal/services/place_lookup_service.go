package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"

	mem "wander/pkg/memcache"
	"wander/pkg/utils"
)

// PlaceDetails is what the lookup provider knows about a place.
type PlaceDetails struct {
	PlaceID          string
	Name             string
	FormattedAddress string
	Categories       []string
	EditorialSummary string
	PhotoRefs        []string
	Lat              float64
	Lng              float64
}

// PlaceLookupProvider resolves an external place identifier to its details.
// Returns (nil, nil) when the identifier is unknown and ErrUpstreamFailure
// when the provider itself misbehaves.
type PlaceLookupProvider interface {
	GetDetails(ctx context.Context, placeID string) (*PlaceDetails, error)
}

const placeLookupTimeout = 5 * time.Second

type googlePlaceLookup struct {
	apiKey  string
	baseURL string
	client  *http.Client
	cache   *mem.DetailsCache[*PlaceDetails]
}

func NewGooglePlaceLookup() PlaceLookupProvider {
	return &googlePlaceLookup{
		apiKey:  os.Getenv("GOOGLE_MAPS_API_KEY"),
		baseURL: "https://maps.googleapis.com/maps/api/place/details/json",
		client:  &http.Client{Timeout: placeLookupTimeout},
		cache:   mem.NewDetailsCache[*PlaceDetails](15 * time.Minute),
	}
}

type placeDetailsEnvelope struct {
	Status string `json:"status"`
	Result struct {
		Name             string   `json:"name"`
		FormattedAddress string   `json:"formatted_address"`
		Types            []string `json:"types"`
		EditorialSummary struct {
			Overview string `json:"overview"`
		} `json:"editorial_summary"`
		Photos []struct {
			PhotoReference string `json:"photo_reference"`
		} `json:"photos"`
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"result"`
}

func (g *googlePlaceLookup) GetDetails(ctx context.Context, placeID string) (*PlaceDetails, error) {
	if placeID == "" {
		return nil, nil
	}
	if cached, ok := g.cache.Get(placeID); ok {
		return cached, nil
	}

	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("fields", "name,formatted_address,types,editorial_summary,photos,geometry")
	params.Set("key", g.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrUpstreamFailure, err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		log.Printf("Place lookup failed for %s: %v", placeID, err)
		return nil, fmt.Errorf("%w: %v", utils.ErrUpstreamFailure, err)
	}
	defer resp.Body.Close()

	var envelope placeDetailsEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrUpstreamFailure, err)
	}

	switch envelope.Status {
	case "OK":
	case "ZERO_RESULTS", "NOT_FOUND", "INVALID_REQUEST":
		return nil, nil
	default:
		log.Printf("Place lookup returned %s for %s", envelope.Status, placeID)
		return nil, fmt.Errorf("%w: status %s", utils.ErrUpstreamFailure, envelope.Status)
	}

	details := &PlaceDetails{
		PlaceID:          placeID,
		Name:             envelope.Result.Name,
		FormattedAddress: envelope.Result.FormattedAddress,
		Categories:       envelope.Result.Types,
		EditorialSummary: envelope.Result.EditorialSummary.Overview,
		Lat:              envelope.Result.Geometry.Location.Lat,
		Lng:              envelope.Result.Geometry.Location.Lng,
	}
	for _, p := range envelope.Result.Photos {
		details.PhotoRefs = append(details.PhotoRefs, p.PhotoReference)
	}

	g.cache.Set(placeID, details)
	return details, nil
}
