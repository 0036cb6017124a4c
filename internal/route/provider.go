package route

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Lawmlor123/run-app/internal/shared/geo"
)

// Provider returns a round-trip path of roughly lengthMeters starting and
// ending at origin. Distinct seeds yield geometrically distinct loops.
type Provider interface {
	RoundTrip(ctx context.Context, origin geo.Coordinate, lengthMeters float64, seed int) ([]geo.Coordinate, error)
}

// ORSClient speaks the OpenRouteService directions API. The credential comes
// from deployment config; only the GeoJSON path geometry of the response is
// consumed.
type ORSClient struct {
	baseURL string
	apiKey  string
	profile string
	http    *http.Client
}

func NewORSClient(baseURL, apiKey, profile string) *ORSClient {
	if profile == "" {
		profile = "foot-walking"
	}
	return &ORSClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		profile: profile,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

type roundTripRequest struct {
	Coordinates [][]float64 `json:"coordinates"`
	Options     struct {
		RoundTrip struct {
			Length float64 `json:"length"`
			Points int     `json:"points"`
			Seed   int     `json:"seed"`
		} `json:"round_trip"`
	} `json:"options"`
}

type geoJSONResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

func (c *ORSClient) RoundTrip(ctx context.Context, origin geo.Coordinate, lengthMeters float64, seed int) ([]geo.Coordinate, error) {
	var payload roundTripRequest
	payload.Coordinates = [][]float64{{origin.Lng, origin.Lat}}
	payload.Options.RoundTrip.Length = lengthMeters
	payload.Options.RoundTrip.Points = 3
	payload.Options.RoundTrip.Seed = seed

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v2/directions/%s/geojson", c.baseURL, c.profile)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("routing request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("routing provider returned %d: %s", resp.StatusCode, snippet)
	}

	var decoded geoJSONResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode routing response: %w", err)
	}
	if len(decoded.Features) == 0 {
		return nil, fmt.Errorf("routing response contained no route")
	}

	raw := decoded.Features[0].Geometry.Coordinates
	path := make([]geo.Coordinate, 0, len(raw))
	for _, pair := range raw {
		if len(pair) < 2 {
			continue
		}
		// GeoJSON orders positions [lng, lat]
		path = append(path, geo.Coordinate{Lat: pair[1], Lng: pair[0]})
	}
	if len(path) == 0 {
		return nil, fmt.Errorf("routing response geometry was empty")
	}
	return path, nil
}
