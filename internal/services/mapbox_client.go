package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"photowalk/internal/walk"
	"photowalk/pkg/utils"
)

const mapboxBaseURL = "https://api.mapbox.com"

// DirectionsRoute is the part of a Mapbox route the walk screen uses.
type DirectionsRoute struct {
	Geometry json.RawMessage `json:"geometry"`
	Distance float64         `json:"distance"` // meters
	Duration float64         `json:"duration"` // seconds
	Legs     []struct {
		Steps json.RawMessage `json:"steps"`
	} `json:"legs"`
}

// MapboxClient wraps the geocoding and walking directions endpoints.
type MapboxClient struct {
	HTTP        *http.Client
	BaseURL     string
	AccessToken string
	Country     string
}

func NewMapboxClient(token, country string) *MapboxClient {
	return &MapboxClient{
		HTTP:        &http.Client{Timeout: 15 * time.Second},
		BaseURL:     mapboxBaseURL,
		AccessToken: token,
		Country:     country,
	}
}

// Geocode returns the best match for address, or ok=false when the
// provider has no feature for it.
func (c *MapboxClient) Geocode(ctx context.Context, address string) (walk.Coordinates, bool, error) {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return walk.Coordinates{}, false, err
	}
	u.Path = "/geocoding/v5/mapbox.places/" + address + ".json"
	u.RawPath = "/geocoding/v5/mapbox.places/" + url.PathEscape(address) + ".json"

	q := url.Values{}
	q.Set("access_token", c.AccessToken)
	if c.Country != "" {
		q.Set("country", c.Country)
	}
	q.Set("limit", "1")
	u.RawQuery = q.Encode()

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return walk.Coordinates{}, false, fmt.Errorf("mapbox geocoding http error: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return walk.Coordinates{}, false, fmt.Errorf("mapbox geocoding bad status: %s", resp.Status)
	}

	var payload struct {
		Features []struct {
			Center []float64 `json:"center"`
		} `json:"features"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return walk.Coordinates{}, false, fmt.Errorf("mapbox decode: %w", err)
	}

	if len(payload.Features) == 0 || len(payload.Features[0].Center) < 2 {
		return walk.Coordinates{}, false, nil
	}
	center := payload.Features[0].Center
	return walk.Coordinates{center[0], center[1]}, true, nil
}

// WalkingRoute asks for a walking route with geometry and steps. Non-2xx
// answers and empty route lists both map to ErrNoRoute.
func (c *MapboxClient) WalkingRoute(ctx context.Context, start, end walk.Coordinates) (*DirectionsRoute, error) {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, err
	}
	u.Path = fmt.Sprintf("/directions/v5/mapbox/walking/%f,%f;%f,%f",
		start.Lng(), start.Lat(), end.Lng(), end.Lat())

	q := url.Values{}
	q.Set("access_token", c.AccessToken)
	q.Set("geometries", "geojson")
	q.Set("steps", "true")
	q.Set("banner_instructions", "true")
	q.Set("voice_instructions", "true")
	u.RawQuery = q.Encode()

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mapbox directions http error: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("%w: %s", utils.ErrNoRoute, resp.Status)
	}

	var payload struct {
		Routes []DirectionsRoute `json:"routes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("mapbox decode: %w", err)
	}
	if len(payload.Routes) == 0 {
		return nil, utils.ErrNoRoute
	}
	return &payload.Routes[0], nil
}
