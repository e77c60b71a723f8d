package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"parkflow/internal/domain"
)

const userAgent = "parkflow/1.0"

// ReverseGeocoder resolves coordinates to a human-readable address.
type ReverseGeocoder interface {
	Reverse(ctx context.Context, lat, lng float64) (string, error)
}

// PlacesSearcher resolves free text to candidate points, for
// autocomplete-style suggestions.
type PlacesSearcher interface {
	Suggest(ctx context.Context, query string, limit int) ([]domain.GeoPoint, error)
}

// NominatimClient talks to a Nominatim-compatible geocoding server.
// Every lookup is optional for the features using it: callers must
// degrade gracefully when it errors.
type NominatimClient struct {
	Endpoint string
	Client   *http.Client
}

// NewNominatimClient creates a client with a short timeout; geocoding
// must never hold up coordinate delivery for long.
func NewNominatimClient(endpoint string) *NominatimClient {
	return &NominatimClient{
		Endpoint: endpoint,
		Client:   &http.Client{Timeout: 3 * time.Second},
	}
}

// Reverse resolves a point to its display name.
func (c *NominatimClient) Reverse(ctx context.Context, lat, lng float64) (string, error) {
	endpoint := fmt.Sprintf("%s/reverse?format=jsonv2&lat=%.6f&lon=%.6f", c.Endpoint, lat, lng)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("reverse geocode failed: %s", resp.Status)
	}

	var out struct {
		DisplayName string `json:"display_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.DisplayName, nil
}

// Suggest resolves free text to up to limit candidate points.
func (c *NominatimClient) Suggest(ctx context.Context, query string, limit int) ([]domain.GeoPoint, error) {
	if limit <= 0 {
		limit = 5
	}

	params := url.Values{}
	params.Set("format", "jsonv2")
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Endpoint+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("place search failed: %s", resp.Status)
	}

	var out []struct {
		Lat         string `json:"lat"`
		Lon         string `json:"lon"`
		DisplayName string `json:"display_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}

	points := make([]domain.GeoPoint, 0, len(out))
	for _, item := range out {
		lat, errLat := strconv.ParseFloat(item.Lat, 64)
		lng, errLng := strconv.ParseFloat(item.Lon, 64)
		if errLat != nil || errLng != nil {
			continue
		}
		point := domain.GeoPoint{Lat: lat, Lng: lng, Address: item.DisplayName}
		if point.Validate() != nil {
			continue
		}
		points = append(points, point)
	}
	return points, nil
}

var (
	_ ReverseGeocoder = (*NominatimClient)(nil)
	_ PlacesSearcher  = (*NominatimClient)(nil)
)
