// Package geocode implements the reverse-geocoding collaborator.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dosapp/discovery-api/internal/core/ports"
)

const defaultBaseURL = "https://nominatim.openstreetmap.org"

// NominatimClient resolves coordinates to an area/city pair using the
// OpenStreetMap Nominatim API. Calls are bounded by the client timeout and
// never retried.
type NominatimClient struct {
	baseURL   string
	userAgent string
	http      *http.Client
}

// NewNominatimClient builds a client. An empty baseURL selects the public
// Nominatim endpoint; userAgent is required by the Nominatim usage policy.
func NewNominatimClient(baseURL, userAgent string, timeout time.Duration) *NominatimClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &NominatimClient{
		baseURL:   baseURL,
		userAgent: userAgent,
		http:      &http.Client{Timeout: timeout},
	}
}

type nominatimAddress struct {
	Suburb        string `json:"suburb"`
	Neighbourhood string `json:"neighbourhood"`
	CityDistrict  string `json:"city_district"`
	City          string `json:"city"`
	StateDistrict string `json:"state_district"`
	State         string `json:"state"`
}

type nominatimResponse struct {
	Address *nominatimAddress `json:"address"`
}

// Reverse calls the reverse endpoint and extracts area and city with the
// same precedence the clients expect: suburb > neighbourhood >
// city_district for area, city > state_district > state for city.
func (c *NominatimClient) Reverse(ctx context.Context, lat, lng float64) (*ports.Location, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lng, 'f', -1, 64))
	q.Set("format", "json")
	q.Set("addressdetails", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/reverse?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build geocode request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("reverse geocode: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reverse geocode: unexpected status %d", resp.StatusCode)
	}

	var body nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode geocode response: %w", err)
	}
	if body.Address == nil {
		return nil, fmt.Errorf("reverse geocode: no address for %.4f,%.4f", lat, lng)
	}

	return &ports.Location{
		Area: firstNonEmpty(body.Address.Suburb, body.Address.Neighbourhood, body.Address.CityDistrict, "Unknown Area"),
		City: firstNonEmpty(body.Address.City, body.Address.StateDistrict, body.Address.State, "Unknown City"),
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
