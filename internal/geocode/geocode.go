// Package geocode resolves place names to coordinates and timezones
// through the Open-Meteo geocoding API.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/celestialworks/almanac/model"
)

// DefaultBaseURL is the public Open-Meteo geocoding endpoint.
const DefaultBaseURL = "https://geocoding-api.open-meteo.com"

const searchPath = "/v1/search"

// ErrNotFound is returned when the service knows no place by the
// queried name.
var ErrNotFound = errors.New("place not found")

// Geocoder resolves free-form place names to locations.
type Geocoder interface {
	Lookup(ctx context.Context, place string) (model.Location, error)
}

// Config tunes the lookup client.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client is the Open-Meteo backed Geocoder.
type Client struct {
	client  *http.Client
	baseURL string
}

// New builds a Client, applying defaults for unset config fields.
func New(cfg Config) *Client {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}
	base = strings.TrimRight(base, "/")

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		client:  &http.Client{Timeout: timeout},
		baseURL: base,
	}
}

type searchResponse struct {
	Results []searchResult `json:"results"`
}

type searchResult struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
	Country   string  `json:"country"`
	Admin1    string  `json:"admin1"`
}

// Lookup resolves a place name to its best-ranked location.
func (c *Client) Lookup(ctx context.Context, place string) (model.Location, error) {
	name := strings.TrimSpace(place)
	if name == "" {
		return model.Location{}, fmt.Errorf("place name is required")
	}

	q := url.Values{}
	q.Set("name", name)
	q.Set("count", "1")
	q.Set("language", "en")
	q.Set("format", "json")
	endpoint := c.baseURL + searchPath + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return model.Location{}, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return model.Location{}, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.Location{}, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return model.Location{}, fmt.Errorf("geocoding request failed (%d): %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var parsed searchResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return model.Location{}, fmt.Errorf("decode geocoding response: %w", err)
	}
	if len(parsed.Results) == 0 {
		return model.Location{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	top := parsed.Results[0]
	placeName := top.Name
	if placeName == "" {
		placeName = name
	}
	tz := top.Timezone
	if tz == "" {
		tz = "UTC"
	}
	return model.Location{
		Place:       placeName,
		Latitude:    roundCoord(top.Latitude),
		Longitude:   roundCoord(top.Longitude),
		Timezone:    tz,
		DisplayName: displayName(top),
	}, nil
}

// roundCoord trims coordinates to six decimal places, about 0.1 m.
func roundCoord(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}

func displayName(r searchResult) string {
	parts := make([]string, 0, 3)
	for _, part := range []string{r.Name, r.Admin1, r.Country} {
		if strings.TrimSpace(part) != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, ", ")
}

var _ Geocoder = (*Client)(nil)
