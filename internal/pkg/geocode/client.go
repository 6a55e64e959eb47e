package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Result holds a resolved place for a free-text location query.
type Result struct {
	Lat         float64
	Lng         float64
	City        string
	State       string
	Country     string
	DisplayName string
}

// Config holds geocoder configuration
type Config struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// Client is a Nominatim-compatible geocoding client.
type Client struct {
	httpClient *http.Client
	config     Config
}

// NewClient creates a new geocoding client
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "ScamSentry/1.0 geocoder"
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		config:     cfg,
	}
}

type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
	Address     struct {
		City    string `json:"city"`
		Town    string `json:"town"`
		Village string `json:"village"`
		State   string `json:"state"`
		Country string `json:"country"`
	} `json:"address"`
}

// Geocode resolves a free-text place name. Returns (nil, nil) when the
// geocoder knows nothing about the place; callers store the report
// without coordinates in that case.
func (c *Client) Geocode(ctx context.Context, place string) (*Result, error) {
	if strings.TrimSpace(place) == "" {
		return nil, nil
	}

	base := strings.TrimRight(c.config.BaseURL, "/")
	endpoint := fmt.Sprintf("%s/search?format=json&limit=1&addressdetails=1&q=%s",
		base, url.QueryEscape(place))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build geocode request: %w", err)
	}
	req.Header.Set("User-Agent", c.config.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("geocoder returned status %d: %s", resp.StatusCode, string(body))
	}

	var places []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, fmt.Errorf("failed to decode geocoder response: %w", err)
	}

	if len(places) == 0 {
		return nil, nil
	}

	p := places[0]
	lat, err := strconv.ParseFloat(p.Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude %q in geocoder response", p.Lat)
	}
	lng, err := strconv.ParseFloat(p.Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude %q in geocoder response", p.Lon)
	}

	city := p.Address.City
	if city == "" {
		city = p.Address.Town
	}
	if city == "" {
		city = p.Address.Village
	}

	return &Result{
		Lat:         lat,
		Lng:         lng,
		City:        city,
		State:       p.Address.State,
		Country:     p.Address.Country,
		DisplayName: p.DisplayName,
	}, nil
}
