// Package geocode resolves free-text postal addresses to coordinates using a
// Nominatim-compatible search endpoint.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ErrNoResults is returned when the provider finds no location for an address.
var ErrNoResults = errors.New("no results for address")

// Coordinates is a geographic point as returned by the provider.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Client queries a Nominatim-compatible geocoding service.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithUserAgent sets the User-Agent header sent to the provider.
// Nominatim's usage policy requires an identifying agent.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient creates a geocoding client for the given base URL,
// e.g. "https://nominatim.openstreetmap.org".
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:   baseURL,
		userAgent: "placeshare/1.0",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// nominatimResult is the subset of the provider response we consume.
// Nominatim encodes coordinates as decimal strings.
type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode resolves an address to coordinates. It returns ErrNoResults when
// the provider yields zero matches or an unrecognized body; transport and
// decoding failures are returned as-is for the caller to treat as internal.
func (c *Client) Geocode(ctx context.Context, address string) (Coordinates, error) {
	endpoint := fmt.Sprintf("%s/search?addressdetails=1&q=%s&format=json&limit=1",
		c.baseURL, url.QueryEscape(address))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Coordinates{}, fmt.Errorf("geocode: build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Coordinates{}, fmt.Errorf("geocode: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return Coordinates{}, fmt.Errorf("geocode: provider returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Coordinates{}, fmt.Errorf("geocode: read response: %w", err)
	}

	var results []nominatimResult
	if err := json.Unmarshal(body, &results); err != nil {
		// Unrecognized response shape is treated the same as no match.
		return Coordinates{}, ErrNoResults
	}
	if len(results) == 0 {
		return Coordinates{}, ErrNoResults
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return Coordinates{}, ErrNoResults
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return Coordinates{}, ErrNoResults
	}

	return Coordinates{Latitude: lat, Longitude: lon}, nil
}
