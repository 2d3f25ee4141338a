package httpServices

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	donationModel "care-connect/models/donation"

	"encoding/json"
)

// GeocodeClient resolves a free-form address string to coordinates via an
// external Nominatim-compatible service. The service is optional: an empty
// base URL disables it, and failures never block donation workflows.
type GeocodeClient struct {
	httpClient *http.Client
	baseURL    string
}

type geocodeResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// NewGeocodeClient creates a geocoding client for the given base URL.
// An empty base URL yields a disabled client.
func NewGeocodeClient(baseURL string) *GeocodeClient {
	return &GeocodeClient{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
	}
}

// Enabled reports whether a geocoding endpoint is configured.
func (c *GeocodeClient) Enabled() bool {
	return c.baseURL != ""
}

// Forward resolves an address to coordinates.
func (c *GeocodeClient) Forward(address string) (*donationModel.Coordinates, error) {
	if !c.Enabled() {
		return nil, errors.New("geocoding service is not configured")
	}

	endpoint := c.baseURL + "/search?format=json&limit=1&q=" + url.QueryEscape(address)
	httpReq, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New("geocoding service returned non-OK status: " + resp.Status)
	}

	var results []geocodeResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, errors.New("no geocoding result for address")
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, err
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, err
	}

	return &donationModel.Coordinates{Lat: lat, Lng: lng}, nil
}
