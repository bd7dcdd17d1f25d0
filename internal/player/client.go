package player

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
)

// APIClient is an HTTP client for the player-pool service.
type APIClient struct {
	httpClient *http.Client
	BaseURL    string
	apiKey     string
}

// NewClient creates a new players service client.
func NewClient(baseURL, apiKey string) PlayersClient {
	return &APIClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		BaseURL:    baseURL,
		apiKey:     apiKey,
	}
}

// Ensure APIClient implements the PlayersClient interface.
var _ PlayersClient = (*APIClient)(nil)

func (c *APIClient) GetPlayersByFilters(f Filters) ([]Player, error) {
	params := url.Values{}
	if f.Latitude != nil {
		params.Set("latitude", strconv.FormatFloat(*f.Latitude, 'f', -1, 64))
	}
	if f.Longitude != nil {
		params.Set("longitude", strconv.FormatFloat(*f.Longitude, 'f', -1, 64))
	}
	if f.TimeAvailability != nil {
		params.Set("time_availability", strconv.Itoa(*f.TimeAvailability))
	}
	for _, day := range f.AvailableDays {
		params.Add("available_days", strconv.Itoa(day))
	}
	for _, id := range f.ExcludeIDs {
		params.Add("exclude_ids", id)
	}
	if f.Limit != nil {
		params.Set("n_players", strconv.Itoa(*f.Limit))
	}

	reqURL := c.BaseURL + "/api/v1/players"
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	log.Debug("Requesting players from pool service", "url", reqURL)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("players service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("players service returned status %d", resp.StatusCode)
	}

	var content playersResponse
	if err := json.NewDecoder(resp.Body).Decode(&content); err != nil {
		return nil, fmt.Errorf("failed to decode players response: %w", err)
	}
	log.Debug("Fetched candidate players", "count", len(content.Data))
	return content.Data, nil
}
