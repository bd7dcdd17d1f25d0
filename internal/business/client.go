package business

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
)

// APIClient is an HTTP client for the business availability service.
type APIClient struct {
	httpClient *http.Client
	BaseURL    string
	apiKey     string
}

// NewClient creates a new business service client.
func NewClient(baseURL, apiKey string) BusinessClient {
	return &APIClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		BaseURL:    baseURL,
		apiKey:     apiKey,
	}
}

// Ensure APIClient implements the BusinessClient interface.
var _ BusinessClient = (*APIClient)(nil)

func (c *APIClient) get(path string, params url.Values, out any) error {
	reqURL := c.BaseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	log.Debug("Requesting business service", "url", reqURL)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("business service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("business service returned status %d for %s", resp.StatusCode, reqURL)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode business service response: %w", err)
	}
	return nil
}

func (c *APIClient) GetAvailableTimes(businessPublicID, courtName, date string) ([]AvailableTime, error) {
	params := url.Values{}
	params.Set("date", date)

	var content availableTimesResponse
	path := fmt.Sprintf("/api/v1/businesses/%s/padel-courts/%s/available-matches/", businessPublicID, courtName)
	if err := c.get(path, params, &content); err != nil {
		return nil, err
	}
	log.Debug("Fetched available times", "business", businessPublicID, "court", courtName, "date", date, "count", len(content.Data))
	return content.Data, nil
}

func (c *APIClient) GetAvailableTime(businessPublicID, courtName, date string, hour int) (*AvailableTime, error) {
	times, err := c.GetAvailableTimes(businessPublicID, courtName, date)
	if err != nil {
		return nil, err
	}
	for i := range times {
		if times[i].Time == hour {
			return &times[i], nil
		}
	}
	return nil, nil
}

func (c *APIClient) GetCourts(businessPublicID string) ([]Court, error) {
	var content courtsResponse
	path := fmt.Sprintf("/api/v1/businesses/%s/padel-courts/", businessPublicID)
	if err := c.get(path, nil, &content); err != nil {
		return nil, err
	}
	log.Debug("Fetched courts", "business", businessPublicID, "count", len(content.Data))
	return content.Data, nil
}
