package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/scaling-waffle/internal/matchplayer"
)

// APIClient is an HTTP client for the payments service.
type APIClient struct {
	httpClient *http.Client
	BaseURL    string
	apiKey     string
}

// NewClient creates a new payments service client.
func NewClient(baseURL, apiKey string) PaymentsClient {
	return &APIClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		BaseURL:    baseURL,
		apiKey:     apiKey,
	}
}

// Ensure APIClient implements the PaymentsClient interface.
var _ PaymentsClient = (*APIClient)(nil)

func (c *APIClient) CreatePayment(view *matchplayer.MatchExtended) (*Payment, error) {
	body, err := json.Marshal(view)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payment payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "POST", c.BaseURL+"/api/v1/payments", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	log.Debug("Creating payment", "matchID", view.Match.PublicID)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("payments service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("payments service returned status %d", resp.StatusCode)
	}

	var payment Payment
	if err := json.NewDecoder(resp.Body).Decode(&payment); err != nil {
		return nil, fmt.Errorf("failed to decode payment response: %w", err)
	}
	log.Info("Payment link created", "matchID", payment.MatchPublicID, "userID", payment.UserPublicID)
	return &payment, nil
}
