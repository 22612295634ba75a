// Package rentadvisor provides a client for the external rent suggestion service.
package rentadvisor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"portfolio-analytics-engine/internal/config"
	"portfolio-analytics-engine/internal/models"
	"portfolio-analytics-engine/internal/utils"
)

// ErrNotConfigured is returned when no advisor URL is set.
var ErrNotConfigured = errors.New("rent advisor URL not configured")

// Client calls the rent advisor API.
type Client struct {
	baseURL string
	client  *http.Client
}

// suggestionResponse is the advisor's wire format.
type suggestionResponse struct {
	RecommendedRent      int64   `json:"recommended_rent"`
	AdjustmentPercentage float64 `json:"adjustment_percentage"`
}

// NewClient creates a rent advisor client from configuration.
func NewClient(cfg *config.Config) *Client {
	timeout := time.Duration(cfg.RentAdvisorTimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		baseURL: cfg.RentAdvisorURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// SuggestRent asks the advisor for a market rent recommendation for one
// property. A (nil, nil) return means the advisor has no recommendation;
// transport failures and non-2xx statuses (other than 404) are errors and
// must propagate to the caller.
func (c *Client) SuggestRent(ctx context.Context, propertyID, orgID int64) (*models.RentSuggestion, error) {
	if c.baseURL == "" {
		return nil, ErrNotConfigured
	}

	url := fmt.Sprintf("%s/api/rent-suggestions?property_id=%d&org_id=%d", c.baseURL, propertyID, orgID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rent advisor request failed: %w", err)
	}
	defer resp.Body.Close()

	// No recommendation available for this property.
	if resp.StatusCode == http.StatusNoContent || resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rent advisor returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if len(body) == 0 || string(body) == "null" {
		return nil, nil
	}

	var suggestion suggestionResponse
	if err := json.Unmarshal(body, &suggestion); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	utils.GetLogger().Debug("Rent suggestion received",
		zap.Int64("property_id", propertyID),
		zap.Int64("recommended_rent", suggestion.RecommendedRent),
	)

	return &models.RentSuggestion{
		RecommendedRent:      suggestion.RecommendedRent,
		AdjustmentPercentage: suggestion.AdjustmentPercentage,
	}, nil
}
