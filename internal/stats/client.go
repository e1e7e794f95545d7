// Package stats fetches dashboard aggregate statistics. The numbers are
// computed entirely server-side and displayed as-is.
package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/fraudlens/fraud-console/internal/domain"
)

// TrendPoint is one bucket of a fraud/legitimate trend series.
type TrendPoint struct {
	Month      string `json:"month,omitempty"`
	Day        string `json:"day,omitempty"`
	Fraud      int    `json:"fraud"`
	Legitimate int    `json:"legitimate"`
}

// RecentPrediction is one recently scored transaction as reported by the
// service.
type RecentPrediction struct {
	Label       domain.Label  `json:"label"`
	FraudScore  float64       `json:"fraud_score"`
	Probability float64       `json:"probability"`
	Timestamp   string        `json:"timestamp"`
	Input       domain.Record `json:"input"`
}

// Dashboard is the aggregate view served by /dashboard_stats.
type Dashboard struct {
	TotalTransactions  int                `json:"totalTransactions"`
	FraudCount         int                `json:"fraudCount"`
	LegitimateCount    int                `json:"legitimateCount"`
	FraudRate          float64            `json:"fraudRate"`
	AvgFraudScore      float64            `json:"avgFraudScore,omitempty"`
	RecentTransactions []RecentPrediction `json:"recentTransactions"`
	MonthlyTrends      []TrendPoint       `json:"monthlyTrends,omitempty"`
	DayTrends          []TrendPoint       `json:"dayTrends,omitempty"`
}

// Client fetches dashboard statistics over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a stats client for the service at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Fetch retrieves the current dashboard statistics.
func (c *Client) Fetch(ctx context.Context) (*Dashboard, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/dashboard_stats", nil)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stats: status %d", resp.StatusCode)
	}

	var dashboard Dashboard
	if err := json.NewDecoder(resp.Body).Decode(&dashboard); err != nil {
		return nil, fmt.Errorf("stats: decode response: %w", err)
	}
	return &dashboard, nil
}
