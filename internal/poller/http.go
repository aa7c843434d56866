package poller

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPFetcher reads order status from the order service's status endpoint.
type HTTPFetcher struct {
	BaseURL string
	Client  HTTPClient
}

func NewHTTPFetcher(baseURL string, client HTTPClient) *HTTPFetcher {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPFetcher{BaseURL: strings.TrimRight(baseURL, "/"), Client: client}
}

func (f *HTTPFetcher) FetchStatus(ctx context.Context, orderID string) (Snapshot, error) {
	endpoint := f.BaseURL + "/api/order-status/" + url.PathEscape(orderID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to build status request: %w", err)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to query order status: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Snapshot{}, fmt.Errorf("order status endpoint returned %d", resp.StatusCode)
	}

	var body struct {
		Status    *string   `json:"status"`
		Timestamp time.Time `json:"timestamp"`
		FromCache bool      `json:"fromCache"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Snapshot{}, fmt.Errorf("failed to decode order status: %w", err)
	}

	snapshot := Snapshot{Timestamp: body.Timestamp, FromCache: body.FromCache}
	if body.Status != nil {
		snapshot.Status = *body.Status
	}
	return snapshot, nil
}
