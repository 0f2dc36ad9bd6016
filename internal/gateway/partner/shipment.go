package partner

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Shipment is the partner platform's view of a booking.
type Shipment struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// StatusError is a non-2xx partner API response.
type StatusError struct {
	Code int
}

func (e StatusError) Error() string {
	return fmt.Sprintf("partner api: unexpected status %d", e.Code)
}

// HTTPGateway is a shipments gateway backed by the partner's REST API.
type HTTPGateway struct {
	baseURL string
	client  *http.Client
}

// NewHTTPGateway creates a shipments gateway over baseURL. An empty baseURL
// disables the gateway.
func NewHTTPGateway(baseURL string, client *http.Client) *HTTPGateway {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPGateway{baseURL: baseURL, client: client}
}

// GetByID fetches one shipment by booking ID. A 404 maps to (nil, nil).
func (g *HTTPGateway) GetByID(ctx context.Context, id string) (*Shipment, error) {
	u := g.baseURL + "/shipments/" + url.PathEscape(id)

	var s Shipment
	found, err := g.getJSON(ctx, u, &s)
	if err != nil {
		return nil, fmt.Errorf("partner gateway: GetByID: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &s, nil
}

// ListFrom fetches shipments updated at or after from.
func (g *HTTPGateway) ListFrom(ctx context.Context, from time.Time) ([]Shipment, error) {
	u := g.baseURL + "/shipments?from=" + url.QueryEscape(from.UTC().Format(time.RFC3339))

	var out []Shipment
	found, err := g.getJSON(ctx, u, &out)
	if err != nil {
		return nil, fmt.Errorf("partner gateway: ListFrom: %w", err)
	}
	if !found {
		return nil, nil
	}
	return out, nil
}

func (g *HTTPGateway) getJSON(ctx context.Context, u string, dst any) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return false, StatusError{Code: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return false, fmt.Errorf("decode body: %w", err)
	}
	return true, nil
}
