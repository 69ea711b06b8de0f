package api

import (
	"context"
	"net/http"
	"time"

	"github.com/datadiver/diver/pkg/logger"
)

// HealthStatus reports whether the backend is reachable and what it said
// about itself.
type HealthStatus struct {
	Available bool
	Status    string
	Version   string
	Error     error
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// CheckHealth checks if the backend is available and responsive. A transport
// failure is reported through the returned status, not as an error, so
// callers can render it.
func (c *Client) CheckHealth(ctx context.Context) (*HealthStatus, error) {
	log := logger.WithComponent("health")
	log.Debug("checking backend health", "base_url", c.baseURL)

	var resp healthResponse
	if err := c.do(ctx, http.MethodGet, "/health", nil, &resp); err != nil {
		log.Error("backend health check failed", "error", err)
		return &HealthStatus{Available: false, Error: err}, nil
	}

	log.Debug("backend health check successful", "status", resp.Status, "version", resp.Version)
	return &HealthStatus{
		Available: true,
		Status:    resp.Status,
		Version:   resp.Version,
	}, nil
}

// CheckHealthWithTimeout performs a health check bounded by timeout.
func (c *Client) CheckHealthWithTimeout(timeout time.Duration) (*HealthStatus, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return c.CheckHealth(ctx)
}
