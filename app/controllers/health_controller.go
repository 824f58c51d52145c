package controllers

import (
	"context"
	"net/http"

	"github.com/mahfuzanam/bloodlink/pkg/response"
)

// HealthController serves liveness and store health probes.
type HealthController struct {
	ping func(ctx context.Context) error
}

// NewHealthController takes the store ping, usually database.Health.
func NewHealthController(ping func(ctx context.Context) error) *HealthController {
	return &HealthController{ping: ping}
}

// Home handles GET /, the plain-text liveness reply.
func (c *HealthController) Home(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("BloodLink server is running")) //nolint:errcheck
}

// Healthz handles GET /healthz, reporting store reachability.
func (c *HealthController) Healthz(w http.ResponseWriter, r *http.Request) {
	if err := c.ping(r.Context()); err != nil {
		response.Error(w, http.StatusServiceUnavailable, "store unreachable")
		return
	}
	response.Success(w, map[string]string{"status": "ok"})
}
