package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Pinger reports backend reachability. Satisfied by the Postgres persister;
// the memory and file backends have nothing to ping.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler provides health and readiness endpoints.
type HealthHandler struct {
	pinger Pinger
}

// NewHealthHandler creates a new HealthHandler. A nil pinger means the
// process is ready as soon as it is up.
func NewHealthHandler(p Pinger) *HealthHandler {
	return &HealthHandler{pinger: p}
}

// Healthz returns 200 if the process is running.
func (*HealthHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz returns 200 if the persistence backend is reachable, 503 otherwise.
func (h *HealthHandler) Readyz(c echo.Context) error {
	if h.pinger != nil {
		if err := h.pinger.Ping(c.Request().Context()); err != nil {
			return c.JSON(
				http.StatusServiceUnavailable,
				map[string]string{"status": "unavailable"},
			)
		}
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
}
