package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Check is one named readiness dependency.
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

// PingerCheck wraps p as a readiness check called name.
func PingerCheck(name string, p Pinger) Check {
	return Check{Name: name, Ping: p.Ping}
}

// ReadyResponse is the /readyz body. Checks maps each dependency to "ok"
// or its error.
type ReadyResponse struct {
	Status string            `json:"status" example:"ready"`
	Checks map[string]string `json:"checks,omitempty"`
}

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	checks []Check
}

// NewHealthHandler creates a HealthHandler that is ready only when every
// check passes.
func NewHealthHandler(checks ...Check) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// Healthz always answers 200 while the process is up.
func (*HealthHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, StatusResponse{Status: "ok"})
}

// Readyz runs every check and answers 503 if any fails.
func (h *HealthHandler) Readyz(c echo.Context) error {
	resp := ReadyResponse{Status: "ready"}
	code := http.StatusOK

	if len(h.checks) > 0 {
		resp.Checks = make(map[string]string, len(h.checks))
	}
	for _, chk := range h.checks {
		if err := chk.Ping(c.Request().Context()); err != nil {
			resp.Checks[chk.Name] = err.Error()
			resp.Status = "unavailable"
			code = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[chk.Name] = "ok"
	}

	return c.JSON(code, resp)
}

// RegisterHealthRoutes mounts the probe endpoints on e.
func RegisterHealthRoutes(e *echo.Echo, h *HealthHandler) {
	e.GET("/healthz", h.Healthz)
	e.GET("/readyz", h.Readyz)
}
