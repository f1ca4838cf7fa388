// Package handler provides HTTP handlers for platform-level endpoints.
package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
)

// Check probes one dependency.
type Check func(ctx context.Context) error

// Health serves /healthz. Every registered check must pass within the
// timeout, otherwise the endpoint answers 503 and names the failures.
type Health struct {
	checks  map[string]Check
	timeout time.Duration
}

// NewHealth creates a Health with the named checks (nil for none).
func NewHealth(checks map[string]Check) *Health {
	return &Health{checks: checks, timeout: 2 * time.Second}
}

// Handle responds according to the HTTP method and never lets caches store the result.
func (h *Health) Handle(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	if c.Request.Method == http.MethodOptions {
		c.Status(http.StatusNoContent)
		return
	}

	failed := h.run(c.Request.Context())
	status := http.StatusOK
	if len(failed) > 0 {
		status = http.StatusServiceUnavailable
	}

	if c.Request.Method == http.MethodHead {
		c.Status(status)
		return
	}
	if len(failed) > 0 {
		c.JSON(status, gin.H{"status": "degraded", "failed": failed})
		return
	}
	c.JSON(status, gin.H{"status": "ok"})
}

// run returns the sorted names of failing checks.
func (h *Health) run(ctx context.Context) []string {
	if len(h.checks) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	var failed []string
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			failed = append(failed, name)
		}
	}
	sort.Strings(failed)
	return failed
}
