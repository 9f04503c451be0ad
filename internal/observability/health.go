package observability

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger is any dependency that can report reachability
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// HealthChecker reports the reachability of the service dependencies
type HealthChecker struct {
	deps map[string]Pinger
}

// NewHealthChecker creates a checker over the named dependencies
func NewHealthChecker(deps map[string]Pinger) *HealthChecker {
	return &HealthChecker{deps: deps}
}

// Check pings every dependency and returns per-dependency status
func (h *HealthChecker) Check(ctx context.Context) (bool, map[string]string) {
	healthy := true
	out := make(map[string]string, len(h.deps))
	for name, dep := range h.deps {
		if err := dep.Ping(ctx); err != nil {
			healthy = false
			out[name] = StatusUnhealthy + ": " + err.Error()
			continue
		}
		out[name] = StatusHealthy
	}
	return healthy, out
}

// Handler answers 200 when every dependency responds and 503 otherwise
func (h *HealthChecker) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		healthy, deps := h.Check(ctx)
		status, code := StatusHealthy, http.StatusOK
		if !healthy {
			status, code = StatusUnhealthy, http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":       status,
			"timestamp":    time.Now().UTC(),
			"dependencies": deps,
		})
	}
}
