package health

import (
	"context"
	"net/http"
	"sort"
	"sync/atomic"
	"time"

	"github.com/stringfold/ally/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Pinger is a dependency the readiness probe can check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

type Checker struct {
	checks   map[string]Pinger
	draining atomic.Bool
	logger   logger.Logger
}

func NewChecker(checks map[string]Pinger, logger logger.Logger) *Checker {
	return &Checker{
		checks: checks,
		logger: logger,
	}
}

// Drain makes readiness fail so load balancers stop routing here before the
// server shuts down.
func (h *Checker) Drain() {
	h.draining.Store(true)
}

type Status struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

func (h *Checker) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, Status{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Checker) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]string)
	healthy := !h.draining.Load()
	if !healthy {
		checks["server"] = "draining"
	}

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := h.checks[name].Ping(ctx); err != nil {
			h.logger.Warn(ctx, "readiness check failed",
				logger.Field{Key: "check", Value: name},
				logger.Field{Key: "error", Value: err.Error()},
			)
			checks[name] = "unhealthy: " + err.Error()
			healthy = false
		} else {
			checks[name] = "healthy"
		}
	}

	if healthy {
		c.JSON(http.StatusOK, Status{
			Status:    "ready",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Checks:    checks,
		})
	} else {
		c.JSON(http.StatusServiceUnavailable, Status{
			Status:    "not_ready",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Checks:    checks,
		})
	}
}
