package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger is the storage check readiness depends on.
type Pinger interface {
	Ping(ctx context.Context) error
}

const readinessTimeout = 2 * time.Second

type probeReport struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
	TookMS   int64  `json:"took_ms,omitempty"`
	Error    string `json:"error,omitempty"`
}

// HealthHandler serves the /live and /ready probes.
type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Liveness never touches the database.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, probeReport{Status: "alive"})
}

// Readiness reports whether the catalog database answers within readinessTimeout.
func (h *HealthHandler) Readiness(c *gin.Context) {
	report, ok := h.checkDatabase(c.Request.Context())
	status := http.StatusOK
	if !ok {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, report)
}

func (h *HealthHandler) checkDatabase(ctx context.Context) (probeReport, bool) {
	if h.db == nil {
		return probeReport{Status: "unavailable", Database: "not configured"}, false
	}
	ctx, cancel := context.WithTimeout(ctx, readinessTimeout)
	defer cancel()

	start := time.Now()
	err := h.db.Ping(ctx)
	took := time.Since(start).Milliseconds()
	if err != nil {
		return probeReport{Status: "unavailable", Database: "down", TookMS: took, Error: err.Error()}, false
	}
	return probeReport{Status: "ready", Database: "up", TookMS: took}, true
}
