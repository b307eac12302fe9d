package handler

import (
	"net/http"

	"github.com/erppro/identity/internal/api/response"
	"github.com/erppro/identity/internal/dependencies/clock"
	"github.com/erppro/identity/internal/services/directory"
)

// HealthHandler handles the informational health endpoint
type HealthHandler struct {
	directory *directory.Service
	clock     clock.Clock
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(dir *directory.Service, clk clock.Clock) *HealthHandler {
	return &HealthHandler{
		directory: dir,
		clock:     clk,
	}
}

// Health handles GET /api/v1/health. No auth required; the count is
// best-effort and reported as 0 when the store is unreachable.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	count, err := h.directory.Count(r.Context())
	if err != nil {
		count = 0
	}

	response.JSON(w, http.StatusOK, response.Health{
		Status:       "ok",
		Timestamp:    h.clock.Now(),
		AccountCount: count,
	})
}
