package handlers

import (
	"net/http"

	"github.com/plumecms/plume-be/internal/monitoring"
	"github.com/plumecms/plume-be/internal/web"
)

// StatusHandler renders the host status page for signed-in users.
type StatusHandler struct{}

// NewStatusHandler creates a new StatusHandler.
func NewStatusHandler() *StatusHandler {
	return &StatusHandler{}
}

type statusPage struct {
	Status monitoring.HostStatus
}

// Show renders the current host metrics.
func (h *StatusHandler) Show(w http.ResponseWriter, r *http.Request) {
	web.Render(w, http.StatusOK, "status.html", statusPage{
		Status: monitoring.CollectHostStatus(),
	})
}
