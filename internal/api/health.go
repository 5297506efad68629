package api

import (
	"net/http"

	"github.com/avoronov/webdump-bot/internal/store"
	"github.com/go-chi/chi/v5"
)

// HealthHandler exposes readiness for deployment probes. Liveness is covered
// by the router's Heartbeat middleware on /health.
type HealthHandler struct {
	repo store.Repository
	bot  string
}

// NewHealthHandler creates a health handler reporting for the given bot account.
func NewHealthHandler(repo store.Repository, botUsername string) *HealthHandler {
	return &HealthHandler{repo: repo, bot: botUsername}
}

// RegisterRoutes mounts the readiness endpoint.
func (h *HealthHandler) RegisterRoutes(r chi.Router) {
	r.Get("/readyz", h.Ready)
}

// Ready reports whether the credential store is reachable.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Ping(r.Context()); err != nil {
		Error(w, http.StatusServiceUnavailable, "database unreachable")
		return
	}
	JSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"bot":    h.bot,
	})
}
