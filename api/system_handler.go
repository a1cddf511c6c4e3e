package api

import (
	"net/http"
	"time"

	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type systemHandler struct {
	responder Responder
	logger    zerolog.Logger
	store     database.Store
}

func newSystemHandler(store database.Store) systemHandler {
	logger := log.With().Str("handlerName", "systemHandler").Logger()

	return systemHandler{
		responder: NewResponder(logger),
		logger:    logger,
		store:     store,
	}
}

// HealthStatus is the liveness probe body.
type HealthStatus struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// health reports that the process is serving
// @Summary Health check
// @Tags System
// @Produce json
// @Success 200 {object} HealthStatus
// @Router /health [get]
func (h systemHandler) health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, http.StatusOK, HealthStatus{
			Status:    "ok",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// SeedResult reports how many demo projects were inserted.
type SeedResult struct {
	Created int `json:"created"`
}

// seedDemoData installs the demo projects whose slugs are free
// @Summary Seed demo data
// @Tags System
// @Produce json
// @Success 200 {object} envelope "Number of projects created"
// @Router /api/init [post]
func (h systemHandler) seedDemoData() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		created, err := database.SeedDemoProjects(r.Context(), h.store)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteData(w, http.StatusOK, SeedResult{Created: created})
	}
}
