package api

import (
	"net/http"

	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type profileHandler struct {
	responder Responder
	logger    zerolog.Logger
	store     database.Store
}

func newProfileHandler(store database.Store) profileHandler {
	logger := log.With().Str("handlerName", "profileHandler").Logger()

	return profileHandler{
		responder: NewResponder(logger),
		logger:    logger,
		store:     store,
	}
}

// getProfile returns the site owner's profile
// @Summary Get profile
// @Tags Profile
// @Produce json
// @Success 200 {object} envelope "Profile"
// @Router /api/profile [get]
func (h profileHandler) getProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := h.store.GetProfile(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteData(w, http.StatusOK, profile)
	}
}

// updateProfile replaces the profile; omitted fields are cleared
// @Summary Update profile
// @Tags Profile
// @Accept json
// @Produce json
// @Param profile body models.ProfileInput true "Profile data"
// @Success 200 {object} envelope "Updated profile"
// @Failure 400 {object} envelope "Bad Request - Invalid JSON"
// @Router /api/profile [put]
func (h profileHandler) updateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input models.ProfileInput
		if err := decodeJSON(w, r, &input); err != nil {
			h.logger.Warn().Err(err).Msg("Failed to decode profile request body")
			h.responder.WriteError(w, err)
			return
		}

		profile, err := h.store.UpdateProfile(r.Context(), input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteData(w, http.StatusOK, profile)
	}
}
