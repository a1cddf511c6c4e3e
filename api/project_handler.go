package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type projectHandler struct {
	responder Responder
	logger    zerolog.Logger
	store     database.Store
}

func newProjectHandler(store database.Store) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder: NewResponder(logger),
		logger:    logger,
		store:     store,
	}
}

// getAllProjects retrieves all projects
// @Summary Get all projects
// @Description Retrieves every project ordered by ascending id
// @Tags Projects
// @Produce json
// @Success 200 {object} envelope "List of projects"
// @Failure 500 {object} envelope "Internal Server Error - Error fetching projects"
// @Router /api/projects [get]
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.store.ListProjects(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if projects == nil {
			projects = []models.Project{}
		}
		h.responder.WriteData(w, http.StatusOK, projects)
	}
}

// getProjectBySlug retrieves a project by its slug
// @Summary Get project by slug
// @Tags Projects
// @Produce json
// @Param slug path string true "Project slug"
// @Success 200 {object} envelope "Project details"
// @Failure 404 {object} envelope "Not Found - Project not found"
// @Router /api/projects/{slug} [get]
func (h projectHandler) getProjectBySlug() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, err := h.store.GetProjectBySlug(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteData(w, http.StatusOK, project)
	}
}

// getProjectByID retrieves a project by numeric id
// @Summary Get project by id
// @Tags Projects
// @Produce json
// @Param projectID path int true "Project ID"
// @Success 200 {object} envelope "Project details"
// @Failure 400 {object} envelope "Bad Request - Invalid projectID"
// @Failure 404 {object} envelope "Not Found - Project not found"
// @Router /api/projects/id/{projectID} [get]
func (h projectHandler) getProjectByID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := projectIDParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.store.GetProjectByID(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteData(w, http.StatusOK, project)
	}
}

// createProject creates a new project
// @Summary Create project
// @Tags Projects
// @Accept json
// @Produce json
// @Param project body models.ProjectInput true "Project data"
// @Success 200 {object} envelope "Created project"
// @Failure 400 {object} envelope "Bad Request - Invalid project data"
// @Failure 409 {object} envelope "Conflict - Slug already taken"
// @Router /api/projects [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input models.ProjectInput
		if err := decodeJSON(w, r, &input); err != nil {
			h.logger.Warn().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, err)
			return
		}

		if err := validateProjectInput(input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.store.CreateProject(r.Context(), input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().Int64("projectID", project.ID).Str("slug", project.Slug).Msg("Project created")
		h.responder.WriteData(w, http.StatusOK, project)
	}
}

// updateProject replaces every mutable field of an existing project
// @Summary Update project
// @Tags Projects
// @Accept json
// @Produce json
// @Param projectID path int true "Project ID"
// @Param project body models.ProjectInput true "Updated project data"
// @Success 200 {object} envelope "Updated project"
// @Failure 400 {object} envelope "Bad Request - Invalid project data"
// @Failure 404 {object} envelope "Not Found - Project not found"
// @Router /api/projects/{projectID} [put]
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := projectIDParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var input models.ProjectInput
		if err := decodeJSON(w, r, &input); err != nil {
			h.logger.Warn().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, err)
			return
		}

		if err := validateProjectInput(input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.store.UpdateProject(r.Context(), projectID, input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteData(w, http.StatusOK, project)
	}
}

// deleteProject deletes a project by id
// @Summary Delete project
// @Description Deleting a missing project still succeeds
// @Tags Projects
// @Produce json
// @Param projectID path int true "Project ID"
// @Success 200 {object} envelope "Success"
// @Failure 400 {object} envelope "Bad Request - Invalid projectID"
// @Router /api/projects/{projectID} [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := projectIDParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.store.DeleteProject(r.Context(), projectID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w)
	}
}
