package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// setupRoutes registers the public API. uploadDir is served under /uploads
// when non-empty.
func setupRoutes(r chi.Router, handlers *routeHandlers, uploadDir string) {
	r.Get("/health", handlers.systemHandler.health())

	r.Route("/api", func(r chi.Router) {
		// Project Handler endpoints
		r.Get("/projects", handlers.projectHandler.getAllProjects())
		r.Get("/projects/id/{projectID}", handlers.projectHandler.getProjectByID())
		r.Get("/projects/{slug}", handlers.projectHandler.getProjectBySlug())
		r.Post("/projects", handlers.projectHandler.createProject())
		r.Put("/projects/{projectID}", handlers.projectHandler.updateProject())
		r.Delete("/projects/{projectID}", handlers.projectHandler.deleteProject())

		// Profile Handler endpoints
		r.Get("/profile", handlers.profileHandler.getProfile())
		r.Put("/profile", handlers.profileHandler.updateProfile())

		r.Post("/upload", handlers.uploadHandler.uploadFile())
		r.Post("/init", handlers.systemHandler.seedDemoData())
	})

	if uploadDir != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))
	}
}
