package api

import (
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(store database.Store, blobs services.BlobStore, maxFileSize int64) *routeHandlers {
	return &routeHandlers{
		projectHandler: newProjectHandler(store),
		profileHandler: newProfileHandler(store),
		uploadHandler:  newUploadHandler(blobs, maxFileSize),
		systemHandler:  newSystemHandler(store),
	}
}
