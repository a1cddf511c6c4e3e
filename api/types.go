package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	projectHandler projectHandler
	profileHandler profileHandler
	uploadHandler  uploadHandler
	systemHandler  systemHandler
}
