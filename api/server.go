package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rpupo63/portfolio-backend/config"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(cfg config.Config, store database.Store, blobs services.BlobStore) (Server, error) {
	if store == nil || blobs == nil {
		return Server{}, errs.NewInternalError("server requires a store and a blob store")
	}

	address := fmt.Sprintf("0.0.0.0:%d", cfg.Port)

	opts := []func(*router){
		withAllowedOrigins(cfg.AllowedOrigins()),
		withMaxFileSize(cfg.Upload.MaxFileSize),
		withRequestLogger(log.Logger),
	}
	if local, ok := blobs.(*services.LocalBlobStore); ok {
		opts = append(opts, withUploadDir(local.Dir()))
	}

	server := &http.Server{
		Addr:         address,
		Handler:      newRouter(store, blobs, opts...),
		ReadTimeout:  cfg.HTTP.ReadTimeout(),
		WriteTimeout: cfg.HTTP.WriteTimeout(),
		IdleTimeout:  cfg.HTTP.IdleTimeout(),
	}

	return Server{server, time.Now()}, nil
}

type router struct {
	allowedOrigins []string
	uploadDir      string
	maxFileSize    int64
	requestLogger  zerolog.Logger
}

func withAllowedOrigins(origins []string) func(*router) {
	return func(r *router) {
		r.allowedOrigins = origins
	}
}

func withUploadDir(dir string) func(*router) {
	return func(r *router) {
		r.uploadDir = dir
	}
}

func withMaxFileSize(size int64) func(*router) {
	return func(r *router) {
		r.maxFileSize = size
	}
}

func withRequestLogger(logger zerolog.Logger) func(*router) {
	return func(r *router) {
		r.requestLogger = logger
	}
}

func newRouter(store database.Store, blobs services.BlobStore, opts ...func(*router)) *chi.Mux {
	router := router{
		maxFileSize:   services.DefaultMaxUploadSize,
		requestLogger: log.Logger,
	}
	for _, opt := range opts {
		opt(&router)
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(middleware.RequestID)
	chiRouter.Use(middleware.RealIP)
	chiRouter.Use(HTTPLoggingMiddleware(router.requestLogger))
	chiRouter.Use(LogInternalServerErrors)
	chiRouter.Use(CORSCheckMiddleware(router.allowedOrigins))
	chiRouter.Use(corsMiddleware(router.allowedOrigins))

	responder := NewResponder(log.With().Str("handlerName", "router").Logger())
	chiRouter.NotFound(func(w http.ResponseWriter, r *http.Request) {
		responder.WriteError(w, errs.NewNoRouteError())
	})
	chiRouter.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		responder.WriteError(w, errs.NewMethodNotAllowedError(r.Method))
	})

	handlers := initializeHandlers(store, blobs, router.maxFileSize)
	setupRoutes(chiRouter, handlers, router.uploadDir)

	return chiRouter
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Dur("uptime", time.Since(s.startupTime)).Msg("Gracefully shutting down...")

	gracefulCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefulCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
