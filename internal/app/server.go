package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"github.com/jurisdocs/caseflow/internal/api/handlers"
	"github.com/jurisdocs/caseflow/internal/config"
	"github.com/jurisdocs/caseflow/internal/services"
)

// Server wraps the HTTP server instance and its handlers.
type Server struct {
	httpServer *http.Server
}

// NewServer builds and wires all routes.
func NewServer(cfg *config.Config, uploads *services.UploadService, review *services.ReviewService) *Server {
	uploadHandler := handlers.NewUploadHandler(uploads, cfg.MaxUploadBytes)
	batchHandler := handlers.NewBatchHandler(review)
	reviewHandler := handlers.NewReviewHandler(review)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(api chi.Router) {
		api.Post("/upload", uploadHandler.Upload)

		api.Get("/batches", batchHandler.ListBatches)
		api.Get("/batches/{batchID}", batchHandler.GetBatch)
		api.Post("/batches/{batchID}/advance", batchHandler.AdvanceStage)
		api.Post("/batches/{batchID}/retry-review", batchHandler.RetryReview)
		api.Post("/batches/{batchID}/retry", batchHandler.RetryIngestion)

		api.Post("/extract/basic/{batchID}", reviewHandler.StartBasicExtraction)
		api.Get("/extract/basic/{batchID}", reviewHandler.GetBasicReview)
		api.Post("/review/basic/{batchID}", reviewHandler.SaveBasicReview)

		api.Post("/extract/summary/{batchID}", reviewHandler.StartSummaryExtraction)
		api.Get("/extract/summary/{batchID}", reviewHandler.GetSummaryReview)
		api.Post("/review/summary/{batchID}", reviewHandler.MarkSample)

		api.Post("/index/{batchID}", batchHandler.IndexBatch)

		api.Get("/stages/{stage}/batches", batchHandler.StageQueue)
	})

	r.NotFound(handlers.NotFound)

	httpSrv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	return &Server{httpServer: httpSrv}
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	logrus.Infof("HTTP server listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	logrus.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}
