package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/codelens-ai/codelens/internal/analyze"
	"github.com/codelens-ai/codelens/internal/config"
	"github.com/codelens-ai/codelens/internal/providers"
	"github.com/codelens-ai/codelens/internal/usage"
)

// Service is the HTTP front end for code analysis.
type Service struct {
	cfg       config.Config
	completer providers.Completer
	usage     *usage.Tracker
	rules     *analyze.Rules
	router    chi.Router
	startTime time.Time
}

// New assembles a Service around a provider client and a session tracker.
func New(cfg config.Config, completer providers.Completer, tracker *usage.Tracker) (*Service, error) {
	rules, err := analyze.LoadRules(cfg.RulesFile)
	if err != nil {
		return nil, err
	}

	s := &Service{
		cfg:       cfg,
		completer: completer,
		usage:     tracker,
		rules:     rules,
		router:    chi.NewRouter(),
		startTime: time.Now(),
	}
	s.routes()
	return s, nil
}

// Handler returns the root HTTP handler, useful for tests.
func (s *Service) Handler() http.Handler { return s.router }

func (s *Service) routes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(requestLogger)

	s.router.Get("/", s.handleIndex)
	s.router.Get("/assets/*", s.handleAssets)
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)
		r.Post("/analyze/upload", s.handleUpload)
		r.Post("/estimate", s.handleEstimate)
		r.Get("/usage", s.handleUsage)
		r.Post("/usage/reset", s.handleUsageReset)
		r.Get("/meta", s.handleMeta)
	})
}

// ListenAndServe runs the HTTP server until ctx is canceled, then shuts
// down gracefully.
func (s *Service) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("server shutdown")
		}
	}()

	log.Info().
		Str("addr", s.cfg.Addr).
		Str("provider", s.completer.Name()).
		Str("model", s.cfg.Model).
		Msg("codelens listening")

	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
