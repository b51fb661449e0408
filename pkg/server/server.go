package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/de-tools/solar-atlas/pkg/handlers"
	dashboardhandler "github.com/de-tools/solar-atlas/pkg/handlers/dashboard"
	reporthandler "github.com/de-tools/solar-atlas/pkg/handlers/report"
	sessionhandler "github.com/de-tools/solar-atlas/pkg/handlers/session"
	"github.com/de-tools/solar-atlas/pkg/services/dashboard"
	"github.com/de-tools/solar-atlas/pkg/services/report"

	solarmiddleware "github.com/de-tools/solar-atlas/pkg/server/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

const defaultShutdownTimeout = 10 * time.Second

type WebAPI struct {
	router          http.Handler
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Sessions interface {
	sessionhandler.Manager
	solarmiddleware.SessionLookup
}

type Dependencies struct {
	Sessions  Sessions
	Explorer  dashboard.Explorer
	Generator reporthandler.Generator
	// Archive is optional.
	Archive report.Sink
	Logger  zerolog.Logger
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func ConfigureRouter(config Config) http.Handler {
	deps := config.Dependencies
	sessionHandler := sessionhandler.NewHandler(deps.Sessions)
	dashboardHandler := dashboardhandler.NewHandler(deps.Explorer)
	reportHandler := reporthandler.NewHandler(deps.Generator, deps.Explorer, deps.Archive)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(solarmiddleware.Logger(&deps.Logger))
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
			handlers.WriteJSON(w, req, http.StatusOK, map[string]string{"status": "ok"})
		})
		r.Post("/session", sessionHandler.Login)
		r.Delete("/session", sessionHandler.Logout)

		r.Group(func(r chi.Router) {
			r.Use(solarmiddleware.RequireSession(deps.Sessions))

			r.Get("/dashboard", dashboardHandler.GetDashboard)
			r.Get("/projects", dashboardHandler.ListProjects)
			r.Get("/reports/dashboard", reportHandler.DashboardReport)
			r.Post("/reports", reportHandler.CreateReport)
		})
	})

	return router
}

func NewWebAPI(config Config) *WebAPI {
	router := ConfigureRouter(config)
	logger := config.Dependencies.Logger

	timeout := config.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}

	return &WebAPI{
		router:          router,
		logger:          &logger,
		shutdownTimeout: timeout,
		server: &http.Server{
			Addr:              config.Addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
