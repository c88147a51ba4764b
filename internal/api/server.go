package api

import (
	"context"
	_ "embed"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog/v3"
	httpSwagger "github.com/swaggo/http-swagger"

	api "vitalink/internal/api/application"
	"vitalink/internal/api/handlers"
	apimiddleware "vitalink/internal/api/middleware"
	configapp "vitalink/internal/config/application"
	recordingdomain "vitalink/internal/recording/domain"
	sharedlogger "vitalink/internal/shared/logger"
)

//go:embed swagger.json
var swaggerDoc []byte

// Server represents the API server
type Server struct {
	httpServer *http.Server
	logger     sharedlogger.Logger
}

// NewServer creates a new API server
func NewServer(
	logger sharedlogger.Logger,
	runtimeCfg *configapp.RuntimeConfig,
	vitalsProvider api.VitalsProvider,
	sourceController api.SourceController,
	sessionRepo recordingdomain.Repository,
) *Server {
	// Initialize services
	vitalsService := api.NewVitalsService(vitalsProvider)
	sourceService := api.NewSourceService(sourceController)
	sessionService := api.NewSessionService(sessionRepo)

	// Initialize handlers
	vitalsHandler := handlers.NewVitalsHandler(vitalsService)
	sourceHandler := handlers.NewSourceHandler(sourceService)
	sessionHandler := handlers.NewSessionHandler(sessionService)
	liveHandler := handlers.NewLiveHandler(vitalsService)

	// Setup chi router
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	// HTTP logging middleware - need concrete slog.Logger for httplog
	var slogLogger *slog.Logger
	if infraLogger, ok := logger.(interface{ SLog() *slog.Logger }); ok {
		slogLogger = infraLogger.SLog()
	} else {
		slogLogger = slog.Default()
	}

	r.Use(httplog.RequestLogger(slogLogger, &httplog.Options{
		Level:             slog.LevelDebug,
		Schema:            httplog.SchemaECS.Concise(true),
		LogRequestHeaders: []string{}, // Log no headers by default to reduce verbosity
	}))

	// Swagger UI (only in dev mode, no auth required)
	if runtimeCfg.DevMode {
		r.Get("/swagger/doc.json", func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write(swaggerDoc)
		})
		r.Handle("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
		r.Get("/swagger", func(w http.ResponseWriter, req *http.Request) {
			http.Redirect(w, req, "/swagger/", http.StatusMovedPermanently)
		})
	}

	// API v1 routes (with authentication unless running in dev mode
	// without a configured key)
	r.Route("/api/v1", func(r chi.Router) {
		if runtimeCfg.APIKey != "" {
			r.Use(apimiddleware.APIKeyAuthWithKey(runtimeCfg.APIKey))
		}

		// Routes
		r.Get("/vitals", vitalsHandler.GetCurrent)
		r.Get("/vitals/window", vitalsHandler.GetWindow)
		r.Get("/events", vitalsHandler.ListEvents)
		r.Get("/source", sourceHandler.GetStatus)
		r.Post("/source/demo", sourceHandler.StartDemo)
		r.Post("/source/connect", sourceHandler.Connect)
		r.Delete("/source", sourceHandler.Stop)
		r.Get("/sessions", sessionHandler.ListSessions)
		r.Get("/sessions/{id}/samples", sessionHandler.ListSamples)
		r.Get("/live", liveHandler.Stream)
	})

	httpServer := &http.Server{
		Addr:         ":" + runtimeCfg.APIPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Debug("Server configured",
		"port", runtimeCfg.APIPort,
		"dev_mode", runtimeCfg.DevMode,
		"middleware", []string{"RequestID", "RealIP", "Recoverer", "httplog"},
	)

	return &Server{
		httpServer: httpServer,
		logger:     logger,
	}
}

// Start starts the HTTP server. Blocks until the server stops.
func (s *Server) Start() error {
	s.logger.Info("API server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("API server shutting down")
	return s.httpServer.Shutdown(ctx)
}
