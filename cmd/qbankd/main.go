package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	api "github.com/shibanib/json-question-bank-viewer/internal/api/http"
	"github.com/shibanib/json-question-bank-viewer/internal/config"
	"github.com/shibanib/json-question-bank-viewer/internal/library"
	"github.com/shibanib/json-question-bank-viewer/internal/session"
	"github.com/shibanib/json-question-bank-viewer/internal/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "error", err)
		os.Exit(1)
	}
	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- Library ---
	lib := library.New(cfg.DataDir, cfg.DefaultFile, logger)
	if err := lib.Refresh(); err != nil {
		// A missing data dir only disables discovery; uploads still work.
		logger.Warn("data directory unavailable", "dir", cfg.DataDir, "error", err)
	}
	if cfg.WatchDataDir {
		go func() {
			if err := lib.Watch(ctx); err != nil {
				logger.Error("data directory watcher stopped", "error", err)
			}
		}()
	}

	// --- Sessions ---
	mgr := session.NewManager(time.Duration(cfg.SessionTTL), logger)
	go mgr.Sweep(ctx, time.Minute)

	// --- Metrics ---
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	metrics := telemetry.NewMetrics(registry, func() float64 { return float64(mgr.Count()) })

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		ExposedHeaders:   []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Method("GET", "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	r.Route("/api", func(ar chi.Router) {
		ar.Get("/library", api.ListLibraryHandler(lib))
		ar.Post("/sessions", api.CreateSessionHandler(mgr))
		ar.Route("/sessions/{sessionID}", func(sr chi.Router) {
			sr.Delete("/", api.DeleteSessionHandler(mgr))
			sr.Post("/documents", api.AttachDocumentsHandler(mgr, lib, metrics))
			sr.Get("/documents", api.ListDocumentsHandler(mgr))
			sr.Delete("/documents/{name}", api.DetachDocumentHandler(mgr))
			sr.Get("/raw/{name}", api.RawDocumentHandler(mgr))
			sr.Get("/objectives", api.ObjectivesHandler(mgr))
			sr.Post("/query", api.QueryHandler(mgr))
			sr.Post("/selection/{op}", api.SelectionHandler(mgr))
			sr.Get("/export/{format}", api.ExportHandler(mgr, metrics))
		})
	})

	logger.Info("listening", "addr", cfg.HTTPAddr, "data_dir", cfg.DataDir)
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
