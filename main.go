package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kova98/postboard/config"
	"github.com/kova98/postboard/handlers"
	"github.com/kova98/postboard/page"
	"github.com/kova98/postboard/sources"
)

const pageTitle = "Employee Posts"

func main() {
	config.LoadConfig()

	opts := slog.HandlerOptions{Level: config.Config.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &opts))
	slog.SetDefault(logger)

	client, err := sources.NewHTTPClient(config.Config.ProxyURL, config.Config.HTTPTimeout)
	if err != nil {
		slog.Error("failed to create http client", "error", err)
		os.Exit(1)
	}
	placeholder := sources.NewPlaceholderClient(logger.With("component", "placeholder"), client, config.Config.PlaceholderURL)

	pageOpts := page.Options{
		Title:            pageTitle,
		SourceURL:        config.Config.PlaceholderURL,
		DefaultUserID:    config.Config.DefaultUserID,
		FetchConcurrency: config.Config.FetchConcurrency,
	}
	pageLogger := logger.With("component", "page")
	sessions := handlers.NewSessions(func(ctx context.Context) (*page.Page, error) {
		p := page.New(pageLogger, placeholder, pageOpts)
		p.InitApp()
		if err := p.Load(ctx); err != nil {
			return nil, err
		}
		return p, nil
	}, config.Config.SessionTTL)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sessions.Start(ctx)

	pages := handlers.NewPageHandler(sessions)
	health := handlers.NewHealthHandler(sessions)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", public(pages.GetPage))
	mux.HandleFunc("POST /select", public(pages.SelectUser))
	mux.HandleFunc("POST /posts/{id}/toggle", public(pages.ToggleComments))

	mux.HandleFunc("GET /healthz", public(health.GetHealth))
	mux.Handle("GET /metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              config.Config.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		<-sigCh
		slog.Info("Shutting down...")
		cancel()
		shutdownCtx, done := context.WithTimeout(context.Background(), 10*time.Second)
		defer done()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shut down server", "error", err)
		}
	}()

	slog.Info("Starting server", "addr", config.Config.ListenAddr, "source", config.Config.PlaceholderURL)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("failed to start server", "error", err)
		os.Exit(1)
	}
}

func public(handler handlers.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ts := time.Now()
		res := handler(w, r)
		elapsedMs := time.Since(ts).Milliseconds()
		slog.Debug("req", "method", r.Method, "path", r.URL.Path, "code", res.Code, "elapsed", elapsedMs)
		writeResult(w, res)
	}
}

func writeResult(w http.ResponseWriter, res handlers.Result) {
	if res.Code == http.StatusInternalServerError {
		slog.Error("internal error", "error", res.Error.Error())
	}

	switch {
	case res.Location != "":
		w.Header().Set("Location", res.Location)
		w.WriteHeader(res.Code)
	case res.HTML != nil:
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(res.Code)
		if _, err := w.Write(res.HTML); err != nil {
			slog.Error("failed to write page", "error", err)
		}
	default:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(res.Code)
		if res.Body != nil {
			if err := json.NewEncoder(w).Encode(res.Body); err != nil {
				slog.Error("failed to encode response", "error", err)
			}
		}
	}
}
