package main

import (
	"net/http"
	"os"

	"golang.org/x/exp/slog"

	"github.com/jmenichole/TiltCheck-sub005/internal/config"
	"github.com/jmenichole/TiltCheck-sub005/internal/lib/logger/handler/slogpretty"
	"github.com/jmenichole/TiltCheck-sub005/internal/lib/logger/sl"
	"github.com/jmenichole/TiltCheck-sub005/internal/ws/handler"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting event hub...", slog.String("env", cfg.Env))
	log.Debug("debug messages are enabled")

	hub := handler.NewHub(log)

	hub.RunServer()

	http.HandleFunc("/ws", hub.HandleConnection)

	log.Info("Server started", slog.String("address", cfg.WSAddress))

	srv := &http.Server{
		Addr:         cfg.WSAddress,
		ReadTimeout:  cfg.WSTimeout,
		WriteTimeout: cfg.WSTimeout,
		IdleTimeout:  cfg.WSIdleTimeout,
	}

	if err := srv.ListenAndServe(); err != nil {
		log.Error("Server error", sl.Err(err))
	}

	log.Error("Event hub stopped")
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlogLogger()
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}

func setupPrettySlogLogger() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	handler := opts.NewPrettyHandler(os.Stdout)

	return slog.New(handler)
}
