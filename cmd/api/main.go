package main

import (
	"database/sql"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	_ "github.com/go-sql-driver/mysql"
	"github.com/gorilla/websocket"
	"golang.org/x/exp/slog"

	"github.com/jmenichole/TiltCheck-sub005/internal/config"
	"github.com/jmenichole/TiltCheck-sub005/internal/fairness"
	"github.com/jmenichole/TiltCheck-sub005/internal/http-server/handlers/casino"
	"github.com/jmenichole/TiltCheck-sub005/internal/http-server/handlers/event"
	"github.com/jmenichole/TiltCheck-sub005/internal/http-server/handlers/job"
	"github.com/jmenichole/TiltCheck-sub005/internal/http-server/handlers/mysql"
	"github.com/jmenichole/TiltCheck-sub005/internal/http-server/handlers/notify"
	"github.com/jmenichole/TiltCheck-sub005/internal/http-server/handlers/verify"
	mwLogger "github.com/jmenichole/TiltCheck-sub005/internal/http-server/middleware/logger"
	"github.com/jmenichole/TiltCheck-sub005/internal/ledger"
	"github.com/jmenichole/TiltCheck-sub005/internal/lib/logger/handler/slogpretty"
	"github.com/jmenichole/TiltCheck-sub005/internal/lib/logger/sl"
	"github.com/jmenichole/TiltCheck-sub005/internal/repository"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

const (
	jobQueueSize   = 100
	jobWorkerCount = 4
)

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting verification server...", slog.String("env", cfg.Env))
	log.Debug("debug messages are enabled")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Error("Failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	if err = db.Ping(); err != nil {
		log.Error("Failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	dbhandler := mysql.New(db)

	conn, _, err := websocket.DefaultDialer.Dial(cfg.WSHubURL, nil)
	if err != nil {
		log.Error("Failed to connect to event hub", sl.Err(err))

		return
	}
	defer conn.Close()

	job.Queue = job.NewQueue(jobQueueSize)
	job.NewWorkerPool(jobWorkerCount, job.Queue).Start()

	publisher := event.NewVerdictPublisher(log, conn)

	registry := fairness.NewRegistry().
		WithHMACKey("rollbit", cfg.RollbitHMACKey)

	store := repository.NewStore(*dbhandler)
	issueLedger := ledger.New(log, store)

	sessions := fairness.NewSessionVerifier(log, registry)
	composer := fairness.NewNotificationComposer(log, registry)

	verifySeeds := verify.NewVerifySeeds(log, sessions, issueLedger, publisher)
	history := verify.NewHistory(log, issueLedger)
	collectSeeds := notify.NewCollectSeeds(log, composer, issueLedger, publisher)
	pending := notify.NewPending(log, issueLedger)
	issues := casino.NewIssues(log, issueLedger)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(mwLogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	router.Post("/casino/{casinoId}/verify-seeds", verifySeeds.New())
	router.Get("/casino/{casinoId}/issues", issues.New())
	router.Post("/notifications/collect-seeds", collectSeeds.New())
	router.Get("/users/{uuid}/notifications", pending.New())
	router.Get("/users/{uuid}/verifications", history.New())

	log.Info("Server started", slog.String("address", cfg.Address))

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	if err = srv.ListenAndServe(); err != nil {
		log.Error("Server failed", sl.Err(err))
	}

	log.Error("Server stopped")
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
