package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/msomdec/interview-prep/internal/config"
	"github.com/msomdec/interview-prep/internal/handler"
	"github.com/msomdec/interview-prep/internal/metrics"
	"github.com/msomdec/interview-prep/internal/questionbank"
	"github.com/msomdec/interview-prep/internal/repository/snapshot"
	"github.com/msomdec/interview-prep/internal/repository/sqlite"
	"github.com/msomdec/interview-prep/internal/service"
)

const (
	// Register and login attempts allowed per client IP per minute.
	authAttemptsPerMinute = 10

	sessionSweepInterval = 5 * time.Minute
	sessionIdleTimeout   = 30 * time.Minute
)

func main() {
	logOpts := &slog.HandlerOptions{Level: slog.LevelInfo}
	logger := slog.New(slog.NewMultiHandler(
		slog.NewTextHandler(os.Stdout, logOpts),
		slog.NewJSONHandler(os.Stderr, logOpts),
	))
	slog.SetDefault(logger)

	if err := config.LoadDotEnv(); err != nil {
		slog.Error("failed to load .env", "error", err)
		os.Exit(1)
	}
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(context.Background()); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database migrations applied")

	users, err := snapshot.Open(context.Background(), db.Snapshots())
	if err != nil {
		slog.Error("failed to load user snapshot", "error", err)
		os.Exit(1)
	}
	slog.Info("user snapshot loaded", "users", users.Len())

	bank := questionbank.Default()
	if cfg.QuestionBankPath != "" {
		bank, err = questionbank.Load(cfg.QuestionBankPath)
		if err != nil {
			slog.Error("failed to load question bank", "path", cfg.QuestionBankPath, "error", err)
			os.Exit(1)
		}
		slog.Info("question bank loaded", "path", cfg.QuestionBankPath)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(reg)

	coachLimiter := service.PerMinute(cfg.CoachRatePerMinute)
	defer coachLimiter.Close()
	authLimiter := service.PerMinute(authAttemptsPerMinute)
	defer authLimiter.Close()

	authService := service.NewAuthService(users, cfg.JWTSecret, cfg.BcryptCost)
	interviewService := service.NewInterviewService(bank, users, service.Observers{
		service.LogObserver{Logger: logger},
		collector,
	})
	coachService := service.NewCoachService(sqlite.NewChatRepository(db), coachLimiter, cfg.CoachTypingDelay, collector)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, db, authService, interviewService, coachService, authLimiter, metrics.Handler(reg), cfg.CookieSecure)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.SecurityHeaders(handler.RecordStatus(collector, mux)),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go interviewService.RunJanitor(ctx, sessionSweepInterval, sessionIdleTimeout)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
