package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/cofre/internal/achievement"
	achievementStore "github.com/MrJamesThe3rd/cofre/internal/achievement/store"
	"github.com/MrJamesThe3rd/cofre/internal/amqp"
	"github.com/MrJamesThe3rd/cofre/internal/config"
	"github.com/MrJamesThe3rd/cofre/internal/database"
	cofreHttp "github.com/MrJamesThe3rd/cofre/internal/http"
	achievementHandler "github.com/MrJamesThe3rd/cofre/internal/http/achievement"
	evaluateHandler "github.com/MrJamesThe3rd/cofre/internal/http/evaluate"
	importHandler "github.com/MrJamesThe3rd/cofre/internal/http/importcsv"
	insightHandler "github.com/MrJamesThe3rd/cofre/internal/http/insight"
	notificationHandler "github.com/MrJamesThe3rd/cofre/internal/http/notification"
	refreshHandler "github.com/MrJamesThe3rd/cofre/internal/http/refresh"
	"github.com/MrJamesThe3rd/cofre/internal/importer"
	"github.com/MrJamesThe3rd/cofre/internal/insight"
	"github.com/MrJamesThe3rd/cofre/internal/notification"
	notificationStore "github.com/MrJamesThe3rd/cofre/internal/notification/store"
	"github.com/MrJamesThe3rd/cofre/internal/refresh"
	snapshotStore "github.com/MrJamesThe3rd/cofre/internal/snapshot/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.App.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(ctx, cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if cfg.DB.Migrate {
		if err := database.Migrate(db); err != nil {
			slog.Error("failed to migrate database", "error", err)
			os.Exit(1)
		}
	}

	var publisher notification.Publisher

	if cfg.AMQP.URL != "" {
		client, err := amqp.NewClient(cfg.AMQP.URL, cfg.AMQP.Exchange, cfg.AMQP.Queue)
		if err != nil {
			slog.Error("failed to connect to AMQP", "error", err)
			os.Exit(1)
		}
		defer client.Close()

		publisher = client
	} else {
		slog.Info("AMQP_URL not set, notifications will not be published")
	}

	var (
		snapshots = snapshotStore.New(db)
		evaluator = achievement.NewEvaluator(cfg.AchievementRules(), time.Now)
		generator = notification.NewGenerator(cfg.NotificationThresholds(), time.Now)
		analyzer  = insight.NewAnalyzer(cfg.Rules.MonthlyBudget, cfg.Insights.TrendAlertRatio, time.Now)
	)

	var (
		achievementService  = achievement.NewService(achievementStore.New(db), evaluator)
		notificationService = notification.NewService(notificationStore.New(db), generator, publisher)
		refreshService      = refresh.NewService(snapshots, achievementService, notificationService, analyzer)
		importService       = importer.NewService()
	)

	router := cofreHttp.New(
		cofreHttp.Options{
			JWTSecret:   cfg.Auth.JWTSecret,
			CORSOrigins: cfg.Server.CORSOrigins,
			Timeout:     cfg.Server.Timeout,
		},
		achievementHandler.NewHandler(achievementService, snapshots),
		notificationHandler.NewHandler(notificationService),
		insightHandler.NewHandler(analyzer, snapshots),
		refreshHandler.NewHandler(refreshService),
		evaluateHandler.NewHandler(evaluator, generator),
		importHandler.NewHandler(importService, snapshots),
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
	}()

	slog.Info("starting server", "app", cfg.App.Name, "addr", srv.Addr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func setupLogger(level string) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}
