package main

import (
	"context"
	"fmt"

	"moodbite/config"
	"moodbite/services"
	"moodbite/storage"
	"moodbite/utils"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

// app holds everything the commands share.
type app struct {
	cfg      *config.Config
	log      *zap.Logger
	store    *storage.Store
	registry *prometheus.Registry
	metrics  *services.Metrics

	realtime   *services.RealtimeHub
	classifier services.MoodClassifier
	auth       *services.AuthService
	insights   *services.InsightService
	entries    *services.EntryService
	chat       *services.ChatService
	analytics  *services.AnalyticsService
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := utils.NewLogger(cfg.Environment, cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	db, err := config.OpenDB(cfg, log)
	if err != nil {
		_ = log.Sync()
		return nil, err
	}
	store := storage.New(db, log)
	if err := store.AutoMigrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := services.NewMetrics(registry)

	a := &app{
		cfg:      cfg,
		log:      log,
		store:    store,
		registry: registry,
		metrics:  metrics,
		realtime: services.NewRealtimeHub(),
	}
	a.classifier = newClassifier(cfg, log, metrics)
	a.auth = services.NewAuthService(store, cfg.JWTSecret, cfg.JWTTTL, log)
	a.insights = services.NewInsightService(store, cfg.InsightWindowEntries, log, metrics)
	notifier := services.NewInsightNotifier(a.insights, a.realtime, log)
	a.entries = services.NewEntryService(store, notifier, log, metrics)
	a.chat = services.NewChatService(store, a.classifier, cfg.ChatHistoryEntries, log)
	a.analytics = services.NewAnalyticsService(store)

	log.Info("application initialised",
		zap.String("environment", cfg.Environment),
		zap.String("db_driver", cfg.DBDriver),
		zap.String("classifier", cfg.Classifier))
	return a, nil
}

func newClassifier(cfg *config.Config, log *zap.Logger, metrics *services.Metrics) services.MoodClassifier {
	lexicon := services.NewLexiconClassifier(metrics)
	if cfg.Classifier != config.ClassifierHuggingFace {
		return lexicon
	}
	return services.NewHuggingFaceClassifier(services.HuggingFaceConfig{
		BaseURL: cfg.HuggingFaceBaseURL,
		Token:   cfg.HuggingFaceToken,
	}, lexicon, log, metrics)
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.log.Warn("closing database", zap.Error(err))
	}
	_ = a.log.Sync()
}
