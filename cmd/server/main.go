package main

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"bioscan/internal/analysis"
	"bioscan/internal/config"
	"bioscan/internal/driver"
	"bioscan/internal/graph"
	"bioscan/internal/ner"
	"bioscan/internal/pubmed"
	"bioscan/internal/scan"
	"bioscan/internal/server"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Config load error", zap.Error(err))
	}

	// A missing database degrades writes to no-ops and reads to empty
	// results; the service still starts.
	d := driver.NewNeo4jDriver(cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword, logger)
	defer d.Close(context.Background())
	if err := d.BuildIndices(context.Background()); err != nil {
		logger.Warn("Index creation failed", zap.Error(err))
	}

	engine, err := ner.NewEngine(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize NER engine", zap.Error(err))
	}

	lexicon := analysis.DefaultLexicon()
	if cfg.LexiconPath != "" {
		lexicon, err = analysis.LoadLexicon(cfg.LexiconPath)
		if err != nil {
			logger.Fatal("Failed to load lexicon file", zap.Error(err))
		}
		logger.Info("Loaded lexicon overrides", zap.String("path", cfg.LexiconPath))
	}

	store := graph.NewStore(d, logger)
	analyzer := analysis.NewAnalyzer(engine, lexicon)
	fetcher := pubmed.NewFetcher(cfg, logger)
	orchestrator := scan.NewOrchestrator(fetcher, analyzer, store, logger)

	if cfg.CronSchedule != "" && len(cfg.WatchedTargets) > 0 {
		scheduler := cron.New()
		_, err := scheduler.AddFunc(cfg.CronSchedule, func() {
			logger.Info("Running scheduled rescan", zap.Strings("targets", cfg.WatchedTargets))
			for _, target := range cfg.WatchedTargets {
				for event := range orchestrator.Run(context.Background(), target, cfg.ScanLimit) {
					if event.Status != scan.StatusProgress {
						logger.Info("Scheduled scan finished",
							zap.String("target", target),
							zap.String("status", string(event.Status)))
					}
				}
			}
		})
		if err != nil {
			logger.Fatal("Invalid cron schedule", zap.String("schedule", cfg.CronSchedule), zap.Error(err))
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	srv := server.New(store, orchestrator, logger, cfg.ScanLimit)
	r := srv.SetupRouter()

	logger.Info("Starting server", zap.String("port", cfg.HTTPPort))
	if err := r.Run(":" + cfg.HTTPPort); err != nil {
		logger.Fatal("Server exited", zap.Error(err))
	}
}
