// Package main provides the CLI that builds a champion stats snapshot from the stored matches.
package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/champ-predictor/internal/app"
	"github.com/yourusername/champ-predictor/internal/config"
	"github.com/yourusername/champ-predictor/internal/service"
)

func main() {
	var (
		configPath = flag.String("config", config.DefaultPath, "Path to config file")
		percentile = flag.Int("percentile", 0, "Override the training percentile of match IDs (1-100)")
		champions  = flag.String("champions", "", "Comma separated champion IDs whose pairs are pre-seeded with zero counts")
		output     = flag.String("output", "", "Also write the snapshot statistics as JSON to this path")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	cfg, err := app.LoadConfig(ctx, *configPath)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	appLog := app.NewLogger(cfg)

	db, repos, err := app.Connect(ctx, cfg)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	pct := cfg.Stats.TrainingPercentile
	if *percentile > 0 {
		pct = *percentile
	}

	svc := service.NewStatsService(repos.Match, repos.ChampionStats, appLog, pct)
	if *champions != "" {
		ids, err := app.ParseRoster(*champions)
		if err != nil {
			appLog.WithError(err).Fatal("Invalid champion list")
		}
		svc.WithChampions(ids)
	}

	appLog.WithField("percentile", pct).Info("Building champion stats snapshot")
	snapshot, err := svc.Build(ctx)
	if err != nil {
		appLog.WithError(err).Fatal("Snapshot build failed")
	}

	if *output != "" {
		if err := os.MkdirAll(filepath.Dir(*output), 0o755); err != nil {
			appLog.WithError(err).Fatal("Failed to create output directory")
		}
		if err := os.WriteFile(*output, snapshot.Data, 0o644); err != nil {
			appLog.WithError(err).Fatal("Failed to write snapshot file")
		}
	}

	appLog.WithFields(logrus.Fields{
		"snapshot_id":   snapshot.ID,
		"last_match_id": snapshot.LastMatchID,
		"match_count":   snapshot.MatchCount,
	}).Info("Snapshot build complete")
}
