// Package main provides the long-running daemon that crawls, rebuilds and evaluates on a schedule.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/champ-predictor/internal/app"
	"github.com/yourusername/champ-predictor/internal/cache"
	"github.com/yourusername/champ-predictor/internal/config"
	"github.com/yourusername/champ-predictor/internal/health"
	"github.com/yourusername/champ-predictor/internal/metrics"
	"github.com/yourusername/champ-predictor/internal/scheduler"
	"github.com/yourusername/champ-predictor/internal/service"
)

var version = "dev"

func main() {
	var (
		configPath = flag.String("config", config.DefaultPath, "Path to config file")
		maxPlayers = flag.Int("max-players", 50, "Maximum number of players visited per crawl")
		runNow     = flag.Bool("run-now", false, "Run every scheduled job once at startup")
	)
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := app.LoadConfig(ctx, *configPath)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	appLog := app.NewLogger(cfg)
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"log_level":   cfg.App.LogLevel,
	}).Info("Champion predictor scheduler starting")

	db, repos, err := app.Connect(ctx, cfg)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	aggregator, err := app.NewAggregator(cfg)
	if err != nil {
		appLog.WithError(err).Fatal("Invalid prediction settings")
	}
	rules, err := app.Rules(cfg.Prediction.Rules)
	if err != nil {
		appLog.WithError(err).Fatal("Invalid prediction rules")
	}

	metrics.InitRegistry()
	snapshots := cache.NewSnapshotCache(cfg.SnapshotCacheTTL())
	sched := scheduler.NewScheduler(appLog)

	if cfg.Scheduler.IngestCron != "" {
		client, err := app.NewRiotClient(cfg, appLog)
		if err != nil {
			appLog.WithError(err).Fatal("Failed to create Riot client")
		}
		defer client.Close()

		crawler := service.NewIngestionService(client, repos.Match, appLog, cfg.Riot.MatchesPerPage, cfg.Riot.SkipQueues)
		if err := sched.ScheduleCrawl(cfg.Scheduler.IngestCron, crawler, cfg.Scheduler.SeedPUUIDs, *maxPlayers); err != nil {
			appLog.WithError(err).Fatal("Failed to schedule crawl")
		}
	}

	builder := service.NewStatsService(repos.Match, repos.ChampionStats, appLog, cfg.Stats.TrainingPercentile)
	if err := sched.ScheduleRebuild(cfg.Scheduler.RebuildCron, builder); err != nil {
		appLog.WithError(err).Fatal("Failed to schedule snapshot rebuild")
	}

	evaluator := service.NewEvaluationService(repos, snapshots, aggregator, cfg.Prediction.Workers, appLog)
	if err := sched.ScheduleEvaluation(cfg.Scheduler.EvaluateCron, evaluator, rules); err != nil {
		appLog.WithError(err).Fatal("Failed to schedule evaluation")
	}

	if len(sched.Jobs()) == 0 {
		appLog.Fatal("No jobs configured, set at least one scheduler cron expression")
	}

	if cfg.Metrics.Enabled {
		healthServer := health.NewServer(health.Config{
			ServiceName:    cfg.App.Name,
			Version:        version,
			Port:           cfg.Metrics.Port,
			Logger:         appLog,
			Checks:         map[string]health.Checker{"database": health.CheckerFunc(db.HealthCheck)},
			MetricsPath:    cfg.Metrics.Path,
			MetricsHandler: metrics.Handler(),
		})
		healthServer.Start(ctx)
		healthServer.SetReady(true)
	}

	if *runNow {
		for _, job := range []string{"crawl", "rebuild", "evaluate"} {
			if err := sched.RunNow(job); err != nil {
				appLog.WithField("job", job).Debug("Job not scheduled, skipping startup run")
			}
		}
	}

	if err := sched.Start(); err != nil {
		appLog.WithError(err).Fatal("Failed to start scheduler")
	}
	appLog.WithField("next_run", sched.GetNextRun()).Info("Scheduler running")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	appLog.WithField("signal", sig).Info("Shutdown signal received")

	if err := sched.Stop(); err != nil {
		appLog.WithError(err).Error("Scheduler did not stop cleanly")
	}
	cancel()
	appLog.Info("Scheduler stopped")
}
