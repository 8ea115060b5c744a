// Package main provides the CLI that crawls Riot match histories into the database.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/champ-predictor/internal/app"
	"github.com/yourusername/champ-predictor/internal/config"
	"github.com/yourusername/champ-predictor/internal/service"
)

func main() {
	var (
		configPath = flag.String("config", config.DefaultPath, "Path to config file")
		seeds      = flag.String("seeds", "", "Comma separated player PUUIDs to start from (default: scheduler.seed_puuids)")
		maxPlayers = flag.Int("max-players", 50, "Maximum number of players to crawl")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig(ctx, *configPath)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	appLog := app.NewLogger(cfg)

	seedList := cfg.Scheduler.SeedPUUIDs
	if *seeds != "" {
		seedList = strings.Split(*seeds, ",")
	}
	if len(seedList) == 0 {
		appLog.Fatal("No seed players given")
	}

	client, err := app.NewRiotClient(cfg, appLog)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to create Riot client")
	}
	defer client.Close()

	db, repos, err := app.Connect(ctx, cfg)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	svc := service.NewIngestionService(client, repos.Match, appLog, cfg.Riot.MatchesPerPage, cfg.Riot.SkipQueues)

	appLog.WithFields(logrus.Fields{
		"seeds":       len(seedList),
		"max_players": *maxPlayers,
		"region":      cfg.Riot.Region,
	}).Info("Starting match crawl")

	m, err := svc.Crawl(ctx, seedList, *maxPlayers)
	if err != nil {
		appLog.WithError(err).Error("Crawl stopped early")
	}
	if m != nil {
		appLog.Info(m.String())
	}
}
