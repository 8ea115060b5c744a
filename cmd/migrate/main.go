// Package main provides the CLI that applies or rolls back the database schema.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/champ-predictor/internal/app"
	"github.com/yourusername/champ-predictor/internal/config"
	"github.com/yourusername/champ-predictor/internal/database"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "Path to config file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [-config path] up|down|version\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	command := "up"
	if flag.NArg() > 0 {
		command = flag.Arg(0)
	}

	cfg, err := app.LoadConfig(context.Background(), *configPath)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	appLog := app.NewLogger(cfg)

	migrator, err := database.NewMigrator(&cfg.Database)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to open migrations")
	}
	defer func() {
		if err := migrator.Close(); err != nil {
			appLog.WithError(err).Warn("Failed to close migrator")
		}
	}()

	switch command {
	case "up":
		err = migrator.Up()
	case "down":
		err = migrator.Down()
	case "version":
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		appLog.WithError(err).Fatal("Migration failed")
	}

	version, dirty, err := migrator.Version()
	if err != nil {
		appLog.WithError(err).Fatal("Failed to read schema version")
	}
	appLog.WithFields(logrus.Fields{
		"command": command,
		"version": version,
		"dirty":   dirty,
	}).Info("Schema migration complete")
}
