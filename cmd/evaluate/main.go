// Package main provides the command line tool that scores the latest snapshot on its hold-out matches.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/champ-predictor/internal/app"
	"github.com/yourusername/champ-predictor/internal/cache"
	"github.com/yourusername/champ-predictor/internal/config"
	"github.com/yourusername/champ-predictor/internal/database"
	"github.com/yourusername/champ-predictor/internal/evaluation"
	"github.com/yourusername/champ-predictor/internal/repository"
	"github.com/yourusername/champ-predictor/internal/service"
)

var (
	configFile string
	rulesFlag  []string
	csvPath    string
	appLog     *logrus.Logger
	cfg        *config.Config
	db         *database.DB
	repos      *repository.Repositories
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", config.DefaultPath, "Path to configuration file")
	rootCmd.Flags().StringSliceVar(&rulesFlag, "rules", nil, "Combination rules to evaluate (default: prediction.rules from config)")
	rootCmd.Flags().StringVar(&csvPath, "csv", "", "Also write the report to this CSV file")
	rootCmd.AddCommand(historyCmd)
}

var rootCmd = &cobra.Command{
	Use:          "evaluate",
	Short:        "Evaluate the latest champion stats snapshot",
	Long:         `Predicts every match stored after the latest snapshot's cut-off and reports accuracy, precision, recall and ROC-AUC per combination rule.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = app.LoadConfig(cmd.Context(), configFile)
		if err != nil {
			return err
		}
		appLog = app.NewLogger(cfg)

		db, repos, err = app.Connect(cmd.Context(), cfg)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if db != nil {
			db.Close()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		names := rulesFlag
		if len(names) == 0 {
			names = cfg.Prediction.Rules
		}
		rules, err := app.Rules(names)
		if err != nil {
			return err
		}
		aggregator, err := app.NewAggregator(cfg)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Minute)
		defer cancel()

		svc := service.NewEvaluationService(repos, cache.NewSnapshotCache(cfg.SnapshotCacheTTL()),
			aggregator, cfg.Prediction.Workers, appLog)
		run, err := svc.Evaluate(ctx, rules)
		if err != nil {
			return err
		}

		fmt.Printf("Snapshot %s (last match id %d, %d training matches)\n",
			run.Snapshot.ID, run.Snapshot.LastMatchID, run.Snapshot.MatchCount)
		fmt.Printf("Scored %d hold-out matches, skipped %d\n\n", run.Scored, run.Skipped)
		fmt.Print(evaluation.GenerateConsoleReport(run.RuleNames(), run.ReportsByName()))

		if csvPath != "" {
			if err := evaluation.GenerateCSVExport(run.RuleNames(), run.ReportsByName(), csvPath); err != nil {
				return err
			}
			appLog.WithField("path", csvPath).Info("Report exported")
		}
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List previous evaluations of the latest snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		snapshot, err := repos.ChampionStats.GetLatest(ctx)
		if err != nil {
			return fmt.Errorf("failed to load latest snapshot: %w", err)
		}
		results, err := repos.Evaluation.GetBySnapshot(ctx, snapshot.ID)
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Printf("No evaluations recorded for snapshot %s\n", snapshot.ID)
			return nil
		}

		fmt.Printf("%-20s %-9s %7s %8s %9s %9s %7s %8s\n",
			"Evaluated", "Rule", "Matches", "Skipped", "Accuracy", "Precision", "Recall", "ROC-AUC")
		for _, r := range results {
			fmt.Printf("%-20s %-9s %7d %8d %9s %9s %7s %8s\n",
				r.EvaluatedAt.Format("2006-01-02 15:04:05"), r.Rule, r.MatchCount, r.SkippedCount,
				evaluation.Round(r.Accuracy).StringFixed(4), evaluation.Round(r.Precision).StringFixed(4),
				evaluation.Round(r.Recall).StringFixed(4), evaluation.Round(r.ROCAUC).StringFixed(4))
		}
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}
