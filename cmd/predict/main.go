// Package main provides a command line tool that predicts the outcome of a single draft.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/yourusername/champ-predictor/internal/app"
	"github.com/yourusername/champ-predictor/internal/cache"
	"github.com/yourusername/champ-predictor/internal/config"
	"github.com/yourusername/champ-predictor/internal/evaluation"
	"github.com/yourusername/champ-predictor/internal/models"
	"github.com/yourusername/champ-predictor/internal/prediction"
	"github.com/yourusername/champ-predictor/internal/service"
	"github.com/yourusername/champ-predictor/internal/stats"
)

var (
	configFile   string
	blueFlag     string
	redFlag      string
	snapshotFile string
	jsonOutput   bool
)

func init() {
	rootCmd.Flags().StringVarP(&configFile, "config", "c", config.DefaultPath, "Path to configuration file")
	rootCmd.Flags().StringVar(&blueFlag, "blue", "", "Comma separated champion IDs of the blue side")
	rootCmd.Flags().StringVar(&redFlag, "red", "", "Comma separated champion IDs of the red side")
	rootCmd.Flags().StringVar(&snapshotFile, "snapshot", "", "Read statistics from a JSON snapshot file instead of the database")
	rootCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the prediction as JSON")
	_ = rootCmd.MarkFlagRequired("blue")
	_ = rootCmd.MarkFlagRequired("red")
}

var rootCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict the blue side win probability of a draft",
	Long: `Scores a 5v5 draft against the latest champion stats snapshot and prints
the averaged synergy and matchup win rates together with every combination rule.`,
	Example:      "  predict --blue 266,103,84,12,32 --red 1,22,136,268,432",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		blue, err := app.ParseRoster(blueFlag)
		if err != nil {
			return fmt.Errorf("blue side: %w", err)
		}
		red, err := app.ParseRoster(redFlag)
		if err != nil {
			return fmt.Errorf("red side: %w", err)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		var pred prediction.Prediction
		if snapshotFile != "" {
			pred, err = predictFromFile(blue, red)
		} else {
			pred, err = predictFromDatabase(ctx, blue, red)
		}
		if err != nil {
			return err
		}

		return printPrediction(pred)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func predictFromFile(blue, red models.Roster) (prediction.Prediction, error) {
	cfg, err := config.LoadWithDefaults(configFile)
	if err != nil {
		return prediction.Prediction{}, err
	}
	aggregator, err := app.NewAggregator(cfg)
	if err != nil {
		return prediction.Prediction{}, err
	}

	data, err := os.ReadFile(snapshotFile)
	if err != nil {
		return prediction.Prediction{}, fmt.Errorf("failed to read snapshot: %w", err)
	}
	table, err := stats.Decode(data)
	if err != nil {
		return prediction.Prediction{}, err
	}

	match := &models.Match{MatchID: "draft", Blue: blue, Red: red}
	return prediction.NewPredictor(aggregator, table, 1).Predict(match)
}

func predictFromDatabase(ctx context.Context, blue, red models.Roster) (prediction.Prediction, error) {
	cfg, err := app.LoadConfig(ctx, configFile)
	if err != nil {
		return prediction.Prediction{}, err
	}
	db, repos, err := app.Connect(ctx, cfg)
	if err != nil {
		return prediction.Prediction{}, err
	}
	defer db.Close()

	aggregator, err := app.NewAggregator(cfg)
	if err != nil {
		return prediction.Prediction{}, err
	}

	svc := service.NewPredictionService(repos.ChampionStats, cache.NewSnapshotCache(cfg.SnapshotCacheTTL()), aggregator)
	return svc.PredictDraft(ctx, blue, red)
}

func printPrediction(pred prediction.Prediction) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(pred)
	}

	fmt.Printf("Blue synergy:   %s\n", evaluation.Round(pred.Summary.BlueSynergy).StringFixed(4))
	fmt.Printf("Red synergy:    %s\n", evaluation.Round(pred.Summary.RedSynergy).StringFixed(4))
	fmt.Printf("Blue matchup:   %s\n", evaluation.Round(pred.Summary.BlueMatchup).StringFixed(4))
	fmt.Println()
	for _, rule := range prediction.Rules {
		p := pred.Probability(rule)
		winner := "red"
		if evaluation.Predict(p) == 1 {
			winner = "blue"
		}
		fmt.Printf("%-9s P(blue wins) = %s -> %s\n", rule, evaluation.Round(p).StringFixed(4), winner)
	}
	return nil
}
