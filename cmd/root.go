package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"quizdeck/internal/config"
	"quizdeck/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "quizdeck",
	Short: "Quiz session engine for key-stage learners",
	Long:  "Quizdeck assembles, runs, and scores configurable quizzes from a local versioned question bank.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// A local .env is optional; absence is not an error.
		_ = godotenv.Load()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides QUIZDECK_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Directory containing config.yaml")
	rootCmd.PersistentFlags().String("seed", "", "Path to a seed pack JSON (overrides QUIZDECK_SEED env var)")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig builds the effective config: file and env via config.Load,
// then command-line flags on top.
func loadConfig(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	configDir, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configDir)
	if err != nil {
		return nil, nil, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.Database.Path = p
	}
	if p, _ := cmd.Flags().GetString("seed"); p != "" {
		cfg.Content.SeedPath = p
	}

	log, err := logging.New(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}
