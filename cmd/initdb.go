package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"quizdeck/internal/app"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the database, run migrations, and seed content",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		defer log.Sync()

		report, err := app.Initialize(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}

		fmt.Printf("Database: %s (schema v%d)\n", report.DBPath, report.SchemaVersion)
		if report.Seed != nil {
			fmt.Printf("Seeded pack %s: %d questions across %d subjects\n",
				report.Seed.PackVersion, report.Seed.Questions, report.Seed.Subjects)
		}
		fmt.Printf("Questions: %d  Subjects: %d  Profiles: %d  Mixes: %d  Results: %d\n",
			report.Stats.Questions, report.Stats.Subjects, report.Stats.Profiles,
			report.Stats.Mixes, report.Stats.Results)
		return nil
	},
}
