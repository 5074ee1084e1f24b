package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"quizdeck/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show content and result statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		defer log.Sync()

		dbPath := cfg.Database.Path
		if dbPath == "" {
			if dbPath, err = store.DefaultDBPath(); err != nil {
				return err
			}
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return err
		}
		defer st.Close()

		stats, err := st.Stats(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("Questions: %d\n", stats.Questions)
		fmt.Printf("Subjects:  %d\n", stats.Subjects)
		fmt.Printf("Profiles:  %d\n", stats.Profiles)
		fmt.Printf("Mixes:     %d\n", stats.Mixes)
		fmt.Printf("Results:   %d\n", stats.Results)
		for _, sc := range stats.BySubject {
			fmt.Printf("  %-20s %d\n", sc.Subject, sc.Questions)
		}
		return nil
	},
}
