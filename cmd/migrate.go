package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"quizdeck/internal/store"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
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
		if err := store.EnsureDir(dbPath); err != nil {
			return err
		}

		st, err := store.Open(dbPath)
		if err != nil {
			return err
		}
		defer st.Close()

		migrator, err := store.NewMigrator(st.Conn(), store.Migrations())
		if err != nil {
			return err
		}
		before, err := migrator.Current(cmd.Context())
		if err != nil {
			return err
		}
		after, err := migrator.ToLatest(cmd.Context())
		if err != nil {
			return err
		}

		log.Info("migrations applied", zap.Int("from", before), zap.Int("to", after))
		if before == after {
			fmt.Printf("Schema already at v%d\n", after)
		} else {
			fmt.Printf("Schema migrated v%d -> v%d\n", before, after)
		}
		return nil
	},
}
