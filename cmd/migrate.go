package cmd

import (
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Creates or updates the database schema",
	RunE: func(_ *cobra.Command, _ []string) error {
		if _, err := openDB(); err != nil {
			return err
		}
		logger.Info("Database migrated")
		return nil
	},
}
