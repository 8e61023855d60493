package cmd

import (
	"errors"

	"github.com/jsench/Project-Wheatley/src/seed"
	"github.com/jsench/Project-Wheatley/src/services"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Creates the admin user and the default static pages",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if cfg.AdminPassword == "" {
			return errors.New("seed.admin_password must be set")
		}
		gdb, err := openDB()
		if err != nil {
			return err
		}
		users := services.NewUserService(gdb, cfg.TokenTTL)
		return seed.Seed(cmd.Context(), gdb, users, cfg, logger)
	},
}
