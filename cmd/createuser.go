package cmd

import (
	"errors"

	"github.com/jsench/Project-Wheatley/src/services"
	"github.com/spf13/cobra"
)

var createUserPassword string

var createUserCmd = &cobra.Command{
	Use:   "createuser <username>",
	Short: "Creates an admin account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if createUserPassword == "" {
			return errors.New("--password is required")
		}
		gdb, err := openDB()
		if err != nil {
			return err
		}
		users := services.NewUserService(gdb, cfg.TokenTTL)
		user, err := users.CreateUser(cmd.Context(), args[0], createUserPassword)
		if err != nil {
			return err
		}
		cmd.Printf("User %s created with id %d\n", user.Username, user.Id)
		return nil
	},
}

func init() {
	createUserCmd.Flags().StringVarP(&createUserPassword, "password", "p", "", "password for the new user")
}
