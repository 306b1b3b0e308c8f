package main

import (
	"errors"
	"fmt"

	"hours-tracker/internal/database"
	"hours-tracker/internal/validation"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	staffUsername string
	staffPassword string
)

// администраторов через веб не заводят, только отсюда или из ADMIN_* при первом запуске
var createStaffCmd = &cobra.Command{
	Use:   "create-staff",
	Short: "Create an administrator account",
	RunE: func(cmd *cobra.Command, args []string) error {
		if staffUsername == "" {
			return errors.New("--username is required")
		}
		if len(staffPassword) < validation.MinPasswordLen {
			return fmt.Errorf("--password must be at least %d characters", validation.MinPasswordLen)
		}

		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer log.Sync() //nolint:errcheck

		database.DB, err = database.Open(cfg.DB)
		if err != nil {
			return err
		}
		defer database.Close() //nolint:errcheck
		if err := database.Migrate(database.DB); err != nil {
			return err
		}

		user, err := database.CreateStaff(staffUsername, staffPassword)
		if err != nil {
			return err
		}
		log.Info("staff user created", zap.String("username", user.Username), zap.Uint("id", user.ID))
		return nil
	},
}

func init() {
	createStaffCmd.Flags().StringVarP(&staffUsername, "username", "u", "", "login of the new administrator")
	createStaffCmd.Flags().StringVarP(&staffPassword, "password", "p", "", "initial password")
}
