package cmd

import (
	"opsvault/internal/workflows"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var changePasswordCmd = &cobra.Command{
	Use:   "change-password",
	Short: "Rotate the vault password",
	Long: `Verifies the current password, then re-encrypts the store under a new
password with fresh key material. Exports made before the change keep
their old password.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting change-password command")

		current, err := requirePassword("Current password: ")
		if err != nil {
			return Logger.ErrorfAndReturn("failed to read password: %v", err)
		}
		// The persistent flag only covers the current password; the new
		// one is always prompted.
		password = ""
		next, err := requirePassword("New password: ")
		if err != nil {
			return Logger.ErrorfAndReturn("failed to read password: %v", err)
		}

		s, closeStore, err := commandStore()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to open storage: %v", err)
		}
		defer closeStore()

		spinner, cleanup := startSpinner("Re-encrypting the store...", verbose)
		defer cleanup()

		err = workflows.ChangePassword(cmd.Context(), workflows.ChangePasswordOptions{
			Current: current,
			Next:    next,
			Store:   s,
		})
		if msg, handled := unlockFailureMessage(err); handled {
			spinner.FinalMSG = color.RedString("✗") + " " + msg
			return nil
		}
		if err != nil {
			return Logger.ErrorfAndReturn("failed to change the password: %v", err)
		}

		spinner.FinalMSG = color.GreenString("✓") + " Password changed"
		return nil
	},
}
