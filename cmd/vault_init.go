package cmd

import (
	"errors"

	kerrors "opsvault/internal/errors"
	"opsvault/internal/workflows"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a new encrypted store protected by a password",
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting init command")

		pw, err := requirePassword("Choose a vault password: ")
		if err != nil {
			return Logger.ErrorfAndReturn("failed to read password: %v", err)
		}

		s, closeStore, err := commandStore()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to open storage: %v", err)
		}
		defer closeStore()

		spinner, cleanup := startSpinner("Creating the encrypted store...", verbose)
		defer cleanup()

		result, err := workflows.Init(cmd.Context(), workflows.InitOptions{Password: pw, Store: s})
		if errors.Is(err, kerrors.ErrAlreadySetUp) {
			spinner.FinalMSG = color.RedString("✗") + " A vault already exists\n" +
				color.CyanString("→") + " Run " + color.YellowString("opsvault vault change-password") + " to rotate the password"
			return nil
		}
		if errors.Is(err, kerrors.ErrPasswordRequired) {
			spinner.FinalMSG = color.RedString("✗") + " The password cannot be empty"
			return nil
		}
		if err != nil {
			return Logger.ErrorfAndReturn("failed to create the vault: %v", err)
		}

		spinner.FinalMSG = color.GreenString("✓") + " Vault created in " + color.YellowString(result.StorageRoot)
		return nil
	},
}
