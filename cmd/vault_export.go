package cmd

import (
	"opsvault/internal/workflows"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export the store as an encrypted envelope",
	Long: `Re-encrypts the current document and writes the envelope to the given
path. The export stays sealed under the vault password; importing it
elsewhere requires the same password.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting export command")

		pw, err := requirePassword("Vault password: ")
		if err != nil {
			return Logger.ErrorfAndReturn("failed to read password: %v", err)
		}

		s, closeStore, err := commandStore()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to open storage: %v", err)
		}
		defer closeStore()

		spinner, cleanup := startSpinner("Exporting the database...", verbose)
		defer cleanup()

		result, err := workflows.Export(cmd.Context(), workflows.ExportOptions{
			Password:   pw,
			OutputPath: args[0],
			Store:      s,
		})
		if msg, handled := unlockFailureMessage(err); handled {
			spinner.FinalMSG = color.RedString("✗") + " " + msg
			return nil
		}
		if err != nil {
			return Logger.ErrorfAndReturn("failed to export: %v", err)
		}

		spinner.FinalMSG = color.GreenString("✓") + " Exported to " + color.YellowString(result.OutputPath)
		return nil
	},
}
