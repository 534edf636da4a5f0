package cmd

import (
	"os"
	"path/filepath"

	"opsvault/internal/workflows"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	importAction string
	importName   string
)

func init() {
	importCmd.Flags().StringVar(&importAction, "action", workflows.ImportAppend, "append, view, or replace")
	importCmd.Flags().StringVar(&importName, "name", "", "display name for the imported database")
}

func resetImportCommandState() {
	importAction = workflows.ImportAppend
	importName = ""
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import an exported envelope into the store",
	Long: `Decrypts and validates an exported envelope, then applies it.

  append   merge the imported rows into the current store and keep a
           read-only copy (default)
  view     keep a read-only copy and switch to it
  replace  overwrite the current store with the import

The import must have been exported under the same password.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting import command with action=%s", importAction)

		pw, err := requirePassword("Vault password: ")
		if err != nil {
			return Logger.ErrorfAndReturn("failed to read password: %v", err)
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return Logger.ErrorfAndReturn("failed to read %s: %v", args[0], err)
		}

		name := importName
		if name == "" {
			name = filepath.Base(args[0])
		}

		s, closeStore, err := commandStore()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to open storage: %v", err)
		}
		defer closeStore()

		spinner, cleanup := startSpinner("Importing the database...", verbose)
		defer cleanup()

		result, err := workflows.Import(cmd.Context(), workflows.ImportOptions{
			Password: pw,
			Data:     data,
			Name:     name,
			Action:   importAction,
			Store:    s,
		})
		if msg, handled := unlockFailureMessage(err); handled {
			spinner.FinalMSG = color.RedString("✗") + " " + msg
			return nil
		}
		if err != nil {
			return Logger.ErrorfAndReturn("failed to import: %v", err)
		}
		if !result.OK {
			spinner.FinalMSG = color.RedString("✗") + " Import rejected: " + result.Message
			return nil
		}

		message := color.GreenString("✓") + " Import applied"
		if result.SourceID != "" {
			message += " " + color.CyanString("'"+result.Name+"'") + " registered as a source"
		}
		spinner.FinalMSG = message
		return nil
	},
}
