package cmd

import (
	"errors"

	kerrors "opsvault/internal/errors"
	"opsvault/internal/workflows"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var undoCmd = &cobra.Command{
	Use:   "undo [undo-id]",
	Short: "Restore the most recent deletion from the recycle bin",
	Long: `Puts deleted rows back. Without an argument the most recent recycle
entry is restored; with an id, that specific entry. Entries expire
after 15 minutes and the bin holds at most 20 of them.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting undo command")

		pw, err := requirePassword("Vault password: ")
		if err != nil {
			return Logger.ErrorfAndReturn("failed to read password: %v", err)
		}
		undoID := ""
		if len(args) == 1 {
			undoID = args[0]
		}

		s, closeStore, err := commandStore()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to open storage: %v", err)
		}
		defer closeStore()

		spinner, cleanup := startSpinner("Restoring rows...", verbose)
		defer cleanup()

		result, err := workflows.Undo(cmd.Context(), workflows.RecycleOptions{Password: pw, UndoID: undoID, Store: s})
		if msg, handled := unlockFailureMessage(err); handled {
			spinner.FinalMSG = color.RedString("✗") + " " + msg
			return nil
		}
		if errors.Is(err, kerrors.ErrNothingToUndo) {
			spinner.FinalMSG = color.YellowString("!") + " Nothing to undo"
			return nil
		}
		if err != nil {
			return Logger.ErrorfAndReturn("failed to undo: %v", err)
		}

		spinner.FinalMSG = color.GreenString("✓") + " Restored " + color.CyanString("'"+result.Type+"'") + " rows\n" +
			color.CyanString("→") + " Run " + color.YellowString("opsvault vault redo") + " to delete them again"
		return nil
	},
}
