package cmd

import (
	"errors"

	kerrors "opsvault/internal/errors"
	"opsvault/internal/workflows"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var redoCmd = &cobra.Command{
	Use:   "redo [undo-id]",
	Short: "Reapply a deletion that was undone",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting redo command")

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

		spinner, cleanup := startSpinner("Reapplying the deletion...", verbose)
		defer cleanup()

		result, err := workflows.Redo(cmd.Context(), workflows.RecycleOptions{Password: pw, UndoID: undoID, Store: s})
		if msg, handled := unlockFailureMessage(err); handled {
			spinner.FinalMSG = color.RedString("✗") + " " + msg
			return nil
		}
		if errors.Is(err, kerrors.ErrNothingToRedo) {
			spinner.FinalMSG = color.YellowString("!") + " Nothing to redo"
			return nil
		}
		if err != nil {
			return Logger.ErrorfAndReturn("failed to redo: %v", err)
		}

		spinner.FinalMSG = color.GreenString("✓") + " Reapplied the " + color.CyanString("'"+result.Type+"'") + " deletion"
		return nil
	},
}
