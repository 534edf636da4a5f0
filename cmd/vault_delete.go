package cmd

import (
	"errors"
	"strings"

	kerrors "opsvault/internal/errors"
	"opsvault/internal/store"
	"opsvault/internal/workflows"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <table> <row-id>...",
	Short: "Delete rows from a table into the recycle bin",
	Long: `Removes rows from one of the tables:

  kanban_columns, kanban_cards, candidate_data, uniform_inventory,
  weekly_entries, todos

Weekly entries use the composite "<week start>-<day>" id. Deleted rows
go to the recycle bin and can be restored with 'opsvault vault undo'
for 15 minutes.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting delete command for table %s", args[0])

		pw, err := requirePassword("Vault password: ")
		if err != nil {
			return Logger.ErrorfAndReturn("failed to read password: %v", err)
		}

		s, closeStore, err := commandStore()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to open storage: %v", err)
		}
		defer closeStore()

		spinner, cleanup := startSpinner("Deleting rows...", verbose)
		defer cleanup()

		result, err := workflows.Delete(cmd.Context(), workflows.DeleteOptions{
			Password: pw,
			Table:    args[0],
			RowIDs:   args[1:],
			Store:    s,
		})
		if msg, handled := unlockFailureMessage(err); handled {
			spinner.FinalMSG = color.RedString("✗") + " " + msg
			return nil
		}
		if errors.Is(err, kerrors.ErrInvalidTable) {
			spinner.FinalMSG = color.RedString("✗") + " Unknown table " + color.CyanString("'"+args[0]+"'") + "\n" +
				color.CyanString("→") + " One of: " + strings.Join(store.TableOrder, ", ")
			return nil
		}
		if errors.Is(err, kerrors.ErrLastColumn) {
			spinner.FinalMSG = color.RedString("✗") + " Cannot delete the last column while cards remain on the board"
			return nil
		}
		if err != nil {
			return Logger.ErrorfAndReturn("failed to delete: %v", err)
		}

		if result.UndoID == "" {
			spinner.FinalMSG = color.YellowString("!") + " No matching rows found"
			return nil
		}
		spinner.FinalMSG = color.GreenString("✓") + " Rows deleted\n" +
			color.CyanString("→") + " Run " + color.YellowString("opsvault vault undo") + " within 15 minutes to restore them"
		return nil
	},
}
