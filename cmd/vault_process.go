package cmd

import (
	"errors"

	kerrors "opsvault/internal/errors"
	"opsvault/internal/workflows"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	processBranch    string
	processArrival   string
	processDeparture string
)

func init() {
	processCmd.Flags().StringVar(&processBranch, "branch", "", "branch override when the card has none")
	processCmd.Flags().StringVar(&processArrival, "arrival", "", "NEO arrival in military time, e.g. 0905")
	processCmd.Flags().StringVar(&processDeparture, "departure", "", "NEO departure in military time, e.g. 1737")
}

func resetProcessCommandState() {
	processBranch = ""
	processArrival = ""
	processDeparture = ""
}

var processCmd = &cobra.Command{
	Use:   "process <candidate-id>",
	Short: "Process a candidate off the board",
	Long: `Finalizes a candidate after their NEO day: records arrival and
departure (rounded to the quarter hour), deducts issued uniforms from
the inventory, scrubs sensitive fields from the data row, and removes
the card. The pre-scrub card goes to the recycle bin so the processing
can be undone.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting process command for candidate %s", args[0])

		pw, err := requirePassword("Vault password: ")
		if err != nil {
			return Logger.ErrorfAndReturn("failed to read password: %v", err)
		}

		s, closeStore, err := commandStore()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to open storage: %v", err)
		}
		defer closeStore()

		spinner, cleanup := startSpinner("Processing the candidate...", verbose)
		defer cleanup()

		result, err := workflows.Process(cmd.Context(), workflows.ProcessOptions{
			Password:    pw,
			CandidateID: args[0],
			Branch:      processBranch,
			Arrival:     processArrival,
			Departure:   processDeparture,
			Store:       s,
		})
		if msg, handled := unlockFailureMessage(err); handled {
			spinner.FinalMSG = color.RedString("✗") + " " + msg
			return nil
		}
		if errors.Is(err, kerrors.ErrNotFound) {
			spinner.FinalMSG = color.RedString("✗") + " No card found for " + color.CyanString("'"+args[0]+"'")
			return nil
		}
		if errors.Is(err, kerrors.ErrBranchRequired) {
			spinner.FinalMSG = color.RedString("✗") + " The card has no branch\n" +
				color.CyanString("→") + " Pass one with " + color.YellowString("--branch")
			return nil
		}
		if errors.Is(err, kerrors.ErrInvalidTime) {
			spinner.FinalMSG = color.RedString("✗") + " Times must be 4-digit military time, e.g. " + color.YellowString("0905")
			return nil
		}
		if err != nil {
			return Logger.ErrorfAndReturn("failed to process: %v", err)
		}

		message := color.GreenString("✓") + " Candidate processed"
		if result.TotalHours != "" {
			message += " " + color.CyanString(result.TotalHours+" hours")
		}
		if result.IssuedCount > 0 {
			message += "\n" + color.CyanString("→") + " Deducted " + color.YellowString("%d", result.IssuedCount) + " uniform units"
		}
		spinner.FinalMSG = message
		return nil
	},
}
