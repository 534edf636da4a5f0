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

var (
	weeklyWeekStart string
	weeklyStart     string
	weeklyEnd       string
	weeklyContent   string
)

func init() {
	weeklyCmd.Flags().StringVar(&weeklyWeekStart, "week", "", "week start date (YYYY-MM-DD, a Friday); defaults to the current week")
	weeklyCmd.Flags().StringVar(&weeklyStart, "start", "", "start time in military time, e.g. 0900")
	weeklyCmd.Flags().StringVar(&weeklyEnd, "end", "", "end time in military time, e.g. 1730")
	weeklyCmd.Flags().StringVar(&weeklyContent, "content", "", "note for the day")
}

func resetWeeklyCommandState() {
	weeklyWeekStart = ""
	weeklyStart = ""
	weeklyEnd = ""
	weeklyContent = ""
}

var weeklyCmd = &cobra.Command{
	Use:   "weekly <day>",
	Short: "Record a day's time entry in the weekly tracker",
	Long: `Sets the start, end, and note for one day of the tracking week. Weeks
run Friday through Thursday; times are rounded to the quarter hour.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting weekly command for %s", args[0])

		pw, err := requirePassword("Vault password: ")
		if err != nil {
			return Logger.ErrorfAndReturn("failed to read password: %v", err)
		}

		s, closeStore, err := commandStore()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to open storage: %v", err)
		}
		defer closeStore()

		spinner, cleanup := startSpinner("Recording the entry...", verbose)
		defer cleanup()

		result, err := workflows.SetWeekly(cmd.Context(), workflows.WeeklyOptions{
			Password:  pw,
			Day:       args[0],
			WeekStart: weeklyWeekStart,
			Start:     weeklyStart,
			End:       weeklyEnd,
			Content:   weeklyContent,
			Store:     s,
		})
		if msg, handled := unlockFailureMessage(err); handled {
			spinner.FinalMSG = color.RedString("✗") + " " + msg
			return nil
		}
		if errors.Is(err, kerrors.ErrNotFound) {
			spinner.FinalMSG = color.RedString("✗") + " Unknown day " + color.CyanString("'"+args[0]+"'") + "\n" +
				color.CyanString("→") + " One of: " + strings.Join(store.WeeklyDays, ", ")
			return nil
		}
		if errors.Is(err, kerrors.ErrInvalidTime) {
			spinner.FinalMSG = color.RedString("✗") + " Times must be 4-digit military time, e.g. " + color.YellowString("0900")
			return nil
		}
		if err != nil {
			return Logger.ErrorfAndReturn("failed to record the entry: %v", err)
		}

		message := color.GreenString("✓") + " Entry recorded for week of " + color.YellowString(result.WeekStart)
		if result.TotalHours != "" {
			message += " " + color.CyanString(result.TotalHours+" hours")
		}
		spinner.FinalMSG = message
		return nil
	},
}
