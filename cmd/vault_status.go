package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	kerrors "opsvault/internal/errors"
	"opsvault/internal/ui"
	"opsvault/internal/workflows"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var statusJSONOutput bool

func init() {
	statusCmd.Flags().BoolVar(&statusJSONOutput, "json", false, "output in JSON format")
}

func resetStatusCommandState() {
	statusJSONOutput = false
}

// statusOutput is the machine-readable shape of the status command.
type statusOutput struct {
	Version      int64             `json:"version"`
	ActiveSource string            `json:"active_source"`
	Tables       map[string]int    `json:"tables"`
	Sources      []statusSource    `json:"sources"`
	Check        statusCheckOutput `json:"check"`
}

type statusSource struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ReadOnly bool   `json:"read_only"`
}

type statusCheckOutput struct {
	OK      bool   `json:"ok"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show row counts, known sources, and a structural self-check",
	Long: `Unlocks the store and reports how many rows each table holds, which
imported databases are registered, and whether the document passes a
light structural self-check.

Use --json for machine-readable output.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting status command")

		pw, err := requirePassword("Vault password: ")
		if err != nil {
			return Logger.ErrorfAndReturn("failed to read password: %v", err)
		}

		s, closeStore, err := commandStore()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to open storage: %v", err)
		}
		defer closeStore()

		result, err := workflows.Status(cmd.Context(), workflows.StatusOptions{Password: pw, Store: s})
		if msg, handled := unlockFailureMessage(err); handled {
			if statusJSONOutput {
				fmt.Printf("{\"error\": %q}\n", msg)
				return nil
			}
			fmt.Println(ui.Error.Sprint("✗") + " " + msg)
			return nil
		}
		if err != nil {
			return Logger.ErrorfAndReturn("failed to read status: %v", err)
		}

		if statusJSONOutput {
			out := statusOutput{
				Version:      result.Version,
				ActiveSource: result.ActiveSource,
				Tables:       map[string]int{},
				Check:        statusCheckOutput{OK: result.Check.OK, Code: result.Check.Code, Message: result.Check.Message},
			}
			for _, table := range result.Tables {
				out.Tables[table.TableID] = table.Rows
			}
			for _, source := range result.Sources {
				out.Sources = append(out.Sources, statusSource{ID: source.ID, Name: source.Name, ReadOnly: source.ReadOnly})
			}
			data, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return Logger.ErrorfAndReturn("failed to encode status: %v", err)
			}
			fmt.Println(string(data))
			return nil
		}

		fmt.Println(ui.Success.Sprint("✓") + " Store unlocked " + ui.Muted.Sprintf("schema v%d", result.Version))
		for _, table := range result.Tables {
			fmt.Printf("  %-28s %d\n", table.Name, table.Rows)
		}
		fmt.Println()
		fmt.Println("Sources:")
		for _, source := range result.Sources {
			marker := " "
			if source.ID == result.ActiveSource {
				marker = ui.Info.Sprint("→")
			}
			suffix := ""
			if source.ReadOnly {
				suffix = " " + ui.Muted.Sprint("read-only")
			}
			fmt.Printf("  %s %s%s\n", marker, source.Name, suffix)
		}
		if !result.Check.OK {
			fmt.Println(ui.Warning.Sprint("!") + " Self-check: " + result.Check.Message)
		}
		return nil
	},
}

// unlockFailureMessage maps the unlock errors every password-guarded
// command shares to a short user-facing message.
func unlockFailureMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, kerrors.ErrNotSetUp):
		return "No vault exists yet. Run " + color.YellowString("opsvault vault init") + " first", true
	case errors.Is(err, kerrors.ErrBadPassword):
		return "Wrong password", true
	case errors.Is(err, kerrors.ErrLocked):
		return "Too many failed attempts. Try again in a moment", true
	case errors.Is(err, kerrors.ErrPasswordRequired):
		return "The password cannot be empty", true
	}
	return "", false
}
