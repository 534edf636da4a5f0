package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"opsvault/internal/store"
	"opsvault/internal/ui"
	"opsvault/internal/vault"
	"opsvault/internal/workflows"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate an exported envelope, or self-check the current store",
	Long: `With a file argument, decrypts the envelope under the vault password and
runs the full import validation: forbidden keys, injection markers,
oversized fields, unknown candidate columns, and implausible uniform
measurements.

Without an argument, runs the light structural self-check on the
current store.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting validate command")

		pw, err := requirePassword("Vault password: ")
		if err != nil {
			return Logger.ErrorfAndReturn("failed to read password: %v", err)
		}

		s, closeStore, err := commandStore()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to open storage: %v", err)
		}
		defer closeStore()

		if len(args) == 0 {
			result, err := workflows.Status(cmd.Context(), workflows.StatusOptions{Password: pw, Store: s})
			if msg, handled := unlockFailureMessage(err); handled {
				fmt.Println(ui.Error.Sprint("✗") + " " + msg)
				return nil
			}
			if err != nil {
				return Logger.ErrorfAndReturn("failed to open the store: %v", err)
			}
			printValidation(result.Check)
			return nil
		}

		// Unlock first so a wrong password is reported as such rather
		// than as a broken file.
		if _, err := workflows.Unlock(cmd.Context(), workflows.UnlockOptions{Password: pw, Store: s}); err != nil {
			if msg, handled := unlockFailureMessage(err); handled {
				fmt.Println(ui.Error.Sprint("✗") + " " + msg)
				return nil
			}
			return Logger.ErrorfAndReturn("failed to unlock: %v", err)
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return Logger.ErrorfAndReturn("failed to read %s: %v", args[0], err)
		}
		var env vault.Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			printValidation(store.Result{Code: store.CodeBroken, Message: "Unable to decrypt"})
			return nil
		}
		plaintext := vault.Decrypt(&env, pw)
		if plaintext == nil {
			printValidation(store.Result{Code: store.CodeBroken, Message: "Unable to decrypt"})
			return nil
		}
		printValidation(store.ValidateRaw(plaintext))
		return nil
	},
}

func printValidation(result store.Result) {
	if result.OK {
		fmt.Println(ui.Success.Sprint("✓") + " Validation passed")
		return
	}
	fmt.Println(ui.Error.Sprint("✗") + " Validation failed " + ui.Muted.Sprint(result.Code))
	fmt.Println("  " + result.Message)
}
