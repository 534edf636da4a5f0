package cmd

import (
	logger "opsvault/internal/logging"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose    bool
	debug      bool
	password   string
	sqlitePath string
	Logger     logger.Logger

	VaultCmd = &cobra.Command{
		Use:   "vault",
		Short: "Manage the encrypted operational store",
		Long:  `Provides initialization, unlocking, import, export, deletion, undo/redo, and candidate processing for the password-encrypted store.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing vault command with verbose=%t, debug=%t", verbose, debug)
		},
	}
)

func init() {
	VaultCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	VaultCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	VaultCmd.PersistentFlags().StringVarP(&password, "password", "p", "", "vault password (prompted when omitted)")
	VaultCmd.PersistentFlags().StringVar(&sqlitePath, "sqlite", "", "keep the store in a single SQLite file instead of loose files")

	VaultCmd.AddCommand(initCmd)
	VaultCmd.AddCommand(statusCmd)
	VaultCmd.AddCommand(validateCmd)
	VaultCmd.AddCommand(importCmd)
	VaultCmd.AddCommand(exportCmd)
	VaultCmd.AddCommand(changePasswordCmd)
	VaultCmd.AddCommand(deleteCmd)
	VaultCmd.AddCommand(undoCmd)
	VaultCmd.AddCommand(redoCmd)
	VaultCmd.AddCommand(processCmd)
	VaultCmd.AddCommand(weeklyCmd)
}

// GetVaultCmd returns the VaultCmd for testing.
func GetVaultCmd() *cobra.Command {
	return VaultCmd
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	password = ""
	sqlitePath = ""
	resetStatusCommandState()
	resetImportCommandState()
	resetProcessCommandState()
	resetWeeklyCommandState()
	resetTemplateCommandState()
	resetVaultCobraFlagState()
}

// resetVaultCobraFlagState resets the flag state for all vault commands to prevent test pollution.
func resetVaultCobraFlagState() {
	if VaultCmd != nil && VaultCmd.Flags() != nil {
		VaultCmd.Flags().VisitAll(func(flag *pflag.Flag) {
			flag.Changed = false
		})
	}
}

// SetLogger sets the logger for testing.
func SetLogger(l logger.Logger) {
	Logger = l
}
