package main

import (
	"fmt"
	"os"

	"opsvault/cmd"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "opsvault",
	Short: "Opsvault - an offline, password-encrypted tracker for onboarding, time, and inventory.",
	Long: `Opsvault keeps a candidate onboarding board, weekly time entries, a todo list,
and a uniform-inventory ledger inside a single password-encrypted data file.

Everything lives on this machine. The data file is sealed with AES-256-GCM
under a key derived from your password; a tampered or truncated file is
detected rather than silently misread.

Usage:
  opsvault <command> [flags]

Available Commands:
  vault      Unlock, inspect, import, and export the encrypted store

Run 'opsvault help <command>' for more details on a specific command.
`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Welcome to Opsvault! Run 'opsvault --help' to see available commands.")
	},
}

func main() {
	rootCmd.AddCommand(cmd.VaultCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
