package cmd

import (
	"testing"

	kerrors "opsvault/internal/errors"
)

func TestVaultSubcommandsRegistered(t *testing.T) {
	expected := []string{
		"init", "status", "validate", "import", "export",
		"change-password", "delete", "undo", "redo", "process",
		"weekly", "template",
	}
	registered := map[string]bool{}
	for _, sub := range VaultCmd.Commands() {
		registered[sub.Name()] = true
	}
	for _, name := range expected {
		if !registered[name] {
			t.Errorf("Expected subcommand %q registered on the vault command", name)
		}
	}
}

func TestResetGlobalState(t *testing.T) {
	verbose = true
	debug = true
	password = "secret"
	sqlitePath = "/tmp/x.db"
	importAction = "replace"
	weeklyStart = "0900"

	ResetGlobalState()

	if verbose || debug || password != "" || sqlitePath != "" {
		t.Error("Expected persistent flags reset")
	}
	if importAction != "append" || weeklyStart != "" {
		t.Error("Expected subcommand flags reset")
	}
}

func TestUnlockFailureMessage(t *testing.T) {
	for _, err := range []error{kerrors.ErrNotSetUp, kerrors.ErrBadPassword, kerrors.ErrLocked, kerrors.ErrPasswordRequired} {
		if msg, handled := unlockFailureMessage(err); !handled || msg == "" {
			t.Errorf("Expected %v mapped to a user-facing message", err)
		}
	}
	if _, handled := unlockFailureMessage(nil); handled {
		t.Error("Expected nil error not handled")
	}
	if _, handled := unlockFailureMessage(kerrors.ErrNotFound); handled {
		t.Error("Expected domain errors left to per-command handling")
	}
}
