package vault

import (
	"errors"
	"testing"

	kerrors "opsvault/internal/errors"
	"opsvault/internal/storage"
)

func TestSetupAndVerifyAuth(t *testing.T) {
	store := storage.NewFileStore(t.TempDir())

	record, err := SetupAuth(store, "hunter2", 1000)
	if err != nil {
		t.Fatalf("SetupAuth failed: %v", err)
	}
	if record.Iterations != 1000 {
		t.Errorf("Expected iterations to be recorded, got %d", record.Iterations)
	}

	ok, err := VerifyAuth(store, "hunter2")
	if err != nil {
		t.Fatalf("VerifyAuth failed: %v", err)
	}
	if !ok {
		t.Error("Expected the correct password to verify")
	}

	ok, err = VerifyAuth(store, "wrong")
	if err != nil {
		t.Fatalf("VerifyAuth failed: %v", err)
	}
	if ok {
		t.Error("Expected a wrong password to be rejected")
	}
}

func TestVerifyAuthWithoutRecord(t *testing.T) {
	store := storage.NewFileStore(t.TempDir())
	ok, err := VerifyAuth(store, "anything")
	if err != nil {
		t.Fatalf("VerifyAuth failed: %v", err)
	}
	if ok {
		t.Error("Expected verification to fail when no record exists")
	}
}

func TestSetupAuthRequiresPassword(t *testing.T) {
	store := storage.NewFileStore(t.TempDir())
	if _, err := SetupAuth(store, "", 1000); !errors.Is(err, kerrors.ErrPasswordRequired) {
		t.Errorf("Expected ErrPasswordRequired, got %v", err)
	}
}

func TestChangeAuth(t *testing.T) {
	store := storage.NewFileStore(t.TempDir())
	if _, err := SetupAuth(store, "old", 1000); err != nil {
		t.Fatalf("SetupAuth failed: %v", err)
	}

	if err := ChangeAuth(store, "wrong", "new"); !errors.Is(err, kerrors.ErrBadPassword) {
		t.Errorf("Expected ErrBadPassword for a wrong current password, got %v", err)
	}

	if err := ChangeAuth(store, "old", "new"); err != nil {
		t.Fatalf("ChangeAuth failed: %v", err)
	}
	if ok, _ := VerifyAuth(store, "old"); ok {
		t.Error("Expected the old password to stop verifying")
	}
	if ok, _ := VerifyAuth(store, "new"); !ok {
		t.Error("Expected the new password to verify")
	}
}

func TestChangeAuthBeforeSetup(t *testing.T) {
	store := storage.NewFileStore(t.TempDir())
	if err := ChangeAuth(store, "a", "b"); !errors.Is(err, kerrors.ErrNotSetUp) {
		t.Errorf("Expected ErrNotSetUp, got %v", err)
	}
}
