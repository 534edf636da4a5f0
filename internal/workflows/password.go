package workflows

import (
	"context"

	"opsvault/internal/audit"
	"opsvault/internal/storage"
	"opsvault/internal/vault"
)

// ChangePasswordOptions configures the change-password workflow.
type ChangePasswordOptions struct {
	// Current is the password in use today.
	Current string

	// Next replaces it.
	Next string

	// Store overrides the default file storage adapter.
	Store storage.Store
}

// ChangePassword verifies the current password, replaces the auth
// record, and re-encrypts the data blob under the new password with a
// fresh salt.
//
// Returns ErrBadPassword when the current password does not match and
// ErrNotSetUp when no vault exists.
func ChangePassword(ctx context.Context, opts ChangePasswordOptions) error {
	// Open the session before touching the auth record so the document
	// is decrypted under the old key material.
	session, err := Unlock(ctx, UnlockOptions{Password: opts.Current, Store: opts.Store})
	if err != nil {
		return err
	}
	s := resolveStore(opts.Store)

	if err := vault.ChangeAuth(s, opts.Current, opts.Next); err != nil {
		return err
	}
	if err := session.Rekey(opts.Next); err != nil {
		return err
	}

	audit.Log(audit.Entry{Operation: "change_password"})
	return nil
}
