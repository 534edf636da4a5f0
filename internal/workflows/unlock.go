package workflows

import (
	"context"
	"path/filepath"

	"opsvault/internal/audit"
	"opsvault/internal/configs"
	kerrors "opsvault/internal/errors"
	"opsvault/internal/storage"
	"opsvault/internal/store"
	"opsvault/internal/vault"
)

// limiter tracks failed unlock attempts for the life of the process.
var limiter = vault.NewRateLimiter()

// resolveStore returns the supplied adapter or the default file store
// under the user's storage root.
func resolveStore(s storage.Store) storage.Store {
	if s != nil {
		return s
	}
	return storage.NewFileStore(configs.UserVaultSettings.StorageRoot)
}

func metaPath() string {
	return filepath.Join(configs.UserVaultSettings.ConfigPath, storage.MetaFile)
}

// InitOptions configures the init workflow.
type InitOptions struct {
	// Password protects the new vault.
	Password string

	// Store overrides the default file storage adapter, e.g. for tests
	// or the SQLite backend.
	Store storage.Store

	// MetaPath overrides the default metadata file location.
	MetaPath string
}

// InitResult contains the outcome of an init operation.
type InitResult struct {
	// StorageRoot is where the vault files were created.
	StorageRoot string
}

// Init creates a fresh vault: an auth record for the password and an
// empty encrypted document.
//
// Returns ErrAlreadySetUp if an auth record already exists.
// Returns ErrPasswordRequired if the password is empty.
func Init(ctx context.Context, opts InitOptions) (*InitResult, error) {
	if opts.Password == "" {
		return nil, kerrors.ErrPasswordRequired
	}
	s := resolveStore(opts.Store)

	record, err := vault.ReadAuthRecord(s)
	if err != nil {
		return nil, err
	}
	if record != nil {
		return nil, kerrors.ErrAlreadySetUp
	}
	if _, err := vault.SetupAuth(s, opts.Password, vault.DefaultIterations); err != nil {
		return nil, err
	}

	session, err := store.NewSession(s, opts.Password)
	if err != nil {
		return nil, err
	}
	if err := session.Save(); err != nil {
		return nil, err
	}

	path := opts.MetaPath
	if path == "" {
		path = metaPath()
	}
	meta := configs.LoadMeta(path)
	meta.SetupComplete = true
	if err := configs.SaveMeta(path, meta); err != nil {
		return nil, err
	}

	audit.Log(audit.Entry{Operation: "init"})
	return &InitResult{StorageRoot: configs.UserVaultSettings.StorageRoot}, nil
}

// UnlockOptions configures the unlock workflow.
type UnlockOptions struct {
	// Password is checked against the auth record.
	Password string

	// Store overrides the default file storage adapter.
	Store storage.Store
}

// Unlock verifies the password and opens a session on the main
// database. Failed attempts count toward the rolling rate limit.
//
// Returns ErrLocked while the lockout is active.
// Returns ErrNotSetUp if no auth record exists.
// Returns ErrBadPassword if the password does not match.
func Unlock(ctx context.Context, opts UnlockOptions) (*store.Session, error) {
	if locked, _ := limiter.Locked(); locked {
		return nil, kerrors.ErrLocked
	}
	s := resolveStore(opts.Store)

	record, err := vault.ReadAuthRecord(s)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, kerrors.ErrNotSetUp
	}
	if !vault.VerifyRecord(record, opts.Password) {
		if limiter.RecordFailure() {
			audit.Log(audit.Entry{Operation: "unlock_lockout"})
			return nil, kerrors.ErrLocked
		}
		return nil, kerrors.ErrBadPassword
	}
	limiter.RecordSuccess()

	session, err := store.NewSession(s, opts.Password)
	if err != nil {
		return nil, err
	}
	audit.Log(audit.Entry{Operation: "unlock"})
	return session, nil
}
