package vault

import (
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"fmt"

	kerrors "opsvault/internal/errors"
	"opsvault/internal/storage"
)

// AuthRecord is the plaintext password verifier, independent of the data
// envelope. Knowing the record does not help decrypt the data file; it
// only lets the engine reject a wrong password before touching it.
type AuthRecord struct {
	Salt       string `json:"salt"`
	Hash       string `json:"hash"`
	Iterations int    `json:"iterations"`
}

// ReadAuthRecord loads the auth record, or nil if none exists.
func ReadAuthRecord(store storage.Store) (*AuthRecord, error) {
	data, ok, err := store.ReadBytes(storage.AuthFile)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var record AuthRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to parse auth record: %w", err)
	}
	return &record, nil
}

// WriteAuthRecord persists the auth record.
func WriteAuthRecord(store storage.Store, record *AuthRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode auth record: %w", err)
	}
	return store.WriteBytes(storage.AuthFile, data)
}

// SetupAuth creates a fresh auth record for the password.
func SetupAuth(store storage.Store, password string, iterations int) (*AuthRecord, error) {
	if password == "" {
		return nil, kerrors.ErrPasswordRequired
	}
	if iterations < 1 {
		iterations = DefaultIterations
	}
	salt, err := NewSalt()
	if err != nil {
		return nil, err
	}
	record := &AuthRecord{
		Salt:       base64.StdEncoding.EncodeToString(salt),
		Hash:       DeriveVerifier(password, salt, iterations),
		Iterations: iterations,
	}
	if err := WriteAuthRecord(store, record); err != nil {
		return nil, err
	}
	return record, nil
}

// VerifyRecord reports whether the password matches the record, using a
// constant-time comparison of the derived verifier.
func VerifyRecord(record *AuthRecord, password string) bool {
	if record == nil || password == "" {
		return false
	}
	salt, err := base64.StdEncoding.DecodeString(record.Salt)
	if err != nil || len(salt) == 0 {
		return false
	}
	iterations := record.Iterations
	if iterations < 1 {
		iterations = 1
	}
	derived := DeriveVerifier(password, salt, iterations)
	return subtle.ConstantTimeCompare([]byte(derived), []byte(record.Hash)) == 1
}

// VerifyAuth loads the record and checks the password against it.
func VerifyAuth(store storage.Store, password string) (bool, error) {
	record, err := ReadAuthRecord(store)
	if err != nil {
		return false, err
	}
	return VerifyRecord(record, password), nil
}

// ChangeAuth verifies the current password and replaces the record with a
// fresh salt and verifier for the next password. The caller is
// responsible for re-encrypting the data blob under the new password.
func ChangeAuth(store storage.Store, current, next string) error {
	if current == "" || next == "" {
		return kerrors.ErrPasswordRequired
	}
	record, err := ReadAuthRecord(store)
	if err != nil {
		return err
	}
	if record == nil {
		return kerrors.ErrNotSetUp
	}
	if !VerifyRecord(record, current) {
		return kerrors.ErrBadPassword
	}
	_, err = SetupAuth(store, next, record.Iterations)
	return err
}
