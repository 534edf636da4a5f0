package store

import (
	"encoding/json"
	"fmt"
	"sync"

	kerrors "opsvault/internal/errors"
	"opsvault/internal/storage"
	"opsvault/internal/vault"
)

// Session owns one unlocked document. All reads and writes go through
// its mutex, so concurrent callers serialize on the single writer. The
// salt and derived key are cached at load so repeated saves skip the
// KDF.
type Session struct {
	mu       sync.Mutex
	store    storage.Store
	password string
	blobName string
	doc      *Document
	salt     []byte
	key      []byte
}

// NewSession opens the main data blob. A missing blob yields a fresh
// default document; a blob that cannot be decrypted or parsed does too,
// since the password was already verified against the auth record.
func NewSession(store storage.Store, password string) (*Session, error) {
	return newSessionFor(store, password, storage.DataFile)
}

// NewSessionFor opens a named blob, e.g. an imported database under
// dbs/.
func NewSessionFor(store storage.Store, password, blobName string) (*Session, error) {
	return newSessionFor(store, password, blobName)
}

func newSessionFor(store storage.Store, password, blobName string) (*Session, error) {
	if password == "" {
		return nil, kerrors.ErrPasswordRequired
	}
	s := &Session{
		store:    store,
		password: password,
		blobName: blobName,
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) load() error {
	data, ok, err := s.store.ReadBytes(s.blobName)
	if err != nil {
		return fmt.Errorf("failed to read data blob: %w", err)
	}

	if ok {
		var env vault.Envelope
		if jsonErr := json.Unmarshal(data, &env); jsonErr == nil {
			if plaintext := vault.Decrypt(&env, s.password); plaintext != nil {
				s.doc = DecodeDocument(plaintext)
				s.salt = vault.EnvelopeSalt(&env)
				s.key = vault.DeriveKey(s.password, s.salt, vault.DefaultIterations)
				return nil
			}
		}
	}

	// Absent or unreadable: start from a default document with fresh
	// key material.
	salt, err := vault.NewSalt()
	if err != nil {
		return err
	}
	s.doc = DefaultDocument()
	s.salt = salt
	s.key = vault.DeriveKey(s.password, salt, vault.DefaultIterations)
	return nil
}

// View runs fn against the document under the lock without persisting.
func (s *Session) View(fn func(doc *Document)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.doc)
}

// Update runs fn against the document under the lock and persists the
// result. If fn returns an error, nothing is written and the in-memory
// document is rolled back to its last persisted state.
func (s *Session) Update(fn func(doc *Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, err := EncodeDocument(s.doc)
	if err != nil {
		return fmt.Errorf("failed to snapshot document: %w", err)
	}
	if err := fn(s.doc); err != nil {
		s.doc = DecodeDocument(snapshot)
		return err
	}
	if err := s.save(); err != nil {
		s.doc = DecodeDocument(snapshot)
		return err
	}
	return nil
}

func (s *Session) save() error {
	plaintext, err := EncodeDocument(s.doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	env, err := vault.EncryptWithKey(plaintext, s.salt, s.key)
	if err != nil {
		return err
	}
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to encode envelope: %w", err)
	}
	return s.store.WriteBytes(s.blobName, data)
}

// Save persists the current document without mutating it.
func (s *Session) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

// Rekey re-encrypts the blob under a new password with fresh salt.
func (s *Session) Rekey(newPassword string) error {
	if newPassword == "" {
		return kerrors.ErrPasswordRequired
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	salt, err := vault.NewSalt()
	if err != nil {
		return err
	}
	s.password = newPassword
	s.salt = salt
	s.key = vault.DeriveKey(newPassword, salt, vault.DefaultIterations)
	return s.save()
}

// ExportEnvelope returns the persisted envelope bytes for the session's
// blob, re-encrypting the current document first.
func (s *Session) ExportEnvelope() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.save(); err != nil {
		return nil, err
	}
	data, ok, err := s.store.ReadBytes(s.blobName)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, kerrors.ErrFileNotFound
	}
	return data, nil
}
