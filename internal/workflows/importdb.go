package workflows

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"opsvault/internal/audit"
	"opsvault/internal/configs"
	kerrors "opsvault/internal/errors"
	"opsvault/internal/storage"
	"opsvault/internal/store"
	"opsvault/internal/vault"
)

// Import actions.
const (
	ImportAppend  = "append"
	ImportView    = "view"
	ImportReplace = "replace"
)

// ImportOptions configures the import workflow.
type ImportOptions struct {
	// Password must match the auth record and is also used to decrypt
	// the imported envelope.
	Password string

	// Data is the raw envelope JSON read from the import file.
	Data []byte

	// Name is a display name for the imported database, typically the
	// source filename.
	Name string

	// Action is one of ImportAppend, ImportView, or ImportReplace.
	Action string

	// Store overrides the default file storage adapter.
	Store storage.Store

	// MetaPath overrides the default metadata file location.
	MetaPath string
}

// ImportResult contains the outcome of an import operation.
type ImportResult struct {
	// OK is false when the file was rejected; Code and Message say why.
	OK      bool
	Code    string
	Message string

	// SourceID identifies the stored copy for append and view imports.
	SourceID string

	// Name is the display name the copy was registered under.
	Name string
}

// Import decrypts, validates, and applies an exported envelope.
//
// Append merges the imported document into the current one and keeps a
// read-only copy. View only keeps the copy. Replace overwrites the
// current document. Append and view register the copy in the metadata
// file so it shows up as a source.
//
// A file that cannot be decrypted or fails validation is rejected with
// OK=false and a nil error; infrastructure failures return an error.
func Import(ctx context.Context, opts ImportOptions) (*ImportResult, error) {
	action := strings.ToLower(strings.TrimSpace(opts.Action))
	switch action {
	case ImportAppend, ImportView, ImportReplace:
	default:
		return nil, kerrors.ErrInvalidImportAction
	}

	session, err := Unlock(ctx, UnlockOptions{Password: opts.Password, Store: opts.Store})
	if err != nil {
		return nil, err
	}
	s := resolveStore(opts.Store)

	var env vault.Envelope
	if err := json.Unmarshal(opts.Data, &env); err != nil {
		return rejected(action, store.CodeBroken, "Unable to decrypt"), nil
	}
	plaintext := vault.Decrypt(&env, opts.Password)
	if plaintext == nil {
		return rejected(action, store.CodeBroken, "Unable to decrypt"), nil
	}
	if result := store.ValidateRaw(plaintext); !result.OK {
		return rejected(action, result.Code, result.Message), nil
	}
	incoming := store.DecodeDocument(plaintext)

	switch action {
	case ImportReplace:
		if err := session.Update(func(doc *store.Document) error {
			*doc = *incoming
			return nil
		}); err != nil {
			return nil, err
		}
		audit.Log(audit.Entry{Operation: "import", Action: action})
		return &ImportResult{OK: true}, nil

	case ImportAppend:
		if err := session.Update(func(doc *store.Document) error {
			store.Merge(doc, incoming)
			return nil
		}); err != nil {
			return nil, err
		}
	}

	// Append and view both keep a re-encrypted copy under dbs/ and
	// register it so it can be opened later.
	sourceID := store.NewID()
	filename := configs.BuildDBFilename(sourceID, sourceID)
	copySession, err := store.NewSessionFor(s, opts.Password, "dbs/"+filename)
	if err != nil {
		return nil, err
	}
	if err := copySession.Update(func(doc *store.Document) error {
		*doc = *incoming
		return nil
	}); err != nil {
		return nil, fmt.Errorf("failed to store imported copy: %w", err)
	}

	name := strings.TrimSpace(opts.Name)
	if name == "" {
		name = "Imported Database"
	}
	path := opts.MetaPath
	if path == "" {
		path = metaPath()
	}
	meta := configs.LoadMeta(path)
	meta.Databases = append(meta.Databases, configs.DBEntry{
		ID:         sourceID,
		Filename:   filename,
		Name:       name,
		ImportedAt: store.NowMillis(),
	})
	if action == ImportView {
		meta.ActiveDB = sourceID
	}
	if err := configs.SaveMeta(path, meta); err != nil {
		return nil, err
	}

	audit.Log(audit.Entry{Operation: "import", Action: action, SourceID: sourceID})
	return &ImportResult{OK: true, SourceID: sourceID, Name: name}, nil
}

func rejected(action, code, message string) *ImportResult {
	audit.Log(audit.Entry{Operation: "import_rejected", Action: action, ResultCode: code})
	return &ImportResult{OK: false, Code: code, Message: message}
}
