package workflows

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"opsvault/internal/audit"
	"opsvault/internal/storage"
)

// ExportOptions configures the export workflow.
type ExportOptions struct {
	// Password must match the auth record.
	Password string

	// OutputPath is where the envelope file is written.
	OutputPath string

	// Store overrides the default file storage adapter.
	Store storage.Store
}

// ExportResult contains the outcome of an export operation.
type ExportResult struct {
	// OutputPath is the file that was written.
	OutputPath string

	// Bytes is the size of the written envelope.
	Bytes int
}

// Export re-encrypts the current document and writes the envelope to
// the output path. The export stays sealed under the vault password.
func Export(ctx context.Context, opts ExportOptions) (*ExportResult, error) {
	session, err := Unlock(ctx, UnlockOptions{Password: opts.Password, Store: opts.Store})
	if err != nil {
		return nil, err
	}

	data, err := session.ExportEnvelope()
	if err != nil {
		return nil, err
	}
	if dir := filepath.Dir(opts.OutputPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("failed to create export directory: %w", err)
		}
	}
	if err := os.WriteFile(opts.OutputPath, data, 0600); err != nil {
		return nil, fmt.Errorf("failed to write export file: %w", err)
	}

	audit.Log(audit.Entry{Operation: "export", OutputPath: opts.OutputPath})
	return &ExportResult{OutputPath: opts.OutputPath, Bytes: len(data)}, nil
}
