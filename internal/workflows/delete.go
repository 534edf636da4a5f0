package workflows

import (
	"context"

	"opsvault/internal/audit"
	"opsvault/internal/storage"
	"opsvault/internal/store"
)

// DeleteOptions configures the delete workflow.
type DeleteOptions struct {
	// Password must match the auth record.
	Password string

	// Table is one of the canonical table ids.
	Table string

	// RowIDs are the rows to remove. Weekly entries use the composite
	// "<week start>-<day>" form.
	RowIDs []string

	// Store overrides the default file storage adapter.
	Store storage.Store
}

// DeleteResult contains the outcome of a delete operation.
type DeleteResult struct {
	// UndoID identifies the recycle entry, empty when nothing matched.
	UndoID string

	// RowsRequested is how many ids were asked for.
	RowsRequested int
}

// Delete removes rows from a table and records them in the recycle bin.
//
// Returns ErrInvalidTable for an unknown table id and ErrLastColumn
// when the removal would leave cards with no column to live in.
func Delete(ctx context.Context, opts DeleteOptions) (*DeleteResult, error) {
	session, err := Unlock(ctx, UnlockOptions{Password: opts.Password, Store: opts.Store})
	if err != nil {
		return nil, err
	}

	var undoID string
	err = session.Update(func(doc *store.Document) error {
		id, err := store.DeleteRows(doc, opts.Table, opts.RowIDs)
		if err != nil {
			return err
		}
		undoID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	audit.Log(audit.Entry{
		Operation: "delete",
		Table:     opts.Table,
		RowsCount: len(opts.RowIDs),
		UndoID:    undoID,
	})
	return &DeleteResult{UndoID: undoID, RowsRequested: len(opts.RowIDs)}, nil
}
