package workflows

import (
	"context"

	"opsvault/internal/audit"
	kerrors "opsvault/internal/errors"
	"opsvault/internal/storage"
	"opsvault/internal/store"
)

// RecycleOptions configures the undo and redo workflows.
type RecycleOptions struct {
	// Password must match the auth record.
	Password string

	// UndoID selects a specific recycle entry. Empty means the most
	// recent one.
	UndoID string

	// Store overrides the default file storage adapter.
	Store storage.Store
}

// RecycleResult describes the entry that was restored or reapplied.
type RecycleResult struct {
	UndoID string
	Type   string
}

// Undo restores a recycled deletion and moves the entry to the redo
// stack.
//
// Returns ErrNothingToUndo when the entry is missing or expired.
func Undo(ctx context.Context, opts RecycleOptions) (*RecycleResult, error) {
	session, err := Unlock(ctx, UnlockOptions{Password: opts.Password, Store: opts.Store})
	if err != nil {
		return nil, err
	}

	var result RecycleResult
	err = session.Update(func(doc *store.Document) error {
		id := opts.UndoID
		if id == "" {
			store.PruneRecycle(doc)
			if len(doc.Recycle.Items) == 0 {
				return kerrors.ErrNothingToUndo
			}
			id = doc.Recycle.Items[len(doc.Recycle.Items)-1].ID
		}
		item := store.PopRecycle(doc, id)
		if item == nil {
			return kerrors.ErrNothingToUndo
		}
		if !store.Restore(doc, item) {
			return kerrors.ErrNothingToUndo
		}
		result.UndoID = item.ID
		result.Type = item.Type
		store.PushRedo(doc, *item)
		return nil
	})
	if err != nil {
		return nil, err
	}

	audit.Log(audit.Entry{Operation: "undo", UndoID: result.UndoID})
	return &result, nil
}

// Redo reapplies a deletion that was undone and moves the entry back to
// the recycle bin.
//
// Returns ErrNothingToRedo when the entry is missing or expired.
func Redo(ctx context.Context, opts RecycleOptions) (*RecycleResult, error) {
	session, err := Unlock(ctx, UnlockOptions{Password: opts.Password, Store: opts.Store})
	if err != nil {
		return nil, err
	}

	var result RecycleResult
	err = session.Update(func(doc *store.Document) error {
		id := opts.UndoID
		if id == "" {
			store.PruneRecycle(doc)
			if len(doc.Recycle.Redo) == 0 {
				return kerrors.ErrNothingToRedo
			}
			id = doc.Recycle.Redo[len(doc.Recycle.Redo)-1].ID
		}
		item := store.PopRedo(doc, id)
		if item == nil {
			return kerrors.ErrNothingToRedo
		}
		if !store.Reapply(doc, item) {
			return kerrors.ErrNothingToRedo
		}
		result.UndoID = item.ID
		result.Type = item.Type
		store.PushRecycle(doc, *item)
		return nil
	})
	if err != nil {
		return nil, err
	}

	audit.Log(audit.Entry{Operation: "redo", UndoID: result.UndoID})
	return &result, nil
}
