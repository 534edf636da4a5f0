package workflows

import (
	"context"

	"opsvault/internal/audit"
	"opsvault/internal/storage"
	"opsvault/internal/store"
)

// ProcessOptions configures the process-candidate workflow.
type ProcessOptions struct {
	// Password must match the auth record.
	Password string

	// CandidateID is the card uuid to process.
	CandidateID string

	// Branch overrides the card's branch. Required when the card has
	// none.
	Branch string

	// Arrival and Departure are military times, e.g. "0905" and "1737".
	Arrival   string
	Departure string

	// Store overrides the default file storage adapter.
	Store storage.Store
}

// ProcessCandidateResult contains the outcome of processing a
// candidate.
type ProcessCandidateResult struct {
	// UndoID identifies the recycle entry holding the pre-scrub card
	// and row.
	UndoID string

	// TotalHours is the rounded NEO duration, e.g. "8.50".
	TotalHours string

	// IssuedCount is the total uniform units deducted from the ledger.
	IssuedCount int64
}

// Process finalizes a candidate: stamps their NEO times, deducts issued
// uniforms, scrubs PII, and removes the card.
//
// Returns ErrNotFound for an unknown candidate, ErrBranchRequired when
// neither the card nor the options name a branch, and ErrInvalidTime
// for unparseable times.
func Process(ctx context.Context, opts ProcessOptions) (*ProcessCandidateResult, error) {
	session, err := Unlock(ctx, UnlockOptions{Password: opts.Password, Store: opts.Store})
	if err != nil {
		return nil, err
	}

	var processed *store.ProcessResult
	err = session.Update(func(doc *store.Document) error {
		result, err := store.ProcessCandidate(doc, opts.CandidateID, opts.Branch, opts.Arrival, opts.Departure)
		if err != nil {
			return err
		}
		processed = result
		return nil
	})
	if err != nil {
		return nil, err
	}

	var issued int64
	for _, adjustment := range processed.Adjustments {
		issued += adjustment.Quantity
	}
	audit.Log(audit.Entry{
		Operation:   "process_candidate",
		CandidateID: opts.CandidateID,
		IssuedCount: issued,
		UndoID:      processed.UndoID,
	})
	return &ProcessCandidateResult{
		UndoID:      processed.UndoID,
		TotalHours:  processed.TotalHours,
		IssuedCount: issued,
	}, nil
}
