package store

import (
	"errors"
	"testing"
	"time"

	kerrors "opsvault/internal/errors"
)

func TestRemoveColumnsRejectsLastColumnWithCards(t *testing.T) {
	doc := DefaultDocument()
	doc.Kanban.Columns = append(doc.Kanban.Columns, Column{ID: "col-1", Order: 1})
	doc.Kanban.Cards = append(doc.Kanban.Cards, Card{UUID: "card-1", ColumnID: "col-1", Order: 1})

	_, err := RemoveColumns(doc, map[string]bool{"col-1": true}, true)
	if !errors.Is(err, kerrors.ErrLastColumn) {
		t.Fatalf("Expected ErrLastColumn, got %v", err)
	}
	if len(doc.Kanban.Columns) != 1 || len(doc.Kanban.Cards) != 1 {
		t.Error("Expected a rejected removal to leave the document untouched")
	}
}

func TestRemoveColumnsAllowsLastEmptyColumn(t *testing.T) {
	doc := DefaultDocument()
	doc.Kanban.Columns = append(doc.Kanban.Columns, Column{ID: "col-1", Order: 1})

	if _, err := RemoveColumns(doc, map[string]bool{"col-1": true}, true); err != nil {
		t.Fatalf("RemoveColumns failed: %v", err)
	}
	if len(doc.Kanban.Columns) != 0 {
		t.Error("Expected the empty last column to be removable")
	}
}

func TestRemoveColumnsReassignsOrphanCards(t *testing.T) {
	doc := DefaultDocument()
	doc.Kanban.Columns = []Column{
		{ID: "col-b", Order: 2},
		{ID: "col-a", Order: 1},
		{ID: "col-gone", Order: 3},
	}
	doc.Kanban.Cards = []Card{
		{UUID: "card-1", ColumnID: "col-a", Order: 4},
		{UUID: "card-2", ColumnID: "col-gone", Order: 2},
		{UUID: "card-3", ColumnID: "col-gone", Order: 1},
	}

	undoID, err := RemoveColumns(doc, map[string]bool{"col-gone": true}, true)
	if err != nil {
		t.Fatalf("RemoveColumns failed: %v", err)
	}
	if undoID == "" {
		t.Error("Expected an undo id for a recorded removal")
	}

	// Orphans land in col-a (lowest order) after its max card order,
	// renumbered by their original order.
	byID := make(map[string]Card)
	for _, card := range doc.Kanban.Cards {
		byID[card.UUID] = card
	}
	if byID["card-3"].ColumnID != "col-a" || byID["card-2"].ColumnID != "col-a" {
		t.Fatalf("Expected orphans moved to the first remaining column, got %+v", doc.Kanban.Cards)
	}
	if byID["card-3"].Order != 5 || byID["card-2"].Order != 6 {
		t.Errorf("Expected orphans renumbered 5 and 6, got %d and %d",
			byID["card-3"].Order, byID["card-2"].Order)
	}
	if byID["card-3"].UpdatedAt == "" {
		t.Error("Expected moved cards to get a fresh updated_at")
	}
	if len(doc.Kanban.Columns) != 2 {
		t.Errorf("Expected 2 columns to remain, got %d", len(doc.Kanban.Columns))
	}
}

func TestRemoveColumnsUndoRoundTrip(t *testing.T) {
	withClock(t, time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	doc := DefaultDocument()
	doc.Kanban.Columns = []Column{
		{ID: "col-a", Order: 1},
		{ID: "col-gone", Order: 2},
	}
	doc.Kanban.Cards = []Card{
		{UUID: "card-1", ColumnID: "col-gone", Order: 1},
	}

	undoID, err := RemoveColumns(doc, map[string]bool{"col-gone": true}, true)
	if err != nil {
		t.Fatalf("RemoveColumns failed: %v", err)
	}

	item := PopRecycle(doc, undoID)
	if item == nil {
		t.Fatal("Expected a recycle entry")
	}
	if !Restore(doc, item) {
		t.Fatal("Expected Restore to succeed")
	}
	if len(doc.Kanban.Columns) != 2 {
		t.Errorf("Expected the column back, got %d columns", len(doc.Kanban.Columns))
	}
	var restored Card
	for _, card := range doc.Kanban.Cards {
		if card.UUID == "card-1" {
			restored = card
		}
	}
	if restored.ColumnID != "col-gone" {
		t.Errorf("Expected the card back in its original column, got %+v", restored)
	}
}
