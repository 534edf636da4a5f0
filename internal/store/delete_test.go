package store

import (
	"errors"
	"testing"

	kerrors "opsvault/internal/errors"
)

func TestDeleteRowsUnknownTable(t *testing.T) {
	doc := DefaultDocument()
	if _, err := DeleteRows(doc, "mystery_table", []string{"x"}); !errors.Is(err, kerrors.ErrInvalidTable) {
		t.Errorf("Expected ErrInvalidTable, got %v", err)
	}
}

func TestDeleteRowsNoMatchesPushesNothing(t *testing.T) {
	doc := DefaultDocument()
	doc.Todos = []Todo{{ID: "todo-1"}}

	undoID, err := DeleteRows(doc, TableTodos, []string{"missing"})
	if err != nil {
		t.Fatalf("DeleteRows failed: %v", err)
	}
	if undoID != "" {
		t.Error("Expected no undo id when nothing was deleted")
	}
	if len(doc.Recycle.Items) != 0 {
		t.Error("Expected no recycle entry when nothing was deleted")
	}
}

func TestDeleteRowsCandidateData(t *testing.T) {
	doc := DefaultDocument()
	doc.Kanban.Candidates = []CandidateRow{NewCandidateRow("row-1"), NewCandidateRow("row-2")}

	undoID, err := DeleteRows(doc, TableCandidateData, []string{"row-1"})
	if err != nil {
		t.Fatalf("DeleteRows failed: %v", err)
	}
	if len(doc.Kanban.Candidates) != 1 || doc.Kanban.Candidates[0].ID() != "row-2" {
		t.Errorf("Expected only row-2 to remain, got %+v", doc.Kanban.Candidates)
	}
	item := PopRecycle(doc, undoID)
	if item == nil || item.Type != RecycleCandidateRows {
		t.Fatalf("Expected a candidate_rows recycle entry, got %+v", item)
	}
	if len(item.Candidates) != 1 || item.Candidates[0].ID() != "row-1" {
		t.Errorf("Expected the deleted row snapshotted, got %+v", item.Candidates)
	}
}

func TestDeleteRowsWeeklyCompositeIDs(t *testing.T) {
	doc := DefaultDocument()
	SetWeeklyEntry(doc, "2026-08-21", "2026-08-27", "Monday", DayEntry{Content: "keep"})
	SetWeeklyEntry(doc, "2026-08-21", "2026-08-27", "Tuesday", DayEntry{Content: "drop"})

	undoID, err := DeleteRows(doc, TableWeeklyEntries, []string{WeeklyRowID("2026-08-21", "Tuesday")})
	if err != nil {
		t.Fatalf("DeleteRows failed: %v", err)
	}
	week := doc.Weekly["2026-08-21"]
	if _, ok := week.Entries["Tuesday"]; ok {
		t.Error("Expected Tuesday removed")
	}
	if _, ok := week.Entries["Monday"]; !ok {
		t.Error("Expected Monday kept")
	}

	item := PopRecycle(doc, undoID)
	if item == nil || item.Type != RecycleWeeklyEntries {
		t.Fatalf("Expected a weekly_entries recycle entry, got %+v", item)
	}
	if len(item.Entries) != 1 || item.Entries[0].Day != "Tuesday" || item.Entries[0].Payload.Content != "drop" {
		t.Errorf("Expected the removed day snapshotted, got %+v", item.Entries)
	}
}

func TestDeleteRowsUniformInventory(t *testing.T) {
	doc := DefaultDocument()
	row := UpsertUniform(doc, UniformPayload{Type: "Shirt", Size: "M", Branch: "North", Quantity: 2})

	undoID, err := DeleteRows(doc, TableUniformInventory, []string{row.ID})
	if err != nil {
		t.Fatalf("DeleteRows failed: %v", err)
	}
	if len(doc.Uniforms) != 0 {
		t.Error("Expected the uniform row removed")
	}

	item := PopRecycle(doc, undoID)
	if item == nil || item.Type != RecycleUniformRows {
		t.Fatalf("Expected a uniform_rows recycle entry, got %+v", item)
	}
	if !Restore(doc, item) {
		t.Fatal("Expected Restore to succeed")
	}
	if len(doc.Uniforms) != 1 || doc.Uniforms[0].Quantity != 2 {
		t.Errorf("Expected the row restored intact, got %+v", doc.Uniforms)
	}
}

func TestDeleteRowsColumnsDelegates(t *testing.T) {
	doc := DefaultDocument()
	doc.Kanban.Columns = []Column{{ID: "col-1", Order: 1}}
	doc.Kanban.Cards = []Card{{UUID: "card-1", ColumnID: "col-1", Order: 1}}

	if _, err := DeleteRows(doc, TableKanbanColumns, []string{"col-1"}); !errors.Is(err, kerrors.ErrLastColumn) {
		t.Errorf("Expected the last-column guard through DeleteRows, got %v", err)
	}
}
