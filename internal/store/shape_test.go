package store

import (
	"reflect"
	"testing"
)

func TestDefaultDocument(t *testing.T) {
	doc := DefaultDocument()
	if doc.Version != CurrentVersion {
		t.Errorf("Expected version %d, got %d", CurrentVersion, doc.Version)
	}
	if doc.Kanban.Columns == nil || doc.Kanban.Cards == nil || doc.Kanban.Candidates == nil {
		t.Error("Expected kanban containers initialized")
	}
	if doc.Uniforms == nil || doc.Weekly == nil || doc.Todos == nil {
		t.Error("Expected top-level containers initialized")
	}
	if doc.Recycle.Items == nil || doc.Recycle.Redo == nil {
		t.Error("Expected recycle lists initialized")
	}
}

func TestEnsureShapeKeepsData(t *testing.T) {
	doc := &Document{
		Version: 2,
		Kanban:  Kanban{Cards: []Card{{UUID: "card-1"}}},
	}
	EnsureShape(doc)
	if len(doc.Kanban.Cards) != 1 {
		t.Error("Expected existing data untouched")
	}
	if doc.Kanban.Columns == nil || doc.Uniforms == nil || doc.Weekly == nil {
		t.Error("Expected missing containers defaulted")
	}
	if doc.Version != 2 {
		t.Errorf("Expected EnsureShape to leave the version alone, got %d", doc.Version)
	}
}

func TestMigrateIdempotent(t *testing.T) {
	doc := &Document{Version: 1, Todos: []Todo{{ID: "todo-1"}}}
	Migrate(doc)
	if doc.Version != CurrentVersion {
		t.Errorf("Expected version stamped to %d, got %d", CurrentVersion, doc.Version)
	}

	once, err := EncodeDocument(doc)
	if err != nil {
		t.Fatalf("EncodeDocument failed: %v", err)
	}
	Migrate(doc)
	twice, err := EncodeDocument(doc)
	if err != nil {
		t.Fatalf("EncodeDocument failed: %v", err)
	}
	if !reflect.DeepEqual(once, twice) {
		t.Error("Expected migrating twice to equal migrating once")
	}
}

func TestMigrateBackfillsCandidateFields(t *testing.T) {
	doc := &Document{
		Version: 2,
		Kanban: Kanban{
			Candidates: []CandidateRow{{CandidateIDField: "card-1", "Candidate Name": "Pat"}},
		},
	}
	Migrate(doc)
	row := doc.Kanban.Candidates[0]
	if len(row) != len(CandidateFields) {
		t.Errorf("Expected all %d schema fields, got %d", len(CandidateFields), len(row))
	}
	if row["Candidate Name"] != "Pat" {
		t.Error("Expected existing values preserved")
	}
}

func TestDecodeDocumentFallsBack(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"garbage", []byte("not json")},
		{"wrong kind", []byte(`[1,2,3]`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := DecodeDocument(tt.data)
			if doc == nil || doc.Version != CurrentVersion {
				t.Errorf("Expected a default document, got %+v", doc)
			}
		})
	}
}

func TestDecodeDocumentMigrates(t *testing.T) {
	doc := DecodeDocument([]byte(`{"version":1,"todos":[{"id":"todo-1","text":"x"}]}`))
	if doc.Version != CurrentVersion {
		t.Errorf("Expected decoded documents migrated, got version %d", doc.Version)
	}
	if len(doc.Todos) != 1 {
		t.Error("Expected data carried through migration")
	}
	if doc.Uniforms == nil || doc.Recycle.Items == nil {
		t.Error("Expected migration to add the newer containers")
	}
}
