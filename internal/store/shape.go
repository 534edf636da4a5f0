package store

import "encoding/json"

// DefaultDocument returns an empty document at the current version.
func DefaultDocument() *Document {
	return &Document{
		Version: CurrentVersion,
		Kanban: Kanban{
			Columns:    []Column{},
			Cards:      []Card{},
			Candidates: []CandidateRow{},
		},
		Uniforms: []UniformEntry{},
		Weekly:   map[string]WeekRecord{},
		Todos:    []Todo{},
		Recycle: Recycle{
			Items: []RecycleItem{},
			Redo:  []RecycleItem{},
		},
	}
}

// EnsureShape defaults every missing container in place. Nothing that
// exists is touched; the document never shrinks.
func EnsureShape(doc *Document) {
	if doc.Version <= 0 {
		doc.Version = CurrentVersion
	}
	if doc.Kanban.Columns == nil {
		doc.Kanban.Columns = []Column{}
	}
	if doc.Kanban.Cards == nil {
		doc.Kanban.Cards = []Card{}
	}
	if doc.Kanban.Candidates == nil {
		doc.Kanban.Candidates = []CandidateRow{}
	}
	if doc.Uniforms == nil {
		doc.Uniforms = []UniformEntry{}
	}
	if doc.Weekly == nil {
		doc.Weekly = map[string]WeekRecord{}
	}
	for key, week := range doc.Weekly {
		if week.Entries == nil {
			week.Entries = map[string]DayEntry{}
			doc.Weekly[key] = week
		}
	}
	if doc.Todos == nil {
		doc.Todos = []Todo{}
	}
	if doc.Recycle.Items == nil {
		doc.Recycle.Items = []RecycleItem{}
	}
	if doc.Recycle.Redo == nil {
		doc.Recycle.Redo = []RecycleItem{}
	}
}

// Migrate brings a document of any older version up to CurrentVersion.
// The ladder is additive: version 2 introduced the recycle store,
// version 3 the uniform inventory. Running it twice is a no-op.
func Migrate(doc *Document) {
	if doc.Version < 2 {
		if doc.Recycle.Items == nil {
			doc.Recycle.Items = []RecycleItem{}
		}
		if doc.Recycle.Redo == nil {
			doc.Recycle.Redo = []RecycleItem{}
		}
	}
	if doc.Version < 3 {
		if doc.Uniforms == nil {
			doc.Uniforms = []UniformEntry{}
		}
	}
	EnsureShape(doc)
	if doc.Version < CurrentVersion {
		doc.Version = CurrentVersion
	}
	for i := range doc.Kanban.Candidates {
		doc.Kanban.Candidates[i].EnsureFields()
	}
}

// DecodeDocument parses a decrypted payload and migrates it. Any parse
// failure falls back to a fresh default document; data that cannot be
// read is treated as absent, never as fatal.
func DecodeDocument(data []byte) *Document {
	if len(data) == 0 {
		return DefaultDocument()
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return DefaultDocument()
	}
	Migrate(&doc)
	return &doc
}

// EncodeDocument serializes the document for encryption.
func EncodeDocument(doc *Document) ([]byte, error) {
	return json.Marshal(doc)
}
