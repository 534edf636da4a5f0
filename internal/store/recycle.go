package store

import (
	"strconv"
	"time"
)

// Recycle entry types, one per restorable table snapshot.
const (
	RecycleKanbanCards   = "kanban_cards"
	RecycleKanbanColumns = "kanban_columns"
	RecycleCandidateRows = "candidate_rows"
	RecycleWeeklyEntries = "weekly_entries"
	RecycleTodos         = "todos"
	RecycleUniformRows   = "uniform_rows"
)

const (
	maxRecycleEntries = 20
	recycleTTL        = 15 * time.Minute
)

// WeeklySnapshot captures one deleted day entry with enough context to
// put it back.
type WeeklySnapshot struct {
	WeekStart string   `json:"week_start"`
	WeekEnd   string   `json:"week_end"`
	Day       string   `json:"day"`
	Payload   DayEntry `json:"payload"`
}

// RecycleItem is one undoable deletion. Only the slices matching Type
// are populated.
type RecycleItem struct {
	ID                 string           `json:"id"`
	DeletedAt          string           `json:"deleted_at"`
	Type               string           `json:"type"`
	Cards              []Card           `json:"cards,omitempty"`
	Columns            []Column         `json:"columns,omitempty"`
	Candidates         []CandidateRow   `json:"candidates,omitempty"`
	Entries            []WeeklySnapshot `json:"entries,omitempty"`
	Todos              []Todo           `json:"todos,omitempty"`
	Uniforms           []UniformEntry   `json:"uniforms,omitempty"`
	UniformAdjustments []UniformPayload `json:"uniformAdjustments,omitempty"`
}

// pruneList drops expired entries, then the oldest beyond the cap.
func pruneList(items []RecycleItem) []RecycleItem {
	cutoff := nowFn().Add(-recycleTTL).UnixMilli()
	kept := items[:0]
	for _, item := range items {
		deletedAt, err := strconv.ParseInt(item.DeletedAt, 10, 64)
		if err != nil || deletedAt < cutoff {
			continue
		}
		kept = append(kept, item)
	}
	if len(kept) > maxRecycleEntries {
		kept = kept[len(kept)-maxRecycleEntries:]
	}
	return kept
}

// PruneRecycle applies the TTL and size bounds to both lists. Every
// push and pop runs it, so stale entries never survive an access.
func PruneRecycle(doc *Document) {
	doc.Recycle.Items = pruneList(doc.Recycle.Items)
	doc.Recycle.Redo = pruneList(doc.Recycle.Redo)
}

// PushRecycle stamps the item with a fresh id and deletion time and
// appends it to the undo list. Returns the id.
func PushRecycle(doc *Document, item RecycleItem) string {
	item.ID = NewID()
	item.DeletedAt = NowMillis()
	doc.Recycle.Items = append(doc.Recycle.Items, item)
	PruneRecycle(doc)
	return item.ID
}

// PushRedo stamps and appends the item to the redo list.
func PushRedo(doc *Document, item RecycleItem) string {
	item.ID = NewID()
	item.DeletedAt = NowMillis()
	doc.Recycle.Redo = append(doc.Recycle.Redo, item)
	PruneRecycle(doc)
	return item.ID
}

// PopRecycle removes and returns the undo entry with the given id, or
// nil when it is absent or already expired.
func PopRecycle(doc *Document, id string) *RecycleItem {
	PruneRecycle(doc)
	for i, item := range doc.Recycle.Items {
		if item.ID == id {
			doc.Recycle.Items = append(doc.Recycle.Items[:i], doc.Recycle.Items[i+1:]...)
			return &item
		}
	}
	return nil
}

// PopRedo removes and returns the redo entry with the given id.
func PopRedo(doc *Document, id string) *RecycleItem {
	PruneRecycle(doc)
	for i, item := range doc.Recycle.Redo {
		if item.ID == id {
			doc.Recycle.Redo = append(doc.Recycle.Redo[:i], doc.Recycle.Redo[i+1:]...)
			return &item
		}
	}
	return nil
}

// Restore puts a recycle entry's rows back into the document. Rows
// whose ids already exist are skipped, so restoring twice never
// duplicates data. Reports whether the entry type was recognized.
func Restore(doc *Document, item *RecycleItem) bool {
	switch item.Type {
	case RecycleKanbanCards:
		existing := cardIDSet(doc.Kanban.Cards)
		for _, card := range item.Cards {
			if card.UUID == "" || existing[card.UUID] {
				continue
			}
			doc.Kanban.Cards = append(doc.Kanban.Cards, card)
		}
		restoreCandidateRows(doc, item.Candidates)
		for _, adjustment := range item.UniformAdjustments {
			normalized := NormalizeUniform(adjustment)
			if normalized.Quantity > 0 {
				UpsertUniform(doc, normalized)
			}
		}
		return true

	case RecycleKanbanColumns:
		existing := columnIDSet(doc.Kanban.Columns)
		for _, column := range item.Columns {
			if column.ID == "" || existing[column.ID] {
				continue
			}
			doc.Kanban.Columns = append(doc.Kanban.Columns, column)
		}
		// The snapshot's cards replace any live cards with the same
		// ids, so a restore rewinds reassignment done at delete time.
		ids := cardIDSet(item.Cards)
		kept := doc.Kanban.Cards[:0]
		for _, card := range doc.Kanban.Cards {
			if !ids[card.UUID] {
				kept = append(kept, card)
			}
		}
		doc.Kanban.Cards = kept
		for _, card := range item.Cards {
			if card.UUID != "" {
				doc.Kanban.Cards = append(doc.Kanban.Cards, card)
			}
		}
		return true

	case RecycleCandidateRows:
		restoreCandidateRows(doc, item.Candidates)
		return true

	case RecycleWeeklyEntries:
		for _, snapshot := range item.Entries {
			if snapshot.WeekStart == "" || snapshot.Day == "" {
				continue
			}
			week, ok := doc.Weekly[snapshot.WeekStart]
			if !ok {
				week = WeekRecord{
					WeekStart: snapshot.WeekStart,
					WeekEnd:   snapshot.WeekEnd,
					Entries:   map[string]DayEntry{},
				}
			}
			week.WeekStart = snapshot.WeekStart
			if snapshot.WeekEnd != "" {
				week.WeekEnd = snapshot.WeekEnd
			}
			if week.Entries == nil {
				week.Entries = map[string]DayEntry{}
			}
			week.Entries[snapshot.Day] = snapshot.Payload
			doc.Weekly[snapshot.WeekStart] = week
		}
		return true

	case RecycleTodos:
		existing := make(map[string]bool, len(doc.Todos))
		for _, todo := range doc.Todos {
			existing[todo.ID] = true
		}
		for _, todo := range item.Todos {
			if todo.ID == "" || existing[todo.ID] {
				continue
			}
			doc.Todos = append(doc.Todos, todo)
		}
		return true

	case RecycleUniformRows:
		existing := make(map[string]bool, len(doc.Uniforms))
		for _, entry := range doc.Uniforms {
			existing[entry.ID] = true
		}
		for _, entry := range item.Uniforms {
			if entry.ID == "" || existing[entry.ID] {
				continue
			}
			doc.Uniforms = append(doc.Uniforms, entry)
		}
		return true
	}
	return false
}

// Reapply re-executes the deletion a recycle entry describes; it is the
// redo half of Restore. Reports whether the entry type was recognized
// and the deletion could run.
func Reapply(doc *Document, item *RecycleItem) bool {
	switch item.Type {
	case RecycleKanbanCards:
		cardIDs := cardIDSet(item.Cards)
		rowIDs := make(map[string]bool, len(item.Candidates))
		for _, row := range item.Candidates {
			if id := row.ID(); id != "" {
				rowIDs[id] = true
			}
		}
		keptCards := doc.Kanban.Cards[:0]
		for _, card := range doc.Kanban.Cards {
			if !cardIDs[card.UUID] {
				keptCards = append(keptCards, card)
			}
		}
		doc.Kanban.Cards = keptCards
		keptRows := doc.Kanban.Candidates[:0]
		for _, row := range doc.Kanban.Candidates {
			if !rowIDs[row.ID()] {
				keptRows = append(keptRows, row)
			}
		}
		doc.Kanban.Candidates = keptRows
		for _, adjustment := range item.UniformAdjustments {
			normalized := NormalizeUniform(adjustment)
			if normalized.Quantity > 0 {
				DecrementUniform(doc, normalized)
			}
		}
		return true

	case RecycleKanbanColumns:
		ids := columnIDSet(item.Columns)
		if len(ids) == 0 {
			return false
		}
		_, err := RemoveColumns(doc, ids, false)
		return err == nil

	case RecycleCandidateRows:
		ids := make(map[string]bool, len(item.Candidates))
		for _, row := range item.Candidates {
			if id := row.ID(); id != "" {
				ids[id] = true
			}
		}
		kept := doc.Kanban.Candidates[:0]
		for _, row := range doc.Kanban.Candidates {
			if !ids[row.ID()] {
				kept = append(kept, row)
			}
		}
		doc.Kanban.Candidates = kept
		return true

	case RecycleWeeklyEntries:
		for _, snapshot := range item.Entries {
			week, ok := doc.Weekly[snapshot.WeekStart]
			if !ok || week.Entries == nil {
				continue
			}
			delete(week.Entries, snapshot.Day)
			doc.Weekly[snapshot.WeekStart] = week
		}
		return true

	case RecycleTodos:
		ids := make(map[string]bool, len(item.Todos))
		for _, todo := range item.Todos {
			if todo.ID != "" {
				ids[todo.ID] = true
			}
		}
		kept := doc.Todos[:0]
		for _, todo := range doc.Todos {
			if !ids[todo.ID] {
				kept = append(kept, todo)
			}
		}
		doc.Todos = kept
		return true

	case RecycleUniformRows:
		ids := make(map[string]bool, len(item.Uniforms))
		for _, entry := range item.Uniforms {
			if entry.ID != "" {
				ids[entry.ID] = true
			}
		}
		kept := doc.Uniforms[:0]
		for _, entry := range doc.Uniforms {
			if !ids[entry.ID] {
				kept = append(kept, entry)
			}
		}
		doc.Uniforms = kept
		return true
	}
	return false
}

func restoreCandidateRows(doc *Document, rows []CandidateRow) {
	existing := make(map[string]bool, len(doc.Kanban.Candidates))
	for _, row := range doc.Kanban.Candidates {
		existing[row.ID()] = true
	}
	for _, row := range rows {
		id := row.ID()
		if id == "" || existing[id] {
			continue
		}
		doc.Kanban.Candidates = append(doc.Kanban.Candidates, row)
	}
}

func cardIDSet(cards []Card) map[string]bool {
	set := make(map[string]bool, len(cards))
	for _, card := range cards {
		if card.UUID != "" {
			set[card.UUID] = true
		}
	}
	return set
}

func columnIDSet(columns []Column) map[string]bool {
	set := make(map[string]bool, len(columns))
	for _, column := range columns {
		if column.ID != "" {
			set[column.ID] = true
		}
	}
	return set
}
