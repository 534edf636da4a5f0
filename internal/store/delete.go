package store

import (
	kerrors "opsvault/internal/errors"
)

// DeleteRows removes the identified rows from one table, pushing a
// matching recycle snapshot when anything was actually removed. Weekly
// rows are addressed by the "weekStart-day" composite id. Returns the
// undo id, empty when nothing was deleted.
func DeleteRows(doc *Document, tableID string, rowIDs []string) (string, error) {
	ids := make(map[string]bool, len(rowIDs))
	for _, raw := range rowIDs {
		id := ClampString(raw, 128, true)
		if id != "" {
			ids[id] = true
		}
	}

	switch ClampString(tableID, 128, true) {
	case TableKanbanColumns:
		return RemoveColumns(doc, ids, true)

	case TableKanbanCards:
		var removedCards []Card
		keptCards := doc.Kanban.Cards[:0]
		for _, card := range doc.Kanban.Cards {
			if ids[card.UUID] {
				removedCards = append(removedCards, card)
			} else {
				keptCards = append(keptCards, card)
			}
		}
		doc.Kanban.Cards = keptCards

		var removedRows []CandidateRow
		keptRows := doc.Kanban.Candidates[:0]
		for _, row := range doc.Kanban.Candidates {
			if ids[row.ID()] {
				removedRows = append(removedRows, row)
			} else {
				keptRows = append(keptRows, row)
			}
		}
		doc.Kanban.Candidates = keptRows

		if len(removedCards) == 0 && len(removedRows) == 0 {
			return "", nil
		}
		return PushRecycle(doc, RecycleItem{
			Type:       RecycleKanbanCards,
			Cards:      removedCards,
			Candidates: removedRows,
		}), nil

	case TableCandidateData:
		var removed []CandidateRow
		kept := doc.Kanban.Candidates[:0]
		for _, row := range doc.Kanban.Candidates {
			if ids[row.ID()] {
				removed = append(removed, row)
			} else {
				kept = append(kept, row)
			}
		}
		doc.Kanban.Candidates = kept
		if len(removed) == 0 {
			return "", nil
		}
		return PushRecycle(doc, RecycleItem{
			Type:       RecycleCandidateRows,
			Candidates: removed,
		}), nil

	case TableWeeklyEntries:
		var removed []WeeklySnapshot
		for key, week := range doc.Weekly {
			for day, payload := range week.Entries {
				if !ids[WeeklyRowID(week.WeekStart, day)] {
					continue
				}
				removed = append(removed, WeeklySnapshot{
					WeekStart: week.WeekStart,
					WeekEnd:   week.WeekEnd,
					Day:       day,
					Payload:   payload,
				})
				delete(week.Entries, day)
			}
			doc.Weekly[key] = week
		}
		if len(removed) == 0 {
			return "", nil
		}
		return PushRecycle(doc, RecycleItem{
			Type:    RecycleWeeklyEntries,
			Entries: removed,
		}), nil

	case TableUniformInventory:
		var removed []UniformEntry
		kept := doc.Uniforms[:0]
		for _, entry := range doc.Uniforms {
			if ids[entry.ID] {
				removed = append(removed, entry)
			} else {
				kept = append(kept, entry)
			}
		}
		doc.Uniforms = kept
		if len(removed) == 0 {
			return "", nil
		}
		return PushRecycle(doc, RecycleItem{
			Type:     RecycleUniformRows,
			Uniforms: removed,
		}), nil

	case TableTodos:
		var removed []Todo
		kept := doc.Todos[:0]
		for _, todo := range doc.Todos {
			if ids[todo.ID] {
				removed = append(removed, todo)
			} else {
				kept = append(kept, todo)
			}
		}
		doc.Todos = kept
		if len(removed) == 0 {
			return "", nil
		}
		return PushRecycle(doc, RecycleItem{
			Type:  RecycleTodos,
			Todos: removed,
		}), nil
	}

	return "", kerrors.ErrInvalidTable
}
