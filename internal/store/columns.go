package store

import (
	"sort"

	kerrors "opsvault/internal/errors"
)

// RemoveColumns deletes the identified columns. Cards living in a
// removed column move to the first remaining column by order, appended
// after its highest card order. Deleting the last remaining column is
// refused while any card still sits in it. When recordUndo is set, a
// recycle entry capturing the removed columns and the pre-move cards is
// pushed and its id returned.
func RemoveColumns(doc *Document, ids map[string]bool, recordUndo bool) (string, error) {
	var removedColumns, remainingColumns []Column
	for _, column := range doc.Kanban.Columns {
		if ids[column.ID] {
			removedColumns = append(removedColumns, column)
		} else {
			remainingColumns = append(remainingColumns, column)
		}
	}

	var removedCards []Card
	for _, card := range doc.Kanban.Cards {
		if ids[card.ColumnID] {
			removedCards = append(removedCards, card)
		}
	}

	if len(remainingColumns) == 0 && len(removedCards) > 0 {
		return "", kerrors.ErrLastColumn
	}

	if len(remainingColumns) > 0 && len(removedCards) > 0 {
		sorted := make([]Column, len(remainingColumns))
		copy(sorted, remainingColumns)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Order < sorted[j].Order
		})
		targetID := sorted[0].ID
		if targetID != "" {
			var nextOrder int64
			for _, card := range doc.Kanban.Cards {
				if card.ColumnID == targetID && card.Order > nextOrder {
					nextOrder = card.Order
				}
			}
			nextOrder++
			now := NowMillis()
			sort.SliceStable(doc.Kanban.Cards, func(i, j int) bool {
				return doc.Kanban.Cards[i].Order < doc.Kanban.Cards[j].Order
			})
			for i := range doc.Kanban.Cards {
				if ids[doc.Kanban.Cards[i].ColumnID] {
					doc.Kanban.Cards[i].ColumnID = targetID
					doc.Kanban.Cards[i].Order = nextOrder
					doc.Kanban.Cards[i].UpdatedAt = now
					nextOrder++
				}
			}
		}
	}

	kept := doc.Kanban.Columns[:0]
	for _, column := range doc.Kanban.Columns {
		if !ids[column.ID] {
			kept = append(kept, column)
		}
	}
	doc.Kanban.Columns = kept

	var undoID string
	if recordUndo && len(removedColumns) > 0 {
		undoID = PushRecycle(doc, RecycleItem{
			Type:    RecycleKanbanColumns,
			Columns: removedColumns,
			Cards:   removedCards,
		})
	}
	return undoID, nil
}
