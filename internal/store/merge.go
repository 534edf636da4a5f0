package store

import "sort"

// Merge folds the incoming document into target. Nothing is ever
// removed from target: columns and cards are appended with fresh ids on
// collision, candidate rows follow their cards through an id map,
// weekly entries fill gaps only (the target's day wins), todos are
// appended, and uniform rows are folded through the ledger upsert.
func Merge(target, incoming *Document) {
	EnsureShape(target)
	EnsureShape(incoming)
	now := NowMillis()

	columnMap := make(map[string]string)
	existingColumns := columnIDSet(target.Kanban.Columns)
	var maxColumnOrder int64
	for _, column := range target.Kanban.Columns {
		if column.Order > maxColumnOrder {
			maxColumnOrder = column.Order
		}
	}

	incomingColumns := make([]Column, len(incoming.Kanban.Columns))
	copy(incomingColumns, incoming.Kanban.Columns)
	sort.SliceStable(incomingColumns, func(i, j int) bool {
		return incomingColumns[i].Order < incomingColumns[j].Order
	})
	for _, column := range incomingColumns {
		oldID := column.ID
		if oldID == "" {
			continue
		}
		nextID := oldID
		if existingColumns[oldID] {
			nextID = NewID()
		}
		existingColumns[nextID] = true
		columnMap[oldID] = nextID
		maxColumnOrder++
		column.ID = nextID
		column.Order = maxColumnOrder
		column.UpdatedAt = now
		target.Kanban.Columns = append(target.Kanban.Columns, column)
	}

	var firstColumnID string
	if len(target.Kanban.Columns) > 0 {
		firstColumnID = target.Kanban.Columns[0].ID
	}

	cardIDMap := make(map[string]string)
	existingCards := cardIDSet(target.Kanban.Cards)
	existingRows := make(map[string]bool, len(target.Kanban.Candidates))
	for _, row := range target.Kanban.Candidates {
		if id := row.ID(); id != "" {
			existingRows[id] = true
		}
	}
	orderByColumn := make(map[string]int64)
	for _, card := range target.Kanban.Cards {
		if card.ColumnID == "" {
			continue
		}
		if card.Order > orderByColumn[card.ColumnID] {
			orderByColumn[card.ColumnID] = card.Order
		}
	}

	incomingCards := make([]Card, len(incoming.Kanban.Cards))
	copy(incomingCards, incoming.Kanban.Cards)
	sort.SliceStable(incomingCards, func(i, j int) bool {
		return incomingCards[i].Order < incomingCards[j].Order
	})
	for _, card := range incomingCards {
		oldID := card.UUID
		if oldID == "" {
			continue
		}
		nextID := oldID
		if existingCards[oldID] {
			nextID = NewID()
		}
		mappedColumn := card.ColumnID
		if substituted, ok := columnMap[mappedColumn]; ok {
			mappedColumn = substituted
		}
		safeColumn := mappedColumn
		if mappedColumn == "" || !existingColumns[mappedColumn] {
			if firstColumnID != "" {
				safeColumn = firstColumnID
			}
		}
		nextOrder := orderByColumn[safeColumn] + 1
		orderByColumn[safeColumn] = nextOrder

		card.UUID = nextID
		card.ColumnID = safeColumn
		card.Order = nextOrder
		card.UpdatedAt = now
		target.Kanban.Cards = append(target.Kanban.Cards, card)
		existingCards[nextID] = true
		cardIDMap[oldID] = nextID
	}

	for _, row := range incoming.Kanban.Candidates {
		originalID := row.ID()
		nextID := originalID
		if mapped, ok := cardIDMap[originalID]; ok {
			nextID = mapped
		}
		if nextID == "" || existingRows[nextID] {
			nextID = NewID()
		}
		nextRow := make(CandidateRow, len(CandidateFields))
		for key, value := range row {
			nextRow[key] = value
		}
		nextRow[CandidateIDField] = nextID
		nextRow.EnsureFields()
		target.Kanban.Candidates = append(target.Kanban.Candidates, nextRow)
		existingRows[nextID] = true
	}

	for _, week := range incoming.Weekly {
		if week.WeekStart == "" {
			continue
		}
		targetWeek, ok := target.Weekly[week.WeekStart]
		if !ok {
			targetWeek = WeekRecord{
				WeekStart: week.WeekStart,
				WeekEnd:   week.WeekEnd,
				Entries:   map[string]DayEntry{},
			}
		}
		if targetWeek.Entries == nil {
			targetWeek.Entries = map[string]DayEntry{}
		}
		for day, payload := range week.Entries {
			if _, exists := targetWeek.Entries[day]; !exists {
				targetWeek.Entries[day] = payload
			}
		}
		target.Weekly[week.WeekStart] = targetWeek
	}

	todoIDs := make(map[string]bool, len(target.Todos))
	for _, todo := range target.Todos {
		if todo.ID != "" {
			todoIDs[todo.ID] = true
		}
	}
	for _, todo := range incoming.Todos {
		if todo.ID == "" || todoIDs[todo.ID] {
			todo.ID = NewID()
		}
		target.Todos = append(target.Todos, todo)
		todoIDs[todo.ID] = true
	}

	for _, entry := range incoming.Uniforms {
		normalized := NormalizeUniform(UniformPayload{
			Alteration: entry.Alteration,
			Type:       entry.Type,
			Size:       entry.Size,
			Waist:      entry.Waist,
			Inseam:     entry.Inseam,
			Quantity:   entry.Quantity,
			Branch:     entry.Branch,
		})
		if normalized.Type == "" || normalized.Size == "" || normalized.Branch == "" || normalized.Quantity <= 0 {
			continue
		}
		UpsertUniform(target, normalized)
	}
}
