package workflows

import (
	"context"

	"opsvault/internal/configs"
	"opsvault/internal/storage"
	"opsvault/internal/store"
)

// StatusOptions configures the status workflow.
type StatusOptions struct {
	// Password must match the auth record.
	Password string

	// Store overrides the default file storage adapter.
	Store storage.Store

	// MetaPath overrides the default metadata file location.
	MetaPath string
}

// TableCount pairs a table with its row count.
type TableCount struct {
	TableID string
	Name    string
	Rows    int
}

// StatusResult is a snapshot of the unlocked store.
type StatusResult struct {
	// Version is the document schema version.
	Version int64

	// Tables lists row counts in canonical table order.
	Tables []TableCount

	// Sources lists the current database plus imported copies.
	Sources []configs.Source

	// ActiveSource is the id of the source in use.
	ActiveSource string

	// Check is a light structural self-check of the document.
	Check store.Result
}

// Status unlocks the store and reports row counts, known sources, and
// a structural self-check.
func Status(ctx context.Context, opts StatusOptions) (*StatusResult, error) {
	session, err := Unlock(ctx, UnlockOptions{Password: opts.Password, Store: opts.Store})
	if err != nil {
		return nil, err
	}

	result := &StatusResult{}
	session.View(func(doc *store.Document) {
		result.Version = doc.Version
		result.Check = store.ValidateBasic(doc)
		for _, tableID := range store.TableOrder {
			result.Tables = append(result.Tables, TableCount{
				TableID: tableID,
				Name:    store.TableDisplayName(tableID),
				Rows:    tableRows(doc, tableID),
			})
		}
	})

	path := opts.MetaPath
	if path == "" {
		path = metaPath()
	}
	meta := configs.LoadMeta(path)
	result.Sources = configs.ListSources(meta)
	result.ActiveSource = configs.ResolveActiveSource(meta)
	return result, nil
}

func tableRows(doc *store.Document, tableID string) int {
	switch tableID {
	case store.TableKanbanColumns:
		return len(doc.Kanban.Columns)
	case store.TableKanbanCards:
		return len(doc.Kanban.Cards)
	case store.TableCandidateData:
		return len(doc.Kanban.Candidates)
	case store.TableUniformInventory:
		return len(doc.Uniforms)
	case store.TableWeeklyEntries:
		count := 0
		for _, week := range doc.Weekly {
			count += len(week.Entries)
		}
		return count
	case store.TableTodos:
		return len(doc.Todos)
	}
	return 0
}
