package workflows

import (
	"context"
	"strings"
	"time"

	"opsvault/internal/audit"
	kerrors "opsvault/internal/errors"
	"opsvault/internal/storage"
	"opsvault/internal/store"
)

// WeeklyOptions configures the set-weekly-entry workflow.
type WeeklyOptions struct {
	// Password must match the auth record.
	Password string

	// Day names the entry within the week, e.g. "Monday".
	Day string

	// WeekStart pins a specific week (YYYY-MM-DD, a Friday). Empty
	// means the week covering today.
	WeekStart string

	// Start and End are military times. They are rounded to the
	// quarter hour before being stored.
	Start string
	End   string

	// Content is the free-form note for the day.
	Content string

	// Store overrides the default file storage adapter.
	Store storage.Store
}

// WeeklyResult contains the stored entry and its addressing.
type WeeklyResult struct {
	// WeekStart and WeekEnd bound the week the entry landed in.
	WeekStart string
	WeekEnd   string

	// RowID is the composite id usable with delete.
	RowID string

	// TotalHours is the span between start and end, when both parse.
	TotalHours string
}

// SetWeekly records one day's time entry, creating the week on demand.
//
// Returns ErrInvalidTime when a supplied start or end does not parse.
func SetWeekly(ctx context.Context, opts WeeklyOptions) (*WeeklyResult, error) {
	day := canonicalDay(opts.Day)
	if day == "" {
		return nil, kerrors.ErrNotFound
	}

	session, err := Unlock(ctx, UnlockOptions{Password: opts.Password, Store: opts.Store})
	if err != nil {
		return nil, err
	}

	weekStart, weekEnd := opts.WeekStart, ""
	if weekStart == "" {
		weekStart, weekEnd = store.WeekRange(time.Now())
	}

	entry := store.DayEntry{Content: opts.Content}
	var startMin, endMin int64 = -1, -1
	if opts.Start != "" {
		minutes, ok := store.ParseMilitaryTime(opts.Start)
		if !ok {
			return nil, kerrors.ErrInvalidTime
		}
		startMin = store.RoundToQuarterHour(minutes)
		entry.Start = store.FormatMilitaryTime(startMin)
	}
	if opts.End != "" {
		minutes, ok := store.ParseMilitaryTime(opts.End)
		if !ok {
			return nil, kerrors.ErrInvalidTime
		}
		endMin = store.RoundToQuarterHour(minutes)
		entry.End = store.FormatMilitaryTime(endMin)
	}

	result := &WeeklyResult{
		WeekStart: weekStart,
		WeekEnd:   weekEnd,
		RowID:     store.WeeklyRowID(weekStart, day),
	}
	if startMin >= 0 && endMin >= 0 {
		span := endMin - startMin
		if span < 0 {
			// Overnight shift wraps past midnight.
			span += 24 * 60
		}
		result.TotalHours = store.FormatTotalHours(span)
	}

	err = session.Update(func(doc *store.Document) error {
		store.SetWeeklyEntry(doc, weekStart, weekEnd, day, entry)
		return nil
	})
	if err != nil {
		return nil, err
	}

	audit.Log(audit.Entry{Operation: "weekly_set", Table: store.TableWeeklyEntries})
	return result, nil
}

// canonicalDay matches a day name case-insensitively against the
// tracking week.
func canonicalDay(value string) string {
	value = strings.TrimSpace(value)
	for _, day := range store.WeeklyDays {
		if strings.EqualFold(day, value) {
			return day
		}
	}
	return ""
}
