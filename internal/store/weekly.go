package store

import (
	"fmt"
	"strconv"
	"time"
)

// WeeklyDays lists the days of a tracking week in order. Weeks run
// Friday through Thursday to match the payroll cycle.
var WeeklyDays = []string{
	"Friday",
	"Saturday",
	"Sunday",
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
}

const weekDateLayout = "2006-01-02"

// WeekRange returns the week-start (most recent Friday) and week-end
// dates covering t, formatted as YYYY-MM-DD.
func WeekRange(t time.Time) (string, string) {
	daysSinceFriday := (int(t.Weekday()) - int(time.Friday) + 7) % 7
	start := t.AddDate(0, 0, -daysSinceFriday)
	end := start.AddDate(0, 0, 6)
	return start.Format(weekDateLayout), end.Format(weekDateLayout)
}

// WeeklyRowID is the composite id used to address one day entry, e.g.
// for deletion.
func WeeklyRowID(weekStart, day string) string {
	return weekStart + "-" + day
}

// SetWeeklyEntry writes one day's record, creating the week on demand.
func SetWeeklyEntry(doc *Document, weekStart, weekEnd, day string, entry DayEntry) {
	if weekStart == "" || day == "" {
		return
	}
	week, ok := doc.Weekly[weekStart]
	if !ok {
		week = WeekRecord{
			WeekStart: weekStart,
			WeekEnd:   weekEnd,
			Entries:   map[string]DayEntry{},
		}
	}
	if weekEnd != "" {
		week.WeekEnd = weekEnd
	}
	if week.Entries == nil {
		week.Entries = map[string]DayEntry{}
	}
	week.Entries[day] = entry
	doc.Weekly[weekStart] = week
}

// ParseMilitaryTime reads a 4-digit 24-hour time (separators and
// whitespace ignored) and returns minutes since midnight.
func ParseMilitaryTime(value string) (int64, bool) {
	digits := make([]rune, 0, 4)
	for _, ch := range value {
		if ch >= '0' && ch <= '9' {
			digits = append(digits, ch)
		}
	}
	if len(digits) != 4 {
		return 0, false
	}
	hours, err := strconv.ParseInt(string(digits[:2]), 10, 64)
	if err != nil {
		return 0, false
	}
	minutes, err := strconv.ParseInt(string(digits[2:]), 10, 64)
	if err != nil {
		return 0, false
	}
	if hours > 23 || minutes > 59 {
		return 0, false
	}
	return hours*60 + minutes, true
}

// RoundToQuarterHour rounds to the nearest 15 minutes, clamped to the
// day.
func RoundToQuarterHour(minutes int64) int64 {
	rounded := ((minutes + 7) / 15) * 15
	if minutes < 0 {
		rounded = 0
	}
	max := int64(23*60 + 45)
	if rounded > max {
		rounded = max
	}
	return rounded
}

// FormatMilitaryTime renders minutes since midnight as HH:MM.
func FormatMilitaryTime(minutes int64) string {
	h := minutes / 60
	m := minutes % 60
	if m < 0 {
		m += 60
		h--
	}
	return fmt.Sprintf("%02d:%02d", h, m)
}

// FormatTotalHours renders a minute span as decimal hours with two
// digits.
func FormatTotalHours(minutes int64) string {
	return strconv.FormatFloat(float64(minutes)/60.0, 'f', 2, 64)
}
