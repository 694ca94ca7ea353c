package ebay

import (
	"strings"
	"time"
)

// DateWindow is a half-open interval [Start, End).
type DateWindow struct {
	Start time.Time
	End   time.Time
}

// Filter renders the window as an eBay transactionDate filter value.
func (w DateWindow) Filter() string {
	return "transactionDate:[" + formatISO(w.Start) + ".." + formatISO(w.End) + "]"
}

// SalesWindows holds the today, this-week and this-month windows used to
// bucket transaction summaries.
type SalesWindows struct {
	Today DateWindow
	Week  DateWindow
	Month DateWindow
}

// NewSalesWindows computes the windows ending at now, in UTC. The week
// starts on the most recent Monday at 00:00.
func NewSalesWindows(now time.Time) SalesWindows {
	now = now.UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	// time.Weekday counts from Sunday; shift so Monday is 0.
	sinceMonday := (int(now.Weekday()) + 6) % 7
	weekStart := dayStart.AddDate(0, 0, -sinceMonday)

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	return SalesWindows{
		Today: DateWindow{Start: dayStart, End: now},
		Week:  DateWindow{Start: weekStart, End: now},
		Month: DateWindow{Start: monthStart, End: now},
	}
}

// formatISO renders t as ISO-8601 with a "Z" suffix in place of "+00:00".
func formatISO(t time.Time) string {
	s := t.UTC().Format("2006-01-02T15:04:05.999999-07:00")
	return strings.Replace(s, "+00:00", "Z", 1)
}
