package domain

import (
	"time"

	"github.com/v0ronc/CRM-SchedulingService/pkg/types"
)

// AvailabilityWindow is one active time range in a page's weekly template.
// DayOfWeek follows time.Weekday numbering: 0 = Sunday .. 6 = Saturday.
// Multiple windows may exist per day; overlapping windows are tolerated and
// treated as a union of covered time.
type AvailabilityWindow struct {
	ID        int64
	PageID    int64
	DayOfWeek int
	StartTime types.TimeString
	EndTime   types.TimeString

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Valid reports whether the window can produce candidate slots
func (w *AvailabilityWindow) Valid() bool {
	return w.DayOfWeek >= 0 && w.DayOfWeek <= 6 &&
		w.StartTime.Validate() == nil &&
		w.EndTime.Validate() == nil &&
		w.StartTime.IsBefore(w.EndTime)
}

// Exception blocks an entire calendar date of a page regardless of the
// weekly template
type Exception struct {
	ID            int64
	PageID        int64
	ExceptionDate time.Time
	Reason        *string

	CreatedAt time.Time
}

// AppliesTo reports whether the exception blocks the given calendar date
func (e *Exception) AppliesTo(date time.Time) bool {
	y1, m1, d1 := e.ExceptionDate.Date()
	y2, m2, d2 := date.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
