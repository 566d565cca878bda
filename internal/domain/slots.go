package domain

import (
	"sort"
	"time"

	"github.com/v0ronc/CRM-SchedulingService/pkg/types"
)

// ComputeSlots computes the exact set of offerable slots for one page and
// one calendar date. It is a pure function over already-fetched state: the
// weekly template, the blackout exceptions and the existing bookings of the
// page, plus the current instant.
//
// An empty result is a normal outcome (blocked date, closed weekday, fully
// booked day, date outside the booking horizon), never an error. Invalid or
// partial page policy likewise yields no slots instead of failing.
func ComputeSlots(
	page *BookingPage,
	windows []AvailabilityWindow,
	exceptions []Exception,
	bookings []*Booking,
	targetDate time.Time,
	now time.Time,
) []Slot {
	slots := make([]Slot, 0)

	if page == nil || !page.PolicyValid() {
		return slots
	}

	loc := page.Location()

	// 1. Date must lie inside [today, today + maxDaysAhead], both inclusive.
	// "Today" is determined in the page's timezone.
	if !dateInHorizon(targetDate, now, loc, page.MaxDaysAhead) {
		return slots
	}

	// 2. A blackout exception overrides everything else for the whole date.
	for i := range exceptions {
		if exceptions[i].AppliesTo(targetDate) {
			return slots
		}
	}

	// 3. Windows of the target weekday.
	weekday := int(targetDate.Weekday())
	starts := candidateStarts(windows, weekday, page.SlotDurationMinutes, page.BufferMinutes)
	if len(starts) == 0 {
		return slots
	}

	// 4. Minimum notice: the slot must start no earlier than now + notice,
	// evaluated as an absolute instant in the page's timezone. A slot
	// starting exactly at the cutoff is still offered.
	cutoff := now.Add(time.Duration(page.MinNoticeHours) * time.Hour)

	for _, start := range starts {
		if slotInstant(targetDate, start, loc).Before(cutoff) {
			continue
		}

		end, err := start.AddMinutes(page.SlotDurationMinutes)
		if err != nil {
			continue
		}

		if conflictsWithBooking(start, end, bookings, page.BufferMinutes) {
			continue
		}

		slots = append(slots, Slot{StartTime: start, EndTime: end})
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].StartTime.IsBefore(slots[j].StartTime)
	})

	return slots
}

// candidateStarts generates candidate start times from every window of the
// weekday. Inside a window candidates advance by slot duration plus buffer;
// a candidate whose end would cross the window end is dropped, so a partial
// trailing slot is never offered. Overlapping windows may yield the same
// start twice - duplicates are collapsed, the windows act as a union.
func candidateStarts(windows []AvailabilityWindow, weekday, durationMinutes, bufferMinutes int) []types.TimeString {
	seen := make(map[types.TimeString]struct{})
	starts := make([]types.TimeString, 0)

	for i := range windows {
		w := &windows[i]
		if w.DayOfWeek != weekday || !w.Valid() {
			continue
		}

		cursor := w.StartTime
		for {
			end, err := cursor.AddMinutes(durationMinutes)
			if err != nil || end.IsAfter(w.EndTime) {
				break
			}

			if _, ok := seen[cursor]; !ok {
				seen[cursor] = struct{}{}
				starts = append(starts, cursor)
			}

			next, err := cursor.AddMinutes(durationMinutes + bufferMinutes)
			if err != nil {
				break
			}
			cursor = next
		}
	}

	return starts
}

// conflictsWithBooking reports whether the candidate [start, end) overlaps
// any blocking booking. The booking's span is widened by the buffer on both
// sides, so the buffer also holds against manually created bookings that do
// not align to the generated grid. Interval touch is not a conflict.
func conflictsWithBooking(start, end types.TimeString, bookings []*Booking, bufferMinutes int) bool {
	for _, b := range bookings {
		if !b.BlocksSlot() {
			continue
		}
		if b.StartTime.Validate() != nil || b.EndTime.Validate() != nil {
			continue
		}

		effStart := b.StartTime.SubMinutesClamped(bufferMinutes)
		effEnd := b.EndTime.AddMinutesClamped(bufferMinutes)

		if start.IsBefore(effEnd) && effStart.IsBefore(end) {
			return true
		}
	}

	return false
}

// dateInHorizon checks targetDate against [today, today+maxDaysAhead]
func dateInHorizon(targetDate, now time.Time, loc *time.Location, maxDaysAhead int) bool {
	ny, nm, nd := now.In(loc).Date()
	today := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)

	ty, tm, td := targetDate.Date()
	target := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)

	if target.Before(today) {
		return false
	}
	return !target.After(today.AddDate(0, 0, maxDaysAhead))
}

// slotInstant combines a calendar date and a wall-clock start time into an
// absolute instant in the page's timezone
func slotInstant(date time.Time, start types.TimeString, loc *time.Location) time.Time {
	y, m, d := date.Date()
	minutes := start.Minutes()
	return time.Date(y, m, d, minutes/60, minutes%60, 0, 0, loc)
}
