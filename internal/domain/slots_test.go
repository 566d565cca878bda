package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/v0ronc/CRM-SchedulingService/pkg/ptr"
	"github.com/v0ronc/CRM-SchedulingService/pkg/types"
)

// 2026-03-09 is a Monday
var (
	testMonday = time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	weekBefore = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC) // Monday 08:00, one week earlier
)

func testPage() *BookingPage {
	return &BookingPage{
		ID:                  1,
		Slug:                "intro-call",
		SlotDurationMinutes: 30,
		BufferMinutes:       0,
		MinNoticeHours:      24,
		MaxDaysAhead:        14,
		Timezone:            "UTC",
		IsActive:            true,
	}
}

func mondayWindow(start, end types.TimeString) AvailabilityWindow {
	return AvailabilityWindow{PageID: 1, DayOfWeek: 1, StartTime: start, EndTime: end}
}

func confirmedBooking(date time.Time, start, end types.TimeString) *Booking {
	return &Booking{
		PageID:      1,
		BookingDate: date,
		StartTime:   start,
		EndTime:     end,
		Status:      StatusConfirmed,
	}
}

func slotStarts(slots []Slot) []types.TimeString {
	starts := make([]types.TimeString, len(slots))
	for i, s := range slots {
		starts[i] = s.StartTime
	}
	return starts
}

func TestComputeSlots_FullMondayWindow(t *testing.T) {
	page := testPage()
	windows := []AvailabilityWindow{mondayWindow("09:00", "12:00")}

	slots := ComputeSlots(page, windows, nil, nil, testMonday, weekBefore)

	require.Len(t, slots, 6)
	assert.Equal(t,
		[]types.TimeString{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"},
		slotStarts(slots))

	// Конец последнего слота не выходит за окно
	assert.Equal(t, types.TimeString("12:00"), slots[5].EndTime)
}

func TestComputeSlots_ExistingBookingExcludesOverlap(t *testing.T) {
	page := testPage()
	windows := []AvailabilityWindow{mondayWindow("09:00", "12:00")}

	// Бронирование на два соседних слота
	bookings := []*Booking{confirmedBooking(testMonday, "10:00", "11:00")}

	slots := ComputeSlots(page, windows, nil, bookings, testMonday, weekBefore)

	assert.Equal(t,
		[]types.TimeString{"09:00", "09:30", "11:00", "11:30"},
		slotStarts(slots))
}

func TestComputeSlots_BoundaryTouchIsNotConflict(t *testing.T) {
	page := testPage()
	windows := []AvailabilityWindow{mondayWindow("09:00", "12:00")}

	// Интервалы только граничат: 10:00-10:30 занят, 10:30 свободен
	bookings := []*Booking{confirmedBooking(testMonday, "10:00", "10:30")}

	slots := ComputeSlots(page, windows, nil, bookings, testMonday, weekBefore)

	assert.NotContains(t, slotStarts(slots), types.TimeString("10:00"))
	assert.Contains(t, slotStarts(slots), types.TimeString("10:30"))
}

func TestComputeSlots_CancelledBookingFreesSlot(t *testing.T) {
	page := testPage()
	windows := []AvailabilityWindow{mondayWindow("09:00", "12:00")}

	cancelled := confirmedBooking(testMonday, "10:00", "10:30")
	cancelled.Status = StatusCancelled

	slots := ComputeSlots(page, windows, nil, []*Booking{cancelled}, testMonday, weekBefore)

	assert.Contains(t, slotStarts(slots), types.TimeString("10:00"))
	assert.Len(t, slots, 6)
}

func TestComputeSlots_BufferWidensExistingBookings(t *testing.T) {
	page := testPage()
	page.BufferMinutes = 15

	// Два пересекающихся окна дают кандидатов 10:30 и 10:45
	windows := []AvailabilityWindow{
		mondayWindow("10:30", "11:00"),
		mondayWindow("10:45", "11:15"),
	}
	bookings := []*Booking{confirmedBooking(testMonday, "10:00", "10:30")}

	slots := ComputeSlots(page, windows, nil, bookings, testMonday, weekBefore)

	// 10:30 попадает в буфер после бронирования, 10:45 - первый допустимый
	assert.NotContains(t, slotStarts(slots), types.TimeString("10:30"))
	assert.Contains(t, slotStarts(slots), types.TimeString("10:45"))
}

func TestComputeSlots_BufferAgainstOffGridBooking(t *testing.T) {
	page := testPage()
	page.BufferMinutes = 15
	windows := []AvailabilityWindow{mondayWindow("09:00", "18:00")}

	// Бронирование, созданное админом вручную, не выровнено по сетке
	bookings := []*Booking{confirmedBooking(testMonday, "10:10", "10:40")}

	slots := ComputeSlots(page, windows, nil, bookings, testMonday, weekBefore)

	// Эффективный интервал [09:55, 10:55): кандидаты внутри него отброшены
	for _, s := range slots {
		blockedEnd := types.TimeString("10:55")
		blockedStart := types.TimeString("09:55")
		overlap := s.StartTime.IsBefore(blockedEnd) && blockedStart.IsBefore(s.EndTime)
		assert.False(t, overlap, "slot %s overlaps widened booking", s.StartTime)
	}
}

func TestComputeSlots_BufferChangesGridStride(t *testing.T) {
	page := testPage()
	page.BufferMinutes = 15
	windows := []AvailabilityWindow{mondayWindow("09:00", "12:00")}

	slots := ComputeSlots(page, windows, nil, nil, testMonday, weekBefore)

	// Шаг сетки = длительность + буфер = 45 минут
	assert.Equal(t,
		[]types.TimeString{"09:00", "09:45", "10:30", "11:15"},
		slotStarts(slots))
}

func TestComputeSlots_ExceptionDominates(t *testing.T) {
	page := testPage()
	windows := []AvailabilityWindow{mondayWindow("09:00", "12:00")}
	exceptions := []Exception{{PageID: 1, ExceptionDate: testMonday, Reason: ptr.Ptr("holiday")}}

	slots := ComputeSlots(page, windows, exceptions, nil, testMonday, weekBefore)

	assert.Empty(t, slots)
}

func TestComputeSlots_ExceptionOnOtherDateIgnored(t *testing.T) {
	page := testPage()
	windows := []AvailabilityWindow{mondayWindow("09:00", "12:00")}
	exceptions := []Exception{{PageID: 1, ExceptionDate: testMonday.AddDate(0, 0, 1)}}

	slots := ComputeSlots(page, windows, exceptions, nil, testMonday, weekBefore)

	assert.Len(t, slots, 6)
}

func TestComputeSlots_NoWindowsForWeekday(t *testing.T) {
	page := testPage()

	// Окно только на вторник
	windows := []AvailabilityWindow{{PageID: 1, DayOfWeek: 2, StartTime: "09:00", EndTime: "12:00"}}

	slots := ComputeSlots(page, windows, nil, nil, testMonday, weekBefore)

	assert.Empty(t, slots)
}

func TestComputeSlots_NoticeBoundaryInclusive(t *testing.T) {
	page := testPage()
	page.MinNoticeHours = 4
	windows := []AvailabilityWindow{mondayWindow("09:00", "12:00")}

	// Отсечка ровно 10:00: слот 10:00 включается, 09:30 - нет
	now := time.Date(2026, 3, 9, 6, 0, 0, 0, time.UTC)
	slots := ComputeSlots(page, windows, nil, nil, testMonday, now)
	assert.Equal(t,
		[]types.TimeString{"10:00", "10:30", "11:00", "11:30"},
		slotStarts(slots))

	// Минутой позже слот 10:00 уже недоступен
	now = time.Date(2026, 3, 9, 6, 1, 0, 0, time.UTC)
	slots = ComputeSlots(page, windows, nil, nil, testMonday, now)
	assert.Equal(t,
		[]types.TimeString{"10:30", "11:00", "11:30"},
		slotStarts(slots))
}

func TestComputeSlots_HorizonBoundaryInclusive(t *testing.T) {
	page := testPage()
	page.MinNoticeHours = 0
	windows := make([]AvailabilityWindow, 0, 7)
	for dow := 0; dow <= 6; dow++ {
		windows = append(windows, AvailabilityWindow{PageID: 1, DayOfWeek: dow, StartTime: "09:00", EndTime: "12:00"})
	}

	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

	// Ровно maxDaysAhead дней вперёд - слоты есть
	atHorizon := now.AddDate(0, 0, page.MaxDaysAhead)
	assert.NotEmpty(t, ComputeSlots(page, windows, nil, nil, atHorizon, now))

	// На день дальше - пусто
	pastHorizon := now.AddDate(0, 0, page.MaxDaysAhead+1)
	assert.Empty(t, ComputeSlots(page, windows, nil, nil, pastHorizon, now))
}

func TestComputeSlots_PastDateYieldsNothing(t *testing.T) {
	page := testPage()
	windows := []AvailabilityWindow{mondayWindow("09:00", "12:00")}

	slots := ComputeSlots(page, windows, nil, nil, testMonday, testMonday.AddDate(0, 0, 1))

	assert.Empty(t, slots)
}

func TestComputeSlots_OverlappingWindowsAreUnioned(t *testing.T) {
	page := testPage()
	page.MinNoticeHours = 0
	windows := []AvailabilityWindow{
		mondayWindow("09:00", "12:00"),
		mondayWindow("10:00", "11:00"), // полностью внутри первого окна
	}

	slots := ComputeSlots(page, windows, nil, nil, testMonday, weekBefore)

	// Дубликаты по времени начала схлопнуты
	assert.Equal(t,
		[]types.TimeString{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"},
		slotStarts(slots))
}

func TestComputeSlots_PartialTrailingSlotDropped(t *testing.T) {
	page := testPage()
	windows := []AvailabilityWindow{mondayWindow("09:00", "10:45")}

	slots := ComputeSlots(page, windows, nil, nil, testMonday, weekBefore)

	// 10:30-11:00 вышел бы за конец окна
	assert.Equal(t,
		[]types.TimeString{"09:00", "09:30", "10:00"},
		slotStarts(slots))
}

func TestComputeSlots_InvalidPolicyYieldsNothing(t *testing.T) {
	windows := []AvailabilityWindow{mondayWindow("09:00", "12:00")}

	cases := map[string]func(*BookingPage){
		"zero duration":     func(p *BookingPage) { p.SlotDurationMinutes = 0 },
		"negative buffer":   func(p *BookingPage) { p.BufferMinutes = -1 },
		"negative notice":   func(p *BookingPage) { p.MinNoticeHours = -1 },
		"zero horizon":      func(p *BookingPage) { p.MaxDaysAhead = 0 },
		"negative duration": func(p *BookingPage) { p.SlotDurationMinutes = -30 },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			page := testPage()
			mutate(page)
			assert.Empty(t, ComputeSlots(page, windows, nil, nil, testMonday, weekBefore))
		})
	}
}

func TestComputeSlots_InvalidWindowSkipped(t *testing.T) {
	page := testPage()
	windows := []AvailabilityWindow{
		{PageID: 1, DayOfWeek: 1, StartTime: "12:00", EndTime: "09:00"}, // start > end
		mondayWindow("10:00", "11:00"),
	}

	slots := ComputeSlots(page, windows, nil, nil, testMonday, weekBefore)

	assert.Equal(t, []types.TimeString{"10:00", "10:30"}, slotStarts(slots))
}

func TestComputeSlots_PageTimezoneGovernsDates(t *testing.T) {
	page := testPage()
	page.Timezone = "America/New_York"
	page.MinNoticeHours = 0

	// 2026-03-08 - воскресенье
	sunday := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	windows := []AvailabilityWindow{{PageID: 1, DayOfWeek: 0, StartTime: "22:00", EndTime: "23:00"}}

	// По UTC уже понедельник 02:00, но в Нью-Йорке ещё воскресенье 21:00:
	// дата не считается прошедшей, слот 22:00 ещё впереди
	now := time.Date(2026, 3, 9, 2, 0, 0, 0, time.UTC)

	slots := ComputeSlots(page, windows, nil, nil, sunday, now)

	assert.Equal(t, []types.TimeString{"22:00"}, slotStarts(slots))
}

func TestComputeSlots_Idempotent(t *testing.T) {
	page := testPage()
	windows := []AvailabilityWindow{mondayWindow("09:00", "12:00")}
	bookings := []*Booking{confirmedBooking(testMonday, "10:00", "10:30")}

	first := ComputeSlots(page, windows, nil, bookings, testMonday, weekBefore)
	second := ComputeSlots(page, windows, nil, bookings, testMonday, weekBefore)

	assert.Equal(t, first, second)
}
