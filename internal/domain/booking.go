package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/v0ronc/CRM-SchedulingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
	StatusNoShow    BookingStatus = "no_show"
)

// Booking represents a confirmed reservation of one slot on a booking page
type Booking struct {
	ID        int64
	PageID    int64
	Reference uuid.UUID

	BookingDate time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString

	Status BookingStatus

	ProspectName  string
	ProspectEmail string
	ProspectPhone *string

	// Answers to the page's qualification fields, keyed by field id
	QualificationAnswers map[string]string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BlocksSlot reports whether this booking occupies its slot.
// Only cancelled bookings free the slot back up; completed and no-show
// bookings keep blocking it (they can only exist in the past anyway).
func (b *Booking) BlocksSlot() bool {
	return b.Status != StatusCancelled
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusConfirmed
}

// CanTransitionTo reports whether the status transition is allowed.
// Admins move confirmed bookings to completed, cancelled or no_show;
// terminal states never transition.
func (b *Booking) CanTransitionTo(target BookingStatus) bool {
	if b.Status != StatusConfirmed {
		return false
	}
	switch target {
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	default:
		return false
	}
}

// PageBookingsFilter filters bookings of one page
type PageBookingsFilter struct {
	PageID          int64
	StartDate       *time.Time
	EndDate         *time.Time
	Status          *BookingStatus
	IncludeInactive bool // include cancelled bookings
}
