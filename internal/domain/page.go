package domain

import "time"

// BookingPage represents a public booking page owned by an operator.
// Each page carries its own slot policy and weekly availability template.
type BookingPage struct {
	ID          int64
	OwnerUserID int64
	Slug        string
	Title       string
	Description *string

	// Slot policy
	SlotDurationMinutes int
	BufferMinutes       int
	MinNoticeHours      int
	MaxDaysAhead        int
	Timezone            string

	IsActive bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PolicyValid reports whether the slot policy values are usable.
// Pages created before a policy field existed may carry zero values;
// such pages offer no slots instead of failing.
func (p *BookingPage) PolicyValid() bool {
	return p.SlotDurationMinutes > 0 &&
		p.BufferMinutes >= 0 &&
		p.MinNoticeHours >= 0 &&
		p.MaxDaysAhead >= 1
}

// Location resolves the page's configured timezone.
// An unloadable timezone falls back to UTC rather than failing the request.
func (p *BookingPage) Location() *time.Location {
	if p.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(p.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
