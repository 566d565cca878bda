package domain

// Default policy values for freshly created pages
const (
	DefaultSlotDurationMinutes = 30
	DefaultBufferMinutes       = 0
	DefaultMinNoticeHours      = 0
	DefaultMaxDaysAhead        = 30
	DefaultTimezone            = "UTC"
)

// Business validation constants (enforced at admin-write time)
const (
	MinBufferMinutes   = 0
	MaxBufferMinutes   = 240
	MinNoticeHoursMin  = 0
	MinNoticeHoursMax  = 720 // 30 days
	MinMaxDaysAhead    = 1
	MaxMaxDaysAhead    = 365
	MaxSlugLength      = 80
	MaxTitleLength     = 200
	MaxProspectNameLen = 255
	MaxReasonLength    = 500

	MaxTextAnswerLength     = 500
	MaxTextareaAnswerLength = 5000
)

// AllowedSlotDurations допустимые длительности слота в минутах
var AllowedSlotDurations = []int{15, 30, 45, 60}

// AllowedSlotDuration reports whether d is one of the supported slot durations
func AllowedSlotDuration(d int) bool {
	for _, v := range AllowedSlotDurations {
		if v == d {
			return true
		}
	}
	return false
}

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses bookings with these statuses do not block their slot
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
}

// ValidStatus reports whether s is a known booking status
func ValidStatus(s BookingStatus) bool {
	switch s {
	case StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	default:
		return false
	}
}
