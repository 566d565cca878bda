package domain

import "github.com/v0ronc/CRM-SchedulingService/pkg/types"

// Slot is one offerable time slot on a booking page
type Slot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}

// ContainsStart reports whether any slot in the list starts at start
func ContainsStart(slots []Slot, start types.TimeString) bool {
	for _, s := range slots {
		if s.StartTime == start {
			return true
		}
	}
	return false
}
