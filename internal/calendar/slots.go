package calendar

import (
	"fmt"
	"sort"
	"time"
)

// Working hours used for slot proposals.
const (
	WorkdayStartHour = 9
	WorkdayEndHour   = 17
)

// FindFreeSlots computes the free intervals of at least the given duration
// within working hours on the given day. Busy ranges may overlap and
// arrive in any order. Duration defaults to one hour when not positive.
func FindFreeSlots(day time.Time, busy []TimeRange, duration time.Duration) []AvailableSlot {
	if duration <= 0 {
		duration = time.Hour
	}

	workStart := time.Date(day.Year(), day.Month(), day.Day(), WorkdayStartHour, 0, 0, 0, day.Location())
	workEnd := time.Date(day.Year(), day.Month(), day.Day(), WorkdayEndHour, 0, 0, 0, day.Location())

	// Clamp busy ranges to the working window and sort by start.
	var ranges []TimeRange
	for _, b := range busy {
		if !b.End.After(workStart) || !b.Start.Before(workEnd) {
			continue
		}
		start, end := b.Start, b.End
		if start.Before(workStart) {
			start = workStart
		}
		if end.After(workEnd) {
			end = workEnd
		}
		ranges = append(ranges, TimeRange{Start: start, End: end})
	}
	sort.Slice(ranges, func(i, j int) bool {
		return ranges[i].Start.Before(ranges[j].Start)
	})

	var slots []AvailableSlot
	cursor := workStart

	for _, r := range ranges {
		if r.Start.After(cursor) && r.Start.Sub(cursor) >= duration {
			slots = append(slots, AvailableSlot{Start: cursor, End: r.Start})
		}
		if r.End.After(cursor) {
			cursor = r.End
		}
	}

	if workEnd.After(cursor) && workEnd.Sub(cursor) >= duration {
		slots = append(slots, AvailableSlot{Start: cursor, End: workEnd})
	}

	return slots
}

// FormatSlot renders a slot as a human readable suggestion.
func FormatSlot(slot AvailableSlot) string {
	return fmt.Sprintf("%s at %s",
		slot.Start.Format("2006-01-02"),
		slot.Start.Format("15:04"))
}
