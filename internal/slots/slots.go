// Package slots answers availability questions over an athlete's weekly
// training windows.
package slots

import (
	"sort"
	"time"

	"github.com/Ebi50/training28-sub000/internal/models"
	"github.com/Ebi50/training28-sub000/internal/utils"
)

// Window is an externally booked interval on a specific date.
type Window struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// ForDay returns the slots of one weekday ordered by start time.
func ForDay(slots []models.TimeSlot, day time.Weekday) []models.TimeSlot {
	var out []models.TimeSlot
	for _, s := range slots {
		if s.Day == day {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return startMinutes(out[i]) < startMinutes(out[j])
	})
	return out
}

// ForDate returns the slots matching the date's weekday that do not overlap
// any booked window.
func ForDate(slots []models.TimeSlot, date time.Time, booked []Window) []models.TimeSlot {
	day := date.Weekday()
	var out []models.TimeSlot
	for _, s := range ForDay(slots, day) {
		free := true
		for _, b := range booked {
			if Overlaps(s, models.TimeSlot{Day: day, StartTime: b.StartTime, EndTime: b.EndTime, Kind: models.SlotBoth}) {
				free = false
				break
			}
		}
		if free {
			out = append(out, s)
		}
	}
	return out
}

// Overlaps reports whether two slots share a weekday and intersect in time.
func Overlaps(a, b models.TimeSlot) bool {
	if a.Day != b.Day {
		return false
	}
	s1, e1, ok1 := bounds(a)
	s2, e2, ok2 := bounds(b)
	if !ok1 || !ok2 {
		return false
	}
	return s1 < e2 && s2 < e1
}

// TotalWeeklyMinutes sums the length of every slot.
func TotalWeeklyMinutes(slots []models.TimeSlot) int {
	total := 0
	for _, s := range slots {
		total += s.DurationMinutes()
	}
	return total
}

// TotalMinutes sums the length of the given slots.
func TotalMinutes(slots []models.TimeSlot) int {
	return TotalWeeklyMinutes(slots)
}

// Longest returns the longest slot, the earliest one on ties.
func Longest(slots []models.TimeSlot) (models.TimeSlot, bool) {
	if len(slots) == 0 {
		return models.TimeSlot{}, false
	}
	best := slots[0]
	for _, s := range slots[1:] {
		if s.DurationMinutes() > best.DurationMinutes() {
			best = s
		}
	}
	return best, true
}

// IsIndoorSuitable reports whether a slot can host a trainer session.
func IsIndoorSuitable(s models.TimeSlot) bool {
	return s.Kind == models.SlotIndoor || s.Kind == models.SlotBoth
}

// IsOutdoorSuitable reports whether a slot can host a ride outside.
func IsOutdoorSuitable(s models.TimeSlot) bool {
	return s.Kind == models.SlotOutdoor || s.Kind == models.SlotBoth
}

func bounds(s models.TimeSlot) (int, int, bool) {
	start, err := utils.ParseTimeToMinutes(s.StartTime)
	if err != nil {
		return 0, 0, false
	}
	end, err := utils.ParseTimeToMinutes(s.EndTime)
	if err != nil {
		return 0, 0, false
	}
	return start, end, true
}

func startMinutes(s models.TimeSlot) int {
	start, _, ok := bounds(s)
	if !ok {
		return 0
	}
	return start
}
