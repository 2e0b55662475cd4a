package slots

import (
	"time"

	"github.com/Ebi50/training28-sub000/internal/models"
)

var weekdays = []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}

// WeekdaySlots are the Monday to Friday morning and evening windows.
func WeekdaySlots() []models.TimeSlot {
	out := make([]models.TimeSlot, 0, 2*len(weekdays))
	for _, d := range weekdays {
		out = append(out, models.TimeSlot{Day: d, StartTime: "06:00", EndTime: "08:00", Kind: models.SlotBoth})
	}
	for _, d := range weekdays {
		out = append(out, models.TimeSlot{Day: d, StartTime: "18:00", EndTime: "20:00", Kind: models.SlotBoth})
	}
	return out
}

// DefaultSlots adds long outdoor weekend mornings to the weekday windows.
func DefaultSlots() []models.TimeSlot {
	out := WeekdaySlots()
	out = append(out,
		models.TimeSlot{Day: time.Saturday, StartTime: "08:00", EndTime: "12:00", Kind: models.SlotOutdoor},
		models.TimeSlot{Day: time.Sunday, StartTime: "08:00", EndTime: "12:00", Kind: models.SlotOutdoor},
	)
	return out
}

// CampSlots is the dense daily double-window template used during camps.
func CampSlots() []models.TimeSlot {
	out := make([]models.TimeSlot, 0, 14)
	for d := time.Sunday; d <= time.Saturday; d++ {
		out = append(out,
			models.TimeSlot{Day: d, StartTime: "07:00", EndTime: "12:00", Kind: models.SlotOutdoor},
			models.TimeSlot{Day: d, StartTime: "15:00", EndTime: "18:00", Kind: models.SlotOutdoor},
		)
	}
	return out
}
