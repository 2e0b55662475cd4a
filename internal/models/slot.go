package models

import (
	"fmt"
	"time"

	"github.com/Ebi50/training28-sub000/internal/constants"
)

// SlotKind describes where a time window can be used.
type SlotKind string

const (
	SlotIndoor  SlotKind = "indoor"
	SlotOutdoor SlotKind = "outdoor"
	SlotBoth    SlotKind = "both"
)

// TimeSlot is a recurring weekly availability window.
type TimeSlot struct {
	Day       time.Weekday `json:"day"`
	StartTime string       `json:"start_time"`
	EndTime   string       `json:"end_time"`
	Kind      SlotKind     `json:"kind"`
}

// DurationMinutes returns the window length, or 0 when either bound is malformed.
func (s TimeSlot) DurationMinutes() int {
	start, err := time.Parse(constants.TimeFormat, s.StartTime)
	if err != nil {
		return 0
	}
	end, err := time.Parse(constants.TimeFormat, s.EndTime)
	if err != nil {
		return 0
	}
	d := int(end.Sub(start).Minutes())
	if d < 0 {
		return 0
	}
	return d
}

func (s TimeSlot) String() string {
	return fmt.Sprintf("%s %s-%s (%s)", s.Day, s.StartTime, s.EndTime, s.Kind)
}
