package slots

import (
	"fmt"
	"time"

	"github.com/Ebi50/training28-sub000/internal/models"
	"github.com/Ebi50/training28-sub000/internal/utils"
)

// ConflictType represents the type of slot configuration problem
type ConflictType string

const (
	ConflictOverlappingSlots ConflictType = "overlapping_slots"
	ConflictInvalidTime      ConflictType = "invalid_time"
	ConflictInvalidRange     ConflictType = "invalid_range"
	ConflictInvalidDay       ConflictType = "invalid_day"
	ConflictInvalidKind      ConflictType = "invalid_kind"
)

// Conflict represents one detected problem in the slot configuration
type Conflict struct {
	Type        ConflictType `json:"type"`
	Description string       `json:"description"`
	Day         time.Weekday `json:"day"`
	Items       []string     `json:"items"`      // slot ranges involved
	TimeRange   string       `json:"time_range"` // human-readable time range (if applicable)
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict `json:"conflicts"`
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, conflict := range vr.Conflicts {
		report += fmt.Sprintf("- %s\n", conflict.Description)
	}
	return report
}

// Validator checks slot configurations. It reports problems and never
// rewrites the slots it is given.
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// Validate checks every slot on its own and then every same-day pair for overlaps.
func (v *Validator) Validate(slots []models.TimeSlot) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	valid := make([]bool, len(slots))
	for i, s := range slots {
		rng := fmt.Sprintf("%s-%s", s.StartTime, s.EndTime)

		if s.Day < time.Sunday || s.Day > time.Saturday {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDay,
				Description: fmt.Sprintf("Slot %s has invalid day: %d", rng, int(s.Day)),
				Day:         s.Day,
				Items:       []string{rng},
			})
			continue
		}

		switch s.Kind {
		case models.SlotIndoor, models.SlotOutdoor, models.SlotBoth:
		default:
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidKind,
				Description: fmt.Sprintf("Slot on %s %s has invalid kind: %q", s.Day, rng, s.Kind),
				Day:         s.Day,
				Items:       []string{rng},
			})
		}

		if !utils.ValidateTimeFormat(s.StartTime) || !utils.ValidateTimeFormat(s.EndTime) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidTime,
				Description: fmt.Sprintf("Slot on %s has invalid time: %s", s.Day, rng),
				Day:         s.Day,
				Items:       []string{rng},
			})
			continue
		}

		if s.DurationMinutes() <= 0 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidRange,
				Description: fmt.Sprintf("Slot on %s must end after it starts: %s", s.Day, rng),
				Day:         s.Day,
				Items:       []string{rng},
				TimeRange:   rng,
			})
			continue
		}
		valid[i] = true
	}

	for i := 0; i < len(slots); i++ {
		if !valid[i] {
			continue
		}
		for j := i + 1; j < len(slots); j++ {
			if !valid[j] || !Overlaps(slots[i], slots[j]) {
				continue
			}
			a := fmt.Sprintf("%s-%s", slots[i].StartTime, slots[i].EndTime)
			b := fmt.Sprintf("%s-%s", slots[j].StartTime, slots[j].EndTime)
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictOverlappingSlots,
				Description: fmt.Sprintf("Overlapping slots on %s: %s and %s", slots[i].Day, a, b),
				Day:         slots[i].Day,
				Items:       []string{a, b},
				TimeRange:   overlapRange(slots[i], slots[j]),
			})
		}
	}

	return result
}

func overlapRange(a, b models.TimeSlot) string {
	s1, e1, _ := bounds(a)
	s2, e2, _ := bounds(b)
	return fmt.Sprintf("%s-%s", utils.FormatMinutes(max(s1, s2)), utils.FormatMinutes(min(e1, e2)))
}
