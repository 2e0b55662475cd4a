package scheduler

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Ebi50/training28-sub000/internal/constants"
	"github.com/Ebi50/training28-sub000/internal/models"
	"github.com/Ebi50/training28-sub000/internal/slots"
	"github.com/Ebi50/training28-sub000/internal/utils"
	"github.com/Ebi50/training28-sub000/internal/workout"
)

// sessionProfile is the stress rate and the longest sensible duration of a session type.
type sessionProfile struct {
	tssPerHour float64
	maxMinutes int
}

var profiles = map[models.SessionType]sessionProfile{
	models.SessionLIT: {tssPerHour: 40, maxMinutes: 180},
	models.SessionHIT: {tssPerHour: 90, maxMinutes: 90},
	models.SessionREC: {tssPerHour: 25, maxMinutes: 60},
}

// dayPlan is the intent for one day before it is fitted into slots.
type dayPlan struct {
	date    time.Time
	typ     models.SessionType
	subType models.SubType
	tss     int
	slots   []models.TimeSlot
	// maxMinutes overrides the type cap when lower, e.g. the weekly HIT budget.
	maxMinutes int
}

// builder turns day intents into sessions for one generation run.
type builder struct {
	cfg       PlanningConfig
	params    models.PlanningParameters
	describer *workout.Describer
}

// idealDuration converts a stress target into minutes for the type, capping
// both at the type's maximum duration.
func (b *builder) idealDuration(d dayPlan) (minutes, tss int, note string) {
	p := profiles[d.typ]
	limit := p.maxMinutes
	if d.maxMinutes > 0 && d.maxMinutes < limit {
		limit = d.maxMinutes
	}
	minutes = int(math.Round(float64(d.tss) / p.tssPerHour * 60))
	tss = d.tss
	if minutes > limit {
		capped := int(math.Round(p.tssPerHour * float64(limit) / 60))
		note = fmt.Sprintf("Capped at %d min: target lowered from %d to %d TSS", limit, tss, capped)
		minutes, tss = limit, capped
	}
	return minutes, tss, note
}

func (b *builder) build(d dayPlan) []models.TrainingSession {
	ideal, tss, capNote := b.idealDuration(d)
	if ideal <= 0 || tss <= 0 {
		return nil
	}

	if slots.NeedsSplit(d.slots, ideal, d.typ, b.cfg.SplitThreshold, b.cfg.LongRideSplitMinutes) {
		return b.split(d, ideal, tss, capNote)
	}

	var slot models.TimeSlot
	switch {
	case len(d.slots) == 1:
		slot = d.slots[0]
	default:
		var ok bool
		slot, ok = slots.FindOptimalSlot(d.slots, ideal, b.preferences(d.typ))
		if !ok {
			slot, _ = slots.Longest(d.slots)
		}
	}

	duration := min(ideal, slot.DurationMinutes())
	s := b.newSession(sessionID(d.date, d.typ, 0), d.date, d.typ, d.subType, duration, tss, slot)
	s.AddNote(capNote)

	ratio := float64(duration) / float64(ideal)
	switch {
	case ratio < b.cfg.SplitThreshold:
		adjusted := int(math.Round(float64(tss) * ratio))
		s.Reduction = &models.TssReduction{
			OriginalTSS:       tss,
			IdealDuration:     ideal,
			AvailableDuration: duration,
		}
		s.TargetTSS = adjusted
		s.AddNote(fmt.Sprintf("TSS reduced from %d to %d: %d of %d min available", tss, adjusted, duration, ideal))
	case ratio < 1-constants.NoteRatioEpsilon:
		s.AddNote(fmt.Sprintf("Shortened to %d of %d min to fit the slot (%.0f%%)", duration, ideal, ratio*100))
	}

	s.Description = b.describer.Describe(s)
	return []models.TrainingSession{s}
}

// split spreads the day over every slot. The longest slot carries the day's
// type and the others become endurance riding. Target stress is apportioned
// so the parts add up to the day's target.
func (b *builder) split(d dayPlan, ideal, tss int, capNote string) []models.TrainingSession {
	ordered := slots.SplitOrder(d.slots)
	shares := slots.SplitShares(len(ordered))
	parts := apportion(tss, shares)

	out := make([]models.TrainingSession, 0, len(ordered))
	for i, slot := range ordered {
		typ, sub := d.typ, d.subType
		if i > 0 {
			typ, sub = models.SessionLIT, models.SubEndurance
		}
		partIdeal := int(math.Round(float64(ideal) * shares[i]))
		duration := min(partIdeal, slot.DurationMinutes())
		if duration <= 0 || parts[i] <= 0 {
			continue
		}

		s := b.newSession(sessionID(d.date, typ, i+1), d.date, typ, sub, duration, parts[i], slot)
		if i == 0 {
			s.AddNote(capNote)
		}
		s.AddNote(fmt.Sprintf("Part %d of %d: %.0f%% of the day's %d TSS", i+1, len(ordered), shares[i]*100, tss))
		if duration < partIdeal {
			s.AddNote(fmt.Sprintf("Fitted %d of %d min", duration, partIdeal))
		}
		s.Description = b.describer.Describe(s)
		out = append(out, s)
	}
	return out
}

func (b *builder) newSession(id string, date time.Time, typ models.SessionType, sub models.SubType, duration, tss int, slot models.TimeSlot) models.TrainingSession {
	end, err := utils.AddMinutes(slot.StartTime, duration)
	if err != nil {
		end = slot.EndTime
	}
	return models.TrainingSession{
		ID:          id,
		Date:        utils.FormatDate(date),
		Type:        typ,
		SubType:     sub,
		DurationMin: duration,
		TargetTSS:   tss,
		Indoor:      b.indoor(slot, typ),
		TimeSlot:    &models.SessionWindow{StartTime: slot.StartTime, EndTime: end},
	}
}

// indoor picks the trainer for hard sessions when the slot allows both.
func (b *builder) indoor(slot models.TimeSlot, typ models.SessionType) bool {
	if !b.params.IndoorAllowed {
		return false
	}
	switch slot.Kind {
	case models.SlotIndoor:
		return true
	case models.SlotOutdoor:
		return false
	default:
		return typ == models.SessionHIT
	}
}

func (b *builder) preferences(typ models.SessionType) slots.Preferences {
	switch typ {
	case models.SessionHIT:
		return slots.Preferences{Indoor: b.params.IndoorAllowed}
	case models.SessionLIT:
		return slots.Preferences{Outdoor: true}
	default:
		return slots.Preferences{}
	}
}

func sessionID(date time.Time, typ models.SessionType, part int) string {
	id := fmt.Sprintf("%s-%s", utils.FormatDate(date), strings.ToLower(string(typ)))
	if part > 0 {
		id = fmt.Sprintf("%s-%d", id, part)
	}
	return id
}

// apportion splits total by shares into integers that sum to total.
func apportion(total int, shares []float64) []int {
	out := make([]int, len(shares))
	assigned := 0
	for i := range shares {
		if i == len(shares)-1 {
			out[i] = total - assigned
			break
		}
		out[i] = int(math.Round(float64(total) * shares[i]))
		assigned += out[i]
	}
	return out
}
