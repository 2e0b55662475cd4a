// Package season applies goals and training camps to planning parameters.
package season

import (
	"math"
	"sort"
	"time"

	"github.com/Ebi50/training28-sub000/internal/constants"
	"github.com/Ebi50/training28-sub000/internal/models"
	"github.com/Ebi50/training28-sub000/internal/slots"
	"github.com/Ebi50/training28-sub000/internal/utils"
)

// TaperStatus is the result of a taper look-ahead.
type TaperStatus struct {
	ShouldTaper   bool
	Goal          *models.SeasonGoal
	DaysRemaining int
}

// TaperDays returns the goal's taper lead time, falling back to the default.
func TaperDays(g models.SeasonGoal) int {
	if g.Taper.DaysBeforeEvent > 0 {
		return g.Taper.DaysBeforeEvent
	}
	return constants.DefaultTaperLeadDays
}

// ActiveCamp returns the first camp whose date range contains date.
func ActiveCamp(camps []models.TrainingCamp, date time.Time) *models.TrainingCamp {
	day := utils.Midnight(date)
	for i, c := range camps {
		start, err := utils.ParseDate(c.StartDate)
		if err != nil {
			continue
		}
		end, err := utils.ParseDate(c.EndDate)
		if err != nil {
			continue
		}
		if !day.Before(start) && !day.After(end) {
			return &camps[i]
		}
	}
	return nil
}

// ApplyCampOverrides biases parameters toward aerobic volume for a camp week.
func ApplyCampOverrides(params models.PlanningParameters, camp models.TrainingCamp) models.PlanningParameters {
	out := params
	out.WeeklyHours = params.WeeklyHours * (1 + camp.VolumeBump/100)
	out.MaxHitDays = min(params.MaxHitDays, camp.HitCap)
	out.LitRatio = math.Max(params.LitRatio, constants.CampMinLitRatio)
	if len(params.AvailableSlots) == 0 {
		out.AvailableSlots = slots.CampSlots()
	}
	out.ActiveCamp = &camp
	return out
}

// PostCampDeload lightens the parameters during the deload days after a camp.
// The second return value reports whether the deload applies on date.
func PostCampDeload(params models.PlanningParameters, camp models.TrainingCamp, date time.Time) (models.PlanningParameters, bool) {
	if camp.DeloadDays <= 0 {
		return params, false
	}
	end, err := utils.ParseDate(camp.EndDate)
	if err != nil {
		return params, false
	}
	after := utils.DaysBetween(end, date)
	if after < 1 || after > camp.DeloadDays {
		return params, false
	}

	out := params
	out.WeeklyHours = params.WeeklyHours * (1 - camp.PostVolumeReduction/100)
	out.MaxHitDays = min(params.MaxHitDays, 1)
	out.LitRatio = math.Max(params.LitRatio, constants.PostCampMinLitRatio)
	return out, true
}

// RecentCampDeload finds a camp whose deload window covers date and applies it.
func RecentCampDeload(params models.PlanningParameters, camps []models.TrainingCamp, date time.Time) (models.PlanningParameters, *models.TrainingCamp) {
	for i := range camps {
		if out, ok := PostCampDeload(params, camps[i], date); ok {
			return out, &camps[i]
		}
	}
	return params, nil
}

// UpcomingGoals returns goals dated within [from, from+daysAhead], soonest first.
func UpcomingGoals(goals []models.SeasonGoal, from time.Time, daysAhead int) []models.SeasonGoal {
	if daysAhead <= 0 {
		daysAhead = constants.DefaultUpcomingDays
	}
	var out []models.SeasonGoal
	for _, g := range goals {
		d, err := utils.ParseDate(g.Date)
		if err != nil {
			continue
		}
		days := utils.DaysBetween(from, d)
		if days >= 0 && days <= daysAhead {
			out = append(out, g)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// TaperGoal returns the first goal whose taper window has begun by weekStart.
func TaperGoal(goals []models.SeasonGoal, weekStart time.Time) *models.SeasonGoal {
	for _, g := range UpcomingGoals(goals, weekStart, constants.DefaultUpcomingDays) {
		d, _ := utils.ParseDate(g.Date)
		if utils.DaysBetween(weekStart, d) <= TaperDays(g) {
			goal := g
			return &goal
		}
	}
	return nil
}

// ShouldTaper looks three weeks ahead for a goal whose taper has started.
func ShouldTaper(goals []models.SeasonGoal, date time.Time) TaperStatus {
	upcoming := UpcomingGoals(goals, date, constants.TaperLookaheadDays)
	if len(upcoming) == 0 {
		return TaperStatus{}
	}
	next := upcoming[0]
	d, _ := utils.ParseDate(next.Date)
	remaining := utils.DaysBetween(date, d)
	if remaining > TaperDays(next) {
		return TaperStatus{DaysRemaining: remaining}
	}
	return TaperStatus{ShouldTaper: true, Goal: &next, DaysRemaining: remaining}
}

// TaperIntensity falls linearly from 1.0 at the start of the taper to 0.6 on race day.
func TaperIntensity(daysRemaining, taperDays int) float64 {
	if taperDays <= 0 || daysRemaining >= taperDays {
		return 1.0
	}
	if daysRemaining < 0 {
		daysRemaining = 0
	}
	progress := float64(taperDays-daysRemaining) / float64(taperDays)
	return 1.0 - progress*(1-constants.TaperMinIntensity)
}

// NextEvent returns the date of the soonest A-priority goal on or after from,
// or the soonest goal of any priority when there is no A goal.
func NextEvent(goals []models.SeasonGoal, from time.Time) *time.Time {
	var fallback *time.Time
	for _, g := range UpcomingGoals(goals, from, math.MaxInt32) {
		d, _ := utils.ParseDate(g.Date)
		if g.Priority == models.PriorityA {
			return &d
		}
		if fallback == nil {
			fallback = &d
		}
	}
	return fallback
}
