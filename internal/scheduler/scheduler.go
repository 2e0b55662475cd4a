// Package scheduler generates a week of training sessions from load,
// phase, availability and guardrails.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/Ebi50/training28-sub000/internal/constants"
	"github.com/Ebi50/training28-sub000/internal/load"
	"github.com/Ebi50/training28-sub000/internal/logger"
	"github.com/Ebi50/training28-sub000/internal/models"
	"github.com/Ebi50/training28-sub000/internal/phase"
	"github.com/Ebi50/training28-sub000/internal/predictor"
	"github.com/Ebi50/training28-sub000/internal/quality"
	"github.com/Ebi50/training28-sub000/internal/season"
	"github.com/Ebi50/training28-sub000/internal/slots"
	"github.com/Ebi50/training28-sub000/internal/utils"
	"github.com/Ebi50/training28-sub000/internal/workout"
)

var errInvalidShape = errors.New("predictor returned an unusable weekly shape")

// GenerateWeeklyPlan builds the plan for the week containing req.WeekStart.
// A ramp-rate violation aborts before any session is built.
func GenerateWeeklyPlan(ctx context.Context, cfg PlanningConfig, req PlanRequest) (models.WeeklyPlan, error) {
	cfg = cfg.withDefaults()

	if !req.Profile.HasPhysiology() {
		return models.WeeklyPlan{}, ErrMissingPhysiology
	}

	weekStart := utils.WeekStart(req.WeekStart)
	today := req.Today
	if today.IsZero() {
		today = weekStart
	}
	params := req.Params
	if params.WeeklyHours <= 0 {
		return models.WeeklyPlan{}, ErrInvalidHours
	}
	params.MaxHitDays = max(params.MaxHitDays, 0)
	constraints := models.PlanConstraints{}

	// Step 1: Camp overrides
	camp := req.Camp
	if camp == nil {
		camp = params.ActiveCamp
	}
	if camp != nil {
		params = season.ApplyCampOverrides(params, *camp)
		constraints.CampActive = camp.Name
	}

	// Step 2: Ramp-rate guard on the volume actually requested
	if err := load.CheckRampRate(params.WeeklyHours, rampHistory(req, weekStart), cfg.Guardrails.MaxRampRate); err != nil {
		logger.Warn("Plan generation aborted", "user", req.UserID, "week", utils.FormatDate(weekStart), "error", err)
		return models.WeeklyPlan{}, fmt.Errorf("week of %s: %w", utils.FormatDate(weekStart), err)
	}

	// Step 3: Taper and recovery-week reductions
	goals := req.Goals
	if len(goals) == 0 {
		goals = params.UpcomingGoals
	}
	taper := season.TaperGoal(goals, weekStart)
	if taper != nil {
		params.WeeklyHours *= constants.TaperVolumeFactor
		params.MaxHitDays = min(params.MaxHitDays, constants.TaperMaxHitDays)
		constraints.GoalApproaching = taper.Name
	}

	event := req.EventDate
	if event == nil {
		event = season.NextEvent(goals, today)
	}
	info := phase.CalculateWithBaseline(event, today, cfg.BaseWeeklyTSS)

	if phase.IsRecoveryWeek(req.WeekIndex, cfg.RecoveryWeekFrequency) {
		params.WeeklyHours *= 1 - cfg.RecoveryWeekReduction
		constraints.RecoveryWeek = true
	}
	constraints.AvailableHours = math.Round(params.WeeklyHours*100) / 100
	constraints.MaxHitDays = params.MaxHitDays

	// Step 4: Spread the weekly stress over the days
	current := load.Current(req.History)
	tsb := current.TSB()
	weeklyTSS := params.WeeklyHours * constants.TSSPerHour
	targets := distribute(ctx, cfg, req, weekStart, weeklyTSS)

	// Step 5: Pick hard days
	hitDays := selectHitDays(params.MaxHitDays, tsb)

	available := params.AvailableSlots
	if len(available) == 0 {
		available = slots.WeekdaySlots()
	}

	b := &builder{cfg: cfg, params: params, describer: workout.NewDescriber()}
	hitBudget := cfg.Guardrails.MaxHitMinutesPerWeek
	hitIndex := 0

	// Step 6: Build each day
	var sessions []models.TrainingSession
	for i := 0; i < 7; i++ {
		date := weekStart.AddDate(0, 0, i)
		daySlots := slots.ForDate(available, date, nil)
		if len(daySlots) == 0 {
			continue
		}
		tss := int(math.Round(targets[i]))
		if tss <= 0 {
			continue
		}

		typ := sessionType(tsb, hitDays[date.Weekday()], taper != nil)
		d := dayPlan{date: date, typ: typ, tss: tss, slots: daySlots}
		if typ == models.SessionHIT && cfg.Guardrails.MaxHitMinutesPerWeek > 0 {
			if hitBudget < constants.MinHitSessionMinutes {
				d.typ = models.SessionLIT
			} else {
				d.maxMinutes = hitBudget
			}
		}
		d.subType = subType(d.typ, info.Phase, hitIndex)

		built := b.build(d)
		for _, s := range built {
			if s.Type == models.SessionHIT {
				hitBudget -= s.DurationMin
			}
		}
		if d.typ == models.SessionHIT {
			hitIndex++
		}
		sessions = append(sessions, built...)
	}

	// Step 7: Totals and quality
	plan := models.WeeklyPlan{
		ID:            utils.ISOWeekID(weekStart),
		WeekStartDate: utils.FormatDate(weekStart),
		UserID:        req.UserID,
		Revision:      1,
		Phase:         info.Phase,
		Sessions:      sessions,
		Constraints:   constraints,
		GeneratedAt:   req.Now,
	}
	if plan.GeneratedAt.IsZero() {
		plan.GeneratedAt = time.Now().UTC()
	}
	if plan.Sessions == nil {
		plan.Sessions = []models.TrainingSession{}
	}

	minutes := 0
	for _, s := range sessions {
		minutes += s.DurationMin
		plan.TotalTSS += s.TargetTSS
		if s.Type == models.SessionHIT {
			plan.HitSessions++
		}
	}
	plan.TotalHours = math.Round(float64(minutes)/60*100) / 100
	plan.LitRatio = quality.LowIntensityRatio(sessions, 0)
	plan.Quality = quality.Assess(sessions, params)

	logger.Debug("Generated weekly plan",
		"user", req.UserID,
		"week", plan.ID,
		"phase", plan.Phase,
		"sessions", len(sessions),
		"tss", plan.TotalTSS,
		"quality", plan.Quality.Score,
	)
	return plan, nil
}

// distribute returns the stress target per day offset from weekStart. The
// predictor's shape is used when enabled and usable; anything else falls back
// to the fixed weekday weights.
func distribute(ctx context.Context, cfg PlanningConfig, req PlanRequest, weekStart time.Time, weeklyTSS float64) [7]float64 {
	var out [7]float64
	if cfg.UseML && cfg.Predictor != nil {
		shape, err := cfg.Predictor.PredictWeek(ctx, predictor.Input{
			Athlete:   req.Profile,
			History:   req.History,
			WeekStart: weekStart,
		})
		if err == nil {
			if weights, ok := normalize(shape); ok {
				for i, w := range weights {
					out[i] = weeklyTSS * w
				}
				return out
			}
			err = errInvalidShape
		}
		logger.Warn("Stress predictor unavailable, using weekday weights", "user", req.UserID, "error", err)
	}

	for i := range out {
		day := weekStart.AddDate(0, 0, i).Weekday()
		out[i] = weeklyTSS * constants.DayWeights[day]
	}
	return out
}

func normalize(shape []float64) ([7]float64, bool) {
	var out [7]float64
	if len(shape) != 7 {
		return out, false
	}
	var sum float64
	for _, v := range shape {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return out, false
		}
		sum += v
	}
	if sum <= 0 {
		return out, false
	}
	for i, v := range shape {
		out[i] = v / sum
	}
	return out, true
}

// selectHitDays returns the preferred hard weekdays, none when too fatigued.
func selectHitDays(maxHitDays int, tsb float64) map[time.Weekday]bool {
	days := make(map[time.Weekday]bool)
	if tsb < constants.TSBForceRecovery {
		return days
	}
	for i, d := range constants.PreferredHitDays {
		if i >= maxHitDays {
			break
		}
		days[time.Weekday(d)] = true
	}
	return days
}

func sessionType(tsb float64, hitDay, tapering bool) models.SessionType {
	switch {
	case tsb < constants.TSBForceRecovery:
		return models.SessionREC
	case hitDay && !tapering:
		return models.SessionHIT
	default:
		return models.SessionLIT
	}
}

// rampHistory is the history the ramp guard measures against. After a
// recovery week the days from weekStart-7 on are left out.
func rampHistory(req PlanRequest, weekStart time.Time) []models.DailyLoad {
	if !req.AfterRecoveryWeek {
		return req.History
	}
	cutoff := utils.FormatDate(weekStart.AddDate(0, 0, -7))
	for i, d := range req.History {
		if d.Date >= cutoff {
			return req.History[:i]
		}
	}
	return req.History
}

func subType(typ models.SessionType, p models.TrainingPhase, hitIndex int) models.SubType {
	switch typ {
	case models.SessionHIT:
		switch p {
		case models.PhasePeak, models.PhaseTaper:
			return models.SubVO2Max
		case models.PhaseBuild:
			if hitIndex%2 == 1 {
				return models.SubVO2Max
			}
			return models.SubThreshold
		default:
			return models.SubThreshold
		}
	case models.SessionREC:
		return models.SubRecovery
	default:
		return models.SubEndurance
	}
}
