// Package planner assembles stored athlete data into plan requests and
// persists what the scheduler produces.
package planner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Ebi50/training28-sub000/internal/load"
	"github.com/Ebi50/training28-sub000/internal/logger"
	"github.com/Ebi50/training28-sub000/internal/models"
	"github.com/Ebi50/training28-sub000/internal/scheduler"
	"github.com/Ebi50/training28-sub000/internal/season"
	"github.com/Ebi50/training28-sub000/internal/storage"
	"github.com/Ebi50/training28-sub000/internal/utils"
)

// Reader is the read side of storage a plan request needs.
type Reader interface {
	GetAthlete(id string) (models.Athlete, error)
	GetSlots(athleteID string) ([]models.TimeSlot, error)
	GetGoals(athleteID string) ([]models.SeasonGoal, error)
	GetCamps(athleteID string) ([]models.TrainingCamp, error)
	GetDailyLoads(athleteID, from, to string) ([]models.DailyLoad, error)
	GetPlan(athleteID, weekStart string) (models.WeeklyPlan, error)
}

// maxBlockWeeks bounds how far back a block is traced through stored plans.
const maxBlockWeeks = 12

// Store adds the writes used after generation.
type Store interface {
	Reader
	GetActivities(athleteID, from, to string) ([]models.Activity, error)
	SaveDailyLoads(athleteID string, loads []models.DailyLoad) error
	SavePlan(plan models.WeeklyPlan) (int, error)
}

// BuildRequest gathers slots, goals, camps and the load history preceding
// weekStart for athlete. lookbackDays bounds the history window.
func BuildRequest(r Reader, athlete models.Athlete, weekStart, today time.Time, lookbackDays int) (scheduler.PlanRequest, error) {
	weekStart = utils.WeekStart(weekStart)

	slots, err := r.GetSlots(athlete.ID)
	if err != nil {
		return scheduler.PlanRequest{}, fmt.Errorf("failed to load time slots: %w", err)
	}
	goals, err := r.GetGoals(athlete.ID)
	if err != nil {
		return scheduler.PlanRequest{}, fmt.Errorf("failed to load goals: %w", err)
	}
	camps, err := r.GetCamps(athlete.ID)
	if err != nil {
		return scheduler.PlanRequest{}, fmt.Errorf("failed to load camps: %w", err)
	}

	from := utils.FormatDate(weekStart.AddDate(0, 0, -lookbackDays))
	through := utils.FormatDate(weekStart.AddDate(0, 0, -1))
	history, err := r.GetDailyLoads(athlete.ID, from, through)
	if err != nil {
		return scheduler.PlanRequest{}, fmt.Errorf("failed to load training history: %w", err)
	}

	params := models.ParametersFromAthlete(athlete, slots, goals)
	camp := season.ActiveCamp(camps, weekStart)
	if camp == nil {
		var deload *models.TrainingCamp
		params, deload = season.RecentCampDeload(params, camps, weekStart)
		if deload != nil {
			logger.Debug("Post-camp deload applied", "athlete", athlete.ID, "camp", deload.Name)
		}
	}

	block, err := BlockPosition(r, athlete.ID, weekStart)
	if err != nil {
		return scheduler.PlanRequest{}, err
	}

	return scheduler.PlanRequest{
		UserID:    athlete.ID,
		WeekStart: weekStart,
		Today:     today,
		Params:    params,
		History:   history,
		Profile:   athlete,
		Goals:     goals,
		Camp:      camp,
		EventDate: EventDate(athlete, goals, today),
		WeekIndex: block.WeekIndex,

		AfterRecoveryWeek: block.AfterRecovery,
	}, nil
}

// Block locates a week inside the athlete's current training block.
type Block struct {
	// WeekIndex is 1 for the first week after a recovery week or a gap
	// in the stored plans.
	WeekIndex int
	// AfterRecovery is set when the previous week was planned as recovery.
	AfterRecovery bool
}

// BlockPosition counts the consecutive planned weeks before weekStart back to
// the last recovery week or the first unplanned week.
func BlockPosition(r Reader, athleteID string, weekStart time.Time) (Block, error) {
	b := Block{WeekIndex: 1}
	for i := 1; i <= maxBlockWeeks; i++ {
		prev := utils.FormatDate(weekStart.AddDate(0, 0, -7*i))
		plan, err := r.GetPlan(athleteID, prev)
		if errors.Is(err, storage.ErrNotFound) {
			break
		}
		if err != nil {
			return Block{}, fmt.Errorf("failed to load plan for %s: %w", prev, err)
		}
		if plan.Constraints.RecoveryWeek {
			b.AfterRecovery = i == 1
			break
		}
		b.WeekIndex++
	}
	return b, nil
}

// EventDate prefers the athlete's explicit event date over the season goals.
func EventDate(athlete models.Athlete, goals []models.SeasonGoal, today time.Time) *time.Time {
	if athlete.EventDate != nil {
		if d, err := utils.ParseDate(*athlete.EventDate); err == nil {
			return &d
		}
		logger.Warn("Ignoring malformed event date", "athlete", athlete.ID, "date", *athlete.EventDate)
	}
	return season.NextEvent(goals, today)
}

// Generate builds and stores a new plan revision for the week containing weekStart.
func Generate(ctx context.Context, cfg scheduler.PlanningConfig, s Store, athleteID string, weekStart, today time.Time, lookbackDays int) (models.WeeklyPlan, error) {
	athlete, err := s.GetAthlete(athleteID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.WeeklyPlan{}, fmt.Errorf("athlete %q: %w", athleteID, err)
		}
		return models.WeeklyPlan{}, err
	}

	req, err := BuildRequest(s, athlete, weekStart, today, lookbackDays)
	if err != nil {
		return models.WeeklyPlan{}, err
	}

	plan, err := scheduler.GenerateWeeklyPlan(ctx, cfg, req)
	if err != nil {
		return models.WeeklyPlan{}, err
	}

	rev, err := s.SavePlan(plan)
	if err != nil {
		return models.WeeklyPlan{}, fmt.Errorf("failed to save plan: %w", err)
	}
	plan.Revision = rev
	logger.Info("Plan generated", "athlete", athleteID, "week", plan.WeekStartDate, "revision", rev, "tss", plan.TotalTSS)
	return plan, nil
}

// RefreshLoads recomputes the athlete's CTL/ATL chain from every logged
// activity, stepping rest days through the given date, and stores it.
func RefreshLoads(s Store, athleteID string, through time.Time) ([]models.DailyLoad, error) {
	activities, err := s.GetActivities(athleteID, "0000-01-01", utils.FormatDate(through))
	if err != nil {
		return nil, fmt.Errorf("failed to load activities: %w", err)
	}
	history, err := load.BuildHistory(load.FromActivities(activities), nil, utils.FormatDate(through))
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild load history: %w", err)
	}
	if len(history) == 0 {
		return nil, nil
	}
	if err := s.SaveDailyLoads(athleteID, history); err != nil {
		return nil, fmt.Errorf("failed to save load history: %w", err)
	}
	return history, nil
}
