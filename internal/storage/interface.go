// Package storage defines the persistence contract shared by the SQLite and
// PostgreSQL backends.
package storage

import (
	"errors"

	"github.com/Ebi50/training28-sub000/internal/models"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrNotInitialized = errors.New("storage not initialized, run 'training28 init' first")
)

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Athletes
	SaveAthlete(models.Athlete) error
	GetAthlete(id string) (models.Athlete, error)
	ListAthletes() ([]models.Athlete, error)
	ListAutoUpdateAthletes() ([]models.Athlete, error)

	// Availability
	ReplaceSlots(athleteID string, slots []models.TimeSlot) error
	GetSlots(athleteID string) ([]models.TimeSlot, error)

	// Season
	SaveGoal(athleteID string, goal models.SeasonGoal) error
	GetGoals(athleteID string) ([]models.SeasonGoal, error)
	SaveCamp(athleteID string, camp models.TrainingCamp) error
	GetCamps(athleteID string) ([]models.TrainingCamp, error)

	// Load
	AddActivity(models.Activity) error
	GetActivities(athleteID, from, to string) ([]models.Activity, error)
	SaveDailyLoads(athleteID string, loads []models.DailyLoad) error
	GetDailyLoads(athleteID, from, to string) ([]models.DailyLoad, error)

	// Readiness
	SaveMorningCheck(athleteID string, check models.MorningCheck) error
	GetMorningChecks(athleteID, from, to string) ([]models.MorningCheck, error)

	// Plans
	// SavePlan stores the plan as a new revision of its week and returns the
	// revision number assigned.
	SavePlan(models.WeeklyPlan) (int, error)
	// GetPlan returns the latest revision for the athlete's week.
	GetPlan(athleteID, weekStart string) (models.WeeklyPlan, error)
	GetPlanRevision(athleteID, weekStart string, revision int) (models.WeeklyPlan, error)
	// UpdatePlan overwrites an existing revision in place, e.g. after daily adaptation.
	UpdatePlan(models.WeeklyPlan) error

	// Utils
	GetConfigPath() string
}
