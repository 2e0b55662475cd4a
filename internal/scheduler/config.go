package scheduler

import (
	"errors"
	"time"

	"github.com/Ebi50/training28-sub000/internal/constants"
	"github.com/Ebi50/training28-sub000/internal/models"
	"github.com/Ebi50/training28-sub000/internal/predictor"
)

var (
	ErrMissingPhysiology = errors.New("athlete profile needs an FTP or LTHR to estimate training stress")
	ErrInvalidHours      = errors.New("weekly hours must be greater than 0")
)

// PlanningConfig carries every tunable of a generation run. The generator
// holds no state of its own between calls.
type PlanningConfig struct {
	Guardrails            models.Guardrails
	SplitThreshold        float64
	LongRideSplitMinutes  int
	RecoveryWeekFrequency int
	RecoveryWeekReduction float64
	BaseWeeklyTSS         float64
	UseML                 bool
	Predictor             predictor.Predictor
}

// DefaultPlanningConfig returns the stock tuning with the heuristic distribution.
func DefaultPlanningConfig() PlanningConfig {
	return PlanningConfig{
		Guardrails:            models.DefaultGuardrails(),
		SplitThreshold:        constants.DefaultSplitThreshold,
		LongRideSplitMinutes:  constants.DefaultLongRideSplitMinutes,
		RecoveryWeekFrequency: constants.DefaultRecoveryWeekFrequency,
		RecoveryWeekReduction: constants.DefaultRecoveryWeekReduction,
		BaseWeeklyTSS:         constants.DefaultBaseWeeklyTSS,
	}
}

func (c PlanningConfig) withDefaults() PlanningConfig {
	d := DefaultPlanningConfig()
	if c.Guardrails == (models.Guardrails{}) {
		c.Guardrails = d.Guardrails
	}
	if c.SplitThreshold <= 0 {
		c.SplitThreshold = d.SplitThreshold
	}
	if c.LongRideSplitMinutes <= 0 {
		c.LongRideSplitMinutes = d.LongRideSplitMinutes
	}
	if c.RecoveryWeekFrequency <= 0 {
		c.RecoveryWeekFrequency = d.RecoveryWeekFrequency
	}
	if c.RecoveryWeekReduction <= 0 {
		c.RecoveryWeekReduction = d.RecoveryWeekReduction
	}
	if c.BaseWeeklyTSS <= 0 {
		c.BaseWeeklyTSS = d.BaseWeeklyTSS
	}
	return c
}

// PlanRequest is everything known about one athlete's week.
type PlanRequest struct {
	UserID    string
	WeekStart time.Time
	Today     time.Time
	Params    models.PlanningParameters
	History   []models.DailyLoad
	Profile   models.Athlete
	Goals     []models.SeasonGoal
	Camp      *models.TrainingCamp
	EventDate *time.Time
	// WeekIndex is the 1-based week within the current block; 0 disables
	// recovery-week detection.
	WeekIndex int
	// AfterRecoveryWeek drops the previous week from the ramp baseline so
	// volume returns to the level trained before the recovery week.
	AfterRecoveryWeek bool
	// Now stamps the plan; zero means the wall clock.
	Now time.Time
}
