package models

import "github.com/Ebi50/training28-sub000/internal/constants"

// Guardrails are global safety limits that bound a planning run.
type Guardrails struct {
	MaxRampRate            float64 `json:"max_ramp_rate" toml:"max_ramp_rate"`
	MinTSB                 float64 `json:"min_tsb" toml:"min_tsb"`
	MaxTSB                 float64 `json:"max_tsb" toml:"max_tsb"`
	NoHitBackToBack        bool    `json:"no_hit_back_to_back" toml:"no_hit_back_to_back"`
	MinRecoveryAfterHitHrs int     `json:"min_recovery_after_hit_hrs" toml:"min_recovery_after_hit_hrs"`
	MaxHitMinutesPerWeek   int     `json:"max_hit_minutes_per_week" toml:"max_hit_minutes_per_week"`
	TSBBeforeRace          float64 `json:"tsb_before_race" toml:"tsb_before_race"`
	MaxConsecutiveHitWeeks int     `json:"max_consecutive_hit_weeks" toml:"max_consecutive_hit_weeks"`
}

// DefaultGuardrails returns the stock safety limits.
func DefaultGuardrails() Guardrails {
	return Guardrails{
		MaxRampRate:            constants.DefaultMaxRampRate,
		MinTSB:                 constants.DefaultMinTSB,
		MaxTSB:                 constants.DefaultMaxTSB,
		NoHitBackToBack:        constants.DefaultNoHitBackToBack,
		MinRecoveryAfterHitHrs: constants.DefaultMinRecoveryAfterHitHrs,
		MaxHitMinutesPerWeek:   constants.DefaultMaxHitMinutesPerWeek,
		TSBBeforeRace:          constants.DefaultTSBBeforeRace,
		MaxConsecutiveHitWeeks: constants.DefaultMaxConsecutiveHitWeeks,
	}
}

// PlanningParameters is the frozen input of one generation run.
type PlanningParameters struct {
	WeeklyHours    float64       `json:"weekly_hours"`
	LitRatio       float64       `json:"lit_ratio"`
	MaxHitDays     int           `json:"max_hit_days"`
	RampRate       float64       `json:"ramp_rate"`
	TSBTarget      float64       `json:"tsb_target"`
	IndoorAllowed  bool          `json:"indoor_allowed"`
	AvailableSlots []TimeSlot    `json:"available_slots"`
	ActiveCamp     *TrainingCamp `json:"active_camp,omitempty"`
	UpcomingGoals  []SeasonGoal  `json:"upcoming_goals"`
}

// ParametersFromAthlete builds planning parameters from an athlete's standing defaults.
func ParametersFromAthlete(a Athlete, slots []TimeSlot, goals []SeasonGoal) PlanningParameters {
	return PlanningParameters{
		WeeklyHours:    a.WeeklyHours,
		LitRatio:       a.LitRatio,
		MaxHitDays:     a.MaxHitDays,
		RampRate:       constants.DefaultMaxRampRate,
		TSBTarget:      constants.DefaultTSBBeforeRace,
		IndoorAllowed:  a.IndoorAllowed,
		AvailableSlots: slots,
		UpcomingGoals:  goals,
	}
}
