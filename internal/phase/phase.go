// Package phase maps the distance to a target event onto a periodization
// block with its intensity mix and weekly stress range.
package phase

import (
	"math"
	"time"

	"github.com/Ebi50/training28-sub000/internal/constants"
	"github.com/Ebi50/training28-sub000/internal/models"
	"github.com/Ebi50/training28-sub000/internal/utils"
)

// Info is the phase reading for one day.
type Info struct {
	Phase        models.TrainingPhase        `json:"phase"`
	WeeksToEvent int                         `json:"weeks_to_event"`
	Description  string                      `json:"description"`
	Distribution models.CategoryDistribution `json:"distribution"`
	WeeklyTSS    TSSRange                    `json:"weekly_tss"`
}

// TSSRange is a weekly stress target with its tolerance band.
type TSSRange struct {
	Min    int `json:"min"`
	Target int `json:"target"`
	Max    int `json:"max"`
}

type multiplier struct {
	min, target, max float64
}

var distributions = map[models.TrainingPhase]models.CategoryDistribution{
	models.PhaseBase:        {LIT: 0.80, Tempo: 0.05, FTP: 0.05, VO2Max: 0.02, Anaerobic: 0.01, Neuromuscular: 0.02, Skill: 0.03, Recovery: 0.02},
	models.PhaseBuild:       {LIT: 0.50, Tempo: 0.15, FTP: 0.15, VO2Max: 0.10, Anaerobic: 0.03, Neuromuscular: 0.03, Skill: 0.02, Recovery: 0.02},
	models.PhasePeak:        {LIT: 0.40, Tempo: 0.10, FTP: 0.20, VO2Max: 0.15, Anaerobic: 0.08, Neuromuscular: 0.05, Skill: 0.01, Recovery: 0.01},
	models.PhaseTaper:       {LIT: 0.50, Tempo: 0.10, FTP: 0.15, VO2Max: 0.15, Anaerobic: 0.05, Neuromuscular: 0.03, Skill: 0.01, Recovery: 0.01},
	models.PhaseMaintenance: {LIT: 0.60, Tempo: 0.10, FTP: 0.10, VO2Max: 0.08, Anaerobic: 0.04, Neuromuscular: 0.04, Skill: 0.02, Recovery: 0.02},
}

var multipliers = map[models.TrainingPhase]multiplier{
	models.PhaseBase:        {0.9, 1.0, 1.1},
	models.PhaseBuild:       {0.95, 1.1, 1.2},
	models.PhasePeak:        {0.9, 1.0, 1.1},
	models.PhaseTaper:       {0.4, 0.5, 0.6},
	models.PhaseMaintenance: {0.7, 0.8, 0.9},
}

var descriptions = map[models.TrainingPhase]string{
	models.PhaseBase:        "Building aerobic base: high volume, low intensity",
	models.PhaseBuild:       "Progressive intensity: lactate threshold development",
	models.PhasePeak:        "Race-specific intensity: sharpening fitness",
	models.PhaseTaper:       "Reducing volume while maintaining intensity",
	models.PhaseMaintenance: "General fitness maintenance with balanced training",
}

// Calculate determines the phase with the default weekly baseline.
func Calculate(eventDate *time.Time, today time.Time) Info {
	return CalculateWithBaseline(eventDate, today, constants.DefaultBaseWeeklyTSS)
}

// CalculateWithBaseline determines the phase for today relative to an optional
// event. A missing event or one before today yields MAINTENANCE.
func CalculateWithBaseline(eventDate *time.Time, today time.Time, baseline float64) Info {
	if eventDate == nil {
		return build(models.PhaseMaintenance, 0, baseline)
	}
	days := utils.DaysBetween(today, *eventDate)
	if days < 0 {
		info := build(models.PhaseMaintenance, 0, baseline)
		info.Description = "Event has passed, maintenance mode"
		return info
	}

	weeks := int(math.Ceil(float64(days) / 7))
	switch {
	case weeks >= 16:
		return build(models.PhaseBase, weeks, baseline)
	case weeks >= 8:
		return build(models.PhaseBuild, weeks, baseline)
	case weeks >= 3:
		return build(models.PhasePeak, weeks, baseline)
	default:
		return build(models.PhaseTaper, weeks, baseline)
	}
}

func build(p models.TrainingPhase, weeks int, baseline float64) Info {
	return Info{
		Phase:        p,
		WeeksToEvent: weeks,
		Description:  descriptions[p],
		Distribution: distributions[p],
		WeeklyTSS:    WeeklyTSSTarget(p, baseline),
	}
}

// Distribution returns the intensity mix of a phase.
func Distribution(p models.TrainingPhase) models.CategoryDistribution {
	return distributions[p]
}

// Describe returns a one-line summary of a phase.
func Describe(p models.TrainingPhase) string {
	return descriptions[p]
}

// WeeklyTSSTarget scales the baseline by the phase multipliers.
func WeeklyTSSTarget(p models.TrainingPhase, baseline float64) TSSRange {
	m, ok := multipliers[p]
	if !ok {
		m = multipliers[models.PhaseMaintenance]
	}
	return TSSRange{
		Min:    int(math.Round(baseline * m.min)),
		Target: int(math.Round(baseline * m.target)),
		Max:    int(math.Round(baseline * m.max)),
	}
}

// ProgressiveTSS interpolates linearly from start to target across a block.
// Weeks outside 1..total return start.
func ProgressiveTSS(week, total int, start, target float64) int {
	if week <= 0 || week > total {
		return int(math.Round(start))
	}
	progress := float64(week) / float64(total)
	return int(math.Round(start + (target-start)*progress))
}

// IsRecoveryWeek reports whether a 1-based week index falls on the recovery cycle.
func IsRecoveryWeek(week, frequency int) bool {
	if frequency <= 0 {
		frequency = constants.DefaultRecoveryWeekFrequency
	}
	return week > 0 && week%frequency == 0
}

// RecoveryWeekTSS reduces a weekly target by the given fraction.
func RecoveryWeekTSS(tss float64, reduction float64) int {
	return int(math.Round(tss * (1 - reduction)))
}
