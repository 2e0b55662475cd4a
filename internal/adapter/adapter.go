// Package adapter applies today's readiness to the sessions already planned
// for the day. Adaptation never changes a session's date or id.
package adapter

import (
	"fmt"
	"math"

	"github.com/Ebi50/training28-sub000/internal/constants"
	"github.com/Ebi50/training28-sub000/internal/logger"
	"github.com/Ebi50/training28-sub000/internal/models"
	"github.com/Ebi50/training28-sub000/internal/readiness"
	"github.com/Ebi50/training28-sub000/internal/workout"
)

// Adaptation is the outcome for one session.
type Adaptation struct {
	Session models.TrainingSession `json:"session"`
	Changed bool                   `json:"changed"`
	Reason  string                 `json:"reason"`
}

// Result is the outcome for a whole day.
type Result struct {
	Assessment   readiness.Assessment     `json:"assessment"`
	Adapted      []models.TrainingSession `json:"adapted"`
	Changed      bool                     `json:"changed"`
	TotalChanges int                      `json:"total_changes"`
	Reasons      []string                 `json:"reasons"`
}

// Alternative suggests what to do with a session that does not suit today.
type Alternative string

const (
	AlternativeNone     Alternative = ""
	AlternativeReduce   Alternative = "reduce"
	AlternativePostpone Alternative = "postpone"
	AlternativeSkip     Alternative = "skip"
)

type Feasibility struct {
	Feasible    bool        `json:"feasible"`
	Reason      string      `json:"reason,omitempty"`
	Alternative Alternative `json:"alternative,omitempty"`
}

type DailyTarget struct {
	TSS               int    `json:"tss"`
	AdjustmentPercent int    `json:"adjustment_percent"`
	Reason            string `json:"reason"`
}

const (
	feasibleHitReadiness = 0.55
	longSessionReadiness = 0.60
	longSessionMinutes   = 120
	forcedAdjustmentPct  = -70
	lowHitDurationFactor = 0.5
	lowHitTSSFactor      = 0.4
	lowLitFactor         = 0.6
)

// AdaptSession applies the most restrictive rule that matches. Forced
// recovery wins over every readiness band.
func AdaptSession(s models.TrainingSession, a readiness.Assessment) Adaptation {
	pct := a.Score * 100

	if a.ForceRecovery {
		out := s
		out.Type = models.SessionREC
		out.SubType = models.SubRecovery
		out.DurationMin = min(s.DurationMin, constants.RecoveryMaxDurationMin)
		out.TargetTSS = min(s.TargetTSS, constants.RecoveryMaxTSS)
		out.Description = fmt.Sprintf("Recovery forced: %s", a.Reason)
		out.AddNote(original(s))
		return Adaptation{Session: out, Changed: true, Reason: a.Reason}
	}

	switch a.Interpretation.Level {
	case readiness.LevelExcellent:
		return Adaptation{Session: s, Reason: "Excellent readiness, no change"}

	case readiness.LevelGood:
		if s.Type != models.SessionHIT {
			return Adaptation{Session: s, Reason: "Good readiness, no change"}
		}
		out := s
		out.DurationMin = scale(s.DurationMin, constants.GoodHitTrimFactor)
		out.TargetTSS = scale(s.TargetTSS, constants.GoodHitTrimFactor)
		out.Description = describe(out)
		out.AddNote(fmt.Sprintf("Trimmed slightly (readiness %.0f%%)", pct))
		return Adaptation{Session: out, Changed: true, Reason: "Good readiness, intervals trimmed slightly"}

	case readiness.LevelModerate:
		factor := a.Interpretation.AdjustmentFactor
		switch s.Type {
		case models.SessionHIT:
			out := s
			out.Type = models.SessionLIT
			out.SubType = models.SubEndurance
			out.DurationMin = scale(s.DurationMin, factor)
			out.TargetTSS = scale(s.TargetTSS, factor)
			out.Description = describe(out)
			out.AddNote(original(s))
			return Adaptation{Session: out, Changed: true, Reason: fmt.Sprintf("Moderate readiness (%.0f%%), HIT replaced by endurance", pct)}
		case models.SessionLIT:
			out := s
			out.DurationMin = scale(s.DurationMin, factor)
			out.TargetTSS = scale(s.TargetTSS, factor)
			out.Description = describe(out)
			out.AddNote(fmt.Sprintf("Reduced (readiness %.0f%%)", pct))
			return Adaptation{Session: out, Changed: true, Reason: "Moderate readiness, duration and stress reduced"}
		}

	case readiness.LevelLow:
		switch s.Type {
		case models.SessionHIT:
			out := s
			out.Type = models.SessionREC
			out.SubType = models.SubRecovery
			out.DurationMin = min(constants.RecoveryMaxDurationMin, scale(s.DurationMin, lowHitDurationFactor))
			out.TargetTSS = min(constants.RecoveryMaxTSS, scale(s.TargetTSS, lowHitTSSFactor))
			out.Description = describe(out)
			out.AddNote(original(s))
			return Adaptation{Session: out, Changed: true, Reason: fmt.Sprintf("Low readiness (%.0f%%), HIT replaced by recovery", pct)}
		case models.SessionLIT:
			out := s
			out.Type = models.SessionREC
			out.SubType = models.SubRecovery
			out.DurationMin = min(constants.RecoveryMaxDurationMin, scale(s.DurationMin, lowLitFactor))
			out.TargetTSS = min(constants.LightRecoveryMaxTSS, scale(s.TargetTSS, lowLitFactor))
			out.Description = describe(out)
			out.AddNote(original(s))
			return Adaptation{Session: out, Changed: true, Reason: "Low readiness, endurance reduced to recovery"}
		}
	}

	return Adaptation{Session: s, Reason: "No change needed"}
}

// AdaptDailySessions evaluates the check once and adapts every session.
func AdaptDailySessions(sessions []models.TrainingSession, check models.MorningCheck, recentChecks []models.MorningCheck, recentLoad []models.DailyLoad) Result {
	a := readiness.Evaluate(check, recentChecks, recentLoad)
	res := Result{
		Assessment: a,
		Adapted:    make([]models.TrainingSession, 0, len(sessions)),
		Reasons:    []string{},
	}
	for _, s := range sessions {
		ad := AdaptSession(s, a)
		res.Adapted = append(res.Adapted, ad.Session)
		if ad.Changed {
			res.TotalChanges++
			res.Reasons = append(res.Reasons, ad.Reason)
		}
	}
	res.Changed = res.TotalChanges > 0

	logger.Debug("Adapted daily sessions",
		"date", check.Date,
		"readiness", a.Score,
		"forced", a.ForceRecovery,
		"changes", res.TotalChanges,
	)
	return res
}

// IsSessionFeasible reports whether a session suits today's readiness and,
// when it does not, what to do instead.
func IsSessionFeasible(s models.TrainingSession, a readiness.Assessment) Feasibility {
	if a.ForceRecovery && s.Type == models.SessionHIT {
		return Feasibility{Reason: "Recovery forced, HIT not advised", Alternative: AlternativePostpone}
	}
	if a.Score < constants.ForceRecoveryScore && s.Type != models.SessionREC {
		return Feasibility{Reason: "Readiness too low for training", Alternative: AlternativeSkip}
	}
	if a.Score < feasibleHitReadiness && s.Type == models.SessionHIT {
		return Feasibility{Reason: "Readiness too low for HIT", Alternative: AlternativeReduce}
	}
	if a.Score < longSessionReadiness && s.DurationMin > longSessionMinutes {
		return Feasibility{Feasible: true, Reason: "Long session, consider shortening", Alternative: AlternativeReduce}
	}
	return Feasibility{Feasible: true}
}

// OptimalDailyTSS scales the planned stress by today's adjustment factor.
func OptimalDailyTSS(planned int, a readiness.Assessment) DailyTarget {
	if a.ForceRecovery {
		return DailyTarget{
			TSS:               min(planned, constants.RecoveryMaxTSS),
			AdjustmentPercent: forcedAdjustmentPct,
			Reason:            "Recovery forced",
		}
	}
	factor := a.Interpretation.AdjustmentFactor
	return DailyTarget{
		TSS:               scale(planned, factor),
		AdjustmentPercent: int(math.Round((factor - 1) * 100)),
		Reason:            a.Interpretation.Recommendation,
	}
}

func original(s models.TrainingSession) string {
	return fmt.Sprintf("Original: %s %dmin, %d TSS", s.Type, s.DurationMin, s.TargetTSS)
}

func scale(v int, factor float64) int {
	return int(math.Round(float64(v) * factor))
}

func describe(s models.TrainingSession) string {
	return workout.NewDescriber().Describe(s)
}
