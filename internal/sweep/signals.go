package sweep

import (
	"fmt"
	"math"

	"github.com/Ebi50/training28-sub000/internal/compliance"
	"github.com/Ebi50/training28-sub000/internal/constants"
)

// Signals is what the sweep knows about one athlete at the end of a day.
type Signals struct {
	HasNextWeekPlan  bool
	HasActivityToday bool
	TodayTSS         int
	// PlannedTSS is today's planned stress; zero falls back to a fixed reference.
	PlannedTSS int
	Compliance compliance.Stats
	HasLoad    bool
	TSB        float64
	Readiness  *float64
}

// Decision is the outcome of ShouldRegenerate.
type Decision struct {
	Regenerate bool   `json:"regenerate"`
	Reason     string `json:"reason"`
}

// ShouldRegenerate decides whether next week's plan must be rebuilt. A missing
// plan always triggers. Otherwise a day without activity is left alone and
// the first matching trigger wins.
func ShouldRegenerate(s Signals) Decision {
	if !s.HasNextWeekPlan {
		return Decision{Regenerate: true, Reason: "no plan for next week"}
	}
	if !s.HasActivityToday {
		return Decision{Reason: "no activity today"}
	}

	c := s.Compliance
	if c.Planned > 0 && c.Rate < constants.SweepMinCompliance && c.Missed >= constants.SweepMinMissed {
		return Decision{
			Regenerate: true,
			Reason:     fmt.Sprintf("compliance low (%.0f%%), %d sessions missed", c.Rate*100, c.Missed),
		}
	}

	if s.HasLoad && s.TSB < constants.SweepTSBThreshold {
		return Decision{Regenerate: true, Reason: fmt.Sprintf("TSB critically low (%.1f), recovery needed", s.TSB)}
	}

	if s.Readiness != nil && *s.Readiness < constants.SweepMinReadiness {
		return Decision{Regenerate: true, Reason: fmt.Sprintf("readiness low (%.2f), reducing plan", *s.Readiness)}
	}

	planned := s.PlannedTSS
	if planned <= 0 {
		planned = constants.SweepFallbackTSS
	}
	deviation := math.Abs(float64(s.TodayTSS-planned)) / float64(planned)
	if deviation > constants.SweepMaxTSSDeviation {
		return Decision{
			Regenerate: true,
			Reason:     fmt.Sprintf("today's TSS %d deviates %.0f%% from planned %d", s.TodayTSS, deviation*100, planned),
		}
	}

	return Decision{Reason: "plan is current"}
}
