// Package compliance compares a planned week against recorded activities.
package compliance

import (
	"fmt"
	"math"
	"time"

	"github.com/Ebi50/training28-sub000/internal/models"
	"github.com/Ebi50/training28-sub000/internal/utils"
)

// Status of a single planned session.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusPartial   Status = "partial"
	StatusMissed    Status = "missed"
	StatusModified  Status = "modified"
	StatusPending   Status = "pending"
)

type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

type Direction string

const (
	Improving Direction = "improving"
	Stable    Direction = "stable"
	Declining Direction = "declining"
)

const (
	// completedTolerance is the relative stress deviation still counted as done.
	completedTolerance = 0.15
	partialFactor      = 0.5
	trendThreshold     = 0.10
	goodRate           = 0.70
	excellentRate      = 0.85
	moderateRate       = 0.50
	updateRate         = 0.60
	missedLimit        = 3
	modifiedLimit      = 2
	criticalTSB        = -25.0
)

type Stats struct {
	Planned   int     `json:"planned"`
	Completed int     `json:"completed"`
	Missed    int     `json:"missed"`
	Modified  int     `json:"modified"`
	Rate      float64 `json:"rate"`
}

type SessionResult struct {
	SessionID  string  `json:"session_id"`
	Date       string  `json:"date"`
	Status     Status  `json:"status"`
	PlannedTSS int     `json:"planned_tss"`
	ActualTSS  int     `json:"actual_tss"`
	Deviation  float64 `json:"deviation"` // percent
	Reason     string  `json:"reason,omitempty"`
}

type WeekStats struct {
	Week  string `json:"week"`
	Stats Stats  `json:"stats"`
}

type TrendSummary struct {
	Direction      Direction `json:"direction"`
	AverageRate    float64   `json:"average_rate"`
	Recommendation string    `json:"recommendation"`
}

type Recommendation struct {
	Update  bool    `json:"update"`
	Reason  string  `json:"reason"`
	Urgency Urgency `json:"urgency"`
}

type Report struct {
	Stats           Stats           `json:"stats"`
	Sessions        []SessionResult `json:"sessions"`
	ShouldUpdate    bool            `json:"should_update"`
	UpdateReason    string          `json:"update_reason,omitempty"`
	Recommendations []string        `json:"recommendations"`
}

// Sessions matches every planned session with an activity on the same date.
// Each activity satisfies at most one session, so split days match part by
// part. Unmatched sessions before today are missed; later ones are pending.
func Sessions(sessions []models.TrainingSession, activities []models.Activity, today time.Time) []SessionResult {
	used := make([]bool, len(activities))
	todayStr := utils.FormatDate(today)

	out := make([]SessionResult, 0, len(sessions))
	for _, s := range sessions {
		r := SessionResult{SessionID: s.ID, Date: s.Date, PlannedTSS: s.TargetTSS}

		match := -1
		for i, a := range activities {
			if !used[i] && a.Date == s.Date {
				match = i
				break
			}
		}
		if match < 0 {
			if s.Date < todayStr {
				r.Status = StatusMissed
				r.Deviation = -100
				r.Reason = "No activity recorded"
			} else {
				r.Status = StatusPending
			}
			out = append(out, r)
			continue
		}
		used[match] = true

		r.ActualTSS = activities[match].TSS
		r.Deviation = deviation(r.ActualTSS, s.TargetTSS) * 100
		switch {
		case math.Abs(r.Deviation) < completedTolerance*100:
			r.Status = StatusCompleted
		case float64(r.ActualTSS) < float64(s.TargetTSS)*partialFactor:
			r.Status = StatusPartial
		default:
			r.Status = StatusModified
		}
		if r.Status != StatusCompleted {
			r.Reason = fmt.Sprintf("%.0f%% deviation", math.Abs(r.Deviation))
		}
		out = append(out, r)
	}
	return out
}

// Weekly summarises a plan. Partial sessions count as modified.
func Weekly(plan models.WeeklyPlan, activities []models.Activity, today time.Time) Stats {
	st := Stats{Planned: len(plan.Sessions)}
	for _, r := range Sessions(plan.Sessions, activities, today) {
		switch r.Status {
		case StatusCompleted:
			st.Completed++
		case StatusMissed:
			st.Missed++
		case StatusModified, StatusPartial:
			st.Modified++
		}
	}
	if st.Planned > 0 {
		st.Rate = float64(st.Completed) / float64(st.Planned)
	}
	return st
}

// Trend compares the first and second half of the weeks, oldest first.
func Trend(weeks []WeekStats) TrendSummary {
	if len(weeks) == 0 {
		return TrendSummary{Direction: Stable, Recommendation: "Not enough data for a trend"}
	}
	if len(weeks) < 2 {
		return TrendSummary{Direction: Stable, AverageRate: weeks[0].Stats.Rate, Recommendation: "Not enough data for a trend"}
	}

	rates := make([]float64, len(weeks))
	for i, w := range weeks {
		rates[i] = w.Stats.Rate
	}
	avg := mean(rates)
	mid := len(rates) / 2
	diff := mean(rates[mid:]) - mean(rates[:mid])

	switch {
	case diff > trendThreshold:
		return TrendSummary{Improving, avg, "Compliance is improving"}
	case diff < -trendThreshold:
		return TrendSummary{Declining, avg, "Compliance is declining, review the plan"}
	case avg >= goodRate:
		return TrendSummary{Stable, avg, "Compliance is stable and good"}
	default:
		return TrendSummary{Stable, avg, "Compliance is stable but low, consider adjusting the plan"}
	}
}

// ShouldUpdate decides whether the plan needs regenerating.
func ShouldUpdate(st Stats, recentLoad []models.DailyLoad) Recommendation {
	if st.Rate < moderateRate {
		return Recommendation{true, "Compliance below 50%, the plan is too ambitious", UrgencyHigh}
	}
	if st.Missed >= missedLimit {
		return Recommendation{true, fmt.Sprintf("%d sessions missed, adjustment advised", st.Missed), UrgencyMedium}
	}
	if st.Rate < goodRate && st.Modified >= modifiedLimit {
		return Recommendation{true, "Frequent changes needed, the plan does not fit", UrgencyMedium}
	}
	if len(recentLoad) > 0 && recentLoad[len(recentLoad)-1].TSB() < criticalTSB {
		return Recommendation{true, "TSB critically low, recovery needed", UrgencyHigh}
	}
	return Recommendation{false, "Compliance good, no update needed", UrgencyLow}
}

// BuildReport combines the weekly stats, per-session results and advice.
func BuildReport(plan models.WeeklyPlan, activities []models.Activity, today time.Time) Report {
	st := Weekly(plan, activities, today)
	rep := Report{
		Stats:           st,
		Sessions:        Sessions(plan.Sessions, activities, today),
		Recommendations: []string{},
	}

	switch {
	case st.Rate >= excellentRate:
		rep.Recommendations = append(rep.Recommendations, "Excellent compliance, the plan works")
	case st.Rate >= goodRate:
		rep.Recommendations = append(rep.Recommendations, "Good compliance, the plan is realistic")
	case st.Rate >= moderateRate:
		rep.Recommendations = append(rep.Recommendations, "Moderate compliance, consider adjusting the plan")
	default:
		rep.Recommendations = append(rep.Recommendations, "Low compliance, the plan is too ambitious")
	}
	if st.Missed > 0 {
		rep.Recommendations = append(rep.Recommendations, fmt.Sprintf("%d sessions missed, are the time slots realistic?", st.Missed))
	}
	if st.Modified > 0 {
		rep.Recommendations = append(rep.Recommendations, fmt.Sprintf("%d sessions changed, the plan does not always match daily form", st.Modified))
	}

	switch {
	case st.Rate < updateRate:
		rep.ShouldUpdate, rep.UpdateReason = true, "Compliance too low"
	case st.Missed >= missedLimit:
		rep.ShouldUpdate, rep.UpdateReason = true, "Too many missed sessions"
	}
	return rep
}

func deviation(actual, planned int) float64 {
	if planned <= 0 {
		if actual == 0 {
			return 0
		}
		return 1
	}
	return float64(actual-planned) / float64(planned)
}

func mean(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x
	}
	return sum / float64(len(v))
}
