// Package quality scores a freshly generated set of sessions.
package quality

import (
	"fmt"
	"math"
	"sort"

	"github.com/Ebi50/training28-sub000/internal/constants"
	"github.com/Ebi50/training28-sub000/internal/models"
	"github.com/Ebi50/training28-sub000/internal/utils"
)

const (
	timeSlotWeight     = 0.4
	distributionWeight = 0.3
	recoveryWeight     = 0.3

	reducedPenalty     = 0.5
	distributionFactor = 2.0
	hitPairPenalty     = 0.3
	minHitGapDays      = 2
)

// Assess scores sessions against the parameters they were generated from.
// An empty session set scores 1.0 without warnings.
func Assess(sessions []models.TrainingSession, params models.PlanningParameters) models.PlanQuality {
	q := models.PlanQuality{
		Score:    1,
		Warnings: []models.PlanWarning{},
		Factors: models.QualityFactors{
			TimeSlotMatch:        1,
			TrainingDistribution: 1,
			RecoveryAdequacy:     1,
		},
	}
	if len(sessions) == 0 {
		return q
	}

	byDate := make(map[string][]models.TrainingSession)
	var dates []string
	for _, s := range sessions {
		if _, ok := byDate[s.Date]; !ok {
			dates = append(dates, s.Date)
		}
		byDate[s.Date] = append(byDate[s.Date], s)
	}
	sort.Strings(dates)

	for _, date := range dates {
		day := byDate[date]
		if len(day) < 2 {
			continue
		}
		q.Adjustments.SplitSessions++
		total := 0
		ids := make([]string, 0, len(day))
		for _, s := range day {
			total += s.TargetTSS
			ids = append(ids, s.ID)
		}
		q.Warnings = append(q.Warnings, models.PlanWarning{
			Kind:       models.WarningSplitSession,
			Severity:   models.SeverityInfo,
			SessionIDs: ids,
			Message:    fmt.Sprintf("Training on %s split into %d sessions (%d TSS combined)", date, len(day), total),
			Details:    models.WarningDetails{OriginalTSS: total, AdjustedTSS: total},
		})
	}

	reduced := 0
	for _, s := range sessions {
		r := s.Reduction
		if r == nil {
			continue
		}
		reduced++
		lost := r.OriginalTSS - s.TargetTSS
		if lost > 0 {
			q.Adjustments.TotalTssLost += lost
		}
		details := models.WarningDetails{
			OriginalTSS:       r.OriginalTSS,
			AdjustedTSS:       s.TargetTSS,
			OriginalDuration:  r.IdealDuration,
			AvailableDuration: r.AvailableDuration,
		}
		q.Warnings = append(q.Warnings, models.PlanWarning{
			Kind:       models.WarningTssReduced,
			Severity:   models.SeverityWarning,
			SessionIDs: []string{s.ID},
			Message: fmt.Sprintf("%s on %s reduced from %d to %d TSS (%d of %d min available)",
				s.Type, s.Date, r.OriginalTSS, s.TargetTSS, r.AvailableDuration, r.IdealDuration),
			Details: details,
		})
		if float64(r.AvailableDuration) < constants.InsufficientTimeFactor*float64(r.IdealDuration) {
			q.Warnings = append(q.Warnings, models.PlanWarning{
				Kind:       models.WarningInsufficientTime,
				Severity:   models.SeverityError,
				SessionIDs: []string{s.ID},
				Message:    fmt.Sprintf("Less than half of the ideal time is available on %s", s.Date),
				Details:    details,
			})
		}
	}
	q.Adjustments.TssReduced = reduced

	q.Factors.TimeSlotMatch = clamp(1 - reducedPenalty*float64(reduced)/float64(len(sessions)))

	target := params.LitRatio
	actual := LowIntensityRatio(sessions, target)
	q.Factors.TrainingDistribution = math.Max(0, 1-distributionFactor*math.Abs(actual-target))

	recovery := 1.0
	for _, pair := range closeHitPairs(sessions) {
		recovery -= hitPairPenalty
		q.Warnings = append(q.Warnings, models.PlanWarning{
			Kind:       models.WarningSuboptimalTiming,
			Severity:   models.SeverityWarning,
			SessionIDs: []string{pair[0].ID, pair[1].ID},
			Message:    fmt.Sprintf("HIT sessions on %s and %s are less than %d days apart", pair[0].Date, pair[1].Date, minHitGapDays),
		})
	}
	q.Factors.RecoveryAdequacy = clamp(recovery)

	q.Score = clamp(timeSlotWeight*q.Factors.TimeSlotMatch +
		distributionWeight*q.Factors.TrainingDistribution +
		recoveryWeight*q.Factors.RecoveryAdequacy)
	return q
}

// LowIntensityRatio is the share of planned minutes spent in LIT or REC
// sessions. Without any planned minutes it returns fallback.
func LowIntensityRatio(sessions []models.TrainingSession, fallback float64) float64 {
	var low, total int
	for _, s := range sessions {
		total += s.DurationMin
		if s.Type == models.SessionLIT || s.Type == models.SessionREC {
			low += s.DurationMin
		}
	}
	if total == 0 {
		return fallback
	}
	return float64(low) / float64(total)
}

// closeHitPairs returns consecutive HIT sessions, in date order, that are
// fewer than two days apart.
func closeHitPairs(sessions []models.TrainingSession) [][2]models.TrainingSession {
	var hits []models.TrainingSession
	for _, s := range sessions {
		if s.Type == models.SessionHIT {
			hits = append(hits, s)
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Date < hits[j].Date })

	var pairs [][2]models.TrainingSession
	for i := 1; i < len(hits); i++ {
		a, errA := utils.ParseDate(hits[i-1].Date)
		b, errB := utils.ParseDate(hits[i].Date)
		if errA != nil || errB != nil {
			continue
		}
		if utils.DaysBetween(a, b) < minHitGapDays {
			pairs = append(pairs, [2]models.TrainingSession{hits[i-1], hits[i]})
		}
	}
	return pairs
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
