// Package readiness turns the morning questionnaire into a 0-1 score and
// decides when today's training must become recovery.
package readiness

import (
	"errors"
	"fmt"

	"github.com/Ebi50/training28-sub000/internal/constants"
	"github.com/Ebi50/training28-sub000/internal/models"
	"github.com/Ebi50/training28-sub000/internal/utils"
)

var ErrInvalidCheck = errors.New("invalid morning check")

// Level is the interpretation band of a readiness score.
type Level string

const (
	LevelExcellent Level = "excellent"
	LevelGood      Level = "good"
	LevelModerate  Level = "moderate"
	LevelLow       Level = "low"
)

// Direction of the readiness trend.
type Direction string

const (
	Improving Direction = "improving"
	Stable    Direction = "stable"
	Declining Direction = "declining"
)

// Rest is the recommendation when no session should be done at all.
const Rest = "REST"

type Interpretation struct {
	Level            Level   `json:"level"`
	Recommendation   string  `json:"recommendation"`
	AdjustmentFactor float64 `json:"adjustment_factor"`
}

type TrendSummary struct {
	Direction     Direction `json:"direction"`
	Average       float64   `json:"average"`
	DaysWithCheck int       `json:"days_with_check"`
}

type Recommendation struct {
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

// Assessment is everything the session adapter needs to know about today.
type Assessment struct {
	Date           string         `json:"date"`
	Score          float64        `json:"score"`
	Interpretation Interpretation `json:"interpretation"`
	ForceRecovery  bool           `json:"force_recovery"`
	Reason         string         `json:"reason,omitempty"`
	Trend          TrendSummary   `json:"trend"`
}

// Validate checks that every rating is on the 1-5 scale and the date parses.
func Validate(check models.MorningCheck) error {
	if _, err := utils.ParseDate(check.Date); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCheck, err)
	}
	ratings := []struct {
		name  string
		value int
	}{
		{"sleep_quality", check.SleepQuality},
		{"fatigue", check.Fatigue},
		{"motivation", check.Motivation},
		{"soreness", check.Soreness},
		{"stress", check.Stress},
	}
	for _, r := range ratings {
		if r.value < 1 || r.value > 5 {
			return fmt.Errorf("%w: %s must be between 1 and 5, got %d", ErrInvalidCheck, r.name, r.value)
		}
	}
	return nil
}

// Score weights the five ratings. Sleep and motivation count as given;
// fatigue, soreness and stress are inverted so that a low rating is good.
func Score(check models.MorningCheck) float64 {
	sleep := float64(check.SleepQuality-1) / 4
	fatigue := float64(5-check.Fatigue) / 4
	motivation := float64(check.Motivation-1) / 4
	soreness := float64(5-check.Soreness) / 4
	stress := float64(5-check.Stress) / 4

	score := sleep*constants.ReadinessSleepWeight +
		fatigue*constants.ReadinessFatigueWeight +
		motivation*constants.ReadinessMotivationWeight +
		soreness*constants.ReadinessSorenessWeight +
		stress*constants.ReadinessStressWeight
	return max(0, min(1, score))
}

func Interpret(score float64) Interpretation {
	switch {
	case score >= constants.ReadinessExcellent:
		return Interpretation{LevelExcellent, "Top form, ready for intensity", 1.0}
	case score >= constants.ReadinessGood:
		return Interpretation{LevelGood, "Good form, train as planned", 1.0}
	case score >= constants.ReadinessModerate:
		return Interpretation{LevelModerate, "Moderate form, reduce intensity or prefer endurance", constants.ModerateAdjustmentFactor}
	default:
		return Interpretation{LevelLow, "Low readiness, recover or ride easy", constants.LowAdjustmentFactor}
	}
}

// Trend compares the first and second half of the scored checks. Fewer than
// four scored checks always read as stable.
func Trend(checks []models.MorningCheck) TrendSummary {
	var scores []float64
	for _, c := range checks {
		if c.ReadinessScore != nil {
			scores = append(scores, *c.ReadinessScore)
		}
	}
	if len(scores) == 0 {
		return TrendSummary{Direction: Stable, Average: constants.DefaultAverageReadiness}
	}

	summary := TrendSummary{
		Direction:     Stable,
		Average:       mean(scores),
		DaysWithCheck: len(scores),
	}
	if len(scores) < constants.TrendMinChecks {
		return summary
	}

	mid := len(scores) / 2
	diff := mean(scores[mid:]) - mean(scores[:mid])
	switch {
	case diff > constants.TrendThreshold:
		summary.Direction = Improving
	case diff < -constants.TrendThreshold:
		summary.Direction = Declining
	}
	return summary
}

// ShouldForceRecovery reports whether today must be recovery and why.
// recentChecks are prior days in date order; recentLoad ends with the latest day.
func ShouldForceRecovery(check models.MorningCheck, recentChecks []models.MorningCheck, recentLoad []models.DailyLoad) (bool, string) {
	score := Score(check)
	if score < constants.ForceRecoveryScore {
		return true, fmt.Sprintf("Readiness critically low (%.0f%%)", score*100)
	}
	if check.SleepQuality <= 2 && check.Fatigue >= 4 {
		return true, "Poor sleep combined with high fatigue"
	}

	trend := Trend(recentChecks)
	if trend.DaysWithCheck >= constants.ForceRecoveryTrendMinDays &&
		trend.Average < constants.ForceRecoveryTrendAvg &&
		trend.Direction == Declining {
		return true, "Readiness has been declining over several days"
	}

	if len(recentLoad) > 0 {
		tsb := recentLoad[len(recentLoad)-1].TSB()
		if tsb < constants.ForceRecoveryTSB && score < constants.ForceRecoveryTSBReadiness {
			return true, fmt.Sprintf("Deep fatigue (TSB %.1f) with low readiness", tsb)
		}
	}
	return false, ""
}

func RecommendWorkoutType(score float64) Recommendation {
	switch {
	case score >= constants.RecommendHitReadiness:
		return Recommendation{string(models.SessionHIT), "Excellent form for intensity"}
	case score >= constants.RecommendLitReadiness:
		return Recommendation{string(models.SessionLIT), "Good form for steady endurance"}
	case score >= constants.RecommendRecoveryReadiness:
		return Recommendation{string(models.SessionREC), "Moderate form, active recovery"}
	default:
		return Recommendation{Rest, "Low readiness, take a rest day"}
	}
}

// Evaluate scores today's check against recent history.
func Evaluate(check models.MorningCheck, recentChecks []models.MorningCheck, recentLoad []models.DailyLoad) Assessment {
	score := Score(check)
	force, reason := ShouldForceRecovery(check, recentChecks, recentLoad)
	return Assessment{
		Date:           check.Date,
		Score:          score,
		Interpretation: Interpret(score),
		ForceRecovery:  force,
		Reason:         reason,
		Trend:          Trend(recentChecks),
	}
}

func mean(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x
	}
	return sum / float64(len(v))
}
