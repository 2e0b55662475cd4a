package load

import (
	"errors"
	"fmt"

	"github.com/Ebi50/training28-sub000/internal/constants"
	"github.com/Ebi50/training28-sub000/internal/models"
)

var ErrRampRateExceeded = errors.New("ramp rate exceeded")

// RampRateError reports a week-over-week volume jump beyond the guardrail.
type RampRateError struct {
	Rate float64
	Max  float64
}

func (e *RampRateError) Error() string {
	return fmt.Sprintf("ramp rate too high: %.1f%% (max: %.1f%%)", e.Rate*100, e.Max*100)
}

func (e *RampRateError) Unwrap() error {
	return ErrRampRateExceeded
}

func (e *RampRateError) Hint() string {
	return "lower the weekly hours or raise guardrails.max_ramp_rate in the config"
}

// EstimatePreviousWeeklyHours converts the stress of the last seven entries into hours.
func EstimatePreviousWeeklyHours(history []models.DailyLoad) float64 {
	start := len(history) - 7
	if start < 0 {
		start = 0
	}
	var sum float64
	for _, h := range history[start:] {
		sum += h.TSS
	}
	return sum / constants.TSSPerHour
}

// RampRate is the relative change from previous to target volume.
func RampRate(target, previous float64) float64 {
	if previous <= 0 {
		return 0
	}
	return (target - previous) / previous
}

// CheckRampRate fails when the target volume grows faster than maxRampRate.
// Without a baseline (empty history or no recent volume) any target passes.
func CheckRampRate(targetHours float64, history []models.DailyLoad, maxRampRate float64) error {
	previous := EstimatePreviousWeeklyHours(history)
	if previous <= 0 {
		return nil
	}
	rate := RampRate(targetHours, previous)
	if rate > maxRampRate {
		return &RampRateError{Rate: rate, Max: maxRampRate}
	}
	return nil
}
