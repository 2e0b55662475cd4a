// Package load turns recorded effort into training stress and maintains the
// chronic/acute load chain derived from it.
package load

import (
	"errors"
	"math"

	"github.com/Ebi50/training28-sub000/internal/constants"
	"github.com/Ebi50/training28-sub000/internal/models"
)

var (
	ErrInvalidFTP       = errors.New("FTP must be greater than 0")
	ErrInvalidLTHR      = errors.New("LTHR must be greater than 0")
	ErrInvalidRPE       = errors.New("RPE must be between 1 and 10")
	ErrInsufficientData = errors.New("insufficient data for TSS calculation")
	ErrInvalidDuration  = errors.New("duration must not be negative")
	ErrUnknownTSSMethod = errors.New("unknown TSS method")
)

// Method names how a TSS value was derived.
type Method string

const (
	MethodAuto      Method = "auto"
	MethodPower     Method = "power"
	MethodHeartRate Method = "heart_rate"
	MethodRPE       Method = "rpe"
	MethodEstimate  Method = "estimate"
)

// ParseMethod accepts the method names used on the command line and in storage.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case "", MethodAuto:
		return MethodAuto, nil
	case MethodPower, MethodHeartRate, MethodRPE, MethodEstimate:
		return Method(s), nil
	case "hr":
		return MethodHeartRate, nil
	}
	return "", ErrUnknownTSSMethod
}

// Effort is the raw measurement of one workout.
type Effort struct {
	DurationSec     int
	NormalizedPower float64
	AvgPower        float64
	AvgHR           float64
	RPE             int
}

// EffortFromActivity extracts the measured fields of a recorded activity.
func EffortFromActivity(a models.Activity) Effort {
	return Effort{
		DurationSec:     a.DurationSec,
		NormalizedPower: a.NormalizedPower,
		AvgPower:        a.AvgPower,
		AvgHR:           a.AvgHR,
		RPE:             a.RPE,
	}
}

func stress(durationSec int, intensity float64) int {
	hours := float64(durationSec) / 3600
	return int(math.Round(hours * intensity * intensity * 100))
}

// PowerTSS computes TSS from power. NP is preferred, average power is the fallback.
func PowerTSS(durationSec int, np, avgPower, ftp float64) (int, error) {
	if ftp <= 0 {
		return 0, ErrInvalidFTP
	}
	if durationSec < 0 {
		return 0, ErrInvalidDuration
	}
	p := np
	if p <= 0 {
		p = avgPower
	}
	if p <= 0 {
		return 0, ErrInsufficientData
	}
	return stress(durationSec, p/ftp), nil
}

// HeartRateTSS computes HRSS from average heart rate and LTHR.
func HeartRateTSS(durationSec int, avgHR, lthr float64) (int, error) {
	if lthr <= 0 {
		return 0, ErrInvalidLTHR
	}
	if durationSec < 0 {
		return 0, ErrInvalidDuration
	}
	if avgHR <= 0 {
		return 0, ErrInsufficientData
	}
	return stress(durationSec, avgHR/lthr), nil
}

// RPEIntensity maps a 1-10 perceived exertion rating to an intensity factor.
func RPEIntensity(rpe int) (float64, error) {
	switch {
	case rpe < 1 || rpe > 10:
		return 0, ErrInvalidRPE
	case rpe <= 2:
		return 0.50, nil
	case rpe <= 4:
		return 0.65, nil
	case rpe <= 6:
		return 0.75, nil
	case rpe <= 8:
		return 0.85, nil
	default:
		return 0.95, nil
	}
}

// RPETSS estimates TSS from perceived exertion.
func RPETSS(durationSec, rpe int) (int, error) {
	intensity, err := RPEIntensity(rpe)
	if err != nil {
		return 0, err
	}
	if durationSec < 0 {
		return 0, ErrInvalidDuration
	}
	return stress(durationSec, intensity), nil
}

// EstimatedTSS assumes a moderate effort when nothing was measured.
func EstimatedTSS(durationSec int) int {
	if durationSec <= 0 {
		return 0
	}
	return stress(durationSec, constants.NoSignalIntensityFactor)
}

// Calculate derives TSS with the requested method. MethodAuto walks power,
// heart rate, RPE and finally the estimate, using the first one with data.
func Calculate(e Effort, athlete models.Athlete, method Method) (int, Method, error) {
	switch method {
	case MethodPower:
		if athlete.FTP <= 0 {
			return 0, method, ErrInvalidFTP
		}
		tss, err := PowerTSS(e.DurationSec, e.NormalizedPower, e.AvgPower, athlete.FTP)
		return tss, method, err
	case MethodHeartRate:
		if athlete.LTHR <= 0 {
			return 0, method, ErrInvalidLTHR
		}
		tss, err := HeartRateTSS(e.DurationSec, e.AvgHR, athlete.LTHR)
		return tss, method, err
	case MethodRPE:
		if e.RPE == 0 {
			return 0, method, ErrInsufficientData
		}
		tss, err := RPETSS(e.DurationSec, e.RPE)
		return tss, method, err
	case MethodEstimate:
		if e.DurationSec < 0 {
			return 0, method, ErrInvalidDuration
		}
		return EstimatedTSS(e.DurationSec), method, nil
	case MethodAuto, "":
	default:
		return 0, method, ErrUnknownTSSMethod
	}

	if athlete.FTP > 0 && (e.NormalizedPower > 0 || e.AvgPower > 0) {
		return Calculate(e, athlete, MethodPower)
	}
	if athlete.LTHR > 0 && e.AvgHR > 0 {
		return Calculate(e, athlete, MethodHeartRate)
	}
	if e.RPE != 0 {
		return Calculate(e, athlete, MethodRPE)
	}
	return Calculate(e, athlete, MethodEstimate)
}

// IntensityFactor is NP relative to FTP.
func IntensityFactor(np, ftp float64) float64 {
	if ftp <= 0 {
		return 0
	}
	return np / ftp
}

// EstimateNormalizedPower approximates NP when only average power is known.
func EstimateNormalizedPower(avgPower float64) float64 {
	return avgPower * constants.NormalizedPowerFactor
}

// PlannedTSS is the stress of a planned session of the given length and intensity.
func PlannedTSS(durationMin int, intensity float64) int {
	return stress(durationMin*60, intensity)
}
