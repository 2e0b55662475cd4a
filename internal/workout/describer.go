// Package workout renders planned sessions as structured workout descriptions.
package workout

import (
	"fmt"

	"github.com/Ebi50/training28-sub000/internal/models"
)

// Interval is one work/rest pattern.
type Interval struct {
	WorkMin int
	RestMin int
}

var (
	vo2maxVariants    = []Interval{{3, 3}, {4, 3}, {5, 3}, {2, 2}}
	thresholdVariants = []Interval{{8, 4}, {10, 5}, {15, 5}}
)

const (
	warmupMin       = 15
	cooldownMin     = 10
	shortWarmupMin  = 10
	shortCooldown   = 5
	shortSessionMin = 45
	maxReps         = 8
)

type zone struct {
	label string
	power string
}

var zones = map[models.SubType]zone{
	models.SubEndurance:     {"Zone 2", "56-75% FTP"},
	models.SubTempo:         {"Zone 3", "76-90% FTP"},
	models.SubThreshold:     {"Threshold", "95-105% FTP"},
	models.SubVO2Max:        {"VO2max", "110-120% FTP"},
	models.SubNeuromuscular: {"Sprints", ">150% FTP"},
	models.SubRecovery:      {"Zone 1", "<55% FTP"},
}

// Describer produces session descriptions. Interval patterns rotate per
// sub-type with every described session; Reset starts the rotation over.
type Describer struct {
	counts map[models.SubType]int
}

func NewDescriber() *Describer {
	return &Describer{counts: make(map[models.SubType]int)}
}

// Reset clears the rotation counters.
func (d *Describer) Reset() {
	d.counts = make(map[models.SubType]int)
}

// Next returns the interval pattern for the next session of a sub-type and
// advances the rotation. It reports false for sub-types without intervals.
func (d *Describer) Next(sub models.SubType) (Interval, bool) {
	var variants []Interval
	switch sub {
	case models.SubVO2Max:
		variants = vo2maxVariants
	case models.SubThreshold:
		variants = thresholdVariants
	default:
		return Interval{}, false
	}
	n := d.counts[sub]
	d.counts[sub] = n + 1
	return variants[n%len(variants)], true
}

// Describe renders a session as a warm-up, main set and cool-down line.
func (d *Describer) Describe(s models.TrainingSession) string {
	z, ok := zones[s.SubType]
	if !ok {
		z = zones[models.SubEndurance]
	}
	perMin := 0.0
	if s.DurationMin > 0 {
		perMin = float64(s.TargetTSS) / float64(s.DurationMin)
	}

	interval, hasIntervals := d.Next(s.SubType)
	if !hasIntervals {
		if s.SubType == models.SubNeuromuscular {
			return fmt.Sprintf("%dmin endurance with 6x15s sprints @ %s | TSS %d", s.DurationMin, z.power, s.TargetTSS)
		}
		return fmt.Sprintf("%dmin %s %s @ %s | avg %.2f TSS/min", s.DurationMin, s.SubType, z.label, z.power, perMin)
	}

	warm, cool := warmupMin, cooldownMin
	if s.DurationMin < shortSessionMin {
		warm, cool = shortWarmupMin, shortCooldown
	}
	main := s.DurationMin - warm - cool
	reps := main / (interval.WorkMin + interval.RestMin)
	if reps < 1 {
		return fmt.Sprintf("%dmin continuous %s @ %s | TSS %d", s.DurationMin, z.label, z.power, s.TargetTSS)
	}
	if reps > maxReps {
		reps = maxReps
	}
	return fmt.Sprintf("Warm-up %dmin | %dx%dmin %s @ %s, %dmin easy | Cool-down %dmin",
		warm, reps, interval.WorkMin, z.label, z.power, interval.RestMin, cool)
}
