package slots

import (
	"math"

	"github.com/Ebi50/training28-sub000/internal/models"
)

const (
	morningBefore  = 12 * 60
	eveningFrom    = 17 * 60
	timeOfDayBonus = 10.0
	kindBonus      = 5.0
	lengthWeight   = 3.0
	maxLengthRatio = 2.0
)

// Preferences steer slot selection.
type Preferences struct {
	Morning bool
	Evening bool
	Indoor  bool
	Outdoor bool
}

// Score rates a slot for a session of requiredMin minutes. A slot too short
// for the session is not viable.
func Score(s models.TimeSlot, requiredMin int, prefs Preferences) (float64, bool) {
	length := s.DurationMinutes()
	if length <= 0 || length < requiredMin {
		return 0, false
	}

	var score float64
	start := startMinutes(s)
	if prefs.Morning && start < morningBefore {
		score += timeOfDayBonus
	}
	if prefs.Evening && start >= eveningFrom {
		score += timeOfDayBonus
	}
	if prefs.Indoor && s.Kind == models.SlotIndoor {
		score += kindBonus
	}
	if prefs.Outdoor && s.Kind == models.SlotOutdoor {
		score += kindBonus
	}

	ratio := maxLengthRatio
	if requiredMin > 0 {
		ratio = math.Min(float64(length)/float64(requiredMin), maxLengthRatio)
	}
	score += ratio * lengthWeight
	return score, true
}

// FindOptimalSlot returns the highest scoring viable slot, the earliest listed on ties.
func FindOptimalSlot(candidates []models.TimeSlot, requiredMin int, prefs Preferences) (models.TimeSlot, bool) {
	var (
		best      models.TimeSlot
		bestScore float64
		found     bool
	)
	for _, s := range candidates {
		score, ok := Score(s, requiredMin, prefs)
		if !ok {
			continue
		}
		if !found || score > bestScore {
			best, bestScore, found = s, score, true
		}
	}
	return best, found
}
