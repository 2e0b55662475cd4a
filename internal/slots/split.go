package slots

import (
	"sort"

	"github.com/Ebi50/training28-sub000/internal/constants"
	"github.com/Ebi50/training28-sub000/internal/models"
)

// NeedsSplit decides whether a day's session should be spread over several
// slots. It does when the longest slot covers less than threshold of the ideal
// duration, or for a LIT day whose combined availability exceeds longRideMin
// while the ideal duration does not fit the longest slot.
func NeedsSplit(daySlots []models.TimeSlot, idealMin int, sessionType models.SessionType, threshold float64, longRideMin int) bool {
	if len(daySlots) < 2 || idealMin <= 0 {
		return false
	}
	longest, _ := Longest(daySlots)
	longestMin := longest.DurationMinutes()
	if float64(longestMin) < threshold*float64(idealMin) {
		return true
	}
	return sessionType == models.SessionLIT &&
		TotalMinutes(daySlots) > longRideMin &&
		idealMin > longestMin
}

// SplitShares returns the fraction of the day's work each part receives.
func SplitShares(n int) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{1}
	case n == 2:
		return []float64{constants.SplitPrimaryShare, 1 - constants.SplitPrimaryShare}
	}
	shares := make([]float64, n)
	for i := range shares {
		shares[i] = 1 / float64(n)
	}
	return shares
}

// SplitOrder puts the longest slot first, followed by the others in start order.
func SplitOrder(daySlots []models.TimeSlot) []models.TimeSlot {
	if len(daySlots) == 0 {
		return nil
	}
	ordered := make([]models.TimeSlot, len(daySlots))
	copy(ordered, daySlots)
	sort.SliceStable(ordered, func(i, j int) bool {
		return startMinutes(ordered[i]) < startMinutes(ordered[j])
	})
	primary := 0
	for i, s := range ordered {
		if s.DurationMinutes() > ordered[primary].DurationMinutes() {
			primary = i
		}
	}
	out := []models.TimeSlot{ordered[primary]}
	out = append(out, ordered[:primary]...)
	return append(out, ordered[primary+1:]...)
}
