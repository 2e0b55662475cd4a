package predictor

import (
	"math"
	"sort"
	"time"

	"github.com/Ebi50/training28-sub000/internal/models"
)

// Features is a named feature vector.
type Features map[string]float64

// DefaultFeatureNames is the column order used when a model does not list its own.
var DefaultFeatureNames = []string{
	"tss_lag1", "tss_3d", "tss_7d", "tss_14d", "tss_28d", "tss_std7", "tss_zero7",
	"ctl_42", "atl_7", "tsb", "ramp_7v42",
	"dow_sin", "dow_cos", "mon_sin", "mon_cos",
	"ftp", "lthr", "weight", "age",
}

const (
	defaultFTP    = 250.0
	defaultLTHR   = 165.0
	defaultWeight = 75.0
	defaultAge    = 35

	ftpScale    = 300.0
	lthrScale   = 180.0
	weightScale = 80.0
	ageScale    = 50.0
)

// ExtractFeatures derives the model inputs for date from the athlete and
// their load history. History may be in any order.
func ExtractFeatures(athlete models.Athlete, history []models.DailyLoad, date time.Time) Features {
	recent := make([]models.DailyLoad, len(history))
	copy(recent, history)
	sort.SliceStable(recent, func(i, j int) bool { return recent[i].Date > recent[j].Date })

	sum := func(n int) float64 {
		var s float64
		for i := 0; i < n && i < len(recent); i++ {
			s += recent[i].TSS
		}
		return s
	}

	f := Features{}
	var latest models.DailyLoad
	if len(recent) > 0 {
		latest = recent[0]
	}
	f["tss_lag1"] = latest.TSS
	f["tss_3d"] = sum(3)
	f["tss_7d"] = sum(7)
	f["tss_14d"] = sum(14)
	f["tss_28d"] = sum(28)

	n7 := min(7, len(recent))
	if n7 > 0 {
		mean := f["tss_7d"] / float64(n7)
		var sq float64
		zeros := 0
		for _, h := range recent[:n7] {
			sq += (h.TSS - mean) * (h.TSS - mean)
			if h.TSS == 0 {
				zeros++
			}
		}
		f["tss_std7"] = math.Sqrt(sq / float64(n7))
		f["tss_zero7"] = float64(zeros)
	}

	f["ctl_42"] = latest.CTL
	f["atl_7"] = latest.ATL
	f["tsb"] = latest.TSB()

	avg7 := f["tss_7d"] / 7
	avg42 := sum(42) / 42
	if avg42 > 0 {
		f["ramp_7v42"] = (avg7 - avg42) / avg42
	}

	dow := float64(date.Weekday())
	month := float64(date.Month() - 1)
	f["dow_sin"] = math.Sin(2 * math.Pi * dow / 7)
	f["dow_cos"] = math.Cos(2 * math.Pi * dow / 7)
	f["mon_sin"] = math.Sin(2 * math.Pi * month / 12)
	f["mon_cos"] = math.Cos(2 * math.Pi * month / 12)

	f["ftp"] = orDefault(athlete.FTP, defaultFTP) / ftpScale
	f["lthr"] = orDefault(athlete.LTHR, defaultLTHR) / lthrScale
	f["weight"] = orDefault(athlete.WeightKg, defaultWeight) / weightScale
	age := defaultAge
	if athlete.BirthYear > 0 {
		age = date.Year() - athlete.BirthYear
	}
	f["age"] = float64(age) / ageScale
	return f
}

// Vector orders features by names, using DefaultFeatureNames when names is empty.
func (f Features) Vector(names []string) []float64 {
	if len(names) == 0 {
		names = DefaultFeatureNames
	}
	out := make([]float64, len(names))
	for i, n := range names {
		out[i] = f[n]
	}
	return out
}

func orDefault(v, def float64) float64 {
	if v > 0 {
		return v
	}
	return def
}
