package load

import (
	"fmt"
	"sort"

	"github.com/Ebi50/training28-sub000/internal/constants"
	"github.com/Ebi50/training28-sub000/internal/models"
	"github.com/Ebi50/training28-sub000/internal/utils"
)

// DayTSS is the stress recorded (or planned) for one calendar day.
type DayTSS struct {
	Date string  `json:"date"`
	TSS  float64 `json:"tss"`
}

// Alpha is the EMA smoothing factor for an n-day window.
func Alpha(n int) float64 {
	return 2.0 / (float64(n) + 1.0)
}

var (
	ctlAlpha = Alpha(constants.CTLDays)
	atlAlpha = Alpha(constants.ATLDays)
)

// Update advances the chain by one day.
func Update(prev models.DailyLoad, date string, tss float64) models.DailyLoad {
	return models.DailyLoad{
		Date: date,
		TSS:  tss,
		CTL:  prev.CTL + ctlAlpha*(tss-prev.CTL),
		ATL:  prev.ATL + atlAlpha*(tss-prev.ATL),
	}
}

// BuildHistory runs the EMA chain over a sparse list of entries. Entries on
// the same date are summed and every calendar day in between is stepped with
// zero stress. When seed is set the chain continues from the day after it and
// earlier entries are ignored. When through is set the chain is extended with
// rest days up to that date.
func BuildHistory(entries []DayTSS, seed *models.DailyLoad, through string) ([]models.DailyLoad, error) {
	byDate := make(map[string]float64, len(entries))
	var dates []string
	for _, e := range entries {
		if _, err := utils.ParseDate(e.Date); err != nil {
			return nil, err
		}
		if _, ok := byDate[e.Date]; !ok {
			dates = append(dates, e.Date)
		}
		byDate[e.Date] += e.TSS
	}
	sort.Strings(dates)

	var prev models.DailyLoad
	var start string
	switch {
	case seed != nil:
		d, err := utils.ParseDate(seed.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid seed: %w", err)
		}
		prev = *seed
		start = utils.FormatDate(d.AddDate(0, 0, 1))
	case len(dates) > 0:
		start = dates[0]
	default:
		return nil, nil
	}

	end := through
	if end == "" {
		if len(dates) == 0 {
			return nil, nil
		}
		end = dates[len(dates)-1]
	}
	if len(dates) > 0 && dates[len(dates)-1] > end {
		end = dates[len(dates)-1]
	}

	startDate, err := utils.ParseDate(start)
	if err != nil {
		return nil, err
	}
	endDate, err := utils.ParseDate(end)
	if err != nil {
		return nil, err
	}

	var history []models.DailyLoad
	for d := startDate; !d.After(endDate); d = d.AddDate(0, 0, 1) {
		key := utils.FormatDate(d)
		prev = Update(prev, key, byDate[key])
		history = append(history, prev)
	}
	return history, nil
}

// FromActivities converts activities into per-day entries.
func FromActivities(activities []models.Activity) []DayTSS {
	out := make([]DayTSS, 0, len(activities))
	for _, a := range activities {
		out = append(out, DayTSS{Date: a.Date, TSS: float64(a.TSS)})
	}
	return out
}

// Forecast projects the chain forward over planned daily stress, in the order given.
func Forecast(current models.DailyLoad, planned []DayTSS) []models.DailyLoad {
	out := make([]models.DailyLoad, 0, len(planned))
	prev := current
	for _, p := range planned {
		prev = Update(prev, p.Date, p.TSS)
		out = append(out, prev)
	}
	return out
}

// Current returns the latest entry, or the zero value for an empty history.
func Current(history []models.DailyLoad) models.DailyLoad {
	if len(history) == 0 {
		return models.DailyLoad{}
	}
	return history[len(history)-1]
}

// Window returns the entries whose date lies in [from, to].
func Window(history []models.DailyLoad, from, to string) []models.DailyLoad {
	var out []models.DailyLoad
	for _, h := range history {
		if h.Date >= from && h.Date <= to {
			out = append(out, h)
		}
	}
	return out
}
