package models

import "encoding/json"

// DailyLoad is one calendar day of the training-load chain.
type DailyLoad struct {
	Date string  `json:"date"`
	TSS  float64 `json:"tss"`
	CTL  float64 `json:"ctl"`
	ATL  float64 `json:"atl"`
}

// TSB is always derived from the two moving averages.
func (d DailyLoad) TSB() float64 {
	return d.CTL - d.ATL
}

func (d DailyLoad) MarshalJSON() ([]byte, error) {
	type alias DailyLoad
	return json.Marshal(struct {
		alias
		TSB float64 `json:"tsb"`
	}{alias: alias(d), TSB: d.TSB()})
}

// Activity is a completed workout as recorded by the athlete.
type Activity struct {
	ID              string  `json:"id"`
	AthleteID       string  `json:"athlete_id"`
	Date            string  `json:"date"`
	DurationSec     int     `json:"duration_sec"`
	NormalizedPower float64 `json:"normalized_power,omitempty"`
	AvgPower        float64 `json:"avg_power,omitempty"`
	AvgHR           float64 `json:"avg_hr,omitempty"`
	RPE             int     `json:"rpe,omitempty"`
	TSS             int     `json:"tss"`
	Method          string  `json:"method"`
}
