package models

// MorningCheck is the daily subjective questionnaire. All ratings are 1-5.
type MorningCheck struct {
	Date           string   `json:"date"`
	SleepQuality   int      `json:"sleep_quality"`
	Fatigue        int      `json:"fatigue"`
	Motivation     int      `json:"motivation"`
	Soreness       int      `json:"soreness"`
	Stress         int      `json:"stress"`
	Notes          string   `json:"notes,omitempty"`
	ReadinessScore *float64 `json:"readiness_score,omitempty"`
}
