package models

// Athlete holds physiological constants and standing planning defaults.
type Athlete struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	FTP           float64 `json:"ftp"`
	LTHR          float64 `json:"lthr"`
	MaxHR         float64 `json:"max_hr"`
	RestingHR     float64 `json:"resting_hr"`
	WeightKg      float64 `json:"weight_kg"`
	BirthYear     int     `json:"birth_year,omitempty"`
	Timezone      string  `json:"timezone"`
	WeeklyHours   float64 `json:"weekly_hours"`
	LitRatio      float64 `json:"lit_ratio"`
	MaxHitDays    int     `json:"max_hit_days"`
	IndoorAllowed bool    `json:"indoor_allowed"`
	EventDate     *string `json:"event_date,omitempty"`
	AutoUpdate    bool    `json:"auto_update"`
}

// HasPhysiology reports whether any stress-estimation constant is known.
func (a Athlete) HasPhysiology() bool {
	return a.FTP > 0 || a.LTHR > 0
}
