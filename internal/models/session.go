package models

// SessionType is the intensity class of a session.
type SessionType string

const (
	SessionLIT      SessionType = "LIT"
	SessionHIT      SessionType = "HIT"
	SessionREC      SessionType = "REC"
	SessionStrength SessionType = "STRENGTH"
)

// SubType refines a session type into a workout family.
type SubType string

const (
	SubEndurance     SubType = "endurance"
	SubTempo         SubType = "tempo"
	SubThreshold     SubType = "threshold"
	SubVO2Max        SubType = "vo2max"
	SubNeuromuscular SubType = "neuromuscular"
	SubRecovery      SubType = "recovery"
)

// SessionWindow is the concrete start/end a session was placed into.
type SessionWindow struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// TssReduction records a stress cut caused by limited availability.
type TssReduction struct {
	OriginalTSS       int `json:"original_tss"`
	IdealDuration     int `json:"ideal_duration"`
	AvailableDuration int `json:"available_duration"`
}

// TrainingSession is one planned workout.
type TrainingSession struct {
	ID          string         `json:"id"`
	Date        string         `json:"date"`
	Type        SessionType    `json:"type"`
	SubType     SubType        `json:"sub_type"`
	DurationMin int            `json:"duration_min"`
	TargetTSS   int            `json:"target_tss"`
	ActualTSS   *int           `json:"actual_tss,omitempty"`
	Indoor      bool           `json:"indoor"`
	Description string         `json:"description"`
	TimeSlot    *SessionWindow `json:"time_slot,omitempty"`
	Completed   bool           `json:"completed"`
	Notes       string         `json:"notes,omitempty"`
	Reduction   *TssReduction  `json:"reduction,omitempty"`
}

// AddNote appends a line to the session notes.
func (s *TrainingSession) AddNote(note string) {
	if note == "" {
		return
	}
	if s.Notes == "" {
		s.Notes = note
		return
	}
	s.Notes += "\n" + note
}
