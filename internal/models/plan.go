package models

import "time"

// TrainingPhase is a periodization block.
type TrainingPhase string

const (
	PhaseBase        TrainingPhase = "BASE"
	PhaseBuild       TrainingPhase = "BUILD"
	PhasePeak        TrainingPhase = "PEAK"
	PhaseTaper       TrainingPhase = "TAPER"
	PhaseMaintenance TrainingPhase = "MAINTENANCE"
)

// PlanConstraints records the effective limits a plan was generated under.
type PlanConstraints struct {
	AvailableHours  float64 `json:"available_hours"`
	MaxHitDays      int     `json:"max_hit_days"`
	CampActive      string  `json:"camp_active,omitempty"`
	GoalApproaching string  `json:"goal_approaching,omitempty"`
	RecoveryWeek    bool    `json:"recovery_week,omitempty"`
}

// WeeklyPlan is one athlete's week of sessions.
type WeeklyPlan struct {
	ID            string            `json:"id"`
	WeekStartDate string            `json:"week_start_date"`
	UserID        string            `json:"user_id"`
	Revision      int               `json:"revision"`
	TotalHours    float64           `json:"total_hours"`
	TotalTSS      int               `json:"total_tss"`
	LitRatio      float64           `json:"lit_ratio"`
	HitSessions   int               `json:"hit_sessions"`
	Phase         TrainingPhase     `json:"phase"`
	Sessions      []TrainingSession `json:"sessions"`
	Constraints   PlanConstraints   `json:"constraints"`
	Quality       PlanQuality       `json:"quality"`
	GeneratedAt   time.Time         `json:"generated_at"`
}

// SessionsOn returns the sessions planned for a date, in plan order.
func (p WeeklyPlan) SessionsOn(date string) []TrainingSession {
	var out []TrainingSession
	for _, s := range p.Sessions {
		if s.Date == date {
			out = append(out, s)
		}
	}
	return out
}

// ReplaceSessions swaps adapted sessions back in by id.
func (p *WeeklyPlan) ReplaceSessions(updated []TrainingSession) {
	byID := make(map[string]TrainingSession, len(updated))
	for _, s := range updated {
		byID[s.ID] = s
	}
	for i, s := range p.Sessions {
		if u, ok := byID[s.ID]; ok {
			p.Sessions[i] = u
		}
	}
}

// WarningKind is the closed set of quality warnings.
type WarningKind string

const (
	WarningSplitSession     WarningKind = "split-session"
	WarningTssReduced       WarningKind = "tss-reduced"
	WarningInsufficientTime WarningKind = "insufficient-time"
	WarningSuboptimalTiming WarningKind = "suboptimal-timing"
)

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

type WarningDetails struct {
	OriginalTSS       int `json:"original_tss,omitempty"`
	AdjustedTSS       int `json:"adjusted_tss,omitempty"`
	OriginalDuration  int `json:"original_duration,omitempty"`
	AvailableDuration int `json:"available_duration,omitempty"`
}

type PlanWarning struct {
	Kind       WarningKind    `json:"kind"`
	Severity   Severity       `json:"severity"`
	SessionIDs []string       `json:"session_ids"`
	Message    string         `json:"message"`
	Details    WarningDetails `json:"details"`
}

type QualityAdjustments struct {
	SplitSessions int `json:"split_sessions"`
	TssReduced    int `json:"tss_reduced"`
	TotalTssLost  int `json:"total_tss_lost"`
}

type QualityFactors struct {
	TimeSlotMatch        float64 `json:"time_slot_match"`
	TrainingDistribution float64 `json:"training_distribution"`
	RecoveryAdequacy     float64 `json:"recovery_adequacy"`
}

// PlanQuality scores a freshly generated set of sessions.
type PlanQuality struct {
	Score       float64            `json:"score"`
	Warnings    []PlanWarning      `json:"warnings"`
	Adjustments QualityAdjustments `json:"adjustments"`
	Factors     QualityFactors     `json:"factors"`
}
