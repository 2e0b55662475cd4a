package models

// GoalPriority ranks season goals.
type GoalPriority string

const (
	PriorityA GoalPriority = "A"
	PriorityB GoalPriority = "B"
	PriorityC GoalPriority = "C"
)

type TaperStrategy struct {
	DaysBeforeEvent int     `json:"days_before_event"`
	VolumeReduction float64 `json:"volume_reduction"`
}

// SeasonGoal is a target event.
type SeasonGoal struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Date     string        `json:"date"`
	Priority GoalPriority  `json:"priority"`
	Taper    TaperStrategy `json:"taper"`
}

// TrainingCamp is a block of boosted aerobic volume.
type TrainingCamp struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	StartDate           string  `json:"start_date"`
	EndDate             string  `json:"end_date"`
	VolumeBump          float64 `json:"volume_bump"` // percent
	HitCap              int     `json:"hit_cap"`
	DeloadDays          int     `json:"deload_days"`
	PostVolumeReduction float64 `json:"post_volume_reduction"` // percent
}
