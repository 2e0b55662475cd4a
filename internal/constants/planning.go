package constants

const (
	// Default guardrails
	DefaultMaxRampRate            = 0.15
	DefaultMinTSB                 = -20.0
	DefaultMaxTSB                 = 15.0
	DefaultNoHitBackToBack        = true
	DefaultMinRecoveryAfterHitHrs = 24
	DefaultMaxHitMinutesPerWeek   = 90
	DefaultTSBBeforeRace          = 0.0
	DefaultMaxConsecutiveHitWeeks = 3

	// Planner tuning
	DefaultSplitThreshold        = 0.70
	DefaultLongRideSplitMinutes  = 120
	DefaultRecoveryWeekFrequency = 4
	DefaultRecoveryWeekReduction = 0.40
	DefaultBaseWeeklyTSS         = 400.0

	// Camp and taper overrides
	CampMinLitRatio        = 0.90
	TaperVolumeFactor      = 0.70
	TaperMaxHitDays        = 1
	DefaultTaperLeadDays   = 14
	TaperLookaheadDays     = 21
	TaperMinIntensity      = 0.60
	PostCampMinLitRatio    = 0.95
	DefaultUpcomingDays    = 90
	DefaultCampDeloadDays  = 7
	DefaultCampHitCap      = 2
	DefaultCampVolumeBump  = 30.0
	DefaultPostCampReduce  = 30.0
	SplitPrimaryShare      = 0.60
	NoteRatioEpsilon       = 0.005
	InsufficientTimeFactor = 0.50
	MinHitSessionMinutes   = 20
)

var (
	// DayWeights distributes the weekly stress target, indexed by
	// time.Weekday (Sunday first).
	DayWeights = [7]float64{0.10, 0.15, 0.12, 0.15, 0.12, 0.18, 0.18}

	// PreferredHitDays are tried in order when selecting hard days.
	PreferredHitDays = []int{2, 4, 6}
)

func init() {
	var sum float64
	for _, w := range DayWeights {
		sum += w
	}
	if sum < 0.999 || sum > 1.001 {
		panic("DayWeights must sum to 1.0")
	}
}
