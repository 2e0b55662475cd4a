package constants

const (
	// Readiness weights; they must sum to 1.0.
	ReadinessSleepWeight      = 0.30
	ReadinessFatigueWeight    = 0.30
	ReadinessMotivationWeight = 0.20
	ReadinessSorenessWeight   = 0.15
	ReadinessStressWeight     = 0.05

	// Interpretation bands
	ReadinessExcellent = 0.85
	ReadinessGood      = 0.70
	ReadinessModerate  = 0.50

	ModerateAdjustmentFactor = 0.85
	LowAdjustmentFactor      = 0.70
	GoodHitTrimFactor        = 0.95

	// Forced recovery
	ForceRecoveryScore         = 0.40
	ForceRecoveryTrendAvg      = 0.50
	ForceRecoveryTrendMinDays  = 3
	ForceRecoveryTSB           = -25.0
	ForceRecoveryTSBReadiness  = 0.55
	TrendMinChecks             = 4
	TrendThreshold             = 0.10
	DefaultAverageReadiness    = 0.75
	RecoveryMaxDurationMin     = 60
	RecoveryMaxTSS             = 40
	LightRecoveryMaxTSS        = 50
	RecommendHitReadiness      = 0.80
	RecommendLitReadiness      = 0.65
	RecommendRecoveryReadiness = 0.45
)

func init() {
	sum := ReadinessSleepWeight + ReadinessFatigueWeight + ReadinessMotivationWeight +
		ReadinessSorenessWeight + ReadinessStressWeight
	if sum < 0.999 || sum > 1.001 {
		panic("readiness weights must sum to 1.0")
	}
}
