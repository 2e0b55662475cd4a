package constants

const (
	// Exponential moving average windows in days.
	CTLDays = 42
	ATLDays = 7

	// TSSPerHour is the rough stress-per-hour figure used to convert between
	// weekly hours and weekly TSS.
	TSSPerHour = 45.0

	// NoSignalIntensityFactor is assumed when an activity carries no power,
	// heart-rate or RPE data.
	NoSignalIntensityFactor = 0.75

	// NormalizedPowerFactor estimates NP from average power.
	NormalizedPowerFactor = 1.05

	// TSB interpretation bands
	TSBFreshAbove    = 15.0
	TSBOptimalFloor  = -10.0
	TSBTiredFloor    = -25.0
	TSBForceRecovery = -15.0
)
