package constants

// Nightly sweep
const (
	DefaultSweepSchedule      = "0 0 23 * * *"
	DefaultSweepTimezone      = "Europe/Berlin"
	DefaultSweepWorkers       = 4
	DefaultSweepRatePerSecond = 5.0
	DefaultSweepLookbackDays  = 42

	SweepMinCompliance   = 0.60
	SweepMinMissed       = 2
	SweepTSBThreshold    = -25.0
	SweepMinReadiness    = 0.50
	SweepMaxTSSDeviation = 0.50
	SweepFallbackTSS     = 60
)

// HTTP server
const (
	DefaultServerAddr = "127.0.0.1:8428"
)
