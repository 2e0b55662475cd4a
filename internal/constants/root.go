package constants

const (
	AppName            = "training28"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/training28"
	DefaultDBPath      = "~/.config/training28/training28.db"
	DefaultConfigFile  = "~/.config/training28/config.toml"
	DefaultAthleteID   = "default"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// EnvDBConnection overrides the --db flag when set
	EnvDBConnection = "TRAINING28_DB_CONNECTION"
	// EnvTestPostgres enables PostgreSQL integration tests
	EnvTestPostgres = "TRAINING28_TEST_POSTGRES"
)
