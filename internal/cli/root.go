package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Ebi50/training28-sub000/internal/config"
	"github.com/Ebi50/training28-sub000/internal/constants"
	apperr "github.com/Ebi50/training28-sub000/internal/errors"
	"github.com/Ebi50/training28-sub000/internal/keyring"
	"github.com/Ebi50/training28-sub000/internal/models"
	"github.com/Ebi50/training28-sub000/internal/storage"
	"github.com/Ebi50/training28-sub000/internal/storage/postgres"
	"github.com/Ebi50/training28-sub000/internal/storage/sqlite"
	"github.com/Ebi50/training28-sub000/internal/utils"
)

// KeyringSource is the --db value that reads the connection string from the OS keyring.
const KeyringSource = "keyring"

type Context struct {
	Store      storage.Provider
	Config     *config.Config
	ConfigPath string
	AthleteID  string
	// Now is overridden in tests
	Now func() time.Time
}

func (c *Context) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// Athlete loads the athlete selected with --athlete.
func (c *Context) Athlete() (models.Athlete, error) {
	a, err := c.Store.GetAthlete(c.AthleteID)
	if errors.Is(err, storage.ErrNotFound) {
		return a, apperr.WithHint(fmt.Errorf("athlete %q: %w", c.AthleteID, err),
			"create the athlete with 'training28 athlete set --ftp <watts>'")
	}
	return a, err
}

// Today is the athlete's local calendar date as a UTC midnight.
func (c *Context) Today(a models.Athlete) time.Time {
	now := c.now()
	if loc, err := utils.LoadLocation(a.Timezone); err == nil {
		now = now.In(loc)
	}
	return utils.Midnight(now)
}

// OpenStore picks the storage backend. A connection string from the
// environment wins over db; db may be a SQLite path, a PostgreSQL connection
// string without a password, or "keyring".
func OpenStore(db, env string) (storage.Provider, error) {
	if env != "" {
		if !looksLikePostgres(env) {
			return nil, fmt.Errorf("%s must hold a PostgreSQL connection string", constants.EnvDBConnection)
		}
		return trusted(env)
	}

	if db == "" {
		db = constants.DefaultDBPath
	}
	if db == KeyringSource {
		conn, err := keyring.Get("")
		if err != nil {
			return nil, apperr.WithHint(err, "store a connection string with 'training28 keyring set <conn>'")
		}
		return trusted(conn)
	}

	if looksLikePostgres(db) {
		if _, err := postgres.ValidateConnString(db); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, apperr.WithHint(err, fmt.Sprintf(
					"use 'training28 keyring set', export %s, or a .pgpass file", constants.EnvDBConnection))
			}
			return nil, err
		}
		return postgres.New(db), nil
	}

	path, err := utils.ExpandPath(db)
	if err != nil {
		return nil, err
	}
	return sqlite.NewStore(path), nil
}

// trusted opens a connection string from a secure source, where an embedded
// password is acceptable.
func trusted(conn string) (storage.Provider, error) {
	if _, err := postgres.ValidateConnString(conn); err != nil && !errors.Is(err, postgres.ErrEmbeddedCredentials) {
		return nil, err
	}
	return postgres.New(conn), nil
}

func looksLikePostgres(s string) bool {
	return postgres.IsConnString(s) || strings.Contains(s, "host=")
}

// ParseWeekdays parses a comma-separated list of weekdays
func ParseWeekdays(s string) ([]time.Weekday, error) {
	parts := strings.Split(s, ",")
	var weekdays []time.Weekday

	dayMap := map[string]time.Weekday{
		"sun":       time.Sunday,
		"sunday":    time.Sunday,
		"mon":       time.Monday,
		"monday":    time.Monday,
		"tue":       time.Tuesday,
		"tuesday":   time.Tuesday,
		"wed":       time.Wednesday,
		"wednesday": time.Wednesday,
		"thu":       time.Thursday,
		"thursday":  time.Thursday,
		"fri":       time.Friday,
		"friday":    time.Friday,
		"sat":       time.Saturday,
		"saturday":  time.Saturday,
	}

	for _, part := range parts {
		part = strings.TrimSpace(strings.ToLower(part))
		if wd, ok := dayMap[part]; ok {
			weekdays = append(weekdays, wd)
		} else {
			// 0=Sunday, 6=Saturday
			num, err := strconv.Atoi(part)
			if err == nil && num >= 0 && num <= 6 {
				weekdays = append(weekdays, time.Weekday(num))
			} else {
				return nil, fmt.Errorf("invalid weekday: %s", part)
			}
		}
	}

	return weekdays, nil
}

// ParseWeek resolves a week argument to its Monday. Accepts "this", "next",
// "last" or any date inside the week; empty means this week.
func ParseWeek(arg string, today time.Time) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(arg)) {
	case "", "this":
		return utils.WeekStart(today), nil
	case "next":
		return utils.NextWeekStart(today), nil
	case "last":
		return utils.WeekStart(today).AddDate(0, 0, -7), nil
	}
	d, err := utils.ParseDate(arg)
	if err != nil {
		return time.Time{}, err
	}
	return utils.WeekStart(d), nil
}

// ParseDay resolves "today", "yesterday" or a YYYY-MM-DD date.
func ParseDay(arg string, today time.Time) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(arg)) {
	case "", "today":
		return today, nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	}
	return utils.ParseDate(arg)
}

// ParseSlotKind accepts indoor, outdoor or both.
func ParseSlotKind(s string) (models.SlotKind, error) {
	switch k := models.SlotKind(strings.ToLower(s)); k {
	case models.SlotIndoor, models.SlotOutdoor, models.SlotBoth:
		return k, nil
	case "":
		return models.SlotBoth, nil
	}
	return "", fmt.Errorf("invalid slot kind %q (want indoor, outdoor or both)", s)
}
