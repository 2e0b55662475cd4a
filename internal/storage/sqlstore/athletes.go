package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/Ebi50/training28-sub000/internal/models"
	"github.com/Ebi50/training28-sub000/internal/storage"
)

const athleteColumns = `id, name, ftp, lthr, max_hr, resting_hr, weight_kg, birth_year, timezone,
	weekly_hours, lit_ratio, max_hit_days, indoor_allowed, event_date, auto_update`

func (s *Store) SaveAthlete(a models.Athlete) error {
	_, err := s.exec(`
		INSERT INTO athletes (`+athleteColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			ftp = excluded.ftp,
			lthr = excluded.lthr,
			max_hr = excluded.max_hr,
			resting_hr = excluded.resting_hr,
			weight_kg = excluded.weight_kg,
			birth_year = excluded.birth_year,
			timezone = excluded.timezone,
			weekly_hours = excluded.weekly_hours,
			lit_ratio = excluded.lit_ratio,
			max_hit_days = excluded.max_hit_days,
			indoor_allowed = excluded.indoor_allowed,
			event_date = excluded.event_date,
			auto_update = excluded.auto_update`,
		a.ID, a.Name, a.FTP, a.LTHR, a.MaxHR, a.RestingHR, a.WeightKg, a.BirthYear, a.Timezone,
		a.WeeklyHours, a.LitRatio, a.MaxHitDays, a.IndoorAllowed, nullString(a.EventDate), a.AutoUpdate,
	)
	if err != nil {
		return fmt.Errorf("failed to save athlete %s: %w", a.ID, err)
	}
	return nil
}

func (s *Store) GetAthlete(id string) (models.Athlete, error) {
	a, err := scanAthlete(s.queryRow(`SELECT `+athleteColumns+` FROM athletes WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Athlete{}, fmt.Errorf("athlete %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return models.Athlete{}, fmt.Errorf("failed to load athlete %s: %w", id, err)
	}
	return a, nil
}

func (s *Store) ListAthletes() ([]models.Athlete, error) {
	return s.listAthletes(`SELECT ` + athleteColumns + ` FROM athletes ORDER BY id`)
}

func (s *Store) ListAutoUpdateAthletes() ([]models.Athlete, error) {
	return s.listAthletes(`SELECT `+athleteColumns+` FROM athletes WHERE auto_update = ? ORDER BY id`, true)
}

func (s *Store) listAthletes(q string, args ...any) ([]models.Athlete, error) {
	rows, err := s.query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list athletes: %w", err)
	}
	defer rows.Close()

	var out []models.Athlete
	for rows.Next() {
		a, err := scanAthlete(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAthlete(sc scanner) (models.Athlete, error) {
	var a models.Athlete
	var event sql.NullString
	err := sc.Scan(&a.ID, &a.Name, &a.FTP, &a.LTHR, &a.MaxHR, &a.RestingHR, &a.WeightKg, &a.BirthYear, &a.Timezone,
		&a.WeeklyHours, &a.LitRatio, &a.MaxHitDays, &a.IndoorAllowed, &event, &a.AutoUpdate)
	a.EventDate = stringPtr(event)
	return a, err
}
