package sqlstore

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/Ebi50/training28-sub000/internal/models"
)

// AddActivity inserts an activity, assigning an id when it has none.
func (s *Store) AddActivity(a models.Activity) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	_, err := s.exec(`
		INSERT INTO activities (id, athlete_id, date, duration_sec, normalized_power, avg_power, avg_hr, rpe, tss, method)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.AthleteID, a.Date, a.DurationSec, a.NormalizedPower, a.AvgPower, a.AvgHR, a.RPE, a.TSS, a.Method)
	if err != nil {
		return fmt.Errorf("failed to save activity: %w", err)
	}
	return nil
}

// GetActivities returns activities dated within [from, to], oldest first.
func (s *Store) GetActivities(athleteID, from, to string) ([]models.Activity, error) {
	rows, err := s.query(`
		SELECT id, athlete_id, date, duration_sec, normalized_power, avg_power, avg_hr, rpe, tss, method
		FROM activities WHERE athlete_id = ? AND date >= ? AND date <= ?
		ORDER BY date, id`, athleteID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load activities: %w", err)
	}
	defer rows.Close()

	var out []models.Activity
	for rows.Next() {
		var a models.Activity
		if err := rows.Scan(&a.ID, &a.AthleteID, &a.Date, &a.DurationSec, &a.NormalizedPower, &a.AvgPower, &a.AvgHR, &a.RPE, &a.TSS, &a.Method); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// SaveDailyLoads upserts a run of computed load days.
func (s *Store) SaveDailyLoads(athleteID string, loads []models.DailyLoad) error {
	return s.inTx(func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(s.rebind(`
			INSERT INTO daily_loads (athlete_id, date, tss, ctl, atl)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT (athlete_id, date) DO UPDATE SET
				tss = excluded.tss,
				ctl = excluded.ctl,
				atl = excluded.atl`))
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, l := range loads {
			if _, err := stmt.Exec(athleteID, l.Date, l.TSS, l.CTL, l.ATL); err != nil {
				return fmt.Errorf("failed to save load for %s: %w", l.Date, err)
			}
		}
		return nil
	})
}

// GetDailyLoads returns stored load days within [from, to], oldest first.
// An empty from or to leaves that side open.
func (s *Store) GetDailyLoads(athleteID, from, to string) ([]models.DailyLoad, error) {
	if to == "" {
		to = "9999-12-31"
	}
	rows, err := s.query(`
		SELECT date, tss, ctl, atl FROM daily_loads
		WHERE athlete_id = ? AND date >= ? AND date <= ?
		ORDER BY date`, athleteID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load daily loads: %w", err)
	}
	defer rows.Close()

	var out []models.DailyLoad
	for rows.Next() {
		var l models.DailyLoad
		if err := rows.Scan(&l.Date, &l.TSS, &l.CTL, &l.ATL); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (s *Store) SaveMorningCheck(athleteID string, c models.MorningCheck) error {
	var score sql.NullFloat64
	if c.ReadinessScore != nil {
		score = sql.NullFloat64{Float64: *c.ReadinessScore, Valid: true}
	}
	_, err := s.exec(`
		INSERT INTO morning_checks (athlete_id, date, sleep_quality, fatigue, motivation, soreness, stress, notes, readiness_score)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (athlete_id, date) DO UPDATE SET
			sleep_quality = excluded.sleep_quality,
			fatigue = excluded.fatigue,
			motivation = excluded.motivation,
			soreness = excluded.soreness,
			stress = excluded.stress,
			notes = excluded.notes,
			readiness_score = excluded.readiness_score`,
		athleteID, c.Date, c.SleepQuality, c.Fatigue, c.Motivation, c.Soreness, c.Stress, c.Notes, score)
	if err != nil {
		return fmt.Errorf("failed to save morning check for %s: %w", c.Date, err)
	}
	return nil
}

// GetMorningChecks returns checks within [from, to], oldest first.
func (s *Store) GetMorningChecks(athleteID, from, to string) ([]models.MorningCheck, error) {
	rows, err := s.query(`
		SELECT date, sleep_quality, fatigue, motivation, soreness, stress, notes, readiness_score
		FROM morning_checks WHERE athlete_id = ? AND date >= ? AND date <= ?
		ORDER BY date`, athleteID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load morning checks: %w", err)
	}
	defer rows.Close()

	var out []models.MorningCheck
	for rows.Next() {
		var c models.MorningCheck
		var score sql.NullFloat64
		if err := rows.Scan(&c.Date, &c.SleepQuality, &c.Fatigue, &c.Motivation, &c.Soreness, &c.Stress, &c.Notes, &score); err != nil {
			return nil, err
		}
		if score.Valid {
			v := score.Float64
			c.ReadinessScore = &v
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
