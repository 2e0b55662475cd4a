package sqlstore

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Ebi50/training28-sub000/internal/models"
)

// ReplaceSlots swaps the athlete's whole availability in one transaction.
func (s *Store) ReplaceSlots(athleteID string, slots []models.TimeSlot) error {
	return s.inTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(s.rebind(`DELETE FROM time_slots WHERE athlete_id = ?`), athleteID); err != nil {
			return fmt.Errorf("failed to clear slots: %w", err)
		}
		stmt, err := tx.Prepare(s.rebind(`
			INSERT INTO time_slots (athlete_id, day, start_time, end_time, kind)
			VALUES (?, ?, ?, ?, ?)`))
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, sl := range slots {
			if _, err := stmt.Exec(athleteID, int(sl.Day), sl.StartTime, sl.EndTime, string(sl.Kind)); err != nil {
				return fmt.Errorf("failed to save slot %s: %w", sl, err)
			}
		}
		return nil
	})
}

func (s *Store) GetSlots(athleteID string) ([]models.TimeSlot, error) {
	rows, err := s.query(`
		SELECT day, start_time, end_time, kind FROM time_slots
		WHERE athlete_id = ? ORDER BY day, start_time`, athleteID)
	if err != nil {
		return nil, fmt.Errorf("failed to load slots: %w", err)
	}
	defer rows.Close()

	var out []models.TimeSlot
	for rows.Next() {
		var sl models.TimeSlot
		var day int
		var kind string
		if err := rows.Scan(&day, &sl.StartTime, &sl.EndTime, &kind); err != nil {
			return nil, err
		}
		sl.Day = time.Weekday(day)
		sl.Kind = models.SlotKind(kind)
		out = append(out, sl)
	}
	return out, rows.Err()
}

// SaveGoal upserts a goal, assigning an id when it has none.
func (s *Store) SaveGoal(athleteID string, g models.SeasonGoal) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	_, err := s.exec(`
		INSERT INTO season_goals (id, athlete_id, name, date, priority, taper_days, taper_volume_reduction)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			date = excluded.date,
			priority = excluded.priority,
			taper_days = excluded.taper_days,
			taper_volume_reduction = excluded.taper_volume_reduction`,
		g.ID, athleteID, g.Name, g.Date, string(g.Priority), g.Taper.DaysBeforeEvent, g.Taper.VolumeReduction)
	if err != nil {
		return fmt.Errorf("failed to save goal %q: %w", g.Name, err)
	}
	return nil
}

func (s *Store) GetGoals(athleteID string) ([]models.SeasonGoal, error) {
	rows, err := s.query(`
		SELECT id, name, date, priority, taper_days, taper_volume_reduction
		FROM season_goals WHERE athlete_id = ? ORDER BY date`, athleteID)
	if err != nil {
		return nil, fmt.Errorf("failed to load goals: %w", err)
	}
	defer rows.Close()

	var out []models.SeasonGoal
	for rows.Next() {
		var g models.SeasonGoal
		var priority string
		if err := rows.Scan(&g.ID, &g.Name, &g.Date, &priority, &g.Taper.DaysBeforeEvent, &g.Taper.VolumeReduction); err != nil {
			return nil, err
		}
		g.Priority = models.GoalPriority(priority)
		out = append(out, g)
	}
	return out, rows.Err()
}

// SaveCamp upserts a camp, assigning an id when it has none.
func (s *Store) SaveCamp(athleteID string, c models.TrainingCamp) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	_, err := s.exec(`
		INSERT INTO training_camps (id, athlete_id, name, start_date, end_date, volume_bump, hit_cap, deload_days, post_volume_reduction)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			volume_bump = excluded.volume_bump,
			hit_cap = excluded.hit_cap,
			deload_days = excluded.deload_days,
			post_volume_reduction = excluded.post_volume_reduction`,
		c.ID, athleteID, c.Name, c.StartDate, c.EndDate, c.VolumeBump, c.HitCap, c.DeloadDays, c.PostVolumeReduction)
	if err != nil {
		return fmt.Errorf("failed to save camp %q: %w", c.Name, err)
	}
	return nil
}

func (s *Store) GetCamps(athleteID string) ([]models.TrainingCamp, error) {
	rows, err := s.query(`
		SELECT id, name, start_date, end_date, volume_bump, hit_cap, deload_days, post_volume_reduction
		FROM training_camps WHERE athlete_id = ? ORDER BY start_date`, athleteID)
	if err != nil {
		return nil, fmt.Errorf("failed to load camps: %w", err)
	}
	defer rows.Close()

	var out []models.TrainingCamp
	for rows.Next() {
		var c models.TrainingCamp
		if err := rows.Scan(&c.ID, &c.Name, &c.StartDate, &c.EndDate, &c.VolumeBump, &c.HitCap, &c.DeloadDays, &c.PostVolumeReduction); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
