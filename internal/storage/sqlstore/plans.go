package sqlstore

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Ebi50/training28-sub000/internal/models"
	"github.com/Ebi50/training28-sub000/internal/storage"
)

// SavePlan stores the plan as the next revision of its week.
func (s *Store) SavePlan(p models.WeeklyPlan) (int, error) {
	var revision int
	err := s.inTx(func(tx *sql.Tx) error {
		var latest int
		err := tx.QueryRow(s.rebind(`
			SELECT COALESCE(MAX(revision), 0) FROM weekly_plans
			WHERE athlete_id = ? AND week_start = ?`), p.UserID, p.WeekStartDate).Scan(&latest)
		if err != nil {
			return fmt.Errorf("failed to read latest revision: %w", err)
		}

		revision = latest + 1
		p.Revision = revision
		payload, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("failed to encode plan: %w", err)
		}
		_, err = tx.Exec(s.rebind(`
			INSERT INTO weekly_plans (athlete_id, week_start, revision, plan_id, phase, total_tss, quality, payload, generated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`),
			p.UserID, p.WeekStartDate, revision, p.ID, string(p.Phase), p.TotalTSS, p.Quality.Score,
			string(payload), p.GeneratedAt.UTC().Format(time.RFC3339))
		if err != nil {
			return fmt.Errorf("failed to save plan %s: %w", p.ID, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return revision, nil
}

func (s *Store) GetPlan(athleteID, weekStart string) (models.WeeklyPlan, error) {
	return s.getPlan(`
		SELECT payload FROM weekly_plans
		WHERE athlete_id = ? AND week_start = ?
		ORDER BY revision DESC LIMIT 1`, athleteID, weekStart)
}

func (s *Store) GetPlanRevision(athleteID, weekStart string, revision int) (models.WeeklyPlan, error) {
	return s.getPlan(`
		SELECT payload FROM weekly_plans
		WHERE athlete_id = ? AND week_start = ? AND revision = ?`, athleteID, weekStart, revision)
}

// UpdatePlan rewrites the stored revision named by p.Revision.
func (s *Store) UpdatePlan(p models.WeeklyPlan) error {
	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode plan: %w", err)
	}
	res, err := s.exec(`
		UPDATE weekly_plans SET total_tss = ?, quality = ?, payload = ?
		WHERE athlete_id = ? AND week_start = ? AND revision = ?`,
		p.TotalTSS, p.Quality.Score, string(payload), p.UserID, p.WeekStartDate, p.Revision)
	if err != nil {
		return fmt.Errorf("failed to update plan %s: %w", p.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("plan %s revision %d: %w", p.WeekStartDate, p.Revision, storage.ErrNotFound)
	}
	return nil
}

func (s *Store) getPlan(q string, args ...any) (models.WeeklyPlan, error) {
	var payload []byte
	err := s.queryRow(q, args...).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return models.WeeklyPlan{}, fmt.Errorf("plan: %w", storage.ErrNotFound)
	}
	if err != nil {
		return models.WeeklyPlan{}, fmt.Errorf("failed to load plan: %w", err)
	}

	var p models.WeeklyPlan
	if err := json.Unmarshal(payload, &p); err != nil {
		return models.WeeklyPlan{}, fmt.Errorf("failed to decode plan: %w", err)
	}
	return p, nil
}
