package planner

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/Ebi50/training28-sub000/internal/load"
	"github.com/Ebi50/training28-sub000/internal/models"
	"github.com/Ebi50/training28-sub000/internal/scheduler"
	"github.com/Ebi50/training28-sub000/internal/storage"
	"github.com/Ebi50/training28-sub000/internal/storage/sqlite"
)

func date(s string) time.Time {
	d, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return d
}

func emptyStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "training28.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	athlete := models.Athlete{
		ID:            "rider",
		Name:          "Rider",
		FTP:           250,
		LTHR:          165,
		Timezone:      "UTC",
		WeeklyHours:   8,
		LitRatio:      0.9,
		MaxHitDays:    2,
		IndoorAllowed: true,
	}
	if err := store.SaveAthlete(athlete); err != nil {
		t.Fatalf("SaveAthlete failed: %v", err)
	}
	return store
}

func logDays(t *testing.T, store *sqlite.Store, from, to string, tss int) {
	t.Helper()
	for d := date(from); !d.After(date(to)); d = d.AddDate(0, 0, 1) {
		a := models.Activity{AthleteID: "rider", Date: d.Format("2006-01-02"), DurationSec: 3600, TSS: tss, Method: "estimated"}
		if err := store.AddActivity(a); err != nil {
			t.Fatalf("AddActivity failed: %v", err)
		}
	}
}

func seededStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store := emptyStore(t)
	logDays(t, store, "2025-10-20", "2025-11-02", 50)
	return store
}

func TestRefreshLoads(t *testing.T) {
	store := seededStore(t)

	history, err := RefreshLoads(store, "rider", date("2025-11-04"))
	if err != nil {
		t.Fatalf("RefreshLoads failed: %v", err)
	}
	if len(history) != 16 {
		t.Fatalf("expected 16 days through the rest days, got %d", len(history))
	}
	if history[0].Date != "2025-10-20" || history[15].TSS != 0 {
		t.Errorf("unexpected chain ends %+v ... %+v", history[0], history[15])
	}

	stored, err := store.GetDailyLoads("rider", "", "")
	if err != nil || len(stored) != 16 {
		t.Errorf("expected stored chain of 16, got %d (%v)", len(stored), err)
	}
}

func TestGenerateStoresRevisions(t *testing.T) {
	store := seededStore(t)
	if _, err := RefreshLoads(store, "rider", date("2025-11-02")); err != nil {
		t.Fatalf("RefreshLoads failed: %v", err)
	}

	cfg := scheduler.DefaultPlanningConfig()
	ctx := context.Background()

	first, err := Generate(ctx, cfg, store, "rider", date("2025-11-05"), date("2025-11-02"), 42)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if first.WeekStartDate != "2025-11-03" || first.Revision != 1 || first.ID != "2025-W45" {
		t.Errorf("unexpected first plan %s rev %d (%s)", first.WeekStartDate, first.Revision, first.ID)
	}

	second, err := Generate(ctx, cfg, store, "rider", date("2025-11-03"), date("2025-11-02"), 42)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if second.Revision != 2 {
		t.Errorf("expected revision 2, got %d", second.Revision)
	}

	latest, err := store.GetPlan("rider", "2025-11-03")
	if err != nil || latest.Revision != 2 {
		t.Errorf("expected latest stored revision 2, got %d (%v)", latest.Revision, err)
	}
}

func TestGenerateUnknownAthlete(t *testing.T) {
	store := seededStore(t)
	_, err := Generate(context.Background(), scheduler.DefaultPlanningConfig(), store, "nobody", date("2025-11-03"), date("2025-11-02"), 42)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestBuildRequest(t *testing.T) {
	store := seededStore(t)
	if _, err := RefreshLoads(store, "rider", date("2025-11-06")); err != nil {
		t.Fatalf("RefreshLoads failed: %v", err)
	}
	camp := models.TrainingCamp{Name: "Camp", StartDate: "2025-11-01", EndDate: "2025-11-09", VolumeBump: 30, HitCap: 1}
	if err := store.SaveCamp("rider", camp); err != nil {
		t.Fatalf("SaveCamp failed: %v", err)
	}

	athlete, _ := store.GetAthlete("rider")
	req, err := BuildRequest(store, athlete, date("2025-11-06"), date("2025-11-02"), 7)
	if err != nil {
		t.Fatalf("BuildRequest failed: %v", err)
	}
	if !req.WeekStart.Equal(date("2025-11-03")) || req.WeekIndex != 1 || req.AfterRecoveryWeek {
		t.Errorf("unexpected week %v / index %d / after recovery %v", req.WeekStart, req.WeekIndex, req.AfterRecoveryWeek)
	}
	if len(req.History) != 7 || req.History[6].Date != "2025-11-02" {
		t.Errorf("expected the 7 days before the week, got %d", len(req.History))
	}
	if req.Camp == nil || req.Camp.Name != "Camp" {
		t.Errorf("expected the active camp, got %+v", req.Camp)
	}
}

// planReader serves stored plans keyed by week start.
type planReader struct {
	Reader
	plans map[string]models.WeeklyPlan
	err   error
}

func (r planReader) GetPlan(athleteID, weekStart string) (models.WeeklyPlan, error) {
	if r.err != nil {
		return models.WeeklyPlan{}, r.err
	}
	p, ok := r.plans[weekStart]
	if !ok {
		return models.WeeklyPlan{}, storage.ErrNotFound
	}
	return p, nil
}

func TestBlockPosition(t *testing.T) {
	normal := models.WeeklyPlan{}
	recovery := models.WeeklyPlan{Constraints: models.PlanConstraints{RecoveryWeek: true}}

	tests := []struct {
		name  string
		plans map[string]models.WeeklyPlan
		want  Block
	}{
		{"no plans", nil, Block{WeekIndex: 1}},
		{"one week planned", map[string]models.WeeklyPlan{"2025-10-27": normal}, Block{WeekIndex: 2}},
		{"three weeks planned", map[string]models.WeeklyPlan{
			"2025-10-13": normal, "2025-10-20": normal, "2025-10-27": normal,
		}, Block{WeekIndex: 4}},
		{"right after recovery", map[string]models.WeeklyPlan{
			"2025-10-13": normal, "2025-10-20": normal, "2025-10-27": recovery,
		}, Block{WeekIndex: 1, AfterRecovery: true}},
		{"second week after recovery", map[string]models.WeeklyPlan{
			"2025-10-20": recovery, "2025-10-27": normal,
		}, Block{WeekIndex: 2}},
		{"gap restarts the block", map[string]models.WeeklyPlan{
			"2025-10-13": normal, "2025-10-27": normal,
		}, Block{WeekIndex: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BlockPosition(planReader{plans: tt.plans}, "rider", date("2025-11-03"))
			if err != nil {
				t.Fatalf("BlockPosition failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("BlockPosition() = %+v, want %+v", got, tt.want)
			}
		})
	}

	boom := errors.New("disk gone")
	if _, err := BlockPosition(planReader{err: boom}, "rider", date("2025-11-03")); !errors.Is(err, boom) {
		t.Errorf("expected the storage error, got %v", err)
	}
}

func TestGenerateAfterRecoveryWeek(t *testing.T) {
	store := emptyStore(t)
	logDays(t, store, "2025-10-20", "2025-10-26", 50)
	logDays(t, store, "2025-10-27", "2025-11-02", 25)
	if _, err := RefreshLoads(store, "rider", date("2025-11-02")); err != nil {
		t.Fatalf("RefreshLoads failed: %v", err)
	}

	cfg := scheduler.DefaultPlanningConfig()
	ctx := context.Background()

	// without a stored recovery week the lighter week is the ramp baseline
	if _, err := Generate(ctx, cfg, store, "rider", date("2025-11-03"), date("2025-11-02"), 42); !errors.Is(err, load.ErrRampRateExceeded) {
		t.Fatalf("expected ErrRampRateExceeded, got %v", err)
	}

	recovery := models.WeeklyPlan{
		ID:            "2025-W44",
		WeekStartDate: "2025-10-27",
		UserID:        "rider",
		Constraints:   models.PlanConstraints{RecoveryWeek: true},
	}
	if _, err := store.SavePlan(recovery); err != nil {
		t.Fatalf("SavePlan failed: %v", err)
	}

	plan, err := Generate(ctx, cfg, store, "rider", date("2025-11-03"), date("2025-11-02"), 42)
	if err != nil {
		t.Fatalf("Generate after a recovery week failed: %v", err)
	}
	if plan.Constraints.RecoveryWeek || plan.Constraints.AvailableHours != 8 {
		t.Errorf("expected a full 8h week, got %v h (recovery %v)", plan.Constraints.AvailableHours, plan.Constraints.RecoveryWeek)
	}
}

func TestBuildRequestPostCampDeload(t *testing.T) {
	store := seededStore(t)
	camp := models.TrainingCamp{Name: "Camp", StartDate: "2025-10-25", EndDate: "2025-11-01", DeloadDays: 7, PostVolumeReduction: 30}
	if err := store.SaveCamp("rider", camp); err != nil {
		t.Fatalf("SaveCamp failed: %v", err)
	}

	athlete, _ := store.GetAthlete("rider")
	req, err := BuildRequest(store, athlete, date("2025-11-03"), date("2025-11-02"), 42)
	if err != nil {
		t.Fatalf("BuildRequest failed: %v", err)
	}
	if req.Camp != nil {
		t.Error("camp has ended and should not be active")
	}
	if req.Params.WeeklyHours != 8*0.7 || req.Params.MaxHitDays != 1 {
		t.Errorf("expected deload parameters, got %.2fh / %d HIT days", req.Params.WeeklyHours, req.Params.MaxHitDays)
	}
}

func TestEventDate(t *testing.T) {
	today := date("2025-11-01")
	goals := []models.SeasonGoal{
		{Name: "B race", Date: "2025-12-01", Priority: models.PriorityB},
		{Name: "A race", Date: "2026-03-01", Priority: models.PriorityA},
	}

	explicit := "2026-05-01"
	if got := EventDate(models.Athlete{EventDate: &explicit}, goals, today); got == nil || !got.Equal(date("2026-05-01")) {
		t.Errorf("expected explicit event date, got %v", got)
	}
	if got := EventDate(models.Athlete{}, goals, today); got == nil || !got.Equal(date("2026-03-01")) {
		t.Errorf("expected the A goal, got %v", got)
	}
	if got := EventDate(models.Athlete{}, nil, today); got != nil {
		t.Errorf("expected no event, got %v", got)
	}
}
