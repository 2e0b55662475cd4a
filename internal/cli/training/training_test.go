package training

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/Ebi50/training28-sub000/internal/cli"
	"github.com/Ebi50/training28-sub000/internal/config"
	apperr "github.com/Ebi50/training28-sub000/internal/errors"
	"github.com/Ebi50/training28-sub000/internal/models"
	"github.com/Ebi50/training28-sub000/internal/readiness"
	"github.com/Ebi50/training28-sub000/internal/storage"
	"github.com/Ebi50/training28-sub000/internal/storage/sqlite"
)

// the context clock is Wednesday 2025-11-05; its week starts 2025-11-03
const thisWeek = "2025-11-03"

func setupTestContext(t *testing.T) *cli.Context {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "training28.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	rider := models.Athlete{
		ID: "default", FTP: 260, Timezone: "UTC",
		WeeklyHours: 8, LitRatio: 0.8, MaxHitDays: 2, IndoorAllowed: true,
	}
	if err := store.SaveAthlete(rider); err != nil {
		t.Fatalf("SaveAthlete failed: %v", err)
	}
	return &cli.Context{
		Store:     store,
		Config:    config.Default(),
		AthleteID: "default",
		Now:       func() time.Time { return time.Date(2025, 11, 5, 9, 0, 0, 0, time.UTC) },
	}
}

func TestLoadLogCmd(t *testing.T) {
	ctx := setupTestContext(t)

	if err := (&LoadLogCmd{Date: "yesterday", Duration: 60, NP: 200, Method: "auto"}).Run(ctx); err != nil {
		t.Fatalf("load log failed: %v", err)
	}
	if err := (&LoadLogCmd{Date: "today", Duration: 90, TSS: 80, Method: "auto"}).Run(ctx); err != nil {
		t.Fatalf("load log with TSS failed: %v", err)
	}

	acts, err := ctx.Store.GetActivities("default", "2025-11-04", "2025-11-05")
	if err != nil {
		t.Fatalf("GetActivities failed: %v", err)
	}
	if len(acts) != 2 {
		t.Fatalf("expected 2 activities, got %d", len(acts))
	}
	if acts[0].TSS <= 0 || acts[0].Method == methodManual {
		t.Errorf("expected a calculated TSS, got %d (%s)", acts[0].TSS, acts[0].Method)
	}
	if acts[1].TSS != 80 || acts[1].Method != methodManual {
		t.Errorf("expected manual TSS 80, got %d (%s)", acts[1].TSS, acts[1].Method)
	}

	loads, err := ctx.Store.GetDailyLoads("default", "2025-11-05", "2025-11-05")
	if err != nil || len(loads) != 1 || loads[0].CTL <= 0 {
		t.Errorf("expected today's load to be refreshed, got %v (err %v)", loads, err)
	}

	if err := (&LoadShowCmd{Days: 7, Refresh: true}).Run(ctx); err != nil {
		t.Errorf("load show failed: %v", err)
	}
}

func TestLoadLogCmdRejectsFuture(t *testing.T) {
	ctx := setupTestContext(t)
	if err := (&LoadLogCmd{Date: "2025-11-06", Duration: 60, TSS: 50, Method: "auto"}).Run(ctx); err == nil {
		t.Error("expected an error for a future date")
	}
}

func TestLoadLogCmdValidate(t *testing.T) {
	tests := []struct {
		name    string
		cmd     LoadLogCmd
		wantErr bool
	}{
		{"valid", LoadLogCmd{Duration: 60, Method: "auto"}, false},
		{"zero duration", LoadLogCmd{Duration: 0, Method: "auto"}, true},
		{"negative tss", LoadLogCmd{Duration: 60, TSS: -5, Method: "auto"}, true},
		{"unknown method", LoadLogCmd{Duration: 60, Method: "guess"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cmd.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPlanGenerateAndShow(t *testing.T) {
	ctx := setupTestContext(t)

	if err := (&PlanShowCmd{Week: "this"}).Run(ctx); !errors.Is(err, storage.ErrNotFound) || apperr.HintFor(err) == "" {
		t.Fatalf("expected a hinted not-found error, got %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := (&PlanGenerateCmd{Week: "this"}).Run(ctx); err != nil {
			t.Fatalf("plan generate failed: %v", err)
		}
	}
	plan, err := ctx.Store.GetPlan("default", thisWeek)
	if err != nil {
		t.Fatalf("GetPlan failed: %v", err)
	}
	if plan.Revision != 2 || len(plan.Sessions) == 0 {
		t.Errorf("expected revision 2 with sessions, got revision %d with %d sessions", plan.Revision, len(plan.Sessions))
	}

	tests := []struct {
		name string
		cmd  PlanShowCmd
	}{
		{"latest", PlanShowCmd{Week: "this"}},
		{"first revision", PlanShowCmd{Week: thisWeek, Revision: 1}},
		{"json", PlanShowCmd{Week: "this", JSON: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cmd.Run(ctx); err != nil {
				t.Errorf("plan show failed: %v", err)
			}
		})
	}

	if err := (&PlanShowCmd{Week: "this", Revision: 5}).Run(ctx); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected not found for a missing revision, got %v", err)
	}
}

func TestPlanSource(t *testing.T) {
	ctx := setupTestContext(t)
	week := time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC)
	src := planSource{ctx: ctx, athleteID: "default", today: ctx.Now()}

	if _, err := src.Plan(week); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Plan() error = %v, want not found", err)
	}
	plan, err := src.Regenerate(week)
	if err != nil {
		t.Fatalf("Regenerate() failed: %v", err)
	}
	if plan.WeekStartDate != "2025-11-10" || plan.Revision != 1 {
		t.Errorf("unexpected plan %s revision %d", plan.WeekStartDate, plan.Revision)
	}
	if _, err := src.Plan(week); err != nil {
		t.Errorf("Plan() after regenerate failed: %v", err)
	}
	if _, err := src.Loads("2025-10-01", "2025-11-05"); err != nil {
		t.Errorf("Loads() failed: %v", err)
	}
}

func TestLoadForecastCmd(t *testing.T) {
	ctx := setupTestContext(t)
	// planned before any volume is logged so the ramp guard has no baseline
	if err := (&PlanGenerateCmd{Week: "next"}).Run(ctx); err != nil {
		t.Fatalf("plan generate failed: %v", err)
	}
	if err := (&LoadLogCmd{Date: "today", Duration: 60, TSS: 70, Method: "auto"}).Run(ctx); err != nil {
		t.Fatalf("load log failed: %v", err)
	}
	if err := (&LoadForecastCmd{}).Run(ctx); err != nil {
		t.Errorf("load forecast failed: %v", err)
	}

	start := time.Date(2025, 11, 6, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 11, 16, 0, 0, 0, 0, time.UTC)
	days, err := plannedTSS(ctx, "default", start, end)
	if err != nil {
		t.Fatalf("plannedTSS failed: %v", err)
	}
	if len(days) != 11 {
		t.Fatalf("expected 11 days, got %d", len(days))
	}
	var thisWeekTSS, nextWeekTSS float64
	for _, d := range days {
		if d.Date < "2025-11-10" {
			thisWeekTSS += d.TSS
		} else {
			nextWeekTSS += d.TSS
		}
	}
	if thisWeekTSS != 0 {
		t.Errorf("unplanned days should count as rest, got %.0f TSS", thisWeekTSS)
	}
	if nextWeekTSS <= 0 {
		t.Error("expected planned stress next week")
	}
}

func TestPhaseCmd(t *testing.T) {
	ctx := setupTestContext(t)

	if err := (&PhaseCmd{}).Run(ctx); err != nil {
		t.Errorf("phase without event failed: %v", err)
	}
	if err := (&PhaseCmd{Event: "2026-03-01"}).Run(ctx); err != nil {
		t.Errorf("phase with event failed: %v", err)
	}
	if err := (&PhaseCmd{Event: "March"}).Validate(); err == nil {
		t.Error("expected a validation error for a malformed date")
	}
}

func TestCheckinCmd(t *testing.T) {
	ctx := setupTestContext(t)
	if err := (&PlanGenerateCmd{Week: "this"}).Run(ctx); err != nil {
		t.Fatalf("plan generate failed: %v", err)
	}

	// worst ratings on every question force recovery
	cmd := &CheckinCmd{Date: "today", Sleep: 1, Fatigue: 5, Motivation: 1, Soreness: 5, Stress: 5}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("checkin failed: %v", err)
	}

	checks, err := ctx.Store.GetMorningChecks("default", "2025-11-05", "2025-11-05")
	if err != nil {
		t.Fatalf("GetMorningChecks failed: %v", err)
	}
	if len(checks) != 1 || checks[0].ReadinessScore == nil || *checks[0].ReadinessScore >= 0.4 {
		t.Fatalf("expected one low-scored check, got %+v", checks)
	}

	plan, err := ctx.Store.GetPlan("default", thisWeek)
	if err != nil {
		t.Fatalf("GetPlan failed: %v", err)
	}
	if plan.Revision != 1 {
		t.Errorf("adaptation should update revision 1 in place, got revision %d", plan.Revision)
	}
	for _, s := range plan.SessionsOn("2025-11-05") {
		if s.Type != models.SessionREC {
			t.Errorf("session %s should be recovery after the check, got %s", s.ID, s.Type)
		}
	}
}

func TestCheckinCmdDryRunAndInvalid(t *testing.T) {
	ctx := setupTestContext(t)

	dry := &CheckinCmd{Date: "today", Sleep: 4, Fatigue: 2, Motivation: 4, Soreness: 2, Stress: 2, DryRun: true}
	if err := dry.Run(ctx); err != nil {
		t.Fatalf("dry-run checkin failed: %v", err)
	}
	checks, err := ctx.Store.GetMorningChecks("default", "2025-11-05", "2025-11-05")
	if err != nil {
		t.Fatalf("GetMorningChecks failed: %v", err)
	}
	if len(checks) != 0 {
		t.Errorf("dry run should not save, got %d checks", len(checks))
	}

	bad := &CheckinCmd{Date: "today", Sleep: 6, Fatigue: 2, Motivation: 4, Soreness: 2, Stress: 2}
	if err := bad.Run(ctx); !errors.Is(err, readiness.ErrInvalidCheck) {
		t.Errorf("expected ErrInvalidCheck, got %v", err)
	}
}
