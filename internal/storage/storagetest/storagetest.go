// Package storagetest holds the behaviour every storage.Provider must show.
// Backends call Run from their own tests with an initialized store.
package storagetest

import (
	"errors"
	"testing"
	"time"

	"github.com/Ebi50/training28-sub000/internal/models"
	"github.com/Ebi50/training28-sub000/internal/storage"
)

// Run exercises a freshly initialized, empty store.
func Run(t *testing.T, store storage.Provider) {
	t.Helper()
	event := "2026-06-01"
	athlete := models.Athlete{
		ID:            "rider-1",
		Name:          "Test Rider",
		FTP:           260,
		LTHR:          168,
		WeightKg:      72,
		BirthYear:     1988,
		Timezone:      "Europe/Berlin",
		WeeklyHours:   8,
		LitRatio:      0.85,
		MaxHitDays:    2,
		IndoorAllowed: true,
		EventDate:     &event,
		AutoUpdate:    true,
	}

	t.Run("Athletes", func(t *testing.T) {
		if _, err := store.GetAthlete("missing"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
		if err := store.SaveAthlete(athlete); err != nil {
			t.Fatalf("SaveAthlete failed: %v", err)
		}
		got, err := store.GetAthlete(athlete.ID)
		if err != nil {
			t.Fatalf("GetAthlete failed: %v", err)
		}
		if got.FTP != 260 || got.Name != "Test Rider" || !got.IndoorAllowed || got.EventDate == nil || *got.EventDate != event {
			t.Errorf("unexpected athlete %+v", got)
		}

		athlete.FTP = 270
		if err := store.SaveAthlete(athlete); err != nil {
			t.Fatalf("SaveAthlete update failed: %v", err)
		}
		if got, _ := store.GetAthlete(athlete.ID); got.FTP != 270 {
			t.Errorf("expected FTP updated to 270, got %v", got.FTP)
		}

		manual := models.Athlete{ID: "rider-2", FTP: 200, Timezone: "UTC", WeeklyHours: 5}
		if err := store.SaveAthlete(manual); err != nil {
			t.Fatalf("SaveAthlete failed: %v", err)
		}
		all, err := store.ListAthletes()
		if err != nil || len(all) != 2 {
			t.Errorf("expected 2 athletes, got %d (%v)", len(all), err)
		}
		auto, err := store.ListAutoUpdateAthletes()
		if err != nil || len(auto) != 1 || auto[0].ID != athlete.ID {
			t.Errorf("expected only rider-1 to auto-update, got %+v (%v)", auto, err)
		}
	})

	t.Run("Slots", func(t *testing.T) {
		slots := []models.TimeSlot{
			{Day: time.Tuesday, StartTime: "18:00", EndTime: "19:30", Kind: models.SlotIndoor},
			{Day: time.Monday, StartTime: "06:00", EndTime: "07:00", Kind: models.SlotBoth},
		}
		if err := store.ReplaceSlots(athlete.ID, slots); err != nil {
			t.Fatalf("ReplaceSlots failed: %v", err)
		}
		got, err := store.GetSlots(athlete.ID)
		if err != nil {
			t.Fatalf("GetSlots failed: %v", err)
		}
		if len(got) != 2 || got[0].Day != time.Monday || got[1].Kind != models.SlotIndoor {
			t.Errorf("unexpected slots %+v", got)
		}

		if err := store.ReplaceSlots(athlete.ID, slots[:1]); err != nil {
			t.Fatalf("ReplaceSlots failed: %v", err)
		}
		if got, _ := store.GetSlots(athlete.ID); len(got) != 1 {
			t.Errorf("expected replace to leave 1 slot, got %d", len(got))
		}
	})

	t.Run("Season", func(t *testing.T) {
		goal := models.SeasonGoal{Name: "Gran Fondo", Date: event, Priority: models.PriorityA, Taper: models.TaperStrategy{DaysBeforeEvent: 10}}
		if err := store.SaveGoal(athlete.ID, goal); err != nil {
			t.Fatalf("SaveGoal failed: %v", err)
		}
		goals, err := store.GetGoals(athlete.ID)
		if err != nil || len(goals) != 1 {
			t.Fatalf("expected 1 goal, got %d (%v)", len(goals), err)
		}
		if goals[0].ID == "" || goals[0].Taper.DaysBeforeEvent != 10 || goals[0].Priority != models.PriorityA {
			t.Errorf("unexpected goal %+v", goals[0])
		}

		camp := models.TrainingCamp{Name: "Mallorca", StartDate: "2026-03-01", EndDate: "2026-03-08", VolumeBump: 30, HitCap: 1, DeloadDays: 5, PostVolumeReduction: 30}
		if err := store.SaveCamp(athlete.ID, camp); err != nil {
			t.Fatalf("SaveCamp failed: %v", err)
		}
		camps, err := store.GetCamps(athlete.ID)
		if err != nil || len(camps) != 1 || camps[0].VolumeBump != 30 {
			t.Errorf("unexpected camps %+v (%v)", camps, err)
		}
	})

	t.Run("Load", func(t *testing.T) {
		acts := []models.Activity{
			{AthleteID: athlete.ID, Date: "2025-11-03", DurationSec: 3600, NormalizedPower: 260, TSS: 100, Method: "power"},
			{AthleteID: athlete.ID, Date: "2025-11-05", DurationSec: 5400, RPE: 4, TSS: 63, Method: "rpe"},
		}
		for _, a := range acts {
			if err := store.AddActivity(a); err != nil {
				t.Fatalf("AddActivity failed: %v", err)
			}
		}
		got, err := store.GetActivities(athlete.ID, "2025-11-01", "2025-11-04")
		if err != nil || len(got) != 1 || got[0].TSS != 100 || got[0].ID == "" {
			t.Errorf("unexpected activities %+v (%v)", got, err)
		}

		loads := []models.DailyLoad{
			{Date: "2025-11-03", TSS: 100, CTL: 2.33, ATL: 12.5},
			{Date: "2025-11-04", TSS: 0, CTL: 2.28, ATL: 9.38},
		}
		if err := store.SaveDailyLoads(athlete.ID, loads); err != nil {
			t.Fatalf("SaveDailyLoads failed: %v", err)
		}
		loads[1].TSS = 40
		if err := store.SaveDailyLoads(athlete.ID, loads[1:]); err != nil {
			t.Fatalf("SaveDailyLoads upsert failed: %v", err)
		}
		stored, err := store.GetDailyLoads(athlete.ID, "", "")
		if err != nil || len(stored) != 2 || stored[1].TSS != 40 {
			t.Errorf("unexpected loads %+v (%v)", stored, err)
		}
	})

	t.Run("MorningChecks", func(t *testing.T) {
		score := 0.55
		checks := []models.MorningCheck{
			{Date: "2025-11-04", SleepQuality: 2, Fatigue: 4, Motivation: 5, Soreness: 1, Stress: 1, ReadinessScore: &score},
			{Date: "2025-11-05", SleepQuality: 4, Fatigue: 2, Motivation: 4, Soreness: 2, Stress: 2, Notes: "fresh"},
		}
		for _, c := range checks {
			if err := store.SaveMorningCheck(athlete.ID, c); err != nil {
				t.Fatalf("SaveMorningCheck failed: %v", err)
			}
		}
		got, err := store.GetMorningChecks(athlete.ID, "2025-11-01", "2025-11-30")
		if err != nil || len(got) != 2 {
			t.Fatalf("expected 2 checks, got %d (%v)", len(got), err)
		}
		if got[0].ReadinessScore == nil || *got[0].ReadinessScore != 0.55 || got[1].ReadinessScore != nil || got[1].Notes != "fresh" {
			t.Errorf("unexpected checks %+v", got)
		}
	})

	t.Run("Plans", func(t *testing.T) {
		plan := models.WeeklyPlan{
			ID:            "2025-W45",
			WeekStartDate: "2025-11-03",
			UserID:        athlete.ID,
			Phase:         models.PhaseBase,
			TotalTSS:      360,
			Sessions: []models.TrainingSession{
				{ID: "2025-11-04-hit", Date: "2025-11-04", Type: models.SessionHIT, DurationMin: 60, TargetTSS: 90},
			},
			Quality:     models.PlanQuality{Score: 0.9, Warnings: []models.PlanWarning{}},
			GeneratedAt: time.Date(2025, 11, 2, 23, 0, 0, 0, time.UTC),
		}

		if _, err := store.GetPlan(athlete.ID, plan.WeekStartDate); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}

		rev, err := store.SavePlan(plan)
		if err != nil || rev != 1 {
			t.Fatalf("expected revision 1, got %d (%v)", rev, err)
		}
		plan.TotalTSS = 300
		rev, err = store.SavePlan(plan)
		if err != nil || rev != 2 {
			t.Fatalf("expected revision 2, got %d (%v)", rev, err)
		}

		latest, err := store.GetPlan(athlete.ID, plan.WeekStartDate)
		if err != nil {
			t.Fatalf("GetPlan failed: %v", err)
		}
		if latest.Revision != 2 || latest.TotalTSS != 300 || len(latest.Sessions) != 1 {
			t.Errorf("unexpected latest plan %+v", latest)
		}
		first, err := store.GetPlanRevision(athlete.ID, plan.WeekStartDate, 1)
		if err != nil || first.TotalTSS != 360 {
			t.Errorf("unexpected first revision %+v (%v)", first, err)
		}

		latest.Sessions[0].Type = models.SessionREC
		if err := store.UpdatePlan(latest); err != nil {
			t.Fatalf("UpdatePlan failed: %v", err)
		}
		updated, _ := store.GetPlan(athlete.ID, plan.WeekStartDate)
		if updated.Revision != 2 || updated.Sessions[0].Type != models.SessionREC {
			t.Errorf("expected revision 2 updated in place, got %+v", updated)
		}

		latest.Revision = 9
		if err := store.UpdatePlan(latest); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound for a missing revision, got %v", err)
		}
	})
}
