package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestTimeSlotDurationMinutes(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  int
	}{
		{"evening", "18:00", "19:30", 90},
		{"reversed", "19:00", "18:00", 0},
		{"malformed start", "6pm", "19:00", 0},
		{"malformed end", "18:00", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := TimeSlot{Day: time.Tuesday, StartTime: tt.start, EndTime: tt.end, Kind: SlotBoth}
			if got := s.DurationMinutes(); got != tt.want {
				t.Errorf("DurationMinutes() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDailyLoadMarshalIncludesTSB(t *testing.T) {
	data, err := json.Marshal(DailyLoad{Date: "2025-11-05", TSS: 80, CTL: 62.5, ATL: 70})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !strings.Contains(string(data), `"tsb":-7.5`) {
		t.Errorf("expected tsb -7.5 in %s", data)
	}
	if !strings.Contains(string(data), `"date":"2025-11-05"`) {
		t.Errorf("expected the embedded fields in %s", data)
	}
}

func TestAthleteHasPhysiology(t *testing.T) {
	if (Athlete{}).HasPhysiology() {
		t.Error("an empty athlete has no physiology")
	}
	if !(Athlete{LTHR: 168}).HasPhysiology() {
		t.Error("LTHR alone is enough")
	}
}

func TestWeeklyPlanSessions(t *testing.T) {
	plan := WeeklyPlan{Sessions: []TrainingSession{
		{ID: "a", Date: "2025-11-04", Type: SessionHIT, TargetTSS: 90},
		{ID: "b", Date: "2025-11-05", Type: SessionLIT, TargetTSS: 60},
		{ID: "c", Date: "2025-11-05", Type: SessionLIT, TargetTSS: 40},
	}}

	got := plan.SessionsOn("2025-11-05")
	if len(got) != 2 || got[0].ID != "b" || got[1].ID != "c" {
		t.Fatalf("SessionsOn() = %+v", got)
	}
	if len(plan.SessionsOn("2025-11-09")) != 0 {
		t.Error("expected no sessions on an empty day")
	}

	plan.ReplaceSessions([]TrainingSession{
		{ID: "b", Date: "2025-11-05", Type: SessionREC, TargetTSS: 30},
		{ID: "z", Date: "2025-11-05", Type: SessionHIT},
	})
	if len(plan.Sessions) != 3 {
		t.Fatalf("ReplaceSessions must not add sessions, got %d", len(plan.Sessions))
	}
	if plan.Sessions[1].Type != SessionREC || plan.Sessions[1].TargetTSS != 30 {
		t.Errorf("session b was not replaced: %+v", plan.Sessions[1])
	}
	if plan.Sessions[0].Type != SessionHIT || plan.Sessions[2].TargetTSS != 40 {
		t.Error("untouched sessions changed")
	}
}

func TestAddNote(t *testing.T) {
	var s TrainingSession
	s.AddNote("")
	if s.Notes != "" {
		t.Errorf("empty note should be ignored, got %q", s.Notes)
	}
	s.AddNote("Original: HIT 60min")
	s.AddNote("Reduced (readiness 55%)")
	if s.Notes != "Original: HIT 60min\nReduced (readiness 55%)" {
		t.Errorf("unexpected notes %q", s.Notes)
	}
}
