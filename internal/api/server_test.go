package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Ebi50/training28-sub000/internal/adapter"
	"github.com/Ebi50/training28-sub000/internal/load"
	"github.com/Ebi50/training28-sub000/internal/models"
	"github.com/Ebi50/training28-sub000/internal/phase"
	"github.com/Ebi50/training28-sub000/internal/scheduler"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakePinger struct{ err error }

func (f fakePinger) PingContext(context.Context) error { return f.err }

func newServer(db Pinger) *Server {
	s := New(scheduler.DefaultPlanningConfig(), db)
	s.now = func() time.Time { return time.Date(2025, 11, 2, 20, 0, 0, 0, time.UTC) }
	return s
}

func do(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("failed to decode %q: %v", w.Body.String(), err)
	}
	return v
}

func history(days int, tss float64) []models.DailyLoad {
	start := time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -days)
	out := make([]models.DailyLoad, days)
	for i := range out {
		out[i] = models.DailyLoad{Date: start.AddDate(0, 0, i).Format("2006-01-02"), TSS: tss, CTL: tss, ATL: tss}
	}
	return out
}

func planBody(hours float64, hist []models.DailyLoad) generateRequest {
	var evenings []models.TimeSlot
	for d := time.Monday; d <= time.Friday; d++ {
		evenings = append(evenings, models.TimeSlot{Day: d, StartTime: "18:00", EndTime: "19:30", Kind: models.SlotBoth})
	}
	return generateRequest{
		UserID:    "rider",
		WeekStart: "2025-11-03",
		Today:     "2025-11-02",
		Params: models.PlanningParameters{
			WeeklyHours:    hours,
			LitRatio:       0.9,
			MaxHitDays:     2,
			IndoorAllowed:  true,
			AvailableSlots: evenings,
		},
		History: hist,
		Profile: models.Athlete{ID: "rider", FTP: 250, LTHR: 165},
	}
}

func TestHealth(t *testing.T) {
	w := do(t, newServer(nil), http.MethodGet, "/healthz", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if body := decode[map[string]string](t, w); body["status"] != "ok" {
		t.Errorf("unexpected body %v", body)
	}

	w = do(t, newServer(fakePinger{}), http.MethodGet, "/healthz", nil)
	if body := decode[map[string]string](t, w); w.Code != http.StatusOK || body["database"] != "ok" {
		t.Errorf("expected healthy database, got %d %v", w.Code, body)
	}

	w = do(t, newServer(fakePinger{err: errors.New("connection refused")}), http.MethodGet, "/healthz", nil)
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Code)
	}
}

func TestGeneratePlan(t *testing.T) {
	w := do(t, newServer(nil), http.MethodPost, "/v1/plans/generate", planBody(8, history(14, 50)))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	plan := decode[models.WeeklyPlan](t, w)
	if plan.ID != "2025-W45" || plan.WeekStartDate != "2025-11-03" || len(plan.Sessions) != 5 {
		t.Errorf("unexpected plan %s from %s with %d sessions", plan.ID, plan.WeekStartDate, len(plan.Sessions))
	}
	if plan.Quality.Score <= 0 || plan.Quality.Score > 1 {
		t.Errorf("quality score out of range: %v", plan.Quality.Score)
	}
}

func TestGeneratePlanErrors(t *testing.T) {
	noPhysiology := planBody(8, nil)
	noPhysiology.Profile = models.Athlete{ID: "rider"}
	badDate := planBody(8, nil)
	badDate.WeekStart = "03.11.2025"

	tests := []struct {
		name   string
		body   any
		status int
		msg    string
	}{
		{"ramp rate", planBody(10, history(7, 50)), http.StatusUnprocessableEntity, "ramp rate too high"},
		{"missing physiology", noPhysiology, http.StatusUnprocessableEntity, ""},
		{"zero hours", planBody(0, nil), http.StatusUnprocessableEntity, ""},
		{"bad week start", badDate, http.StatusBadRequest, "invalid date"},
		{"malformed json", `{"week_start": `, http.StatusBadRequest, ""},
		{"missing week start", `{}`, http.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, newServer(nil), http.MethodPost, "/v1/plans/generate", tt.body)
			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.status, w.Body.String())
			}
			body := decode[map[string]string](t, w)
			if body["error"] == "" || !strings.Contains(body["error"], tt.msg) {
				t.Errorf("error = %q, want it to contain %q", body["error"], tt.msg)
			}
		})
	}
}

func TestAdaptSessions(t *testing.T) {
	body := adaptRequest{
		Sessions: []models.TrainingSession{
			{ID: "2025-11-04-hit", Date: "2025-11-04", Type: models.SessionHIT, DurationMin: 90, TargetTSS: 90},
		},
		Check: models.MorningCheck{Date: "2025-11-04", SleepQuality: 1, Fatigue: 5, Motivation: 3, Soreness: 3, Stress: 3},
	}
	w := do(t, newServer(nil), http.MethodPost, "/v1/sessions/adapt", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	res := decode[adapter.Result](t, w)
	if !res.Assessment.ForceRecovery || len(res.Adapted) != 1 || res.Adapted[0].Type != models.SessionREC {
		t.Errorf("expected forced recovery, got %+v", res)
	}
	if res.Adapted[0].DurationMin > 60 || res.Adapted[0].TargetTSS > 40 {
		t.Errorf("recovery caps not applied: %+v", res.Adapted[0])
	}

	body.Check.Fatigue = 0
	if w := do(t, newServer(nil), http.MethodPost, "/v1/sessions/adapt", body); w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for an invalid check", w.Code)
	}
}

func TestPhase(t *testing.T) {
	w := do(t, newServer(nil), http.MethodGet, "/v1/phase?today=2025-11-03&event_date=2025-11-17", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if info := decode[phase.Info](t, w); info.Phase != models.PhaseTaper || info.WeeksToEvent != 2 {
		t.Errorf("unexpected phase %+v", info)
	}

	w = do(t, newServer(nil), http.MethodGet, "/v1/phase", nil)
	if info := decode[phase.Info](t, w); info.Phase != models.PhaseMaintenance {
		t.Errorf("expected maintenance without an event, got %s", info.Phase)
	}

	for _, q := range []string{"?today=tomorrow", "?event_date=2025-13-01", "?baseline=-5"} {
		if w := do(t, newServer(nil), http.MethodGet, "/v1/phase"+q, nil); w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", q, w.Code)
		}
	}
}

func TestLoadUpdate(t *testing.T) {
	w := do(t, newServer(nil), http.MethodPost, "/v1/load/update", loadRequest{
		Previous: models.DailyLoad{Date: "2025-11-02", CTL: 50, ATL: 50},
		Date:     "2025-11-03",
		TSS:      50,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	single := decode[struct {
		Current models.DailyLoad `json:"current"`
	}](t, w)
	if single.Current.Date != "2025-11-03" || single.Current.CTL != 50 || single.Current.ATL != 50 {
		t.Errorf("steady state should hold, got %+v", single.Current)
	}

	w = do(t, newServer(nil), http.MethodPost, "/v1/load/update", loadRequest{
		Entries: []load.DayTSS{{Date: "2025-11-01", TSS: 100}},
		Through: "2025-11-03",
	})
	chain := decode[struct {
		History []models.DailyLoad `json:"history"`
	}](t, w)
	if w.Code != http.StatusOK || len(chain.History) != 3 || chain.History[2].TSS != 0 {
		t.Errorf("expected a 3-day chain ending in rest, got %d %+v", w.Code, chain.History)
	}

	if w := do(t, newServer(nil), http.MethodPost, "/v1/load/update", loadRequest{Date: "2025-11-03", TSS: -1}); w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for negative TSS", w.Code)
	}
}

func TestValidateSlots(t *testing.T) {
	w := do(t, newServer(nil), http.MethodPost, "/v1/slots/validate", slotsRequest{Slots: []models.TimeSlot{
		{Day: time.Monday, StartTime: "06:00", EndTime: "07:30", Kind: models.SlotBoth},
		{Day: time.Monday, StartTime: "07:00", EndTime: "08:00", Kind: models.SlotIndoor},
	}})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	res := decode[struct {
		Valid        bool                    `json:"valid"`
		Conflicts    []struct{ Type string } `json:"conflicts"`
		TotalMinutes int                     `json:"total_minutes"`
	}](t, w)
	if res.Valid || len(res.Conflicts) != 1 || res.Conflicts[0].Type != "overlapping_slots" {
		t.Errorf("expected one overlap, got %+v", res)
	}
}
