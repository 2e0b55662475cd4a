package phase

import (
	"math"
	"testing"
	"time"

	"github.com/Ebi50/training28-sub000/internal/models"
)

var today = time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

func daysOut(n int) *time.Time {
	d := today.AddDate(0, 0, n)
	return &d
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name      string
		event     *time.Time
		wantPhase models.TrainingPhase
		wantWeeks int
	}{
		{"no event", nil, models.PhaseMaintenance, 0},
		{"past event", daysOut(-1), models.PhaseMaintenance, 0},
		{"event today", daysOut(0), models.PhaseTaper, 0},
		{"one day out", daysOut(1), models.PhaseTaper, 1},
		{"exactly 2 weeks", daysOut(14), models.PhaseTaper, 2},
		{"just over 2 weeks", daysOut(15), models.PhasePeak, 3},
		{"exactly 3 weeks", daysOut(21), models.PhasePeak, 3},
		{"exactly 7 weeks", daysOut(49), models.PhasePeak, 7},
		{"just over 7 weeks", daysOut(50), models.PhaseBuild, 8},
		{"exactly 8 weeks", daysOut(56), models.PhaseBuild, 8},
		{"exactly 15 weeks", daysOut(105), models.PhaseBuild, 15},
		{"just over 15 weeks", daysOut(106), models.PhaseBase, 16},
		{"exactly 16 weeks", daysOut(112), models.PhaseBase, 16},
		{"half a year", daysOut(180), models.PhaseBase, 26},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Calculate(tt.event, today)
			if got.Phase != tt.wantPhase {
				t.Errorf("Phase = %s, want %s", got.Phase, tt.wantPhase)
			}
			if got.WeeksToEvent != tt.wantWeeks {
				t.Errorf("WeeksToEvent = %d, want %d", got.WeeksToEvent, tt.wantWeeks)
			}
			if got.Description == "" {
				t.Error("Description is empty")
			}
		})
	}
}

func TestCalculateIsDeterministic(t *testing.T) {
	event := daysOut(60)
	a := Calculate(event, today)
	b := Calculate(event, today)
	if a != b {
		t.Errorf("Calculate() not deterministic: %+v vs %+v", a, b)
	}
}

func TestDistributionsSumToOne(t *testing.T) {
	for _, p := range []models.TrainingPhase{
		models.PhaseBase, models.PhaseBuild, models.PhasePeak, models.PhaseTaper, models.PhaseMaintenance,
	} {
		if sum := Distribution(p).Sum(); math.Abs(sum-1.0) > 1e-9 {
			t.Errorf("%s distribution sums to %v", p, sum)
		}
	}
}

func TestLITShareFallsTowardEvent(t *testing.T) {
	base := Distribution(models.PhaseBase)
	build := Distribution(models.PhaseBuild)
	peak := Distribution(models.PhasePeak)
	if !(base.LIT > build.LIT && build.LIT > peak.LIT) {
		t.Errorf("LIT share should fall BASE > BUILD > PEAK: %v %v %v", base.LIT, build.LIT, peak.LIT)
	}
	if !(base.VO2Max < build.VO2Max && build.VO2Max < peak.VO2Max) {
		t.Errorf("VO2max share should rise toward the event")
	}
}

func TestWeeklyTSSTarget(t *testing.T) {
	tests := []struct {
		phase models.TrainingPhase
		want  TSSRange
	}{
		{models.PhaseBase, TSSRange{360, 400, 440}},
		{models.PhaseBuild, TSSRange{380, 440, 480}},
		{models.PhaseTaper, TSSRange{160, 200, 240}},
		{models.PhaseMaintenance, TSSRange{280, 320, 360}},
	}
	for _, tt := range tests {
		if got := WeeklyTSSTarget(tt.phase, 400); got != tt.want {
			t.Errorf("WeeklyTSSTarget(%s) = %+v, want %+v", tt.phase, got, tt.want)
		}
	}

	info := CalculateWithBaseline(daysOut(200), today, 500)
	if info.WeeklyTSS.Target != 500 {
		t.Errorf("BASE target with baseline 500 = %d", info.WeeklyTSS.Target)
	}
}

func TestProgressiveTSS(t *testing.T) {
	tests := []struct {
		week int
		want int
	}{
		{0, 400},
		{1, 425},
		{2, 450},
		{4, 500},
		{5, 400},
	}
	for _, tt := range tests {
		if got := ProgressiveTSS(tt.week, 4, 400, 500); got != tt.want {
			t.Errorf("ProgressiveTSS(week=%d) = %d, want %d", tt.week, got, tt.want)
		}
	}
}

func TestRecoveryWeek(t *testing.T) {
	tests := []struct {
		week      int
		frequency int
		want      bool
	}{
		{0, 4, false},
		{3, 4, false},
		{4, 4, true},
		{8, 4, true},
		{3, 3, true},
		{4, 0, true},
	}
	for _, tt := range tests {
		if got := IsRecoveryWeek(tt.week, tt.frequency); got != tt.want {
			t.Errorf("IsRecoveryWeek(%d, %d) = %v, want %v", tt.week, tt.frequency, got, tt.want)
		}
	}
	if got := RecoveryWeekTSS(500, 0.4); got != 300 {
		t.Errorf("RecoveryWeekTSS() = %d, want 300", got)
	}
}
