package load

import (
	"math"
	"testing"

	"github.com/Ebi50/training28-sub000/internal/models"
)

func steady(days int, tss float64) []models.DailyLoad {
	var history []models.DailyLoad
	prev := models.DailyLoad{}
	for i := 0; i < days; i++ {
		prev = Update(prev, "", tss)
		history = append(history, prev)
	}
	return history
}

func TestAlpha(t *testing.T) {
	if got := Alpha(7); got != 0.25 {
		t.Errorf("Alpha(7) = %v, want 0.25", got)
	}
	if got := Alpha(42); math.Abs(got-2.0/43.0) > 1e-12 {
		t.Errorf("Alpha(42) = %v", got)
	}
}

func TestConvergence(t *testing.T) {
	const target = 100.0

	history := steady(90, target)
	ctl := Current(history).CTL
	if math.Abs(ctl-target)/target > 0.10 {
		t.Errorf("CTL after 90 days = %.2f, want within 10%% of %.0f", ctl, target)
	}

	history = steady(14, target)
	atl := Current(history).ATL
	if math.Abs(atl-target)/target > 0.05 {
		t.Errorf("ATL after 14 days = %.2f, want within 5%% of %.0f", atl, target)
	}
}

func TestBalanceIdentity(t *testing.T) {
	history, err := BuildHistory([]DayTSS{
		{Date: "2025-03-01", TSS: 120},
		{Date: "2025-03-03", TSS: 40},
		{Date: "2025-03-09", TSS: 200},
	}, nil, "2025-03-20")
	if err != nil {
		t.Fatalf("BuildHistory() error = %v", err)
	}
	for _, h := range history {
		if h.TSB() != h.CTL-h.ATL {
			t.Fatalf("TSB() on %s = %v, want %v", h.Date, h.TSB(), h.CTL-h.ATL)
		}
	}
}

func TestBuildHistory(t *testing.T) {
	t.Run("fills gaps with rest days", func(t *testing.T) {
		history, err := BuildHistory([]DayTSS{
			{Date: "2025-01-04", TSS: 50},
			{Date: "2025-01-01", TSS: 100},
		}, nil, "")
		if err != nil {
			t.Fatalf("BuildHistory() error = %v", err)
		}
		if len(history) != 4 {
			t.Fatalf("len(history) = %d, want 4", len(history))
		}
		if history[1].Date != "2025-01-02" || history[1].TSS != 0 {
			t.Errorf("history[1] = %+v, want zero-stress 2025-01-02", history[1])
		}
		if history[0].ATL != 25 || history[1].ATL != 18.75 {
			t.Errorf("ATL decay = %v, %v, want 25, 18.75", history[0].ATL, history[1].ATL)
		}
	})

	t.Run("sums same day entries", func(t *testing.T) {
		history, err := BuildHistory([]DayTSS{
			{Date: "2025-01-01", TSS: 30},
			{Date: "2025-01-01", TSS: 50},
		}, nil, "")
		if err != nil {
			t.Fatalf("BuildHistory() error = %v", err)
		}
		if len(history) != 1 || history[0].TSS != 80 {
			t.Errorf("history = %+v, want one day of 80", history)
		}
	})

	t.Run("extends through date", func(t *testing.T) {
		history, err := BuildHistory([]DayTSS{{Date: "2025-01-01", TSS: 30}}, nil, "2025-01-10")
		if err != nil {
			t.Fatalf("BuildHistory() error = %v", err)
		}
		if len(history) != 10 || Current(history).Date != "2025-01-10" {
			t.Errorf("history ends at %s with %d days", Current(history).Date, len(history))
		}
	})

	t.Run("continues from seed", func(t *testing.T) {
		seed := models.DailyLoad{Date: "2025-01-05", CTL: 60, ATL: 40}
		history, err := BuildHistory([]DayTSS{
			{Date: "2025-01-03", TSS: 500},
			{Date: "2025-01-06", TSS: 40},
		}, &seed, "")
		if err != nil {
			t.Fatalf("BuildHistory() error = %v", err)
		}
		if len(history) != 1 {
			t.Fatalf("len(history) = %d, want 1", len(history))
		}
		if history[0].ATL != 40 {
			t.Errorf("ATL = %v, want 40", history[0].ATL)
		}
	})

	t.Run("empty", func(t *testing.T) {
		history, err := BuildHistory(nil, nil, "")
		if err != nil || history != nil {
			t.Errorf("BuildHistory(nil) = %v, %v", history, err)
		}
	})

	t.Run("invalid date", func(t *testing.T) {
		if _, err := BuildHistory([]DayTSS{{Date: "01/01/2025", TSS: 1}}, nil, ""); err == nil {
			t.Error("BuildHistory() should reject malformed dates")
		}
	})
}

func TestForecast(t *testing.T) {
	current := models.DailyLoad{Date: "2025-01-01", CTL: 50, ATL: 50}
	planned := []DayTSS{
		{Date: "2025-01-02", TSS: 0},
		{Date: "2025-01-03", TSS: 0},
		{Date: "2025-01-04", TSS: 0},
	}
	out := Forecast(current, planned)
	if len(out) != 3 {
		t.Fatalf("len(Forecast) = %d, want 3", len(out))
	}
	for i := 1; i < len(out); i++ {
		if out[i].TSB() <= out[i-1].TSB() {
			t.Errorf("rest days should raise TSB: %v then %v", out[i-1].TSB(), out[i].TSB())
		}
	}
	if out[2].Date != "2025-01-04" {
		t.Errorf("last forecast date = %s", out[2].Date)
	}
}

func TestFromActivities(t *testing.T) {
	entries := FromActivities([]models.Activity{{Date: "2025-01-01", TSS: 80}})
	if len(entries) != 1 || entries[0].TSS != 80 {
		t.Errorf("FromActivities() = %+v", entries)
	}
}

func TestWindow(t *testing.T) {
	history, _ := BuildHistory([]DayTSS{{Date: "2025-01-01", TSS: 10}}, nil, "2025-01-10")
	got := Window(history, "2025-01-03", "2025-01-05")
	if len(got) != 3 {
		t.Errorf("len(Window) = %d, want 3", len(got))
	}
}
