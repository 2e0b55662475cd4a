package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Ebi50/training28-sub000/internal/constants"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Sweep.Schedule != constants.DefaultSweepSchedule || cfg.Guardrails.MaxRampRate != constants.DefaultMaxRampRate {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
[guardrails]
max_ramp_rate = 0.10
max_hit_minutes_per_week = 120

[planning]
split_threshold = 0.8
use_ml = true

[predictor]
model_path = "/tmp/model.json"
cache_ttl = "30m"

[sweep]
workers = 2
timezone = "UTC"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Guardrails.MaxRampRate != 0.10 || cfg.Guardrails.MaxHitMinutesPerWeek != 120 {
		t.Errorf("guardrails not applied: %+v", cfg.Guardrails)
	}
	if !cfg.Guardrails.NoHitBackToBack || cfg.Guardrails.MinTSB != constants.DefaultMinTSB {
		t.Errorf("unset guardrails should keep defaults: %+v", cfg.Guardrails)
	}
	if cfg.Sweep.Workers != 2 || cfg.Sweep.Schedule != constants.DefaultSweepSchedule {
		t.Errorf("unexpected sweep section %+v", cfg.Sweep)
	}
	ttl, err := cfg.CacheTTL()
	if err != nil || ttl != 30*time.Minute {
		t.Errorf("CacheTTL() = %v, %v", ttl, err)
	}

	pc := cfg.PlanningConfig()
	if pc.SplitThreshold != 0.8 || !pc.UseML || pc.Predictor == nil {
		t.Errorf("unexpected planning config %+v", pc)
	}
	if pc.Guardrails.MaxRampRate != 0.10 {
		t.Errorf("guardrails not carried into planning config")
	}
}

func TestPlanningConfigWithoutModel(t *testing.T) {
	cfg := Default()
	cfg.Planning.UseML = true
	if pc := cfg.PlanningConfig(); pc.Predictor != nil {
		t.Error("expected no predictor without a model path")
	}
}

func TestLoadZeroesFallBack(t *testing.T) {
	path := writeConfig(t, `
[sweep]
workers = 0
schedule = ""
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Sweep.Workers != constants.DefaultSweepWorkers || cfg.Sweep.Schedule != constants.DefaultSweepSchedule {
		t.Errorf("expected zero values to fall back, got %+v", cfg.Sweep)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"ramp rate above one", "[guardrails]\nmax_ramp_rate = 1.5\n"},
		{"tsb bounds crossed", "[guardrails]\nmin_tsb = 20.0\nmax_tsb = 10.0\n"},
		{"split threshold", "[planning]\nsplit_threshold = 1.2\n"},
		{"recovery reduction", "[planning]\nrecovery_week_reduction = 1.0\n"},
		{"cache ttl", "[predictor]\ncache_ttl = \"soon\"\n"},
		{"cron schedule", "[sweep]\nschedule = \"every night\"\n"},
		{"timezone", "[sweep]\ntimezone = \"Mars/Olympus\"\n"},
		{"lookback", "[sweep]\nlookback_days = 3\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Load() error = %v, want %v", err, ErrInvalidConfig)
			}
		})
	}
}

func TestLoadMalformed(t *testing.T) {
	_, err := Load(writeConfig(t, "[guardrails\nmax_ramp_rate = "))
	if err == nil || errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected a parse error, got %v", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := Default()
	cfg.Server.Addr = "0.0.0.0:9000"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if loaded.Server.Addr != "0.0.0.0:9000" || loaded.Planning.SplitThreshold != constants.DefaultSplitThreshold {
		t.Errorf("unexpected round trip %+v", loaded)
	}
}
