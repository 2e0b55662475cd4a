// Package config loads the TOML settings file that tunes planning, the
// predictor, the nightly sweep and the HTTP server.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/robfig/cron"

	"github.com/Ebi50/training28-sub000/internal/constants"
	"github.com/Ebi50/training28-sub000/internal/models"
	"github.com/Ebi50/training28-sub000/internal/predictor"
	"github.com/Ebi50/training28-sub000/internal/scheduler"
	"github.com/Ebi50/training28-sub000/internal/utils"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the whole settings file.
type Config struct {
	Guardrails models.Guardrails `toml:"guardrails"`
	Planning   Planning          `toml:"planning"`
	Predictor  Predictor         `toml:"predictor"`
	Sweep      Sweep             `toml:"sweep"`
	Server     Server            `toml:"server"`
}

type Planning struct {
	SplitThreshold        float64 `toml:"split_threshold"`
	LongRideSplitMinutes  int     `toml:"long_ride_split_minutes"`
	RecoveryWeekFrequency int     `toml:"recovery_week_frequency"`
	RecoveryWeekReduction float64 `toml:"recovery_week_reduction"`
	BaseWeeklyTSS         float64 `toml:"base_weekly_tss"`
	UseML                 bool    `toml:"use_ml"`
}

type Predictor struct {
	ModelPath string `toml:"model_path"`
	CacheTTL  string `toml:"cache_ttl"`
}

type Sweep struct {
	Schedule      string  `toml:"schedule"`
	Timezone      string  `toml:"timezone"`
	Workers       int     `toml:"workers"`
	RatePerSecond float64 `toml:"rate_per_second"`
	LookbackDays  int     `toml:"lookback_days"`
}

type Server struct {
	Addr string `toml:"addr"`
}

// Default returns the settings used when no file exists.
func Default() *Config {
	return &Config{
		Guardrails: models.DefaultGuardrails(),
		Planning: Planning{
			SplitThreshold:        constants.DefaultSplitThreshold,
			LongRideSplitMinutes:  constants.DefaultLongRideSplitMinutes,
			RecoveryWeekFrequency: constants.DefaultRecoveryWeekFrequency,
			RecoveryWeekReduction: constants.DefaultRecoveryWeekReduction,
			BaseWeeklyTSS:         constants.DefaultBaseWeeklyTSS,
		},
		Predictor: Predictor{CacheTTL: predictor.DefaultCacheTTL.String()},
		Sweep: Sweep{
			Schedule:      constants.DefaultSweepSchedule,
			Timezone:      constants.DefaultSweepTimezone,
			Workers:       constants.DefaultSweepWorkers,
			RatePerSecond: constants.DefaultSweepRatePerSecond,
			LookbackDays:  constants.DefaultSweepLookbackDays,
		},
		Server: Server{Addr: constants.DefaultServerAddr},
	}
}

// Load reads path on top of the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	expanded, err := utils.ExpandPath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand config path: %w", err)
	}

	cfg := Default()
	data, err := os.ReadFile(expanded)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDefaults restores values a file set to zero where zero has no meaning.
func applyDefaults(cfg *Config) {
	d := Default()
	if cfg.Guardrails.MaxRampRate == 0 {
		cfg.Guardrails.MaxRampRate = d.Guardrails.MaxRampRate
	}
	if cfg.Guardrails.MaxHitMinutesPerWeek == 0 {
		cfg.Guardrails.MaxHitMinutesPerWeek = d.Guardrails.MaxHitMinutesPerWeek
	}
	if cfg.Planning.SplitThreshold == 0 {
		cfg.Planning.SplitThreshold = d.Planning.SplitThreshold
	}
	if cfg.Planning.LongRideSplitMinutes == 0 {
		cfg.Planning.LongRideSplitMinutes = d.Planning.LongRideSplitMinutes
	}
	if cfg.Planning.RecoveryWeekFrequency == 0 {
		cfg.Planning.RecoveryWeekFrequency = d.Planning.RecoveryWeekFrequency
	}
	if cfg.Planning.BaseWeeklyTSS == 0 {
		cfg.Planning.BaseWeeklyTSS = d.Planning.BaseWeeklyTSS
	}
	if cfg.Predictor.CacheTTL == "" {
		cfg.Predictor.CacheTTL = d.Predictor.CacheTTL
	}
	if cfg.Sweep.Schedule == "" {
		cfg.Sweep.Schedule = d.Sweep.Schedule
	}
	if cfg.Sweep.Timezone == "" {
		cfg.Sweep.Timezone = d.Sweep.Timezone
	}
	if cfg.Sweep.Workers == 0 {
		cfg.Sweep.Workers = d.Sweep.Workers
	}
	if cfg.Sweep.RatePerSecond == 0 {
		cfg.Sweep.RatePerSecond = d.Sweep.RatePerSecond
	}
	if cfg.Sweep.LookbackDays == 0 {
		cfg.Sweep.LookbackDays = d.Sweep.LookbackDays
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = d.Server.Addr
	}
}

// Validate checks ranges and parses the embedded schedule and durations.
func (c *Config) Validate() error {
	g := c.Guardrails
	if g.MaxRampRate <= 0 || g.MaxRampRate > 1 {
		return fmt.Errorf("%w: guardrails.max_ramp_rate must be in (0, 1], got %v", ErrInvalidConfig, g.MaxRampRate)
	}
	if g.MinTSB > g.MaxTSB {
		return fmt.Errorf("%w: guardrails.min_tsb (%v) exceeds max_tsb (%v)", ErrInvalidConfig, g.MinTSB, g.MaxTSB)
	}
	if g.MaxHitMinutesPerWeek < 0 {
		return fmt.Errorf("%w: guardrails.max_hit_minutes_per_week cannot be negative", ErrInvalidConfig)
	}

	p := c.Planning
	if p.SplitThreshold <= 0 || p.SplitThreshold > 1 {
		return fmt.Errorf("%w: planning.split_threshold must be in (0, 1], got %v", ErrInvalidConfig, p.SplitThreshold)
	}
	if p.RecoveryWeekReduction < 0 || p.RecoveryWeekReduction >= 1 {
		return fmt.Errorf("%w: planning.recovery_week_reduction must be in [0, 1), got %v", ErrInvalidConfig, p.RecoveryWeekReduction)
	}
	if p.RecoveryWeekFrequency < 0 || p.LongRideSplitMinutes < 0 || p.BaseWeeklyTSS < 0 {
		return fmt.Errorf("%w: planning values cannot be negative", ErrInvalidConfig)
	}

	if _, err := c.CacheTTL(); err != nil {
		return err
	}

	s := c.Sweep
	if _, err := cron.Parse(s.Schedule); err != nil {
		return fmt.Errorf("%w: sweep.schedule %q: %v", ErrInvalidConfig, s.Schedule, err)
	}
	if !utils.ValidateTimezone(s.Timezone) {
		return fmt.Errorf("%w: sweep.timezone %q is not a known location", ErrInvalidConfig, s.Timezone)
	}
	if s.Workers < 1 || s.RatePerSecond <= 0 || s.LookbackDays < 7 {
		return fmt.Errorf("%w: sweep needs workers >= 1, rate_per_second > 0 and lookback_days >= 7", ErrInvalidConfig)
	}
	return nil
}

// CacheTTL parses predictor.cache_ttl.
func (c *Config) CacheTTL() (time.Duration, error) {
	ttl, err := time.ParseDuration(c.Predictor.CacheTTL)
	if err != nil || ttl <= 0 {
		return 0, fmt.Errorf("%w: predictor.cache_ttl %q must be a positive duration", ErrInvalidConfig, c.Predictor.CacheTTL)
	}
	return ttl, nil
}

// PlanningConfig builds the scheduler tuning. A predictor is attached only
// when use_ml is set and a model path is configured.
func (c *Config) PlanningConfig() scheduler.PlanningConfig {
	pc := scheduler.PlanningConfig{
		Guardrails:            c.Guardrails,
		SplitThreshold:        c.Planning.SplitThreshold,
		LongRideSplitMinutes:  c.Planning.LongRideSplitMinutes,
		RecoveryWeekFrequency: c.Planning.RecoveryWeekFrequency,
		RecoveryWeekReduction: c.Planning.RecoveryWeekReduction,
		BaseWeeklyTSS:         c.Planning.BaseWeeklyTSS,
		UseML:                 c.Planning.UseML,
	}
	if c.Planning.UseML && c.Predictor.ModelPath != "" {
		ttl, err := c.CacheTTL()
		if err != nil {
			ttl = predictor.DefaultCacheTTL
		}
		path, err := utils.ExpandPath(c.Predictor.ModelPath)
		if err != nil {
			path = c.Predictor.ModelPath
		}
		pc.Predictor = predictor.NewModelPredictor(predictor.NewLoader(path, ttl))
	}
	return pc
}

// Save writes the config as TOML, creating or replacing path.
func (c *Config) Save(path string) error {
	expanded, err := utils.ExpandPath(path)
	if err != nil {
		return fmt.Errorf("failed to expand config path: %w", err)
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(expanded, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
