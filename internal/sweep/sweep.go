// Package sweep re-plans next week for every auto-updating athlete at the
// end of the day.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/Ebi50/training28-sub000/internal/compliance"
	"github.com/Ebi50/training28-sub000/internal/constants"
	"github.com/Ebi50/training28-sub000/internal/load"
	"github.com/Ebi50/training28-sub000/internal/logger"
	"github.com/Ebi50/training28-sub000/internal/models"
	"github.com/Ebi50/training28-sub000/internal/planner"
	"github.com/Ebi50/training28-sub000/internal/readiness"
	"github.com/Ebi50/training28-sub000/internal/scheduler"
	"github.com/Ebi50/training28-sub000/internal/storage"
	"github.com/Ebi50/training28-sub000/internal/utils"
)

// Store is the storage the sweep reads and writes.
type Store interface {
	planner.Store
	ListAutoUpdateAthletes() ([]models.Athlete, error)
	GetMorningChecks(athleteID, from, to string) ([]models.MorningCheck, error)
	GetPlan(athleteID, weekStart string) (models.WeeklyPlan, error)
}

// Config bounds how hard a run leans on storage.
type Config struct {
	Workers       int
	RatePerSecond float64
	LookbackDays  int
}

type Status string

const (
	StatusUpdated Status = "updated"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// Outcome is the result for one athlete.
type Outcome struct {
	AthleteID string `json:"athlete_id"`
	Status    Status `json:"status"`
	Reason    string `json:"reason"`
	Week      string `json:"week,omitempty"`
	Revision  int    `json:"revision,omitempty"`
	Err       error  `json:"-"`
}

// Result summarizes a run.
type Result struct {
	RunID    string    `json:"run_id"`
	Started  time.Time `json:"started"`
	Finished time.Time `json:"finished"`
	Total    int       `json:"total"`
	Updated  int       `json:"updated"`
	Skipped  int       `json:"skipped"`
	Failed   int       `json:"failed"`
	Outcomes []Outcome `json:"outcomes"`
}

type Sweeper struct {
	store    Store
	planning scheduler.PlanningConfig
	cfg      Config
	limiter  *rate.Limiter
	now      func() time.Time
}

func New(store Store, planning scheduler.PlanningConfig, cfg Config) *Sweeper {
	if cfg.Workers <= 0 {
		cfg.Workers = constants.DefaultSweepWorkers
	}
	if cfg.RatePerSecond <= 0 {
		cfg.RatePerSecond = constants.DefaultSweepRatePerSecond
	}
	if cfg.LookbackDays <= 0 {
		cfg.LookbackDays = constants.DefaultSweepLookbackDays
	}
	return &Sweeper{
		store:    store,
		planning: planning,
		cfg:      cfg,
		limiter:  rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.Workers),
		now:      time.Now,
	}
}

// Run processes every auto-updating athlete. Athlete failures are counted in
// the result; only a failure to list athletes is returned. onDone, when set,
// is called once per athlete and never concurrently.
func (s *Sweeper) Run(ctx context.Context, onDone func(Outcome)) (Result, error) {
	res := Result{RunID: uuid.NewString(), Started: s.now().UTC()}
	log := logger.With("run", res.RunID)

	athletes, err := s.store.ListAutoUpdateAthletes()
	if err != nil {
		return res, fmt.Errorf("failed to list athletes: %w", err)
	}
	res.Total = len(athletes)
	if log != nil {
		log.Info("Sweep started", "athletes", res.Total)
	}

	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(s.cfg.Workers)
	for _, a := range athletes {
		g.Go(func() error {
			out := s.process(ctx, a)

			mu.Lock()
			defer mu.Unlock()
			switch out.Status {
			case StatusUpdated:
				res.Updated++
			case StatusSkipped:
				res.Skipped++
			default:
				res.Failed++
			}
			res.Outcomes = append(res.Outcomes, out)
			if log != nil {
				if out.Err != nil {
					log.Error("Athlete sweep failed", "athlete", out.AthleteID, "error", out.Err)
				} else {
					log.Debug("Athlete swept", "athlete", out.AthleteID, "status", out.Status, "reason", out.Reason)
				}
			}
			if onDone != nil {
				onDone(out)
			}
			return nil
		})
	}
	// workers report failures through res and always return nil
	_ = g.Wait()

	res.Finished = s.now().UTC()
	if log != nil {
		log.Info("Sweep finished", "updated", res.Updated, "skipped", res.Skipped, "failed", res.Failed)
	}
	return res, nil
}

func (s *Sweeper) process(ctx context.Context, athlete models.Athlete) Outcome {
	out := Outcome{AthleteID: athlete.ID}
	fail := func(err error) Outcome {
		out.Status, out.Err, out.Reason = StatusFailed, err, err.Error()
		return out
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return fail(err)
	}

	loc, err := utils.LoadLocation(athlete.Timezone)
	if err != nil {
		return fail(fmt.Errorf("invalid timezone %q: %w", athlete.Timezone, err))
	}
	today := utils.Midnight(s.now().In(loc))
	nextWeek := utils.NextWeekStart(today)

	signals, err := s.collect(athlete.ID, today)
	if err != nil {
		return fail(err)
	}

	decision := ShouldRegenerate(signals)
	out.Reason = decision.Reason
	if !decision.Regenerate {
		out.Status = StatusSkipped
		return out
	}

	plan, err := planner.Generate(ctx, s.planning, s.store, athlete.ID, nextWeek, today, s.cfg.LookbackDays)
	if err != nil {
		return fail(fmt.Errorf("regenerating week of %s: %w", utils.FormatDate(nextWeek), err))
	}
	out.Status = StatusUpdated
	out.Week = plan.WeekStartDate
	out.Revision = plan.Revision
	return out
}

// collect refreshes the load chain through today and gathers the signals.
func (s *Sweeper) collect(athleteID string, today time.Time) (Signals, error) {
	var sig Signals
	todayStr := utils.FormatDate(today)
	weekStart := utils.WeekStart(today)

	history, err := planner.RefreshLoads(s.store, athleteID, today)
	if err != nil {
		return sig, err
	}
	if len(history) > 0 {
		sig.HasLoad = true
		sig.TSB = load.Current(history).TSB()
	}

	activities, err := s.store.GetActivities(athleteID, utils.FormatDate(weekStart), todayStr)
	if err != nil {
		return sig, fmt.Errorf("failed to load activities: %w", err)
	}
	for _, a := range activities {
		if a.Date == todayStr {
			sig.HasActivityToday = true
			sig.TodayTSS += a.TSS
		}
	}

	current, err := s.store.GetPlan(athleteID, utils.FormatDate(weekStart))
	switch {
	case err == nil:
		sig.Compliance = compliance.Weekly(current, activities, today)
		for _, sess := range current.SessionsOn(todayStr) {
			sig.PlannedTSS += sess.TargetTSS
		}
	case !errors.Is(err, storage.ErrNotFound):
		return sig, fmt.Errorf("failed to load current plan: %w", err)
	}

	checks, err := s.store.GetMorningChecks(athleteID, todayStr, todayStr)
	if err != nil {
		return sig, fmt.Errorf("failed to load morning checks: %w", err)
	}
	if len(checks) > 0 {
		c := checks[len(checks)-1]
		score := readiness.Score(c)
		if c.ReadinessScore != nil {
			score = *c.ReadinessScore
		}
		sig.Readiness = &score
	}

	_, err = s.store.GetPlan(athleteID, utils.FormatDate(utils.NextWeekStart(today)))
	switch {
	case err == nil:
		sig.HasNextWeekPlan = true
	case !errors.Is(err, storage.ErrNotFound):
		return sig, fmt.Errorf("failed to load next week's plan: %w", err)
	}
	return sig, nil
}

// Schedule runs the sweep on a cron spec (with seconds) in timezone tz until
// ctx is cancelled.
func (s *Sweeper) Schedule(ctx context.Context, spec, tz string, onResult func(Result, error)) error {
	loc, err := utils.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("invalid sweep timezone %q: %w", tz, err)
	}

	c := cron.NewWithLocation(loc)
	if err := c.AddFunc(spec, func() {
		res, err := s.Run(ctx, nil)
		if err != nil {
			logger.Error("Scheduled sweep failed", "error", err)
		}
		if onResult != nil {
			onResult(res, err)
		}
	}); err != nil {
		return fmt.Errorf("invalid sweep schedule %q: %w", spec, err)
	}

	logger.Info("Sweep scheduled", "spec", spec, "timezone", loc.String())
	c.Start()
	<-ctx.Done()
	c.Stop()
	return nil
}
