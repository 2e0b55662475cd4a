package training

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/Ebi50/training28-sub000/internal/adapter"
	"github.com/Ebi50/training28-sub000/internal/cli"
	"github.com/Ebi50/training28-sub000/internal/models"
	"github.com/Ebi50/training28-sub000/internal/planner"
	"github.com/Ebi50/training28-sub000/internal/readiness"
	"github.com/Ebi50/training28-sub000/internal/storage"
	"github.com/Ebi50/training28-sub000/internal/tui"
	"github.com/Ebi50/training28-sub000/internal/utils"
)

// recentDays is the history window the readiness trend and forced recovery look at.
const recentDays = 7

// CheckinCmd records the morning questionnaire and adapts today's sessions.
// Ratings left at zero are asked for interactively.
type CheckinCmd struct {
	Date       string `short:"d" help:"Check date (YYYY-MM-DD, today or yesterday)." default:"today"`
	Sleep      int    `help:"Sleep quality (1 poor - 5 great)."`
	Fatigue    int    `help:"Fatigue (1 fresh - 5 exhausted)."`
	Motivation int    `help:"Motivation (1 none - 5 eager)."`
	Soreness   int    `help:"Muscle soreness (1 none - 5 severe)."`
	Stress     int    `help:"Life stress (1 calm - 5 overwhelmed)."`
	Notes      string `short:"n" help:"Free-form notes."`
	DryRun     bool   `name:"dry-run" help:"Show the adaptation without saving anything."`
}

func (c *CheckinCmd) complete() bool {
	return c.Sleep > 0 && c.Fatigue > 0 && c.Motivation > 0 && c.Soreness > 0 && c.Stress > 0
}

func (c *CheckinCmd) Run(ctx *cli.Context) error {
	a, err := ctx.Athlete()
	if err != nil {
		return err
	}
	today := ctx.Today(a)
	day, err := cli.ParseDay(c.Date, today)
	if err != nil {
		return err
	}
	date := utils.FormatDate(day)

	if !c.complete() {
		if err := c.ask(); err != nil {
			return fmt.Errorf("check-in form error: %w", err)
		}
	}

	check := models.MorningCheck{
		Date:         date,
		SleepQuality: c.Sleep,
		Fatigue:      c.Fatigue,
		Motivation:   c.Motivation,
		Soreness:     c.Soreness,
		Stress:       c.Stress,
		Notes:        c.Notes,
	}
	if err := readiness.Validate(check); err != nil {
		return err
	}

	from := utils.FormatDate(day.AddDate(0, 0, -recentDays))
	recentChecks, err := ctx.Store.GetMorningChecks(a.ID, from, utils.FormatDate(day.AddDate(0, 0, -1)))
	if err != nil {
		return err
	}
	if _, err := planner.RefreshLoads(ctx.Store, a.ID, day); err != nil {
		return err
	}
	recentLoad, err := ctx.Store.GetDailyLoads(a.ID, from, date)
	if err != nil {
		return err
	}

	plan, err := ctx.Store.GetPlan(a.ID, utils.FormatDate(utils.WeekStart(day)))
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return err
	}
	res := adapter.AdaptDailySessions(plan.SessionsOn(date), check, recentChecks, recentLoad)
	score := res.Assessment.Score
	check.ReadinessScore = &score

	printAssessment(res)
	if c.DryRun {
		return nil
	}

	if err := ctx.Store.SaveMorningCheck(a.ID, check); err != nil {
		return fmt.Errorf("failed to save check-in: %w", err)
	}
	if res.Changed {
		plan.ReplaceSessions(res.Adapted)
		if err := ctx.Store.UpdatePlan(plan); err != nil {
			return fmt.Errorf("failed to update plan: %w", err)
		}
		fmt.Printf("Updated %d session(s) in plan revision %d.\n", res.TotalChanges, plan.Revision)
	}
	return nil
}

func (c *CheckinCmd) ask() error {
	rating := func(title, low, high string, v *int) *huh.Select[int] {
		if *v < 1 || *v > 5 {
			*v = 3
		}
		return huh.NewSelect[int]().
			Title(title).
			Options(
				huh.NewOption("1 "+low, 1),
				huh.NewOption("2", 2),
				huh.NewOption("3", 3),
				huh.NewOption("4", 4),
				huh.NewOption("5 "+high, 5),
			).
			Value(v)
	}

	form := huh.NewForm(
		huh.NewGroup(
			rating("Sleep quality", "poor", "great", &c.Sleep),
			rating("Fatigue", "fresh", "exhausted", &c.Fatigue),
			rating("Motivation", "none", "eager", &c.Motivation),
		),
		huh.NewGroup(
			rating("Muscle soreness", "none", "severe", &c.Soreness),
			rating("Stress", "calm", "overwhelmed", &c.Stress),
			huh.NewText().
				Title("Notes").
				Value(&c.Notes),
		),
	).WithTheme(huh.ThemeDracula())
	return form.Run()
}

func printAssessment(res adapter.Result) {
	as := res.Assessment
	fmt.Printf("Readiness %.0f%% (%s): %s\n", as.Score*100, as.Interpretation.Level, as.Interpretation.Recommendation)
	if as.ForceRecovery {
		fmt.Printf("Recovery forced: %s\n", as.Reason)
	}
	if as.Trend.DaysWithCheck > 0 {
		fmt.Printf("Trend over %d checks: %s (avg %.0f%%)\n", as.Trend.DaysWithCheck, as.Trend.Direction, as.Trend.Average*100)
	}

	if len(res.Adapted) == 0 {
		rec := readiness.RecommendWorkoutType(as.Score)
		fmt.Printf("No session planned. Suggestion: %s (%s)\n", rec.Type, rec.Reason)
		return
	}
	fmt.Println("\nToday:")
	for _, s := range res.Adapted {
		fmt.Println("  " + tui.SessionLine(s))
	}
	for _, r := range res.Reasons {
		fmt.Printf("  - %s\n", r)
	}
}
