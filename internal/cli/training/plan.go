package training

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Ebi50/training28-sub000/internal/cli"
	"github.com/Ebi50/training28-sub000/internal/compliance"
	apperr "github.com/Ebi50/training28-sub000/internal/errors"
	"github.com/Ebi50/training28-sub000/internal/models"
	"github.com/Ebi50/training28-sub000/internal/planner"
	"github.com/Ebi50/training28-sub000/internal/storage"
	"github.com/Ebi50/training28-sub000/internal/tui"
	"github.com/Ebi50/training28-sub000/internal/utils"
)

type PlanGenerateCmd struct {
	Week string `arg:"" optional:"" help:"Week to plan (this|next|YYYY-MM-DD)." default:"next"`
}

func (c *PlanGenerateCmd) Run(ctx *cli.Context) error {
	a, err := ctx.Athlete()
	if err != nil {
		return err
	}
	today := ctx.Today(a)
	week, err := cli.ParseWeek(c.Week, today)
	if err != nil {
		return err
	}

	plan, err := generate(ctx, a.ID, week, today)
	if err != nil {
		return err
	}
	fmt.Println(tui.RenderPlan(plan))
	return nil
}

// generate refreshes the load chain so the plan starts from current fitness.
func generate(ctx *cli.Context, athleteID string, week, today time.Time) (models.WeeklyPlan, error) {
	if _, err := planner.RefreshLoads(ctx.Store, athleteID, today); err != nil {
		return models.WeeklyPlan{}, err
	}
	return planner.Generate(context.Background(), ctx.Config.PlanningConfig(), ctx.Store,
		athleteID, week, today, ctx.Config.Sweep.LookbackDays)
}

type PlanShowCmd struct {
	Week     string `arg:"" optional:"" help:"Week to show (this|next|last|YYYY-MM-DD)." default:"this"`
	Revision int    `short:"r" help:"Show an older revision instead of the latest."`
	JSON     bool   `name:"json" help:"Print the plan as JSON."`
}

func (c *PlanShowCmd) Run(ctx *cli.Context) error {
	a, err := ctx.Athlete()
	if err != nil {
		return err
	}
	today := ctx.Today(a)
	week, err := cli.ParseWeek(c.Week, today)
	if err != nil {
		return err
	}
	weekID := utils.FormatDate(week)

	var plan models.WeeklyPlan
	if c.Revision > 0 {
		plan, err = ctx.Store.GetPlanRevision(a.ID, weekID, c.Revision)
	} else {
		plan, err = ctx.Store.GetPlan(a.ID, weekID)
	}
	if errors.Is(err, storage.ErrNotFound) {
		return apperr.WithHint(fmt.Errorf("no plan for the week of %s: %w", weekID, err),
			fmt.Sprintf("generate one with 'training28 plan generate %s'", weekID))
	}
	if err != nil {
		return err
	}

	if c.JSON {
		out, err := json.MarshalIndent(plan, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Println(tui.RenderPlan(plan))
	if week.After(today) {
		return nil
	}

	activities, err := ctx.Store.GetActivities(a.ID, weekID, utils.FormatDate(week.AddDate(0, 0, 6)))
	if err != nil {
		return err
	}
	printCompliance(compliance.BuildReport(plan, activities, today))
	return nil
}

func printCompliance(rep compliance.Report) {
	st := rep.Stats
	fmt.Printf("\nCompliance: %d/%d completed, %d missed, %d modified (%.0f%%)\n",
		st.Completed, st.Planned, st.Missed, st.Modified, st.Rate*100)
	for _, r := range rep.Sessions {
		if r.Status == compliance.StatusPending {
			continue
		}
		fmt.Printf("  %s  %-9s planned %3d, actual %3d\n", r.Date, r.Status, r.PlannedTSS, r.ActualTSS)
	}
	for _, rec := range rep.Recommendations {
		fmt.Printf("  - %s\n", rec)
	}
	if rep.ShouldUpdate {
		fmt.Printf("Consider regenerating the plan: %s\n", rep.UpdateReason)
	}
}

// PlanViewCmd opens the interactive plan browser.
type PlanViewCmd struct {
	Week string `arg:"" optional:"" help:"Week to open (this|next|last|YYYY-MM-DD)." default:"this"`
}

func (c *PlanViewCmd) Run(ctx *cli.Context) error {
	a, err := ctx.Athlete()
	if err != nil {
		return err
	}
	today := ctx.Today(a)
	week, err := cli.ParseWeek(c.Week, today)
	if err != nil {
		return err
	}

	src := planSource{ctx: ctx, athleteID: a.ID, today: today}
	p := tea.NewProgram(tui.NewModel(src, week), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("plan browser failed: %w", err)
	}
	return nil
}

// planSource serves the plan browser from the store.
type planSource struct {
	ctx       *cli.Context
	athleteID string
	today     time.Time
}

func (s planSource) Plan(weekStart time.Time) (models.WeeklyPlan, error) {
	return s.ctx.Store.GetPlan(s.athleteID, utils.FormatDate(weekStart))
}

func (s planSource) Regenerate(weekStart time.Time) (models.WeeklyPlan, error) {
	return generate(s.ctx, s.athleteID, weekStart, s.today)
}

func (s planSource) Loads(from, to string) ([]models.DailyLoad, error) {
	return s.ctx.Store.GetDailyLoads(s.athleteID, from, to)
}
