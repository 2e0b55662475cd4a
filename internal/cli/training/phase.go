package training

import (
	"fmt"
	"time"

	"github.com/Ebi50/training28-sub000/internal/cli"
	"github.com/Ebi50/training28-sub000/internal/phase"
	"github.com/Ebi50/training28-sub000/internal/planner"
	"github.com/Ebi50/training28-sub000/internal/utils"
)

type PhaseCmd struct {
	Event string `short:"e" help:"Event date to plan towards (YYYY-MM-DD); defaults to the athlete's event or next goal."`
}

func (c *PhaseCmd) Validate() error {
	if c.Event == "" {
		return nil
	}
	_, err := utils.ParseDate(c.Event)
	return err
}

func (c *PhaseCmd) Run(ctx *cli.Context) error {
	a, err := ctx.Athlete()
	if err != nil {
		return err
	}
	today := ctx.Today(a)

	var event *time.Time
	if c.Event != "" {
		d, _ := utils.ParseDate(c.Event)
		event = &d
	} else {
		goals, err := ctx.Store.GetGoals(a.ID)
		if err != nil {
			return err
		}
		event = planner.EventDate(a, goals, today)
	}

	info := phase.CalculateWithBaseline(event, today, ctx.Config.Planning.BaseWeeklyTSS)
	if event != nil {
		fmt.Printf("Phase: %s (%d weeks to %s)\n", info.Phase, info.WeeksToEvent, utils.FormatDate(*event))
	} else {
		fmt.Printf("Phase: %s (no upcoming event)\n", info.Phase)
	}
	fmt.Println(info.Description)

	d := info.Distribution
	fmt.Println("\nIntensity mix:")
	rows := []struct {
		name  string
		share float64
	}{
		{"LIT", d.LIT},
		{"Tempo", d.Tempo},
		{"FTP", d.FTP},
		{"VO2max", d.VO2Max},
		{"Anaerobic", d.Anaerobic},
		{"Neuromuscular", d.Neuromuscular},
		{"Skill", d.Skill},
		{"Recovery", d.Recovery},
	}
	for _, r := range rows {
		fmt.Printf("  %-14s %3.0f%%\n", r.name, r.share*100)
	}
	fmt.Printf("\nWeekly TSS: %d (range %d-%d)\n", info.WeeklyTSS.Target, info.WeeklyTSS.Min, info.WeeklyTSS.Max)
	return nil
}
