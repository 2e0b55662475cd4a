package athletes

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Ebi50/training28-sub000/internal/cli"
	"github.com/Ebi50/training28-sub000/internal/constants"
	"github.com/Ebi50/training28-sub000/internal/models"
	"github.com/Ebi50/training28-sub000/internal/season"
	"github.com/Ebi50/training28-sub000/internal/utils"
)

type GoalAddCmd struct {
	Name            string  `arg:"" help:"Event name."`
	Date            string  `short:"d" help:"Event date (YYYY-MM-DD)." required:""`
	Priority        string  `short:"p" help:"Priority (A|B|C)." enum:"A,B,C,a,b,c" default:"A"`
	TaperDays       int     `name:"taper-days" help:"Days before the event the taper starts." default:"14"`
	VolumeReduction float64 `name:"taper-reduction" help:"Taper volume reduction in percent." default:"40"`
}

func (c *GoalAddCmd) Validate() error {
	if _, err := utils.ParseDate(c.Date); err != nil {
		return err
	}
	if c.TaperDays < 0 {
		return fmt.Errorf("taper days must not be negative")
	}
	if c.VolumeReduction < 0 || c.VolumeReduction >= 100 {
		return fmt.Errorf("taper reduction must be between 0 and 100")
	}
	return nil
}

func (c *GoalAddCmd) Run(ctx *cli.Context) error {
	goal := models.SeasonGoal{
		ID:       uuid.NewString(),
		Name:     c.Name,
		Date:     c.Date,
		Priority: models.GoalPriority(strings.ToUpper(c.Priority)),
		Taper: models.TaperStrategy{
			DaysBeforeEvent: c.TaperDays,
			VolumeReduction: c.VolumeReduction,
		},
	}
	if err := ctx.Store.SaveGoal(ctx.AthleteID, goal); err != nil {
		return fmt.Errorf("failed to save goal: %w", err)
	}
	fmt.Printf("Added %s-goal %q on %s\n", goal.Priority, goal.Name, goal.Date)
	return nil
}

type GoalListCmd struct {
	All bool `help:"Include past events."`
}

func (c *GoalListCmd) Run(ctx *cli.Context) error {
	a, err := ctx.Athlete()
	if err != nil {
		return err
	}
	goals, err := ctx.Store.GetGoals(a.ID)
	if err != nil {
		return err
	}

	today := ctx.Today(a)
	shown := 0
	for _, g := range goals {
		d, err := utils.ParseDate(g.Date)
		if err != nil {
			continue
		}
		days := utils.DaysBetween(today, d)
		if days < 0 && !c.All {
			continue
		}
		shown++
		status := fmt.Sprintf("in %d days", days)
		if days < 0 {
			status = "done"
		} else if days <= season.TaperDays(g) {
			status += fmt.Sprintf(", tapering (intensity %.0f%%)", season.TaperIntensity(days, season.TaperDays(g))*100)
		}
		fmt.Printf("  [%s] %s  %-30s %s\n", g.Priority, g.Date, g.Name, status)
	}
	if shown == 0 {
		fmt.Println("No upcoming goals.")
	}
	return nil
}

type CampAddCmd struct {
	Name          string  `arg:"" help:"Camp name."`
	Start         string  `short:"s" help:"First camp day (YYYY-MM-DD)." required:""`
	End           string  `short:"e" help:"Last camp day (YYYY-MM-DD)." required:""`
	VolumeBump    float64 `name:"volume-bump" help:"Extra volume during the camp in percent."`
	HitCap        int     `name:"hit-cap" help:"Maximum high-intensity days per camp week."`
	DeloadDays    int     `name:"deload-days" help:"Lighter days after the camp."`
	PostReduction float64 `name:"post-reduction" help:"Volume reduction during the deload in percent."`
}

func (c *CampAddCmd) Validate() error {
	start, err := utils.ParseDate(c.Start)
	if err != nil {
		return err
	}
	end, err := utils.ParseDate(c.End)
	if err != nil {
		return err
	}
	if end.Before(start) {
		return fmt.Errorf("camp end must not be before its start")
	}
	return nil
}

func (c *CampAddCmd) Run(ctx *cli.Context) error {
	camp := models.TrainingCamp{
		ID:                  uuid.NewString(),
		Name:                c.Name,
		StartDate:           c.Start,
		EndDate:             c.End,
		VolumeBump:          c.VolumeBump,
		HitCap:              c.HitCap,
		DeloadDays:          c.DeloadDays,
		PostVolumeReduction: c.PostReduction,
	}
	if camp.VolumeBump == 0 {
		camp.VolumeBump = constants.DefaultCampVolumeBump
	}
	if camp.HitCap == 0 {
		camp.HitCap = constants.DefaultCampHitCap
	}
	if camp.DeloadDays == 0 {
		camp.DeloadDays = constants.DefaultCampDeloadDays
	}
	if camp.PostVolumeReduction == 0 {
		camp.PostVolumeReduction = constants.DefaultPostCampReduce
	}

	if err := ctx.Store.SaveCamp(ctx.AthleteID, camp); err != nil {
		return fmt.Errorf("failed to save camp: %w", err)
	}
	fmt.Printf("Added camp %q from %s to %s (+%.0f%% volume, %d HIT days max, %d deload days)\n",
		camp.Name, camp.StartDate, camp.EndDate, camp.VolumeBump, camp.HitCap, camp.DeloadDays)
	return nil
}

type CampListCmd struct{}

func (c *CampListCmd) Run(ctx *cli.Context) error {
	a, err := ctx.Athlete()
	if err != nil {
		return err
	}
	camps, err := ctx.Store.GetCamps(a.ID)
	if err != nil {
		return err
	}
	if len(camps) == 0 {
		fmt.Println("No training camps.")
		return nil
	}

	today := ctx.Today(a)
	active := season.ActiveCamp(camps, today)
	for _, camp := range camps {
		marker := " "
		if active != nil && active.ID == camp.ID {
			marker = "*"
		}
		fmt.Printf(" %s %s → %s  %-24s +%.0f%%, HIT ≤ %d, deload %d days (-%.0f%%)\n",
			marker, camp.StartDate, camp.EndDate, camp.Name, camp.VolumeBump, camp.HitCap, camp.DeloadDays, camp.PostVolumeReduction)
	}
	return nil
}
