package training

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Ebi50/training28-sub000/internal/cli"
	"github.com/Ebi50/training28-sub000/internal/load"
	"github.com/Ebi50/training28-sub000/internal/models"
	"github.com/Ebi50/training28-sub000/internal/planner"
	"github.com/Ebi50/training28-sub000/internal/storage"
	"github.com/Ebi50/training28-sub000/internal/tui"
	"github.com/Ebi50/training28-sub000/internal/utils"
)

// methodManual marks activities whose TSS was entered directly.
const methodManual = "manual"

type LoadLogCmd struct {
	Date     string  `short:"d" help:"Activity date (YYYY-MM-DD, today or yesterday)." default:"today"`
	Duration int     `short:"m" help:"Duration in minutes." required:""`
	NP       float64 `name:"np" help:"Normalized power in watts."`
	Power    float64 `name:"power" help:"Average power in watts."`
	HR       float64 `name:"hr" help:"Average heart rate in bpm."`
	RPE      int     `name:"rpe" help:"Perceived exertion (1-10)."`
	TSS      int     `name:"tss" help:"Known TSS; skips the calculation."`
	Method   string  `help:"Calculation method (auto|power|heart_rate|rpe|estimate)." default:"auto"`
}

func (c *LoadLogCmd) Validate() error {
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be greater than zero")
	}
	if c.TSS < 0 {
		return fmt.Errorf("TSS must not be negative")
	}
	if _, err := load.ParseMethod(c.Method); err != nil {
		return err
	}
	return nil
}

func (c *LoadLogCmd) Run(ctx *cli.Context) error {
	a, err := ctx.Athlete()
	if err != nil {
		return err
	}
	today := ctx.Today(a)
	day, err := cli.ParseDay(c.Date, today)
	if err != nil {
		return err
	}
	if day.After(today) {
		return fmt.Errorf("cannot log an activity in the future (%s)", utils.FormatDate(day))
	}

	activity := models.Activity{
		ID:              uuid.NewString(),
		AthleteID:       a.ID,
		Date:            utils.FormatDate(day),
		DurationSec:     c.Duration * 60,
		NormalizedPower: c.NP,
		AvgPower:        c.Power,
		AvgHR:           c.HR,
		RPE:             c.RPE,
	}
	if c.TSS > 0 {
		activity.TSS, activity.Method = c.TSS, methodManual
	} else {
		method, _ := load.ParseMethod(c.Method)
		tss, used, err := load.Calculate(load.EffortFromActivity(activity), a, method)
		if err != nil {
			return fmt.Errorf("failed to calculate TSS: %w", err)
		}
		activity.TSS, activity.Method = tss, string(used)
	}

	if err := ctx.Store.AddActivity(activity); err != nil {
		return fmt.Errorf("failed to save activity: %w", err)
	}
	history, err := planner.RefreshLoads(ctx.Store, a.ID, today)
	if err != nil {
		return err
	}

	fmt.Printf("Logged %d min on %s: %d TSS (%s)\n", c.Duration, activity.Date, activity.TSS, activity.Method)
	if len(history) > 0 {
		cur := load.Current(history)
		fmt.Printf("CTL %.1f  ATL %.1f  TSB %.1f  %s\n", cur.CTL, cur.ATL, cur.TSB(), load.InterpretTSB(cur.TSB()).Message)
	}
	return nil
}

type LoadShowCmd struct {
	Days    int  `short:"n" help:"Number of days to show." default:"14"`
	Refresh bool `help:"Rebuild the load chain from all activities first."`
}

func (c *LoadShowCmd) Run(ctx *cli.Context) error {
	a, err := ctx.Athlete()
	if err != nil {
		return err
	}
	today := ctx.Today(a)
	if c.Refresh {
		if _, err := planner.RefreshLoads(ctx.Store, a.ID, today); err != nil {
			return err
		}
	}
	days := max(c.Days, 1)
	history, err := ctx.Store.GetDailyLoads(a.ID, utils.FormatDate(today.AddDate(0, 0, -days+1)), utils.FormatDate(today))
	if err != nil {
		return err
	}
	fmt.Println(tui.RenderLoad(history))
	return nil
}

// LoadForecastCmd projects CTL, ATL and TSB over the planned sessions of
// this week and next.
type LoadForecastCmd struct{}

func (c *LoadForecastCmd) Run(ctx *cli.Context) error {
	a, err := ctx.Athlete()
	if err != nil {
		return err
	}
	today := ctx.Today(a)
	history, err := planner.RefreshLoads(ctx.Store, a.ID, today)
	if err != nil {
		return err
	}
	current := load.Current(history)
	if current.Date == "" {
		current.Date = utils.FormatDate(today)
	}

	planned, err := plannedTSS(ctx, a.ID, today.AddDate(0, 0, 1), utils.NextWeekStart(today).AddDate(0, 0, 6))
	if err != nil {
		return err
	}
	forecast := load.Forecast(current, planned)
	fmt.Println(tui.RenderLoad(append([]models.DailyLoad{current}, forecast...)))
	return nil
}

// plannedTSS sums the planned stress per day in [start, end]. Days without a
// plan count as rest.
func plannedTSS(ctx *cli.Context, athleteID string, start, end time.Time) ([]load.DayTSS, error) {
	plans := make(map[string]models.WeeklyPlan)
	var out []load.DayTSS
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		week := utils.FormatDate(utils.WeekStart(d))
		plan, ok := plans[week]
		if !ok {
			p, err := ctx.Store.GetPlan(athleteID, week)
			if err != nil && !errors.Is(err, storage.ErrNotFound) {
				return nil, err
			}
			plan, plans[week] = p, p
		}
		date := utils.FormatDate(d)
		var tss int
		for _, s := range plan.SessionsOn(date) {
			tss += s.TargetTSS
		}
		out = append(out, load.DayTSS{Date: date, TSS: float64(tss)})
	}
	return out, nil
}
