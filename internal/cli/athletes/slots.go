package athletes

import (
	"fmt"
	"sort"

	"github.com/Ebi50/training28-sub000/internal/cli"
	"github.com/Ebi50/training28-sub000/internal/models"
	"github.com/Ebi50/training28-sub000/internal/slots"
	"github.com/Ebi50/training28-sub000/internal/utils"
)

type SlotsAddCmd struct {
	Days  string `arg:"" help:"Comma-separated weekdays, e.g. mon,wed,fri."`
	Start string `short:"s" help:"Start time (HH:MM)." required:""`
	End   string `short:"e" help:"End time (HH:MM)." required:""`
	Kind  string `short:"k" help:"Where the window can be used (indoor|outdoor|both)." default:"both"`
	Force bool   `help:"Save even when the new windows overlap existing ones."`
}

func (c *SlotsAddCmd) Validate() error {
	if !utils.ValidateTimeFormat(c.Start) {
		return fmt.Errorf("invalid start time %q (expected HH:MM)", c.Start)
	}
	if !utils.ValidateTimeFormat(c.End) {
		return fmt.Errorf("invalid end time %q (expected HH:MM)", c.End)
	}
	if c.Start >= c.End {
		return fmt.Errorf("start time must be before end time")
	}
	return nil
}

func (c *SlotsAddCmd) Run(ctx *cli.Context) error {
	days, err := cli.ParseWeekdays(c.Days)
	if err != nil {
		return err
	}
	kind, err := cli.ParseSlotKind(c.Kind)
	if err != nil {
		return err
	}

	existing, err := ctx.Store.GetSlots(ctx.AthleteID)
	if err != nil {
		return err
	}
	updated := existing
	for _, d := range days {
		updated = append(updated, models.TimeSlot{Day: d, StartTime: c.Start, EndTime: c.End, Kind: kind})
	}

	res := slots.New().Validate(updated)
	if res.HasConflicts() && !c.Force {
		fmt.Print(res.FormatReport())
		return fmt.Errorf("slots not saved; use --force to keep overlapping windows")
	}

	if err := ctx.Store.ReplaceSlots(ctx.AthleteID, updated); err != nil {
		return fmt.Errorf("failed to save slots: %w", err)
	}
	fmt.Printf("Added %d slot(s). %d configured, %s per week.\n",
		len(days), len(updated), utils.FormatMinutes(slots.TotalWeeklyMinutes(updated)))
	return nil
}

type SlotsListCmd struct{}

func (c *SlotsListCmd) Run(ctx *cli.Context) error {
	list, err := ctx.Store.GetSlots(ctx.AthleteID)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Println("No time slots configured. The weekday defaults will be used for planning.")
		return nil
	}

	sort.SliceStable(list, func(i, j int) bool {
		// Monday first
		di, dj := (int(list[i].Day)+6)%7, (int(list[j].Day)+6)%7
		if di != dj {
			return di < dj
		}
		return list[i].StartTime < list[j].StartTime
	})
	for _, s := range list {
		fmt.Printf("  %-9s %s-%s  %-7s %s\n", s.Day, s.StartTime, s.EndTime, s.Kind, utils.FormatMinutes(s.DurationMinutes()))
	}
	fmt.Printf("\n%d slots, %s per week\n", len(list), utils.FormatMinutes(slots.TotalWeeklyMinutes(list)))
	return nil
}

type SlotsValidateCmd struct{}

func (c *SlotsValidateCmd) Run(ctx *cli.Context) error {
	list, err := ctx.Store.GetSlots(ctx.AthleteID)
	if err != nil {
		return err
	}
	res := slots.New().Validate(list)
	fmt.Print(res.FormatReport())
	if !res.HasConflicts() {
		fmt.Println()
		return nil
	}
	return fmt.Errorf("%d conflict(s) found", len(res.Conflicts))
}

// SlotsDefaultsCmd replaces the configured windows with a built-in template.
type SlotsDefaultsCmd struct {
	Template string `arg:"" optional:"" enum:"weekday,default,camp" default:"default" help:"Template to apply (weekday|default|camp)."`
}

func (c *SlotsDefaultsCmd) Run(ctx *cli.Context) error {
	var list []models.TimeSlot
	switch c.Template {
	case "weekday":
		list = slots.WeekdaySlots()
	case "camp":
		list = slots.CampSlots()
	default:
		list = slots.DefaultSlots()
	}
	if err := ctx.Store.ReplaceSlots(ctx.AthleteID, list); err != nil {
		return fmt.Errorf("failed to save slots: %w", err)
	}
	fmt.Printf("Applied the %s template: %d slots, %s per week\n",
		c.Template, len(list), utils.FormatMinutes(slots.TotalWeeklyMinutes(list)))
	return nil
}

type SlotsClearCmd struct{}

func (c *SlotsClearCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.ReplaceSlots(ctx.AthleteID, nil); err != nil {
		return fmt.Errorf("failed to clear slots: %w", err)
	}
	fmt.Println("Cleared all time slots.")
	return nil
}
