package athletes

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Ebi50/training28-sub000/internal/cli"
	"github.com/Ebi50/training28-sub000/internal/load"
	"github.com/Ebi50/training28-sub000/internal/models"
	"github.com/Ebi50/training28-sub000/internal/storage"
	"github.com/Ebi50/training28-sub000/internal/utils"
)

// AthleteSetCmd creates the athlete or updates the fields that were passed.
type AthleteSetCmd struct {
	Name       *string  `help:"Display name."`
	FTP        *float64 `name:"ftp" help:"Functional threshold power in watts."`
	LTHR       *float64 `name:"lthr" help:"Lactate threshold heart rate in bpm."`
	MaxHR      *float64 `name:"max-hr" help:"Maximum heart rate in bpm."`
	RestingHR  *float64 `name:"resting-hr" help:"Resting heart rate in bpm."`
	Weight     *float64 `help:"Body weight in kg."`
	Timezone   *string  `help:"IANA timezone, e.g. Europe/Berlin."`
	Hours      *float64 `help:"Planned weekly training hours."`
	LitRatio   *float64 `name:"lit-ratio" help:"Share of low-intensity minutes (0-1)."`
	MaxHitDays *int     `name:"max-hit-days" help:"Maximum high-intensity days per week."`
	Indoor     *string  `help:"Allow indoor trainer sessions (yes|no)."`
	EventDate  *string  `name:"event-date" help:"Target event date (YYYY-MM-DD), or 'none' to clear."`
	AutoUpdate *string  `name:"auto-update" help:"Include the athlete in the nightly sweep (yes|no)."`
}

func (c *AthleteSetCmd) Run(ctx *cli.Context) error {
	a, err := ctx.Store.GetAthlete(ctx.AthleteID)
	created := false
	switch {
	case errors.Is(err, storage.ErrNotFound):
		a = models.Athlete{
			ID:            ctx.AthleteID,
			Timezone:      "Local",
			WeeklyHours:   8,
			LitRatio:      0.8,
			MaxHitDays:    2,
			IndoorAllowed: true,
		}
		created = true
	case err != nil:
		return err
	}

	if err := c.apply(&a); err != nil {
		return err
	}
	if err := ctx.Store.SaveAthlete(a); err != nil {
		return fmt.Errorf("failed to save athlete: %w", err)
	}

	if created {
		fmt.Printf("Created athlete %q\n", a.ID)
	} else {
		fmt.Printf("Updated athlete %q\n", a.ID)
	}
	if !a.HasPhysiology() {
		fmt.Println("⚠️  Neither FTP nor LTHR is set; plans cannot be generated until one is.")
	}
	return nil
}

func (c *AthleteSetCmd) apply(a *models.Athlete) error {
	if c.Name != nil {
		a.Name = *c.Name
	}
	if c.FTP != nil {
		if *c.FTP < 0 {
			return load.ErrInvalidFTP
		}
		a.FTP = *c.FTP
	}
	if c.LTHR != nil {
		if *c.LTHR < 0 {
			return load.ErrInvalidLTHR
		}
		a.LTHR = *c.LTHR
	}
	if c.MaxHR != nil {
		a.MaxHR = *c.MaxHR
	}
	if c.RestingHR != nil {
		a.RestingHR = *c.RestingHR
	}
	if c.Weight != nil {
		a.WeightKg = *c.Weight
	}
	if c.Timezone != nil {
		if !utils.ValidateTimezone(*c.Timezone) {
			return fmt.Errorf("invalid timezone: %s", *c.Timezone)
		}
		a.Timezone = *c.Timezone
	}
	if c.Hours != nil {
		if *c.Hours <= 0 {
			return fmt.Errorf("weekly hours must be greater than zero")
		}
		a.WeeklyHours = *c.Hours
	}
	if c.LitRatio != nil {
		if *c.LitRatio < 0 || *c.LitRatio > 1 {
			return fmt.Errorf("lit ratio must be between 0 and 1")
		}
		a.LitRatio = *c.LitRatio
	}
	if c.MaxHitDays != nil {
		if *c.MaxHitDays < 0 || *c.MaxHitDays > 7 {
			return fmt.Errorf("max hit days must be between 0 and 7")
		}
		a.MaxHitDays = *c.MaxHitDays
	}
	if c.Indoor != nil {
		v, err := parseYesNo(*c.Indoor)
		if err != nil {
			return err
		}
		a.IndoorAllowed = v
	}
	if c.EventDate != nil {
		if *c.EventDate == "none" || *c.EventDate == "" {
			a.EventDate = nil
		} else {
			if _, err := utils.ParseDate(*c.EventDate); err != nil {
				return err
			}
			d := *c.EventDate
			a.EventDate = &d
		}
	}
	if c.AutoUpdate != nil {
		v, err := parseYesNo(*c.AutoUpdate)
		if err != nil {
			return err
		}
		a.AutoUpdate = v
	}
	return nil
}

func parseYesNo(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true", "on", "1":
		return true, nil
	case "no", "n", "false", "off", "0":
		return false, nil
	}
	return false, fmt.Errorf("expected yes or no, got %q", s)
}

type AthleteShowCmd struct{}

func (c *AthleteShowCmd) Run(ctx *cli.Context) error {
	a, err := ctx.Athlete()
	if err != nil {
		return err
	}

	name := a.Name
	if name == "" {
		name = "-"
	}
	fmt.Printf("Athlete:      %s (%s)\n", a.ID, name)
	fmt.Printf("FTP / LTHR:   %.0f W / %.0f bpm\n", a.FTP, a.LTHR)
	if a.MaxHR > 0 || a.RestingHR > 0 {
		fmt.Printf("HR max/rest:  %.0f / %.0f bpm\n", a.MaxHR, a.RestingHR)
	}
	if a.WeightKg > 0 {
		fmt.Printf("Weight:       %.1f kg\n", a.WeightKg)
	}
	fmt.Printf("Timezone:     %s\n", a.Timezone)
	fmt.Printf("Weekly hours: %.1f (LIT %.0f%%, max %d HIT days)\n", a.WeeklyHours, a.LitRatio*100, a.MaxHitDays)
	fmt.Printf("Indoor:       %t\n", a.IndoorAllowed)
	if a.EventDate != nil {
		fmt.Printf("Event:        %s\n", *a.EventDate)
	}
	fmt.Printf("Auto-update:  %t\n", a.AutoUpdate)

	today := ctx.Today(a)
	history, err := ctx.Store.GetDailyLoads(a.ID, utils.FormatDate(today.AddDate(0, 0, -7)), utils.FormatDate(today))
	if err != nil {
		return err
	}
	if len(history) > 0 {
		cur := load.Current(history)
		reading := load.InterpretTSB(cur.TSB())
		fmt.Printf("Load (%s): CTL %.1f, ATL %.1f, TSB %.1f (%s)\n", cur.Date, cur.CTL, cur.ATL, cur.TSB(), reading.Form)
	}
	return nil
}
