package main

import (
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"github.com/Ebi50/training28-sub000/internal/cli"
	"github.com/Ebi50/training28-sub000/internal/cli/athletes"
	"github.com/Ebi50/training28-sub000/internal/cli/system"
	"github.com/Ebi50/training28-sub000/internal/cli/training"
	"github.com/Ebi50/training28-sub000/internal/config"
	"github.com/Ebi50/training28-sub000/internal/constants"
	apperr "github.com/Ebi50/training28-sub000/internal/errors"
	"github.com/Ebi50/training28-sub000/internal/logger"
	"github.com/Ebi50/training28-sub000/internal/utils"
)

var CLI struct {
	Version   kong.VersionFlag
	DB        string `name:"db" help:"SQLite file path, PostgreSQL connection string without password, or 'keyring'. ${env} takes precedence." type:"string" default:"" placeholder:"PATH|URL"`
	Config    string `help:"Path to the TOML config file." type:"string" default:"${config_file}"`
	AthleteID string `name:"athlete" short:"a" help:"Athlete to operate on." default:"${athlete}"`
	Debug     bool   `help:"Enable debug logging."`

	Init    system.InitCmd    `cmd:"" help:"Initialize storage and write the default config."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Athlete struct {
		Set  athletes.AthleteSetCmd  `cmd:"" help:"Create or update the athlete profile."`
		Show athletes.AthleteShowCmd `cmd:"" help:"Show the athlete profile and current load." default:"1"`
	} `cmd:"" help:"Manage the athlete profile."`
	Slots struct {
		Add      athletes.SlotsAddCmd      `cmd:"" help:"Add weekly training windows."`
		List     athletes.SlotsListCmd     `cmd:"" help:"List training windows." default:"1"`
		Validate athletes.SlotsValidateCmd `cmd:"" help:"Check training windows for overlaps."`
		Defaults athletes.SlotsDefaultsCmd `cmd:"" help:"Replace all windows with a template."`
		Clear    athletes.SlotsClearCmd    `cmd:"" help:"Remove all training windows."`
	} `cmd:"" help:"Manage weekly training windows."`
	Goal struct {
		Add  athletes.GoalAddCmd  `cmd:"" help:"Add a season goal."`
		List athletes.GoalListCmd `cmd:"" help:"List season goals." default:"1"`
	} `cmd:"" help:"Manage season goals."`
	Camp struct {
		Add  athletes.CampAddCmd  `cmd:"" help:"Add a training camp."`
		List athletes.CampListCmd `cmd:"" help:"List training camps." default:"1"`
	} `cmd:"" help:"Manage training camps."`
	Load struct {
		Log      training.LoadLogCmd      `cmd:"" help:"Log a completed activity."`
		Show     training.LoadShowCmd     `cmd:"" help:"Show recent CTL, ATL and TSB." default:"1"`
		Forecast training.LoadForecastCmd `cmd:"" help:"Project the load over the planned sessions."`
	} `cmd:"" help:"Track training load."`
	Phase training.PhaseCmd `cmd:"" help:"Show the current periodization phase."`
	Plan  struct {
		Generate training.PlanGenerateCmd `cmd:"" help:"Generate a new plan revision for a week."`
		Show     training.PlanShowCmd     `cmd:"" help:"Show a week's plan and its compliance."`
		View     training.PlanViewCmd     `cmd:"" help:"Browse plans interactively."`
	} `cmd:"" help:"Generate and review weekly plans."`
	Checkin training.CheckinCmd `cmd:"" help:"Record the morning check and adapt today's sessions."`
	Sweep   system.SweepCmd     `cmd:"" help:"Regenerate next week's plan for auto-update athletes."`
	Serve   system.ServeCmd     `cmd:"" help:"Serve the planning HTTP API."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a database connection string in the OS keyring."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Show what the keyring holds." default:"1"`
	} `cmd:"" help:"Manage the database connection string in the OS keyring."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Endurance training periodization and adaptive weekly planning"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_file": constants.DefaultConfigFile,
			"athlete":     constants.DefaultAthleteID,
			"env":         constants.EnvDBConnection,
		},
	)
	command := ctx.Command()

	configDir, err := utils.ExpandPath(constants.DefaultConfigDir)
	if err != nil {
		apperr.Fatal(err)
	}
	foreground := command == "serve" || (command == "sweep" && CLI.Sweep.Daemon)
	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir, Foreground: foreground}); err != nil {
		apperr.Fatal(err)
	}

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		apperr.Fatal(err)
	}

	store, err := cli.OpenStore(CLI.DB, os.Getenv(constants.EnvDBConnection))
	if err != nil {
		apperr.Fatal(err)
	}
	defer store.Close()

	// init creates the schema itself; keyring commands never touch the database
	if command != "init" && !strings.HasPrefix(command, "keyring") {
		if err := store.Load(); err != nil {
			apperr.Fatal(err)
		}
	}

	appCtx := &cli.Context{
		Store:      store,
		Config:     cfg,
		ConfigPath: CLI.Config,
		AthleteID:  CLI.AthleteID,
		Now:        time.Now,
	}

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		apperr.Fatal(err)
	}
}
