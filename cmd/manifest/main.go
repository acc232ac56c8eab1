package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/manifest/internal/cli"
	"github.com/julianstephens/manifest/internal/cli/affirm"
	"github.com/julianstephens/manifest/internal/cli/backups"
	"github.com/julianstephens/manifest/internal/cli/goals"
	"github.com/julianstephens/manifest/internal/cli/journal"
	"github.com/julianstephens/manifest/internal/cli/profile"
	"github.com/julianstephens/manifest/internal/cli/remind"
	"github.com/julianstephens/manifest/internal/cli/rituals"
	"github.com/julianstephens/manifest/internal/cli/settings"
	"github.com/julianstephens/manifest/internal/cli/system"
	"github.com/julianstephens/manifest/internal/constants"
	"github.com/julianstephens/manifest/internal/errors"
	"github.com/julianstephens/manifest/internal/logger"
	"github.com/julianstephens/manifest/internal/storage"
	"github.com/julianstephens/manifest/internal/storage/postgres"
	"github.com/julianstephens/manifest/internal/storage/sqlite"
	"github.com/julianstephens/manifest/internal/utils"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Database file path or PostgreSQL connection string. For PostgreSQL, credentials must NOT be embedded in the connection string; use PGPASSWORD or .pgpass instead." type:"string" default:"${default_config}"`
	Debug   bool   `help:"Log debug output to stderr."`

	Init     system.InitCmd     `cmd:"" help:"Initialize manifest storage."`
	Migrate  system.MigrateCmd  `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	DebugCmd system.DebugCmd    `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`
	Tui      system.TuiCmd      `cmd:"" help:"Open the daily aligner." default:"1"`
	Onboard  profile.OnboardCmd `cmd:"" help:"Set up your profile and reminders."`
	Profile struct {
		Show profile.ShowCmd `cmd:"" help:"Show your profile." default:"1"`
		Set  profile.SetCmd  `cmd:"" help:"Update profile fields."`
	} `cmd:"" help:"View or edit your profile."`
	Goal struct {
		Add         goals.AddCmd         `cmd:"" help:"Create a vision goal with its rituals."`
		List        goals.ListCmd        `cmd:"" help:"List vision goals." default:"1"`
		Regenerate  goals.RegenerateCmd  `cmd:"" help:"Generate a new image for a goal."`
		Personalize goals.PersonalizeCmd `cmd:"" help:"Place yourself in a goal's image."`
	} `cmd:"" help:"Manage vision goals."`
	Ritual struct {
		Add    rituals.AddCmd    `cmd:"" help:"Add a daily ritual."`
		List   rituals.ListCmd   `cmd:"" help:"List today's rituals." default:"1"`
		Toggle rituals.ToggleCmd `cmd:"" help:"Mark a ritual done or not done."`
		Rename rituals.RenameCmd `cmd:"" help:"Rename a ritual."`
		Delete rituals.DeleteCmd `cmd:"" help:"Delete a ritual."`
		Reset  rituals.ResetCmd  `cmd:"" help:"Clear today's completions."`
	} `cmd:"" help:"Manage daily rituals."`
	Affirm struct {
		Show    affirm.ShowCmd    `cmd:"" help:"Show today's affirmation." default:"1"`
		Refresh affirm.RefreshCmd `cmd:"" help:"Generate a new affirmation."`
		Ack     affirm.AckCmd     `cmd:"" help:"Acknowledge the affirmation and extend your streak."`
	} `cmd:"" help:"Daily affirmations."`
	Gratitude struct {
		Add  journal.GratitudeAddCmd  `cmd:"" help:"Write a gratitude entry."`
		List journal.GratitudeListCmd `cmd:"" help:"List gratitude entries." default:"1"`
	} `cmd:"" help:"Gratitude journal."`
	Lifestyle struct {
		Simulate journal.LifestyleSimulateCmd `cmd:"" help:"Picture yourself in a described future."`
		History  journal.LifestyleHistoryCmd  `cmd:"" help:"List past simulations." default:"1"`
	} `cmd:"" help:"Lifestyle simulations."`
	Remind struct {
		Schedule remind.ScheduleCmd `cmd:"" help:"Set the morning and evening reminder times."`
		List     remind.ListCmd     `cmd:"" help:"List scheduled reminders." default:"1"`
		Notify   remind.NotifyCmd   `cmd:"" help:"Send reminders that are due now."`
	} `cmd:"" help:"Manage reminders."`
	Settings struct {
		Show   settings.ShowCmd   `cmd:"" help:"Show settings." default:"1"`
		Set    settings.SetCmd    `cmd:"" help:"Update settings."`
		Export settings.ExportCmd `cmd:"" help:"Export settings as YAML."`
		Import settings.ImportCmd `cmd:"" help:"Import settings from YAML."`
	} `cmd:"" help:"Manage application settings."`
	Backup struct {
		Create  backups.CreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.ListCmd    `cmd:"" help:"List available backups."`
		Restore backups.RestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store the Gemini API key in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored API key (masked)."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored API key."`
	} `cmd:"" help:"Manage the Gemini API key."`
}

// noPreload lists commands that open storage themselves or do not need it.
var noPreload = []string{"init", "doctor", "keyring"}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Vision board, daily rituals and affirmations"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":        constants.Version,
			"default_config": constants.DefaultConfigPath,
		},
	)

	store, configDir, err := openStore(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}
	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir}); err != nil {
		errors.Fatal(err)
	}
	logger.Debug("Starting", "command", kctx.Command(), "storage", store.GetConfigPath(), "log", logger.Path(configDir))

	if needsLoad(kctx.Command()) {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = kctx.Run(&cli.Context{Ctx: ctx, Store: store})
	if err != nil {
		store.Close()
		stop()
		errors.Fatal(err)
	}
}

// openStore picks PostgreSQL for connection strings and SQLite otherwise. It
// also returns the directory logs are written under.
func openStore(config string) (storage.Provider, string, error) {
	defaultDir, err := utils.ExpandHome(filepath.Dir(constants.DefaultConfigPath))
	if err != nil {
		return nil, "", err
	}

	if postgres.IsConnString(config) {
		if err := postgres.ValidateConnString(config); err != nil {
			return nil, "", err
		}
		return postgres.New(config), defaultDir, nil
	}

	path, err := utils.ExpandHome(config)
	if err != nil {
		return nil, "", err
	}
	return sqlite.NewStore(path), filepath.Dir(path), nil
}

func needsLoad(command string) bool {
	name, _, _ := strings.Cut(command, " ")
	return !slices.Contains(noPreload, name)
}
