package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/miaomotion/internal/cli"
	"github.com/julianstephens/miaomotion/internal/cli/backups"
	"github.com/julianstephens/miaomotion/internal/cli/cat"
	"github.com/julianstephens/miaomotion/internal/cli/checkins"
	"github.com/julianstephens/miaomotion/internal/cli/schedules"
	"github.com/julianstephens/miaomotion/internal/cli/system"
	"github.com/julianstephens/miaomotion/internal/config"
	"github.com/julianstephens/miaomotion/internal/constants"
	"github.com/julianstephens/miaomotion/internal/errors"
	"github.com/julianstephens/miaomotion/internal/keyring"
	"github.com/julianstephens/miaomotion/internal/logger"
	"github.com/julianstephens/miaomotion/internal/storage"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"State file path (.db or .json), :memory:, or PostgreSQL connection string. PostgreSQL credentials must NOT be embedded; use the OS keyring, MIAOMOTION_DB_CONNECTION or .pgpass." type:"string"`
	Debug    bool   `help:"Enable debug logging to stderr."`
	Timezone string `help:"IANA timezone used to decide what 'today' is."`

	Init      system.InitCmd        `cmd:"" help:"Initialize miaomotion storage."`
	Login     cat.LoginCmd          `cmd:"" help:"Check the phone/code login form."`
	Adopt     cat.AdoptCmd          `cmd:"" help:"Adopt your cat."`
	Status    cat.StatusCmd         `cmd:"" help:"Show your cat and today's check-in state."`
	Checkin   checkins.CheckinCmd   `cmd:"" help:"Check in an activity."`
	Feed      cat.FeedCmd           `cmd:"" help:"Feed your cat one food item."`
	Rename    cat.RenameCmd         `cmd:"" help:"Rename your cat."`
	Recommend checkins.RecommendCmd `cmd:"" help:"Suggest activities for the weather."`
	Free      schedules.FreeCmd     `cmd:"" help:"Show free time for a day."`
	Schedule  struct {
		Add    schedules.ScheduleAddCmd    `cmd:"" help:"Add a busy block."`
		List   schedules.ScheduleListCmd   `cmd:"" help:"List busy blocks for a day." default:"1"`
		Delete schedules.ScheduleDeleteCmd `cmd:"" help:"Delete a busy block."`
	} `cmd:"" help:"Manage your schedule."`
	Calendar checkins.CalendarCmd `cmd:"" help:"Show the check-in calendar."`
	Stats    cat.StatsCmd         `cmd:"" help:"Show profile statistics."`
	Reset    system.ResetCmd      `cmd:"" help:"Erase all data (a backup is taken first)."`
	Backup   struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage state backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store the PostgreSQL connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string (password masked)."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Report keyring availability." default:"1"`
	} `cmd:"" help:"Manage the database connection in the OS keyring."`
	Doctor   system.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Validate system.ValidateCmd `cmd:"" help:"Check stored data for conflicts."`
	Tui      system.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Exercise check-ins that feed a virtual cat"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	cfg, err := config.Load()
	if err != nil {
		errors.Fatal(err)
	}
	if CLI.Debug {
		cfg.Debug = true
	}
	if CLI.Timezone != "" {
		cfg.Timezone = CLI.Timezone
		if err := cfg.Validate(); err != nil {
			errors.Fatal(err)
		}
	}

	configDir, err := storage.ExpandPath(filepath.Dir(constants.DefaultConfigPath))
	if err != nil {
		errors.Fatal(err)
	}
	if err := logger.Init(logger.Config{Debug: cfg.Debug, ConfigDir: configDir}); err != nil {
		errors.Fatal(fmt.Errorf("failed to initialize logger: %w", err))
	}

	store, err := openStore(cfg)
	if err != nil {
		errors.Fatal(err)
	}

	appCtx := &cli.Context{
		Store:  store,
		Config: cfg,
	}

	// init and keyring manage the store themselves
	command := ctx.Command()
	if command != "init" && !isKeyringCommand(command) {
		if err := store.Init(); err != nil {
			_ = store.Close()
			errors.Fatal(err)
		}
	}

	err = ctx.Run(appCtx)
	if cerr := appCtx.Close(); cerr != nil {
		logger.Warn("Failed to close store", "error", cerr)
	}
	if err != nil {
		errors.Fatal(err)
	}
}

// openStore picks the backing store. An explicit --config wins; otherwise a
// DSN from the environment or keyring selects PostgreSQL, and the default
// SQLite file is used last.
func openStore(cfg config.Config) (storage.Provider, error) {
	if CLI.Config != "" {
		return storage.Open(CLI.Config)
	}

	// DSNs from these sources may carry a password, so they skip the
	// embedded-credentials check applied to --config.
	dsn, source := keyring.ResolveConnectionString(cfg.DBConnection)
	if source != keyring.SourceNone {
		logger.Debug("Using PostgreSQL connection", "source", source)
		return storage.NewPostgresStore(dsn), nil
	}

	return storage.Open(constants.DefaultConfigPath)
}

func isKeyringCommand(command string) bool {
	return strings.HasPrefix(command, "keyring")
}
