package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/miaomotion/internal/backup"
	"github.com/julianstephens/miaomotion/internal/cli"
	"github.com/julianstephens/miaomotion/internal/models"
	"github.com/julianstephens/miaomotion/internal/storage"
	"github.com/julianstephens/miaomotion/internal/utils"
	"github.com/julianstephens/miaomotion/internal/validation"
)

type DoctorCmd struct{}

type check struct {
	name string
	// warnOnly checks never fail the command.
	warnOnly  bool
	needStore bool
	run       func(ctx *cli.Context) error
}

var checks = []check{
	{name: "Store reachable", run: checkStoreReachable},
	{name: "Schema version", needStore: true, run: checkSchemaVersion},
	{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
	{name: "Data validation", needStore: true, run: checkValidation},
	{name: "Clock/timezone", run: checkClockTimezone},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	storeReachable := false
	for _, c := range checks {
		if c.needStore && !storeReachable {
			fmt.Printf("⊘ %s: SKIPPED (store not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
			if c.name == "Store reachable" {
				storeReachable = true
			}
		case c.warnOnly:
			fmt.Printf("⚠ %s: WARNING\n", c.name)
			fmt.Printf("   %v\n", err)
		default:
			fmt.Printf("❌ %s: FAIL\n", c.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	fmt.Println()
	if hasError {
		fmt.Println("Some checks failed. Please review the errors above.")
		return errors.New("diagnostics failed")
	}
	fmt.Println("All checks passed!")
	return nil
}

func checkStoreReachable(ctx *cli.Context) error {
	if ctx.Store == nil {
		return errors.New("no store configured")
	}
	return ctx.Store.Init()
}

// checkSchemaVersion applies only to database stores.
func checkSchemaVersion(ctx *cli.Context) error {
	slot, ok := ctx.Store.(*storage.SlotStore)
	if !ok {
		return nil
	}
	status, err := slot.SchemaStatus()
	if err != nil {
		return err
	}
	if status.Current > status.Latest {
		return fmt.Errorf("schema version %d is newer than supported version %d; upgrade miaomotion", status.Current, status.Latest)
	}
	if n := status.Pending(); n > 0 {
		return fmt.Errorf("%d migration(s) pending (current %d, latest %d)", n, status.Current, status.Latest)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if !storage.IsFileBacked(ctx.Store) {
		return nil
	}
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found in %s. Run 'miaomotion backup create'", mgr.GetBackupDir())
	}
	if age := time.Since(backups[0].Timestamp); age > 7*24*time.Hour {
		return fmt.Errorf("latest backup is %d days old", int(age.Hours()/24))
	}
	return nil
}

func checkValidation(ctx *cli.Context) error {
	data, _ := ctx.Store.Load(models.DefaultUserData())
	result := validation.New().ValidateUserData(data)
	if result.HasConflicts() {
		return fmt.Errorf("found %d conflict(s). Run 'miaomotion validate' for details", len(result.Conflicts))
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	if !utils.ValidateTimezone(ctx.Config.Timezone) {
		return fmt.Errorf("invalid timezone %q", ctx.Config.Timezone)
	}
	if _, err := utils.GetTodayInTimezone(ctx.Config.Timezone); err != nil {
		return err
	}
	if time.Now().Year() < 2000 {
		return errors.New("system clock looks wrong")
	}
	return nil
}
