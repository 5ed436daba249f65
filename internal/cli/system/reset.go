package system

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/miaomotion/internal/cli"
)

type ResetCmd struct {
	Yes bool `help:"Skip the confirmation prompt."`
}

func (c *ResetCmd) Run(ctx *cli.Context) error {
	if !c.Yes {
		confirmed := false
		err := huh.NewConfirm().
			Title("Reset all data?").
			Description("Your cat, check-ins and schedules will be erased. File stores are backed up first.").
			Affirmative("Reset").
			Negative("Cancel").
			Value(&confirmed).
			WithTheme(huh.ThemeDracula()).
			Run()
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Reset cancelled.")
			return nil
		}
	}

	s, err := ctx.Session()
	if err != nil {
		return err
	}
	backupPath, err := s.Reset()
	if err != nil {
		return err
	}
	if backupPath != "" {
		fmt.Printf("✓ Backup created: %s\n", filepath.Base(backupPath))
	}
	fmt.Println("✓ All data cleared. Run 'miaomotion adopt' to start over.")
	return nil
}
