package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/miaomotion/internal/cli"
	"github.com/julianstephens/miaomotion/internal/storage"
)

type InitCmd struct {
	Force bool `help:"Delete any existing state before initializing."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.wipe(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized miaomotion storage at: %s\n", ctx.Store.GetConfigPath())
	return nil
}

func (c *InitCmd) wipe(ctx *cli.Context) error {
	if !storage.IsFileBacked(ctx.Store) {
		if err := ctx.Store.Init(); err != nil {
			return err
		}
		return ctx.Store.Clear()
	}

	path := ctx.Store.GetConfigPath()
	if _, err := os.Stat(path); err == nil {
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing store: %w", err)
		}
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to delete existing store: %w", err)
		}
		fmt.Printf("Deleted existing store at: %s\n", path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing store: %w", err)
	}
	return nil
}
