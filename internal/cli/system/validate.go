package system

import (
	"errors"
	"fmt"

	"github.com/julianstephens/miaomotion/internal/cli"
)

type ValidateCmd struct{}

func (c *ValidateCmd) Run(ctx *cli.Context) error {
	s, err := ctx.Session()
	if err != nil {
		return err
	}
	result := s.Validate()
	fmt.Println(result.FormatReport())
	if result.HasConflicts() {
		return errors.New("validation found conflicts")
	}
	return nil
}
