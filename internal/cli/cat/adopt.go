package cat

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/miaomotion/internal/cli"
	"github.com/julianstephens/miaomotion/internal/constants"
	"github.com/julianstephens/miaomotion/internal/models"
)

type LoginCmd struct {
	Phone string `help:"11-digit phone number." required:""`
	Code  string `help:"Verification code (up to 4 characters)."`
}

func (c *LoginCmd) Run(ctx *cli.Context) error {
	s, err := ctx.Session()
	if err != nil {
		return err
	}
	if err := s.Login(c.Phone, c.Code); err != nil {
		return err
	}
	fmt.Println("✓ Logged in")
	return nil
}

type AdoptCmd struct {
	Name  string `help:"Name for your cat."`
	Breed string `help:"Breed: orange, calico, tuxedo or siamese. Prompts when omitted."`
	Phone string `help:"Log in with this phone number first."`
	Code  string `help:"Verification code for --phone."`
}

func (c *AdoptCmd) Run(ctx *cli.Context) error {
	s, err := ctx.Session()
	if err != nil {
		return err
	}
	if c.Phone != "" {
		if err := s.Login(c.Phone, c.Code); err != nil {
			return err
		}
	}
	if c.Breed == "" {
		if err := c.prompt(); err != nil {
			return err
		}
	}
	if err := s.Adopt(c.Name, c.Breed); err != nil {
		return err
	}

	cat := s.Data().Cat
	fmt.Printf("✓ Welcome home, %s the %s cat!\n", cat.Name, cat.Breed.Label())
	fmt.Println("  Check in after exercising to earn food for your cat.")
	return nil
}

func (c *AdoptCmd) prompt() error {
	options := make([]huh.Option[string], len(models.Breeds))
	for i, b := range models.Breeds {
		options[i] = huh.NewOption(fmt.Sprintf("%s - %s", b.Label(), b.Description()), string(b))
	}
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name your cat").
				Placeholder(constants.DefaultCatName).
				Value(&c.Name),
			huh.NewSelect[string]().
				Title("Choose a breed").
				Options(options...).
				Value(&c.Breed),
		),
	).WithTheme(huh.ThemeDracula())
	return form.Run()
}

type RenameCmd struct {
	Name string `arg:"" optional:"" help:"New name. Empty resets to the default name."`
}

func (c *RenameCmd) Run(ctx *cli.Context) error {
	s, err := ctx.Session()
	if err != nil {
		return err
	}
	if err := s.RenameCat(c.Name); err != nil {
		return err
	}
	fmt.Printf("✓ Your cat is now called %s\n", s.Data().Cat.Name)
	return nil
}
