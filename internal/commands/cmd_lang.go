package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/chefhat/internal/core/language"
	"github.com/hay-kot/chefhat/internal/printer"
	"github.com/hay-kot/chefhat/internal/styles"
)

type LangCmd struct {
	flags *Flags
}

// NewLangCmd creates a new lang command
func NewLangCmd(flags *Flags) *LangCmd {
	return &LangCmd{flags: flags}
}

// Register adds the lang command to the application
func (cmd *LangCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "lang",
		Usage:     "Show or change the response language",
		UsageText: "chefhat lang [en|tr]",
		Description: `With an argument, saves the language used for prompts and display text.
Without one, prints the current language, or opens a picker when run in a
terminal.`,
		Action: cmd.run,
	})

	return app
}

func (cmd *LangCmd) run(ctx context.Context, c *cli.Command) error {
	svc := cmd.flags.Service
	p := printer.Ctx(ctx)

	if c.Args().Len() > 1 {
		return fmt.Errorf("expected at most one language; usage: %s", c.UsageText)
	}

	if c.Args().Len() == 1 {
		code, err := language.Parse(c.Args().First())
		if err != nil {
			return err
		}
		return cmd.save(ctx, code)
	}

	if !isTerminal(os.Stdin) || !isTerminal(c.Root().Writer) {
		_, _ = fmt.Fprintln(c.Root().Writer, svc.Language())
		return nil
	}

	code, err := pickLanguage(svc.Language())
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			p.Infof("Language unchanged (%s)", svc.Language().Name())
			return nil
		}
		return fmt.Errorf("pick language: %w", err)
	}

	return cmd.save(ctx, code)
}

func (cmd *LangCmd) save(ctx context.Context, code language.Code) error {
	if err := cmd.flags.Service.SetLanguage(ctx, code); err != nil {
		return err
	}
	printer.Ctx(ctx).Successf("%s: %s", language.Translations.For(code).LanguageLabel, code.Name())
	return nil
}

func pickLanguage(current language.Code) (language.Code, error) {
	options := make([]huh.Option[language.Code], 0, len(language.All))
	for _, code := range language.All {
		options = append(options, huh.NewOption(code.Name()+" ("+string(code)+")", code))
	}

	selected := current
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[language.Code]().
				Title(language.Translations.For(current).LanguageLabel).
				Options(options...).
				Value(&selected),
		),
	).WithTheme(styles.FormTheme())

	if err := form.Run(); err != nil {
		return "", err
	}
	return selected, nil
}
