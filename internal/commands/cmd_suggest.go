package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/chefhat/internal/core/language"
	"github.com/hay-kot/chefhat/internal/core/validate"
	"github.com/hay-kot/chefhat/internal/printer"
)

type SuggestCmd struct {
	flags *Flags

	// Command-specific flags
	lang  string
	plain bool
}

// NewSuggestCmd creates a new suggest command
func NewSuggestCmd(flags *Flags) *SuggestCmd {
	return &SuggestCmd{flags: flags}
}

// Register adds the suggest command to the application
func (cmd *SuggestCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "suggest",
		Usage:     "Suggest recipes for a list of ingredients",
		UsageText: "chefhat suggest [options] <ingredients...>",
		Description: `Asks the generation service for three recipes that use the given
ingredients and prints the answer. Successful answers are added to history.

Arguments are joined with spaces, so quoting is optional:
  chefhat suggest tomatoes, cheese, eggs`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "lang",
				Aliases:     []string{"l"},
				Usage:       "response language (en, tr); defaults to the saved language",
				Destination: &cmd.lang,
			},
			&cli.BoolFlag{
				Name:        "plain",
				Usage:       "print the raw response without markdown rendering",
				Destination: &cmd.plain,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *SuggestCmd) run(ctx context.Context, c *cli.Command) error {
	ingredients := strings.Join(c.Args().Slice(), " ")
	if err := validate.Ingredients(ingredients); err != nil {
		return fmt.Errorf("%w; usage: %s", err, c.UsageText)
	}

	svc := cmd.flags.Service

	lang := svc.Language()
	if cmd.lang != "" {
		parsed, err := language.Parse(cmd.lang)
		if err != nil {
			return err
		}
		lang = parsed
	}

	text, err := svc.Generate(ctx, ingredients, lang)
	if err != nil {
		return fmt.Errorf("suggest: %w", err)
	}

	out := c.Root().Writer
	p := printer.NewPlain(out)
	if !cmd.plain && isTerminal(out) {
		p = printer.New(out)
		p.Section(language.Translations.For(lang).SuggestedRecipes)
	}
	p.Markdown(text, terminalWidth(out))

	if _, err := svc.Record(ctx, ingredients, text, lang); err != nil {
		printer.Ctx(ctx).Warnf("response not saved to history: %v", err)
	}

	return nil
}
