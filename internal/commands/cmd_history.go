package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/chefhat/internal/core/history"
	"github.com/hay-kot/chefhat/internal/printer"
)

type HistoryCmd struct {
	flags *Flags

	// Command-specific flags
	clear bool
	match string
	plain bool
}

// NewHistoryCmd creates a new history command
func NewHistoryCmd(flags *Flags) *HistoryCmd {
	return &HistoryCmd{flags: flags}
}

// Register adds the history command to the application
func (cmd *HistoryCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "history",
		Usage:     "View or manage recent searches",
		UsageText: "chefhat history [options]",
		Description: `Lists the most recent searches, newest first, with the timestamp that
identifies each one. Use 'history show <timestamp>' to print a stored answer
and 'history rm <timestamp>' to remove it.

--match filters by ingredients with a glob pattern, e.g. --match '*egg*'.
'*' does not cross '/', so for ingredients like 'salt/pepper' use '**',
e.g. --match '**/*pepper*'.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "clear",
				Aliases:     []string{"c"},
				Usage:       "remove all history entries",
				Destination: &cmd.clear,
			},
			&cli.StringFlag{
				Name:        "match",
				Aliases:     []string{"m"},
				Usage:       "only list entries whose ingredients match a glob pattern ('**' crosses '/')",
				Destination: &cmd.match,
			},
		},
		Action: cmd.run,
		Commands: []*cli.Command{
			{
				Name:      "show",
				Usage:     "Print a stored answer",
				UsageText: "chefhat history show [--plain] <timestamp>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "plain",
						Usage:       "print the raw response without markdown rendering",
						Destination: &cmd.plain,
					},
				},
				Action: cmd.runShow,
			},
			{
				Name:      "rm",
				Usage:     "Remove an entry",
				UsageText: "chefhat history rm <timestamp>",
				Action:    cmd.runRemove,
			},
		},
	})

	return app
}

func (cmd *HistoryCmd) run(ctx context.Context, c *cli.Command) error {
	if cmd.clear {
		return cmd.runClear(ctx)
	}

	return cmd.runList(ctx, c)
}

func (cmd *HistoryCmd) runList(ctx context.Context, c *cli.Command) error {
	entries, err := filterEntries(cmd.flags.Service.History(), cmd.match)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		printer.Ctx(ctx).Infof("No search history")
		return nil
	}

	w := tabwriter.NewWriter(c.Root().Writer, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "TIMESTAMP\tTIME\tLANG\tINGREDIENTS")

	for _, e := range entries {
		ingredients := strings.Join(strings.Fields(e.Ingredients), " ")
		if r := []rune(ingredients); len(r) > 50 {
			ingredients = string(r[:47]) + "..."
		}

		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
			e.Timestamp,
			e.Time().Local().Format("2006-01-02 15:04"),
			e.Language,
			ingredients,
		)
	}

	return w.Flush()
}

func (cmd *HistoryCmd) runShow(ctx context.Context, c *cli.Command) error {
	ts, err := parseTimestamp(c)
	if err != nil {
		return err
	}

	entry, err := cmd.flags.Service.Entry(ts)
	if err != nil {
		return fmt.Errorf("show entry %d: %w", ts, err)
	}

	out := c.Root().Writer
	p := printer.NewPlain(out)
	if !cmd.plain && isTerminal(out) {
		p = printer.New(out)
	}

	p.Section(entry.Ingredients)
	p.Markdown(entry.Response, terminalWidth(out))
	return nil
}

func (cmd *HistoryCmd) runRemove(ctx context.Context, c *cli.Command) error {
	ts, err := parseTimestamp(c)
	if err != nil {
		return err
	}

	p := printer.Ctx(ctx)

	_, notFound := cmd.flags.Service.Entry(ts)
	if _, err := cmd.flags.Service.Remove(ctx, ts); err != nil {
		return err
	}

	if errors.Is(notFound, history.ErrNotFound) {
		p.Infof("No entry with timestamp %d", ts)
		return nil
	}

	p.Successf("Removed entry %d", ts)
	return nil
}

func (cmd *HistoryCmd) runClear(ctx context.Context) error {
	if err := cmd.flags.Service.ClearHistory(ctx); err != nil {
		return err
	}

	printer.Ctx(ctx).Successf("Search history cleared")
	return nil
}

// filterEntries keeps entries whose ingredients match a doublestar pattern.
// Matching is case-insensitive; an empty pattern keeps everything.
func filterEntries(entries []history.Entry, pattern string) ([]history.Entry, error) {
	if pattern == "" {
		return entries, nil
	}

	pattern = strings.ToLower(pattern)
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid match pattern %q", pattern)
	}

	var out []history.Entry
	for _, e := range entries {
		if ok, _ := doublestar.Match(pattern, strings.ToLower(e.Ingredients)); ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func parseTimestamp(c *cli.Command) (int64, error) {
	if c.Args().Len() != 1 {
		return 0, fmt.Errorf("expected exactly one timestamp; usage: %s", c.UsageText)
	}

	ts, err := strconv.ParseInt(c.Args().First(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp %q", c.Args().First())
	}
	return ts, nil
}
