package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/cashflow"
	"github.com/etnz/cashflow/renderer"
	"github.com/google/subcommands"
)

type dueCmd struct {
	outputFlags
	date    string
	horizon int
	dismiss string
	all     bool
}

func (*dueCmd) Name() string     { return "due" }
func (*dueCmd) Synopsis() string { return "list overdue and upcoming transactions" }
func (*dueCmd) Usage() string {
	return `cfs due [-d <date>] [-h <days>] [-all] [-dismiss <alert>] [-json | -q <jsonpath>]

  Lists the pending transactions that are overdue or due within the horizon.
  An alert dismissed with -dismiss is hidden for the rest of the day; it is
  listed again the following days while the transaction stays pending.
`
}

func (c *dueCmd) SetFlags(f *flag.FlagSet) {
	c.outputFlags.SetFlags(f)
	f.StringVar(&c.date, "d", "", "Reference date. Defaults to today.")
	f.IntVar(&c.horizon, "h", -1, "Horizon in days. Defaults to the configuration.")
	f.StringVar(&c.dismiss, "dismiss", "", "Comma separated alerts (<id>@<due date>) to dismiss.")
	f.BoolVar(&c.all, "all", false, "Also list dismissed alerts.")
}

func (c *dueCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	today, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	horizon := c.horizon
	if horizon < 0 {
		horizon = cfg.DueHorizon
	}
	book, err := DecodeBook(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding book %q: %v\n", cfg.BookFile, err)
		return subcommands.ExitFailure
	}
	dismissals, err := loadDismissals()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading dismissals: %v\n", err)
		return subcommands.ExitFailure
	}
	if alerts := list(c.dismiss); len(alerts) > 0 {
		for _, a := range alerts {
			dismissals.Dismiss(a, today)
		}
		if err := saveDismissals(dismissals); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving dismissals: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	items := cashflow.DueItems(book.Transactions(), today, horizon)
	if !c.all {
		items = cashflow.ActiveDueItems(items, dismissals, today)
	}
	return c.print(items, func() string { return renderer.DueMarkdown(items, today) })
}

// dismissalsFile is the file storing dismissed alerts, next to the book.
func dismissalsFile() string {
	return strings.TrimSuffix(cfg.BookFile, filepath.Ext(cfg.BookFile)) + ".dismissed.json"
}

func loadDismissals() (cashflow.DismissalMap, error) {
	m := cashflow.DismissalMap{}
	data, err := os.ReadFile(dismissalsFile())
	if errors.Is(err, fs.ErrNotExist) {
		return m, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%s: %w", dismissalsFile(), err)
	}
	return m, nil
}

func saveDismissals(m cashflow.DismissalMap) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(dismissalsFile(), append(data, '\n'), 0644)
}
