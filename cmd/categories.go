package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/cashflow"
	"github.com/etnz/cashflow/date"
	"github.com/etnz/cashflow/renderer"
	"github.com/google/subcommands"
)

type categoriesCmd struct {
	outputFlags
	period string
	start  string
	date   string
}

func (*categoriesCmd) Name() string     { return "categories" }
func (*categoriesCmd) Synopsis() string { return "total transactions by category, rolled up the category tree" }
func (*categoriesCmd) Usage() string {
	return `cfs categories [-p <period> | -s <start_date>] [-d <end_date>] [-json | -q <jsonpath>]

  Totals transactions by category. Each category also includes the totals of
  its sub-categories. Without range flags, all transactions are counted.
`
}

func (c *categoriesCmd) SetFlags(f *flag.FlagSet) {
	c.outputFlags.SetFlags(f)
	f.StringVar(&c.period, "p", "", "Predefined period (day, week, month, quarter, year).")
	f.StringVar(&c.start, "s", "", "The start date for a custom range. Overrides -p.")
	f.StringVar(&c.date, "d", "", "The end date for the range.")
}

func (c *categoriesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var r date.Range
	// If no date range flags are provided, count everything.
	if c.period != "" || c.start != "" || c.date != "" {
		period := c.period
		if period == "" {
			period = "month"
		}
		var err error
		if r, err = parseRange(period, c.start, c.date); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	book, err := DecodeBook(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding book %q: %v\n", cfg.BookFile, err)
		return subcommands.ExitFailure
	}
	totals, err := cashflow.RollupCategories(book.Categories(), book.Transactions(), r)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return c.print(totals, func() string { return renderer.CategoriesMarkdown(totals, r) })
}
