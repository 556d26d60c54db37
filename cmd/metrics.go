package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/cashflow"
	"github.com/etnz/cashflow/renderer"
	"github.com/google/subcommands"
)

type metricsCmd struct {
	outputFlags
	date   string
	window int
}

func (*metricsCmd) Name() string     { return "metrics" }
func (*metricsCmd) Synopsis() string { return "display liquidity indicators (DSO, DPO, cash conversion cycle)" }
func (*metricsCmd) Usage() string {
	return `cfs metrics [-d <date>] [-w <days>] [-json | -q <jsonpath>]

  Computes the amount weighted delay between launch and payment of the
  transactions settled in the trailing window ending on date.
`
}

func (c *metricsCmd) SetFlags(f *flag.FlagSet) {
	c.outputFlags.SetFlags(f)
	f.StringVar(&c.date, "d", "", "Last day of the window. Defaults to today.")
	f.IntVar(&c.window, "w", 0, "Window length in days. Defaults to the configuration.")
}

func (c *metricsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	window := c.window
	if window <= 0 {
		window = cfg.LiquidityWindow
	}
	book, err := DecodeBook(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding book %q: %v\n", cfg.BookFile, err)
		return subcommands.ExitFailure
	}
	m := cashflow.Liquidity(book.Transactions(), on, window)
	return c.print(m, func() string { return renderer.MetricsMarkdown(m) })
}
