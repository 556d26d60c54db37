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

type cashflowCmd struct {
	outputFlags
	period      string
	start       string
	date        string
	granularity string
	accounts    string
	costCenters string
	method      string
	today       string
}

func (*cashflowCmd) Name() string     { return "cashflow" }
func (*cashflowCmd) Synopsis() string { return "display a cash-flow statement with a running balance" }
func (*cashflowCmd) Usage() string {
	return `cfs cashflow [-p <period> | -s <start_date>] [-d <end_date>] [-g <granularity>]
             [-a <accounts>] [-c <cost centers>] [-method indirect|direct] [-json | -q <jsonpath>]

  Aggregates income, expense and transfers by period, and carries the balance
  from one period to the next. Periods ending today or later are projected
  from pending transactions.

Usage Examples:
# Monthly statement of the current year.
$ cfs cashflow

# Weekly statement of the savings account for the current quarter.
$ cfs cashflow -p quarter -g week -a savings

# Closing balance of each month.
$ cfs cashflow -q '$.buckets[*].closing.amount'
`
}

func (c *cashflowCmd) SetFlags(f *flag.FlagSet) {
	c.outputFlags.SetFlags(f)
	f.StringVar(&c.period, "p", "year", "Predefined period of the statement (day, week, month, quarter, year).")
	f.StringVar(&c.start, "s", "", "The start date for a custom range. Overrides -p.")
	f.StringVar(&c.date, "d", "", "The end date of the range. Defaults to today.")
	f.StringVar(&c.granularity, "g", "", "Size of each period of the statement (day, week, month, quarter, year). Defaults to the configuration.")
	f.StringVar(&c.accounts, "a", "", "Comma separated accounts to report on. Defaults to all.")
	f.StringVar(&c.costCenters, "c", "", "Comma separated cost centers to report on. Defaults to all.")
	f.StringVar(&c.method, "method", "indirect", "Statement method: indirect, or direct to break flows down by activity.")
	f.StringVar(&c.today, "today", "", "Date splitting actual from projected periods. Defaults to today.")
}

func (c *cashflowCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	r, err := parseRange(c.period, c.start, c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	g := c.granularity
	if g == "" {
		g = cfg.Granularity
	}
	granularity, err := date.ParsePeriod(g)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing granularity: %v\n", err)
		return subcommands.ExitUsageError
	}
	method, err := cashflow.ParseMethod(c.method)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	today, err := parseDay(c.today)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing today: %v\n", err)
		return subcommands.ExitUsageError
	}

	book, err := DecodeBook(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding book %q: %v\n", cfg.BookFile, err)
		return subcommands.ExitFailure
	}
	st, err := cashflow.NewStatement(book, cashflow.StatementOptions{
		Range:       r,
		Granularity: granularity,
		Accounts:    list(c.accounts),
		CostCenters: list(c.costCenters),
		Method:      method,
		Today:       today,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return c.print(st, func() string { return renderer.StatementMarkdown(st) })
}
