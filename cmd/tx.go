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

type txCmd struct {
	outputFlags
	period  string
	start   string
	date    string
	account string
	status  string
	head    int
	tail    int
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list the transactions of the book" }
func (*txCmd) Usage() string {
	return `cfs tx [-p <period> | -s <start_date>] [-d <end_date>] [-a <account>] [-status <status>] [-head <n>] [-tail <n>]

  Lists transactions by due date, with options for filtering and limiting the output.
`
}

func (p *txCmd) SetFlags(f *flag.FlagSet) {
	p.outputFlags.SetFlags(f)
	f.StringVar(&p.period, "p", "", "Predefined period (day, week, month, quarter, year).")
	f.StringVar(&p.start, "s", "", "The start date for a custom range. Overrides -p.")
	f.StringVar(&p.date, "d", "", "The end date for the range.")
	f.StringVar(&p.account, "a", "", "Only list transactions moving this account.")
	f.StringVar(&p.status, "status", "", "Only list transactions with this status, as of today (pending, reconciled, scheduled, overdue).")
	f.IntVar(&p.head, "head", 0, "Show only the first N transactions.")
	f.IntVar(&p.tail, "tail", 0, "Show only the last N transactions.")
}

func (p *txCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.head > 0 && p.tail > 0 {
		fmt.Fprintln(os.Stderr, "Error: -head and -tail flags cannot be used together.")
		return subcommands.ExitUsageError
	}

	book, err := DecodeBook(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	var periodRange date.Range
	// If no date range flags are provided, use the full range of the book.
	useFullRange := p.start == "" && p.date == "" && p.period == ""
	if !useFullRange {
		period := p.period
		if period == "" {
			period = "month"
		}
		if periodRange, err = parseRange(period, p.start, p.date); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	today := date.Today()
	var transactions []cashflow.Transaction
	for tx := range book.AllTransactions() {
		if !useFullRange && !periodRange.Contains(tx.EffectiveDate()) {
			continue
		}
		if p.account != "" && tx.Leg(p.account).IsZero() {
			continue
		}
		if p.status != "" && string(tx.StatusOn(today)) != p.status {
			continue
		}
		transactions = append(transactions, tx)
	}

	if p.head > 0 && len(transactions) > p.head {
		transactions = transactions[:p.head]
	}
	if p.tail > 0 && len(transactions) > p.tail {
		transactions = transactions[len(transactions)-p.tail:]
	}

	return p.print(transactions, func() string { return renderer.Transactions(transactions, today) })
}
