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

// balanceCmd holds the flags for the 'balance' subcommand.
type balanceCmd struct {
	outputFlags
	date string
}

func (*balanceCmd) Name() string     { return "balance" }
func (*balanceCmd) Synopsis() string { return "display the realized and projected balance of each account" }
func (*balanceCmd) Usage() string {
	return `cfs balance [-d <date>] [-json | -q <jsonpath>]

  Displays, for each account, the realized balance (opening balance plus
  reconciled transactions) and the projected balance (plus pending ones).
  With -d, only transactions effective on or before that date are counted.
`
}

func (c *balanceCmd) SetFlags(f *flag.FlagSet) {
	c.outputFlags.SetFlags(f)
	f.StringVar(&c.date, "d", "", "Only count transactions effective on or before this date. Defaults to all.")
}

func (c *balanceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	book, err := DecodeBook(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding book %q: %v\n", cfg.BookFile, err)
		return subcommands.ExitFailure
	}

	txs := book.Transactions()
	if c.date != "" {
		txs = effectiveUntil(txs, on)
	}
	balances, err := cashflow.Balances(book.Accounts(), txs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing balances: %v\n", err)
		return subcommands.ExitFailure
	}
	return c.print(balances, func() string { return renderer.BalancesMarkdown(balances, on) })
}

// effectiveUntil keeps the transactions effective on or before on.
func effectiveUntil(txs []cashflow.Transaction, on date.Date) []cashflow.Transaction {
	var res []cashflow.Transaction
	for _, tx := range txs {
		if !tx.EffectiveDate().After(on) {
			res = append(res, tx)
		}
	}
	return res
}
