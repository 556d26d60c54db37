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

type installmentsCmd struct {
	outputFlags
	count  int
	amount string
	first  string
	dryRun bool
}

func (*installmentsCmd) Name() string     { return "installments" }
func (*installmentsCmd) Synopsis() string { return "split an amount or a purchase into monthly installments" }
func (*installmentsCmd) Usage() string {
	return `cfs installments -n <count> -amount <amount> [-first <date>]
cfs installments -n <count> [-dry-run] <purchase id>

  With -amount, prints how the amount splits into count monthly installments.

  With a purchase id, replaces the purchase in the book by count pending
  installments. A card purchase is billed on count successive invoices.

Usage Examples:
$ cfs installments -n 3 -amount 100 -first 2025-01-31
$ cfs installments -n 10 laptop
`
}

func (c *installmentsCmd) SetFlags(f *flag.FlagSet) {
	c.outputFlags.SetFlags(f)
	f.IntVar(&c.count, "n", 0, "Number of installments.")
	f.StringVar(&c.amount, "amount", "", "Amount to split, without a purchase id.")
	f.StringVar(&c.first, "first", "", "Due date of the first installment, without a purchase id. Defaults to today.")
	f.BoolVar(&c.dryRun, "dry-run", false, "Print the installments of the purchase without saving them.")
}

func (c *installmentsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.count < 1 || (f.NArg() == 0) == (c.amount == "") || f.NArg() > 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	if f.NArg() == 0 {
		return c.preview()
	}

	book, err := DecodeBook(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding book %q: %v\n", cfg.BookFile, err)
		return subcommands.ExitFailure
	}
	id := f.Arg(0)
	purchase, ok := book.Transaction(id)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown transaction %q\n", id)
		return subcommands.ExitFailure
	}
	if purchase.Status != cashflow.Pending {
		fmt.Fprintf(os.Stderr, "Error: transaction %q is %s, only pending purchases can be split\n", id, purchase.Status)
		return subcommands.ExitFailure
	}
	var card *cashflow.Card
	if purchase.CardID != "" {
		cc, ok := book.Card(purchase.CardID)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown card %q\n", purchase.CardID)
			return subcommands.ExitFailure
		}
		card = &cc
	}
	txs, err := cashflow.InstallmentTransactions(purchase, c.count, card, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if !c.dryRun {
		book.Apply(cashflow.DeleteAll(book.Transactions(), []string{id}))
		book.Append(txs...)
		if err := EncodeBook(ctx, book); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
	}
	return c.print(txs, func() string { return renderer.Transactions(txs, date.Today()) })
}

func (c *installmentsCmd) preview() subcommands.ExitStatus {
	total, err := parseMoney(c.amount, cfg.Currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing amount: %v\n", err)
		return subcommands.ExitUsageError
	}
	first, err := parseDay(c.first)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing first due date: %v\n", err)
		return subcommands.ExitUsageError
	}
	plan, err := cashflow.SplitInstallments(total, c.count, first)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return c.print(plan, func() string { return renderer.InstallmentsMarkdown(total, plan) })
}
