package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"slices"

	"github.com/etnz/cashflow"
	"github.com/etnz/cashflow/renderer"
	"github.com/google/subcommands"
)

type invoicesCmd struct {
	outputFlags
	card string
	open bool
}

func (*invoicesCmd) Name() string     { return "invoices" }
func (*invoicesCmd) Synopsis() string { return "list credit card invoices" }
func (*invoicesCmd) Usage() string {
	return `cfs invoices [-card <card>] [-open] [-json | -q <jsonpath>]

  Groups card transactions by invoice, with closing and due dates, total and
  outstanding amount.
`
}

func (c *invoicesCmd) SetFlags(f *flag.FlagSet) {
	c.outputFlags.SetFlags(f)
	f.StringVar(&c.card, "card", "", "Only list the invoices of this card.")
	f.BoolVar(&c.open, "open", false, "Only list invoices with an outstanding amount.")
}

func (c *invoicesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	book, err := DecodeBook(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding book %q: %v\n", cfg.BookFile, err)
		return subcommands.ExitFailure
	}
	if c.card != "" {
		if _, ok := book.Card(c.card); !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown card %q\n", c.card)
			return subcommands.ExitFailure
		}
	}
	invoices, err := cashflow.GroupInvoices(book.Cards(), book.Transactions())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	invoices = slices.DeleteFunc(invoices, func(inv cashflow.Invoice) bool {
		return (c.card != "" && inv.Period.CardID != c.card) || (c.open && inv.Paid())
	})
	return c.print(invoices, func() string { return renderer.InvoicesMarkdown(invoices) })
}
