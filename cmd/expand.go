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

type expandCmd struct {
	outputFlags
	save bool
}

func (*expandCmd) Name() string     { return "expand" }
func (*expandCmd) Synopsis() string { return "expand a recurring transaction into its instances" }
func (*expandCmd) Usage() string {
	return `cfs expand [-save] <template id>

  Lists the instances of the series described by the recurrence rule of the
  template transaction. With -save, the instances are added to the book.
  A series can only be saved once.
`
}

func (c *expandCmd) SetFlags(f *flag.FlagSet) {
	c.outputFlags.SetFlags(f)
	f.BoolVar(&c.save, "save", false, "Add the instances to the book.")
}

func (c *expandCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	book, err := DecodeBook(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding book %q: %v\n", cfg.BookFile, err)
		return subcommands.ExitFailure
	}
	id := f.Arg(0)
	template, ok := book.Transaction(id)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown transaction %q\n", id)
		return subcommands.ExitFailure
	}
	if template.Recurrence == nil {
		fmt.Fprintf(os.Stderr, "Error: transaction %q has no recurrence rule\n", id)
		return subcommands.ExitFailure
	}
	instances, err := cashflow.Expand(template, *template.Recurrence, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	var txs []cashflow.Transaction
	for tx := range instances {
		txs = append(txs, tx)
	}
	if c.save {
		for tx := range book.AllTransactions() {
			if tx.SeriesID == id {
				fmt.Fprintf(os.Stderr, "Error: series %q is already expanded (see %q)\n", id, tx.ID)
				return subcommands.ExitFailure
			}
		}
		book.Append(txs[1:]...)
		if err := EncodeBook(ctx, book); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
	}
	return c.print(txs, func() string { return renderer.Transactions(txs, date.Today()) })
}
