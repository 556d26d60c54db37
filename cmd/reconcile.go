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

// applyOutcomes writes the successful outcomes of a batch to the book file
// and prints them all.
func applyOutcomes(ctx context.Context, title string, o *outputFlags, book *cashflow.Book, outcomes []cashflow.Outcome) subcommands.ExitStatus {
	if book.Apply(outcomes) > 0 {
		if err := EncodeBook(ctx, book); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
	}
	status := o.print(outcomes, func() string { return renderer.OutcomesMarkdown(title, outcomes) })
	if slices.ContainsFunc(outcomes, func(o cashflow.Outcome) bool { return !o.OK() }) {
		return subcommands.ExitFailure
	}
	return status
}

// --- Settle Command ---

type settleCmd struct {
	outputFlags
	date         string
	account      string
	paid         string
	interest     string
	penalty      string
	discount     string
	remainderDue string
}

func (*settleCmd) Name() string     { return "settle" }
func (*settleCmd) Synopsis() string { return "reconcile pending transactions" }
func (*settleCmd) Usage() string {
	return `cfs settle [-d <date>] [-a <account>] [-paid <amount>] [-interest <amount>]
           [-penalty <amount>] [-discount <amount>] [-remainder-due <date>] <id>...

  Marks the transactions as paid. A paid amount smaller than the amount of a
  transaction settles it partially and creates a pending remainder. Interest
  and penalty are added to, and discount subtracted from, the amount paid.
`
}

func (c *settleCmd) SetFlags(f *flag.FlagSet) {
	c.outputFlags.SetFlags(f)
	f.StringVar(&c.date, "d", "", "Payment date. Defaults to today.")
	f.StringVar(&c.account, "a", "", "Account the payment was made from or into. Defaults to the transaction's.")
	f.StringVar(&c.paid, "paid", "", "Principal paid. Defaults to the full amount.")
	f.StringVar(&c.interest, "interest", "", "Interest paid on top of the principal.")
	f.StringVar(&c.penalty, "penalty", "", "Penalty paid on top of the principal.")
	f.StringVar(&c.discount, "discount", "", "Discount obtained on the principal.")
	f.StringVar(&c.remainderDue, "remainder-due", "", "Due date of the remainder of a partial payment. Defaults to the original due date.")
}

func (c *settleCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	s := cashflow.Settlement{AccountID: c.account}
	var err error
	if s.PaymentDate, err = parseDay(c.date); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing payment date: %v\n", err)
		return subcommands.ExitUsageError
	}
	if c.remainderDue != "" {
		if s.RemainderDueDate, err = parseDay(c.remainderDue); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing remainder due date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	// amounts take the currency of the transaction they settle
	for _, m := range []struct {
		flag  string
		value string
		dst   *cashflow.Money
	}{
		{"paid", c.paid, &s.PaidAmount},
		{"interest", c.interest, &s.Interest},
		{"penalty", c.penalty, &s.Penalty},
		{"discount", c.discount, &s.Discount},
	} {
		if *m.dst, err = parseMoney(m.value, ""); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing -%s: %v\n", m.flag, err)
			return subcommands.ExitUsageError
		}
	}

	book, err := DecodeBook(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding book %q: %v\n", cfg.BookFile, err)
		return subcommands.ExitFailure
	}
	outcomes := cashflow.SettleAll(book.Transactions(), f.Args(), s)
	return applyOutcomes(ctx, "Settle", &c.outputFlags, book, outcomes)
}

// --- Undo Command ---

type undoCmd struct{ outputFlags }

func (*undoCmd) Name() string     { return "undo" }
func (*undoCmd) Synopsis() string { return "revert reconciled transactions to pending" }
func (*undoCmd) Usage() string {
	return `cfs undo <id>...

  Reverts a settlement: the transaction becomes pending again with its
  original amount and account. The remainder of a partial payment is kept.
`
}

func (c *undoCmd) SetFlags(f *flag.FlagSet) { c.outputFlags.SetFlags(f) }

func (c *undoCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	book, err := DecodeBook(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding book %q: %v\n", cfg.BookFile, err)
		return subcommands.ExitFailure
	}
	outcomes := cashflow.UndoAll(book.Transactions(), f.Args())
	return applyOutcomes(ctx, "Undo", &c.outputFlags, book, outcomes)
}

// --- Delete Command ---

type deleteCmd struct{ outputFlags }

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "remove transactions from the book" }
func (*deleteCmd) Usage() string {
	return `cfs delete <id>...

  Removes the transactions from the book.
`
}

func (c *deleteCmd) SetFlags(f *flag.FlagSet) { c.outputFlags.SetFlags(f) }

func (c *deleteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	book, err := DecodeBook(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding book %q: %v\n", cfg.BookFile, err)
		return subcommands.ExitFailure
	}
	outcomes := cashflow.DeleteAll(book.Transactions(), f.Args())
	return applyOutcomes(ctx, "Delete", &c.outputFlags, book, outcomes)
}
