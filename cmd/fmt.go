package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type fmtCmd struct {
	force bool
}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the book file into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `cfs fmt [-f]

  Validates and formats the book file. This command reads all records,
  validates them, normalizes derived statuses, sorts transactions by due date,
  and writes them back in a canonical JSONL format.
  An invalid book is left untouched unless -f is given.

Usage Examples:
# Formats the book file of the configuration.
$ cfs fmt

# Formats another book file.
$ cfs -book 2024.jsonl fmt
`
}

func (p *fmtCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&p.force, "f", false, "Format the book even if it is not valid.")
}

func (p *fmtCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	book, err := DecodeBook(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load book: %v\n", err)
		return subcommands.ExitFailure
	}

	status := subcommands.ExitSuccess
	if err := book.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Book %q is not valid:\n%v\n", cfg.BookFile, err)
		if !p.force {
			return subcommands.ExitFailure
		}
		status = subcommands.ExitFailure
	}

	if err := EncodeBook(ctx, book); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving formatted book %q: %v\n", cfg.BookFile, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "Book file %q has been formatted.\n", cfg.BookFile)
	return status
}
