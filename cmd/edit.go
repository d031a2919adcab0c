package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/vleroy/lendbook"
)

// --- Undo Command ---

type undoCmd struct{}

func (*undoCmd) Name() string     { return "undo" }
func (*undoCmd) Synopsis() string { return "reverse a transaction by id" }
func (*undoCmd) Usage() string {
	return `lbk undo <tx-id>

  Reverses the transaction with the given id. The account balance, the person
  or loan record, and any investment holding move back as if the transaction
  had never happened.
`
}

func (c *undoCmd) SetFlags(f *flag.FlagSet) {}

func (c *undoCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	b, err := loadBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := b.Reverse(lendbook.ID(f.Arg(0))); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := saveBook(b); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Reversed %s\n", f.Arg(0))
	return subcommands.ExitSuccess
}

// --- Edit Command ---

type editCmd struct {
	date   string
	amount string
	notes  string
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "replace a transaction's amount, date and note" }
func (*editCmd) Usage() string {
	return `lbk edit -a <amount> [-d <date>] [-m <note>] <tx-id>

  Replaces a transaction with new values. The replacement is validated before
  the old transaction is touched, so a rejected edit leaves the book unchanged.
  The transaction gets a fresh id.
`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", lendbook.Today().String(), "New transaction date (YYYY-MM-DD)")
	f.StringVar(&c.amount, "a", "", "New amount")
	f.StringVar(&c.notes, "m", "", "New note for the transaction")
}

func (c *editCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 || c.amount == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	b, err := loadBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	on, err := lendbook.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	m, err := parseAmount(b, c.amount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing amount: %v\n", err)
		return subcommands.ExitUsageError
	}

	tx, err := b.Edit(lendbook.ID(f.Arg(0)), m, on, c.notes)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := saveBook(b); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Replaced %s with %s\n", f.Arg(0), tx)
	return subcommands.ExitSuccess
}
