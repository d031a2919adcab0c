package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/vleroy/lendbook/renderer"
)

type loanCmd struct {
	add    string
	delete string
}

func (*loanCmd) Name() string     { return "loan" }
func (*loanCmd) Synopsis() string { return "list, add or delete borrowers" }
func (*loanCmd) Usage() string {
	return `lbk loan [-add <name> | -delete <name>]

  Without flags, lists all borrowers with what they still owe. -add creates a
  loan record for a borrower; -delete removes one after reversing every
  transaction linked to it.
`
}

func (c *loanCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.add, "add", "", "Create a loan record for this borrower")
	f.StringVar(&c.delete, "delete", "", "Delete the borrower, reversing their history")
}

func (c *loanCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	b, err := loadBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	switch {
	case c.add != "":
		l, err := b.AddLoan(c.add)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		if err := saveBook(b); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Added borrower %q (%s)\n", l.Name, l.ID)

	case c.delete != "":
		l, err := b.LoanByName(c.delete)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		if err := b.DeleteLoan(l.ID); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		if err := saveBook(b); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Deleted borrower %q and reversed their history\n", l.Name)

	default:
		printMarkdown(renderer.Loans(b))
	}
	return subcommands.ExitSuccess
}
