package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/vleroy/lendbook/renderer"
)

type personCmd struct {
	add    string
	delete string
}

func (*personCmd) Name() string     { return "person" }
func (*personCmd) Synopsis() string { return "list, add, show or delete people" }
func (*personCmd) Usage() string {
	return `lbk person [-add <name> | -delete <name>] [<name>]

  Without flags, lists all people with their balances, or shows one person's
  full record when a name is given. -add creates a person; -delete removes one
  after reversing every transaction linked to them, including contributions
  locked in investments.
`
}

func (c *personCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.add, "add", "", "Create a person with this name")
	f.StringVar(&c.delete, "delete", "", "Delete the person with this name, reversing their history")
}

func (c *personCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	b, err := loadBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	switch {
	case c.add != "":
		p, err := b.AddPerson(c.add)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		if err := saveBook(b); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Added person %q (%s)\n", p.Name, p.ID)

	case c.delete != "":
		p, err := b.PersonByName(c.delete)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		if err := b.DeletePerson(p.ID); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		if err := saveBook(b); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Deleted person %q and reversed their history\n", p.Name)

	case f.NArg() == 1:
		p, err := b.PersonByName(f.Arg(0))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		printMarkdown(renderer.PersonDetail(b, p))

	default:
		printMarkdown(renderer.People(b))
	}
	return subcommands.ExitSuccess
}
