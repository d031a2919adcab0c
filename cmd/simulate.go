package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/vleroy/lendbook/renderer"
)

type simulateCmd struct {
	amount string
}

func (*simulateCmd) Name() string     { return "simulate" }
func (*simulateCmd) Synopsis() string { return "check whether an amount could be returned to a person" }
func (*simulateCmd) Usage() string {
	return `lbk simulate -a <amount> <person>

  Answers "could this person take out that much right now". Reports the liquid
  part, and walks the person's investment allocations to explain where the
  rest sits. Read-only, nothing is recorded.
`
}

func (c *simulateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.amount, "a", "", "Amount to simulate withdrawing")
}

func (c *simulateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 || c.amount == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	b, err := loadBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	p, err := b.PersonByName(f.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	m, err := parseAmount(b, c.amount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing amount: %v\n", err)
		return subcommands.ExitUsageError
	}

	sim, err := b.SimulateWithdrawal(p.ID, m)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.Simulation(p.Name, sim))
	return subcommands.ExitSuccess
}
