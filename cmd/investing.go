package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/vleroy/lendbook"
	"github.com/vleroy/lendbook/renderer"
)

// --- Invest Command ---

type investCmd struct {
	date  string
	total string
	name  string
}

func (*investCmd) Name() string     { return "invest" }
func (*investCmd) Synopsis() string { return "create an investment funded by one or more people" }
func (*investCmd) Usage() string {
	return `lbk invest -n <name> -t <total> [-d <date>] <person:amount>...

  Creates a named investment. Each person:amount pair locks that much of the
  person's claim into the investment; the pairs must sum exactly to the total.

Usage Examples:
# Alice and Bob jointly fund a 1000 investment.
$ lbk invest -n "Fund" -t 1000 Alice:600 Bob:400

`
}

func (c *investCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", lendbook.Today().String(), "Creation date (YYYY-MM-DD)")
	f.StringVar(&c.total, "t", "", "Total amount of the investment")
	f.StringVar(&c.name, "n", "", "Unique name of the investment")
}

func (c *investCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" || c.total == "" || f.NArg() == 0 {
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
	total, err := parseAmount(b, c.total)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing total: %v\n", err)
		return subcommands.ExitUsageError
	}
	allocs, err := parseAllocations(b, f.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	v, err := b.CreateInvestment(c.name, total, allocs, on)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := saveBook(b); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Created investment %q (%s) with %s\n", v.Name, v.ID, v.Total)
	return subcommands.ExitSuccess
}

// --- Add Funds Command ---

type addFundsCmd struct {
	date   string
	amount string
	person string
}

func (*addFundsCmd) Name() string     { return "add-funds" }
func (*addFundsCmd) Synopsis() string { return "grow an existing investment with one contribution" }
func (*addFundsCmd) Usage() string {
	return `lbk add-funds -p <person> -a <amount> [-d <date>] <investment>

  Locks more of a person's claim into an existing investment.
`
}

func (c *addFundsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", lendbook.Today().String(), "Contribution date (YYYY-MM-DD)")
	f.StringVar(&c.amount, "a", "", "Amount to add")
	f.StringVar(&c.person, "p", "", "Contributing person")
}

func (c *addFundsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 || c.amount == "" || c.person == "" {
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
	v, err := b.InvestmentByName(f.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	p, err := b.PersonByName(c.person)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	tx, err := b.AddFunds(v.ID, p.ID, m, on)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := saveBook(b); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Added %s to %q (%s)\n", m, v.Name, tx)
	return subcommands.ExitSuccess
}

// --- Withdraw Command ---

type withdrawCmd struct {
	date   string
	amount string
}

func (*withdrawCmd) Name() string     { return "withdraw" }
func (*withdrawCmd) Synopsis() string { return "release funds from an investment back to the account" }
func (*withdrawCmd) Usage() string {
	return `lbk withdraw [-a <total> | <person:amount>...] [-d <date>] <investment>

  Releases funds from an investment. With -a the total is split across the
  contributors in proportion to their allocations; with explicit person:amount
  pairs each named allocation shrinks by that much. An investment whose total
  reaches zero is closed.
`
}

func (c *withdrawCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", lendbook.Today().String(), "Withdrawal date (YYYY-MM-DD)")
	f.StringVar(&c.amount, "a", "", "Total to withdraw, split proportionally")
}

func (c *withdrawCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
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
	v, err := b.InvestmentByName(f.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	var allocs []lendbook.Allocation
	switch {
	case c.amount != "" && f.NArg() == 1:
		total, err := parseAmount(b, c.amount)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing total: %v\n", err)
			return subcommands.ExitUsageError
		}
		allocs, err = b.ProportionalSplit(v.ID, total)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
	case c.amount == "" && f.NArg() > 1:
		allocs, err = parseAllocations(b, f.Args()[1:])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
	default:
		f.Usage()
		return subcommands.ExitUsageError
	}

	tx, err := b.Withdraw(v.ID, allocs, on)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := saveBook(b); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Withdrawn from %q (%s)\n", v.Name, tx)
	printMarkdown(renderer.Investments(b))
	return subcommands.ExitSuccess
}
