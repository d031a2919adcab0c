// Package cmd implements the CLI application to manage a lending book.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/vleroy/lendbook"
)

// Commands lists the subcommands. A main package registers them all on a
// commander and executes the user-selected one.
var Commands = []subcommands.Command{
	&receiveCmd{},
	&repayCmd{},
	&investCmd{},
	&addFundsCmd{},
	&withdrawCmd{},
	&lendCmd{},
	&recoverCmd{},
	&undoCmd{},
	&editCmd{},
	&personCmd{},
	&loanCmd{},
	&summaryCmd{},
	&txCmd{},
	&simulateCmd{},
	&exportCmd{},
	&importCmd{},
	&topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var bookFile = flag.String("book", lendbook.DefaultBookFile, "Path to the book snapshot file")
var bookCurrency = flag.String("currency", lendbook.DefaultCurrency, "Settlement currency used when creating a new book")

// loadBook is the central function to open the book snapshot. A missing file
// yields an empty book, so the very first command works out of the box.
func loadBook() (*lendbook.Book, error) {
	return lendbook.LoadBook(*bookFile, *bookCurrency)
}

// saveBook persists the book back to the snapshot file, as a trailing step
// after the in-memory mutation fully completed.
func saveBook(b *lendbook.Book) error {
	return lendbook.SaveBook(*bookFile, b)
}

// printMarkdown renders a markdown document for the terminal. If the fancy
// renderer cannot be built the raw markdown is printed as-is.
func printMarkdown(doc string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(0))
	if err == nil {
		if out, rerr := r.Render(doc); rerr == nil {
			fmt.Print(out)
			return
		}
	}
	fmt.Print(doc)
}

// parseAmount parses a decimal amount in the book currency.
func parseAmount(b *lendbook.Book, s string) (lendbook.Money, error) {
	if s == "" {
		return lendbook.Money{}, fmt.Errorf("an amount is required")
	}
	return lendbook.ParseMoney(s, b.Currency())
}

// parseAllocations parses "Name:Amount" arguments into allocations, resolving
// each person by name.
func parseAllocations(b *lendbook.Book, args []string) ([]lendbook.Allocation, error) {
	var allocs []lendbook.Allocation
	for _, arg := range args {
		name, amount, ok := strings.Cut(arg, ":")
		if !ok {
			return nil, fmt.Errorf("expected Name:Amount, got %q", arg)
		}
		p, err := b.PersonByName(name)
		if err != nil {
			return nil, err
		}
		m, err := parseAmount(b, amount)
		if err != nil {
			return nil, fmt.Errorf("bad amount in %q: %w", arg, err)
		}
		allocs = append(allocs, lendbook.Allocation{Person: p.ID, Amount: m})
	}
	return allocs, nil
}

// runApply is the shared execution path of the single-entry transaction
// commands: load, validate, apply, save, report the new transaction id.
func runApply(k lendbook.Kind, byLoan bool, name, amount, date, notes string) subcommands.ExitStatus {
	b, err := loadBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	on, err := lendbook.ParseDate(date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	m, err := parseAmount(b, amount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing amount: %v\n", err)
		return subcommands.ExitUsageError
	}

	var entity lendbook.ID
	if byLoan {
		l, err := b.LoanByName(name)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		entity = l.ID
	} else {
		p, err := b.PersonByName(name)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		entity = p.ID
	}

	tx, err := b.Apply(k, entity, m, on, notes)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := saveBook(b); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Recorded %s %s (%s)\n", k, m, tx)
	return subcommands.ExitSuccess
}
