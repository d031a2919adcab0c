package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
	"github.com/vleroy/lendbook"
)

// This file holds the four single-entry transaction commands. They share the
// same shape: a name, an amount, an optional date and note.

// --- Receive Command ---

type receiveCmd struct {
	date   string
	amount string
	notes  string
}

func (*receiveCmd) Name() string     { return "receive" }
func (*receiveCmd) Synopsis() string { return "record money received from a person" }
func (*receiveCmd) Usage() string {
	return `lbk receive -a <amount> [-d <date>] [-m <note>] <person>

  Records money a person handed in. The amount is credited to the settlement
  account and added to what the book owes that person.
`
}

func (c *receiveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", lendbook.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.amount, "a", "", "Amount received")
	f.StringVar(&c.notes, "m", "", "An optional note for the transaction")
}

func (c *receiveCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 || c.amount == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	return runApply(lendbook.KindReceipt, false, f.Arg(0), c.amount, c.date, c.notes)
}

// --- Repay Command ---

type repayCmd struct {
	date   string
	amount string
	notes  string
}

func (*repayCmd) Name() string     { return "repay" }
func (*repayCmd) Synopsis() string { return "return money to a person" }
func (*repayCmd) Usage() string {
	return `lbk repay -a <amount> [-d <date>] [-m <note>] <person>

  Returns money to a person. The amount may not exceed their net liquid claim
  and is debited from the settlement account.
`
}

func (c *repayCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", lendbook.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.amount, "a", "", "Amount to return")
	f.StringVar(&c.notes, "m", "", "An optional note for the transaction")
}

func (c *repayCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 || c.amount == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	return runApply(lendbook.KindReturn, false, f.Arg(0), c.amount, c.date, c.notes)
}

// --- Lend Command ---

type lendCmd struct {
	date   string
	amount string
	notes  string
}

func (*lendCmd) Name() string     { return "lend" }
func (*lendCmd) Synopsis() string { return "lend money to a borrower" }
func (*lendCmd) Usage() string {
	return `lbk lend -a <amount> [-d <date>] [-m <note>] <borrower>

  Lends money to a borrower. The amount may not exceed the settlement account
  balance.
`
}

func (c *lendCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", lendbook.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.amount, "a", "", "Amount to lend")
	f.StringVar(&c.notes, "m", "", "An optional note for the transaction")
}

func (c *lendCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 || c.amount == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	return runApply(lendbook.KindGive, true, f.Arg(0), c.amount, c.date, c.notes)
}

// --- Recover Command ---

type recoverCmd struct {
	date   string
	amount string
	notes  string
}

func (*recoverCmd) Name() string     { return "recover" }
func (*recoverCmd) Synopsis() string { return "record a borrower paying back" }
func (*recoverCmd) Usage() string {
	return `lbk recover -a <amount> [-d <date>] [-m <note>] <borrower>

  Records a borrower paying money back. The amount may not exceed what the
  borrower still owes.
`
}

func (c *recoverCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", lendbook.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.amount, "a", "", "Amount recovered")
	f.StringVar(&c.notes, "m", "", "An optional note for the transaction")
}

func (c *recoverCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 || c.amount == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	return runApply(lendbook.KindRecovery, true, f.Arg(0), c.amount, c.date, c.notes)
}
