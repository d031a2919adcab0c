package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/vleroy/lendbook/renderer"
)

type txCmd struct {
	investments bool
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list the settlement account transactions" }
func (*txCmd) Usage() string {
	return `lbk tx [-i]

  Lists the settlement account log in chronological order with a running
  balance. With -i, lists the active investments and their contributors
  instead.
`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.investments, "i", false, "List investments instead of account entries")
}

func (c *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	b, err := loadBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if c.investments {
		printMarkdown(renderer.Investments(b))
	} else {
		printMarkdown(renderer.Transactions(b))
	}
	return subcommands.ExitSuccess
}
