package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/vleroy/lendbook"
)

// --- Export Command ---

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write the full book snapshot to a file" }
func (*exportCmd) Usage() string {
	return `lbk export [-o <file>]

  Writes the full book snapshot in the import/export format. The default file
  name carries today's date.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file. Defaults to lendbook-<date>.json; '-' writes to stdout")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	b, err := loadBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if c.output == "-" {
		if err := lendbook.Export(os.Stdout, b); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	name := c.output
	if name == "" {
		name = lendbook.ExportName()
	}
	out, err := os.Create(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating export file %q: %v\n", name, err)
		return subcommands.ExitFailure
	}
	defer out.Close()
	if err := lendbook.Export(out, b); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Exported book to %s\n", name)
	return subcommands.ExitSuccess
}

// --- Import Command ---

type importCmd struct {
	yes bool
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "replace the book with a snapshot" }
func (*importCmd) Usage() string {
	return `lbk import [-y] <file>

  Validates and imports a snapshot, replacing the current book entirely. This
  is destructive: the command asks for confirmation unless -y is given.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "y", false, "Replace the current book without asking")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	in, err := os.Open(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening snapshot %q: %v\n", f.Arg(0), err)
		return subcommands.ExitFailure
	}
	defer in.Close()

	b, err := lendbook.Import(in)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if !c.yes {
		fmt.Printf("Replace the current book at %q with %q? [y/N] ", *bookFile, f.Arg(0))
		answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if !strings.EqualFold(strings.TrimSpace(answer), "y") {
			fmt.Println("Import aborted.")
			return subcommands.ExitSuccess
		}
	}

	if err := saveBook(b); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Imported book from %s\n", f.Arg(0))
	return subcommands.ExitSuccess
}
