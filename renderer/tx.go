package renderer

import (
	"fmt"
	"strings"

	"github.com/vleroy/lendbook"
)

// Transactions renders the settlement account log in chronological order,
// with a running balance column.
func Transactions(b *lendbook.Book) string {
	entries := b.Account().Entries
	if len(entries) == 0 {
		return "No transactions in the book.\n"
	}

	r := &strings.Builder{}
	fmt.Fprintf(r, "## Account Transactions\n\n")
	fmt.Fprintf(r, "| Id | Date | Kind | Amount | Balance | Description |\n")
	fmt.Fprintf(r, "|:---|:---|:---|---:|---:|:---|\n")
	var running lendbook.Money
	for _, e := range entries {
		running = running.Add(e.Amount)
		fmt.Fprintf(r, "| %s | %s | %s | %s | %s | %s |\n",
			e.ID, e.Date, e.Kind, e.Amount.SignedString(), running, e.Description)
	}
	return r.String()
}
