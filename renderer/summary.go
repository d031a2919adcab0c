// Package renderer formats book state as markdown for terminal display.
package renderer

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	md "github.com/nao1215/markdown"
	"github.com/vleroy/lendbook"
)

// Summary renders the book-wide totals: the account balance against the
// liquid obligations, plus the invested and receivable aggregates.
func Summary(b *lendbook.Book) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Book Summary")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{
			md.Bold("Account Balance"),
			md.Bold(b.Account().Balance.String()),
		},
		Rows: [][]string{
			{"Liquid Obligations", b.TotalLiquidObligations().String()},
			{"Tied Up in Investments", b.TotalInvested().String()},
			{"Loan Receivables", b.TotalReceivables().String()},
		},
	})

	out := &strings.Builder{}
	out.WriteString(doc.String())
	ConditionalBlock(out, func(w io.Writer) bool {
		gap, under := b.Underfunded()
		if !under {
			return false
		}
		fmt.Fprintf(w, "\n> ⚠ The account is short %s of the liquid obligations.\n", gap)
		return true
	})
	return out.String()
}
