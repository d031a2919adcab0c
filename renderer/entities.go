package renderer

import (
	"fmt"
	"strings"

	"github.com/vleroy/lendbook"
)

// People renders every person with their net liquid claim, the amount locked
// in investments on their behalf, and the total of both.
func People(b *lendbook.Book) string {
	r := &strings.Builder{}
	fmt.Fprintf(r, "## People\n\n")
	fmt.Fprintf(r, "| Name | Net Owed | Invested | Total Claim |\n")
	fmt.Fprintf(r, "|:---|---:|---:|---:|\n")
	empty := true
	for p := range b.People() {
		empty = false
		fmt.Fprintf(r, "| %s | %s | %s | %s |\n",
			p.Name, b.NetOwed(p), b.InvestedBy(p.ID), b.TotalOwedIncludingInvested(p))
	}
	if empty {
		return "No people in the book.\n"
	}
	return r.String()
}

// PersonDetail renders one person's full record, including the investments
// their money currently sits in.
func PersonDetail(b *lendbook.Book, p *lendbook.Person) string {
	r := &strings.Builder{}
	fmt.Fprintf(r, "# %s\n\n", p.Name)
	fmt.Fprintf(r, "- Net owed: %s\n", b.NetOwed(p))
	fmt.Fprintf(r, "- Invested: %s\n", b.InvestedBy(p.ID))
	fmt.Fprintf(r, "- Total claim: %s\n", b.TotalOwedIncludingInvested(p))

	holdings := b.HoldingsOf(p.ID)
	if len(holdings) > 0 {
		fmt.Fprintf(r, "\n## Allocations\n\n")
		fmt.Fprintf(r, "| Investment | Amount | Since |\n")
		fmt.Fprintf(r, "|:---|---:|:---|\n")
		for _, h := range holdings {
			name := string(h.Investment)
			if v, err := b.Investment(h.Investment); err == nil {
				name = v.Name
			}
			fmt.Fprintf(r, "| %s | %s | %s |\n", name, h.Amount, h.Since)
		}
	}
	return r.String()
}

// Loans renders every borrower with what they still owe.
func Loans(b *lendbook.Book) string {
	r := &strings.Builder{}
	fmt.Fprintf(r, "## Loans\n\n")
	fmt.Fprintf(r, "| Borrower | Given | Recovered | Net Receivable |\n")
	fmt.Fprintf(r, "|:---|---:|---:|---:|\n")
	empty := true
	for l := range b.Loans() {
		empty = false
		var given, recovered lendbook.Money
		for _, e := range l.Given {
			given = given.Add(e.Amount)
		}
		for _, e := range l.Recovered {
			recovered = recovered.Add(e.Amount)
		}
		fmt.Fprintf(r, "| %s | %s | %s | %s |\n", l.Name, given, recovered, b.NetReceivable(l))
	}
	if empty {
		return "No loans in the book.\n"
	}
	return r.String()
}

// Investments renders every active investment with its contributor breakdown.
func Investments(b *lendbook.Book) string {
	r := &strings.Builder{}
	empty := true
	for v := range b.Investments() {
		empty = false
		fmt.Fprintf(r, "## %s (%s)\n\n", v.Name, v.Total)
		fmt.Fprintf(r, "| Contributor | Allocation | Since |\n")
		fmt.Fprintf(r, "|:---|---:|:---|\n")
		for _, h := range b.Contributors(v.ID) {
			name := string(h.Person)
			if p, err := b.Person(h.Person); err == nil {
				name = p.Name
			}
			fmt.Fprintf(r, "| %s | %s | %s |\n", name, h.Amount, h.Since)
		}
		fmt.Fprintf(r, "\n")
	}
	if empty {
		return "No active investments.\n"
	}
	return r.String()
}
