package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"
	"github.com/vleroy/lendbook"
)

// Simulation renders the answer to a withdrawal question: what is liquid now,
// what is locked away and where, and what cannot be explained at all.
func Simulation(name string, sim lendbook.WithdrawalSimulation) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Withdrawal of %s for %s", sim.Requested, name))
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{
			md.Bold("Available Now"),
			md.Bold(sim.Covered.String()),
		},
		Rows: [][]string{
			{"Locked in Investments", sim.Shortfall.Sub(sim.Unexplained).String()},
			{"Unexplained", sim.Unexplained.String()},
		},
	})

	if len(sim.Claims) > 0 {
		doc.H2("Where the Rest Sits")
		table := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignRight,
				md.AlignLeft,
			},
			Header: []string{"Investment", "Amount", "Since"},
		}
		for _, c := range sim.Claims {
			table.Rows = append(table.Rows, []string{c.Investment, c.Amount.String(), c.Date.String()})
		}
		doc.Table(table)
	}

	return doc.String()
}
