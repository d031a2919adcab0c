package lendbook

// This file holds the pure derivation functions. None of them mutate the book
// beyond refreshing the display caches on Person and Loan; calling them twice
// in a row always yields the same result.

// NetOwed computes the liquid amount currently owed to a person:
// received minus returned minus whatever is locked in investments on their
// behalf. The result is cached on the person for display.
func (b *Book) NetOwed(p *Person) Money {
	owed := sumEntries(p.Received).Sub(sumEntries(p.Returned)).Sub(b.InvestedBy(p.ID))
	p.netOwed = owed.in(b.currency)
	return p.netOwed
}

// InvestedBy sums a person's current allocations across all investments.
func (b *Book) InvestedBy(person ID) Money {
	total := b.zero()
	for _, h := range b.holdings {
		if h.Person == person {
			total = total.Add(h.Amount)
		}
	}
	return total
}

// NetReceivable computes what a borrower still owes: given minus recovered.
// The result is cached on the loan for display.
func (b *Book) NetReceivable(l *Loan) Money {
	owed := sumEntries(l.Given).Sub(sumEntries(l.Recovered))
	l.netOwedToMe = owed.in(b.currency)
	return l.netOwedToMe
}

// TotalLiquidObligations sums the positive net owed across all persons.
// Overpaid persons (negative balance) do not offset the others.
func (b *Book) TotalLiquidObligations() Money {
	total := b.zero()
	for _, p := range b.people {
		total = total.Add(b.NetOwed(p).Max0())
	}
	return total
}

// TotalInvested sums the totals of all active investments.
func (b *Book) TotalInvested() Money {
	total := b.zero()
	for _, v := range b.investments {
		total = total.Add(v.Total)
	}
	return total
}

// TotalReceivables sums the positive net receivable across all loans.
func (b *Book) TotalReceivables() Money {
	total := b.zero()
	for _, l := range b.loans {
		total = total.Add(b.NetReceivable(l).Max0())
	}
	return total
}

// TotalOwedIncludingInvested is a person's total claim on the book owner:
// the liquid net owed plus the amounts tied up in investments. Against the
// liquid figure this counts the invested share twice on purpose; it expresses
// the full claim, liquid and tied-up.
func (b *Book) TotalOwedIncludingInvested(p *Person) Money {
	return b.NetOwed(p).Add(b.InvestedBy(p.ID))
}

// Underfunded reports whether the settlement account cannot cover the liquid
// obligations, and by how much. This is advisory only; no operation blocks
// on it.
func (b *Book) Underfunded() (gap Money, under bool) {
	obligations := b.TotalLiquidObligations()
	if b.account.Balance.GreaterThanOrEqual(obligations) {
		return b.zero(), false
	}
	return obligations.Sub(b.account.Balance), true
}
