package lendbook

// CoveredClaim explains where part of a simulated shortfall sits: an amount
// locked in a named investment since a given date.
type CoveredClaim struct {
	Investment string
	Amount     Money
	Date       Date
}

// WithdrawalSimulation is the answer to "can this person take out that much
// right now". Covered is the liquid part, Shortfall the part locked away, and
// Claims explains which investments hold it. Whatever the claims cannot
// account for is Unexplained.
type WithdrawalSimulation struct {
	Requested   Money
	Covered     Money
	Shortfall   Money
	Unexplained Money
	Claims      []CoveredClaim
}

// SimulateWithdrawal reports whether the requested amount could be returned to
// a person today, and if not, which investments tie up the rest. The walk is
// greedy over the person's allocations, most recently contributed first. It is
// pure and read-only, no mutation results from it.
func (b *Book) SimulateWithdrawal(person ID, requested Money) (WithdrawalSimulation, error) {
	p, err := b.Person(person)
	if err != nil {
		return WithdrawalSimulation{}, err
	}
	requested = requested.in(b.currency)

	sim := WithdrawalSimulation{Requested: requested}
	owed := b.NetOwed(p)
	sim.Covered = requested.Min(owed.Max0())
	sim.Shortfall = requested.Sub(sim.Covered)

	remaining := sim.Shortfall
	for _, h := range b.HoldingsOf(person) {
		if !remaining.IsPositive() {
			break
		}
		v, err := b.Investment(h.Investment)
		if err != nil {
			return WithdrawalSimulation{}, err
		}
		covered := remaining.Min(h.Amount)
		sim.Claims = append(sim.Claims, CoveredClaim{Investment: v.Name, Amount: covered, Date: h.Since})
		remaining = remaining.Sub(covered)
	}
	sim.Unexplained = remaining
	return sim, nil
}
