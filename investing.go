package lendbook

import (
	"fmt"
)

// Allocation names a person's share of an investment operation: a
// contribution when creating or funding, a deallocation when withdrawing.
type Allocation struct {
	Person ID
	Amount Money
}

// mergeAllocations folds duplicate persons into one allocation, keeping the
// first-seen order. A person appearing twice in one batch is validated on
// their aggregate share.
func mergeAllocations(allocs []Allocation) []Allocation {
	var merged []Allocation
	index := make(map[ID]int, len(allocs))
	for _, a := range allocs {
		if i, ok := index[a.Person]; ok {
			merged[i].Amount = merged[i].Amount.Add(a.Amount)
			continue
		}
		index[a.Person] = len(merged)
		merged = append(merged, a)
	}
	return merged
}

func sumAllocations(allocs []Allocation) Money {
	var total Money
	for _, a := range allocs {
		total = total.Add(a.Amount)
	}
	return total
}

// CreateInvestment opens a named investment funded by the given contributors.
//
// The whole batch validates before anything mutates: the name must be unique
// among active investments, allocations must sum exactly to total, the account
// must cover the total, and each contributor's aggregate share must fit within
// their liquid claim. On success the account is debited by the total with one
// lump entry, and each contribution is logged with its own id for later
// reversal.
func (b *Book) CreateInvestment(name string, total Money, contributors []Allocation, on Date) (*Investment, error) {
	if name == "" {
		return nil, fmt.Errorf("investment name is required")
	}
	if _, err := b.InvestmentByName(name); err == nil {
		return nil, fmt.Errorf("investment %q: %w", name, ErrDuplicateName)
	}
	if !total.IsPositive() {
		return nil, fmt.Errorf("investment total must be positive, got %s", total)
	}
	total = total.in(b.currency)
	if on.IsZero() {
		on = Today()
	}

	contributors = mergeAllocations(contributors)
	if sum := sumAllocations(contributors); !sum.Equal(total) {
		return nil, fmt.Errorf("contributions sum to %s, total is %s: %w", sum, total, ErrAllocationMismatch)
	}
	if b.account.Balance.LessThan(total) {
		return nil, fmt.Errorf("cannot invest %s, account balance is %s: %w", total, b.account.Balance, ErrInsufficientFunds)
	}
	for _, a := range contributors {
		p, err := b.Person(a.Person)
		if err != nil {
			return nil, err
		}
		if !a.Amount.IsPositive() {
			return nil, fmt.Errorf("contribution of %s must be positive, got %s", p.Name, a.Amount)
		}
		if owed := b.NetOwed(p); a.Amount.GreaterThan(owed) {
			return nil, fmt.Errorf("cannot invest %s for %s, only %s is owed: %w", a.Amount, p.Name, owed, ErrExceedsLiquidClaim)
		}
	}

	v := &Investment{ID: b.newID("i"), Name: name, Total: total, Created: on}
	for _, a := range contributors {
		amount := a.Amount.in(b.currency)
		v.Log = append(v.Log, InvestmentEntry{
			ID: b.newID("tx"), Person: a.Person, Kind: KindContribution, Amount: amount, Date: on,
		})
		b.addToHolding(a.Person, v.ID, amount, on)
	}
	b.investments = append(b.investments, v)
	b.account.post(AccountEntry{
		ID: b.newID("tx"), Kind: KindContribution, Amount: total.Neg(), Date: on,
		Description: fmt.Sprintf("invested in %s", name), Investment: v.ID,
	})
	for _, a := range contributors {
		if p, err := b.Person(a.Person); err == nil {
			b.NetOwed(p)
		}
	}
	return v, nil
}

// AddFunds grows an existing investment with one more contribution. The
// account entry and the investment log entry share the returned id.
func (b *Book) AddFunds(investment, person ID, amount Money, on Date) (ID, error) {
	v, err := b.Investment(investment)
	if err != nil {
		return "", err
	}
	p, err := b.Person(person)
	if err != nil {
		return "", err
	}
	if !amount.IsPositive() {
		return "", fmt.Errorf("contribution must be positive, got %s", amount)
	}
	amount = amount.in(b.currency)
	if on.IsZero() {
		on = Today()
	}
	if owed := b.NetOwed(p); amount.GreaterThan(owed) {
		return "", fmt.Errorf("cannot invest %s for %s, only %s is owed: %w", amount, p.Name, owed, ErrExceedsLiquidClaim)
	}
	if b.account.Balance.LessThan(amount) {
		return "", fmt.Errorf("cannot invest %s, account balance is %s: %w", amount, b.account.Balance, ErrInsufficientFunds)
	}

	tx := b.newID("tx")
	v.Total = v.Total.Add(amount)
	v.Log = append(v.Log, InvestmentEntry{ID: tx, Person: person, Kind: KindContribution, Amount: amount, Date: on})
	b.addToHolding(person, v.ID, amount, on)
	b.account.post(AccountEntry{
		ID: tx, Kind: KindContribution, Amount: amount.Neg(), Date: on,
		Description: fmt.Sprintf("added to %s for %s", v.Name, p.Name), Person: person, Investment: v.ID,
	})
	b.NetOwed(p)
	return tx, nil
}

// Withdraw releases funds from an investment back to the account, shrinking
// the named contributors' allocations. The sum of deallocations is the
// withdrawn total; no allocation may go below zero. If the investment total
// reaches zero it is closed and swept.
func (b *Book) Withdraw(investment ID, deallocations []Allocation, on Date) (ID, error) {
	v, err := b.Investment(investment)
	if err != nil {
		return "", err
	}
	if on.IsZero() {
		on = Today()
	}
	deallocations = mergeAllocations(deallocations)
	total := sumAllocations(deallocations).in(b.currency)
	if !total.IsPositive() {
		return "", fmt.Errorf("withdrawal total must be positive, got %s", total)
	}
	if total.GreaterThan(v.Total) {
		return "", fmt.Errorf("cannot withdraw %s from %s, total is %s: %w", total, v.Name, v.Total, ErrExceedsLiquidClaim)
	}
	for _, a := range deallocations {
		if !a.Amount.IsPositive() {
			return "", fmt.Errorf("deallocation must be positive, got %s", a.Amount)
		}
		h := b.holding(a.Person, v.ID)
		if h == nil {
			return "", fmt.Errorf("person %q holds nothing in %s: %w", a.Person, v.Name, ErrEntityNotFound)
		}
		if a.Amount.GreaterThan(h.Amount) {
			return "", fmt.Errorf("cannot release %s, allocation is %s: %w", a.Amount, h.Amount, ErrExceedsLiquidClaim)
		}
	}

	tx := b.newID("tx")
	v.Total = v.Total.Sub(total)
	for _, a := range deallocations {
		amount := a.Amount.in(b.currency)
		v.Log = append(v.Log, InvestmentEntry{ID: tx, Person: a.Person, Kind: KindWithdrawal, Amount: amount, Date: on})
		b.reduceHolding(a.Person, v.ID, amount)
	}
	b.account.post(AccountEntry{
		ID: tx, Kind: KindWithdrawal, Amount: total, Date: on,
		Description: fmt.Sprintf("withdrawn from %s", v.Name), Investment: v.ID,
	})
	for _, a := range deallocations {
		if p, err := b.Person(a.Person); err == nil {
			b.NetOwed(p)
		}
	}
	b.sweepClosed()
	return tx, nil
}

// ProportionalSplit computes per-contributor deallocations for withdrawing
// total from an investment, each share proportional to the contributor's
// current allocation. Rounding differences are settled on the largest
// contributor so the shares always sum exactly to total.
func (b *Book) ProportionalSplit(investment ID, total Money) ([]Allocation, error) {
	v, err := b.Investment(investment)
	if err != nil {
		return nil, err
	}
	if !total.IsPositive() {
		return nil, fmt.Errorf("withdrawal total must be positive, got %s", total)
	}
	total = total.in(b.currency)
	if total.GreaterThan(v.Total) {
		return nil, fmt.Errorf("cannot withdraw %s from %s, total is %s: %w", total, v.Name, v.Total, ErrExceedsLiquidClaim)
	}

	holdings := b.Contributors(v.ID)
	allocs := make([]Allocation, 0, len(holdings))
	var sum Money
	largest := -1
	for i, h := range holdings {
		share := total.Share(h.Amount, v.Total)
		allocs = append(allocs, Allocation{Person: h.Person, Amount: share})
		sum = sum.Add(share)
		if largest < 0 || h.Amount.GreaterThan(holdings[largest].Amount) {
			largest = i
		}
	}
	if remainder := total.Sub(sum); !remainder.IsZero() && largest >= 0 {
		allocs[largest].Amount = allocs[largest].Amount.Add(remainder)
	}
	// Rounding must never push a share over its allocation.
	for i, a := range allocs {
		if h := b.holding(a.Person, v.ID); h != nil && a.Amount.GreaterThan(h.Amount) {
			excess := a.Amount.Sub(h.Amount)
			allocs[i].Amount = h.Amount
			for j := range allocs {
				if j == i {
					continue
				}
				if h2 := b.holding(allocs[j].Person, v.ID); h2 != nil {
					room := h2.Amount.Sub(allocs[j].Amount)
					step := excess.Min(room)
					if step.IsPositive() {
						allocs[j].Amount = allocs[j].Amount.Add(step)
						excess = excess.Sub(step)
					}
				}
				if excess.IsZero() {
					break
				}
			}
		}
	}
	return allocs, nil
}

// investmentDebitEntry finds the account debit backing a contribution: the
// add-funds entry sharing the log id, or the lump entry from the creation.
func (b *Book) investmentDebitEntry(v *Investment, tx ID) (AccountEntry, bool) {
	if e, ok := b.account.entry(tx); ok {
		return e, true
	}
	for _, e := range b.account.Entries {
		if e.Kind != KindContribution || e.Investment != v.ID {
			continue
		}
		if _, isLog := v.logEntry(e.ID); !isLog {
			return e, true
		}
	}
	return AccountEntry{}, false
}

// reverseContribution unwinds one contribution record. A single-contributor
// investment whose only contribution is being reversed disappears entirely;
// otherwise the total, the holding and the backing account debit all shrink
// by the contribution amount.
func (b *Book) reverseContribution(v *Investment, e InvestmentEntry) error {
	h := b.holding(e.Person, v.ID)
	if h == nil || h.Amount.LessThan(e.Amount) {
		return fmt.Errorf("contribution %q was partially withdrawn and cannot be reversed: %w", e.ID, ErrExceedsLiquidClaim)
	}

	debit, ok := b.investmentDebitEntry(v, e.ID)
	if !ok {
		return fmt.Errorf("no account debit backing contribution %q: %w", e.ID, ErrTransactionNotFound)
	}

	v.Total = v.Total.Sub(e.Amount)
	v.removeLogEntry(e.ID)
	b.reduceHolding(e.Person, v.ID, e.Amount)
	if debit.Amount.Abs().Equal(e.Amount) {
		b.account.unpost(debit.ID)
	} else {
		b.account.shrink(debit.ID, e.Amount)
	}
	if p, err := b.Person(e.Person); err == nil {
		b.NetOwed(p)
	}
	b.sweepClosed()
	return nil
}

// reverseWithdrawal locks withdrawn funds back into the investment. The
// withdrawal's log entries share the account entry id, so the exact
// per-person amounts are restored.
func (b *Book) reverseWithdrawal(e AccountEntry) error {
	v, err := b.Investment(e.Investment)
	if err != nil {
		return fmt.Errorf("investment was closed, withdrawal %q cannot be reversed: %w", e.ID, err)
	}
	var affected []ID
	for i := len(v.Log) - 1; i >= 0; i-- {
		le := v.Log[i]
		if le.ID != e.ID {
			continue
		}
		v.Total = v.Total.Add(le.Amount)
		b.addToHolding(le.Person, v.ID, le.Amount, le.Date)
		v.Log = append(v.Log[:i], v.Log[i+1:]...)
		affected = append(affected, le.Person)
	}
	b.account.unpost(e.ID)
	for _, id := range affected {
		if p, err := b.Person(id); err == nil {
			b.NetOwed(p)
		}
	}
	return nil
}

// unwindStake erases a person's trace from one investment before the person
// is deleted. The live part of their stake returns to the account by
// unposting or shrinking the original debits; log entries whose funds were
// already withdrawn are dropped and their debits lose the person link, since
// that money already flowed back through the withdrawal credits. No step can
// fail, so the caller mutates nothing it cannot finish.
func (b *Book) unwindStake(person ID, v *Investment) {
	held := b.zero()
	if h := b.holding(person, v.ID); h != nil {
		held = h.Amount
	}
	v.Total = v.Total.Sub(held)

	remaining := held
	for i := len(v.Log) - 1; i >= 0; i-- {
		le := v.Log[i]
		if le.Person != person {
			continue
		}
		if le.Kind != KindContribution {
			v.Log = append(v.Log[:i], v.Log[i+1:]...)
			continue
		}
		step := remaining.Min(le.Amount)
		if debit, ok := b.investmentDebitEntry(v, le.ID); ok {
			switch {
			case step.IsPositive() && debit.Amount.Abs().Equal(step):
				b.account.unpost(debit.ID)
			case step.IsPositive():
				b.account.shrink(debit.ID, step)
				fallthrough
			default:
				// The residue mirrors funds already withdrawn; it no longer
				// belongs to the person's history.
				for j := range b.account.Entries {
					if b.account.Entries[j].ID == debit.ID {
						b.account.Entries[j].Person = ""
					}
				}
			}
		}
		v.Log = append(v.Log[:i], v.Log[i+1:]...)
		remaining = remaining.Sub(step)
	}
	if held.IsPositive() {
		b.reduceHolding(person, v.ID, held)
	}
}
