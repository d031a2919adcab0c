package lendbook

import (
	"fmt"
)

// Apply records a transaction of the given kind against a person (Receipt,
// Return, Contribution) or a loan (Give, Recovery) and returns its id.
//
// All validation happens before any mutation; on error the book is untouched.
// On success the entity-side record, the account entry and the balance
// adjustment land as one atomic unit.
//
// A Contribution opens a new single-contributor investment named after the
// notes (or the person and date when no notes are given); use AddFunds to
// grow an existing investment instead.
func (b *Book) Apply(k Kind, entity ID, amount Money, on Date, notes string) (ID, error) {
	if !amount.IsPositive() {
		return "", fmt.Errorf("%s amount must be positive, got %s", k, amount)
	}
	amount = amount.in(b.currency)
	if on.IsZero() {
		on = Today()
	}

	switch k {
	case KindReceipt:
		p, err := b.Person(entity)
		if err != nil {
			return "", err
		}
		tx := b.newID("tx")
		p.Received = append(p.Received, Entry{ID: tx, Amount: amount, Date: on, Notes: notes})
		b.account.post(AccountEntry{
			ID: tx, Kind: k, Amount: amount, Date: on,
			Description: describe(notes, "received from %s", p.Name), Person: p.ID,
		})
		b.NetOwed(p)
		return tx, nil

	case KindReturn:
		p, err := b.Person(entity)
		if err != nil {
			return "", err
		}
		if owed := b.NetOwed(p); amount.GreaterThan(owed) {
			return "", fmt.Errorf("cannot return %s to %s, only %s is owed: %w", amount, p.Name, owed, ErrExceedsLiquidClaim)
		}
		tx := b.newID("tx")
		p.Returned = append(p.Returned, Entry{ID: tx, Amount: amount, Date: on, Notes: notes})
		b.account.post(AccountEntry{
			ID: tx, Kind: k, Amount: amount.Neg(), Date: on,
			Description: describe(notes, "returned to %s", p.Name), Person: p.ID,
		})
		b.NetOwed(p)
		return tx, nil

	case KindContribution:
		p, err := b.Person(entity)
		if err != nil {
			return "", err
		}
		name := notes
		if name == "" {
			name = fmt.Sprintf("%s %s", p.Name, on)
		}
		v, err := b.CreateInvestment(name, amount, []Allocation{{Person: p.ID, Amount: amount}}, on)
		if err != nil {
			return "", err
		}
		// The reversible unit is the contribution record, not the investment.
		return v.Log[0].ID, nil

	case KindGive:
		l, err := b.Loan(entity)
		if err != nil {
			return "", err
		}
		if b.account.Balance.LessThan(amount) {
			return "", fmt.Errorf("cannot lend %s, account balance is %s: %w", amount, b.account.Balance, ErrInsufficientFunds)
		}
		tx := b.newID("tx")
		l.Given = append(l.Given, Entry{ID: tx, Amount: amount, Date: on, Notes: notes})
		b.account.post(AccountEntry{
			ID: tx, Kind: k, Amount: amount.Neg(), Date: on,
			Description: describe(notes, "lent to %s", l.Name), Loan: l.ID,
		})
		b.NetReceivable(l)
		return tx, nil

	case KindRecovery:
		l, err := b.Loan(entity)
		if err != nil {
			return "", err
		}
		if due := b.NetReceivable(l); amount.GreaterThan(due) {
			return "", fmt.Errorf("cannot recover %s from %s, only %s is due: %w", amount, l.Name, due, ErrExceedsLiquidClaim)
		}
		tx := b.newID("tx")
		l.Recovered = append(l.Recovered, Entry{ID: tx, Amount: amount, Date: on, Notes: notes})
		b.account.post(AccountEntry{
			ID: tx, Kind: k, Amount: amount, Date: on,
			Description: describe(notes, "recovered from %s", l.Name), Loan: l.ID,
		})
		b.NetReceivable(l)
		return tx, nil
	}
	return "", fmt.Errorf("unsupported transaction kind %q", k)
}

func describe(notes, format string, args ...any) string {
	if notes != "" {
		return notes
	}
	return fmt.Sprintf(format, args...)
}

// Reverse undoes the transaction with the given id: the entity-side record
// disappears, the account balance moves back by the inverse signed amount and
// the linked account entry is removed. Contribution reversals additionally
// shrink or delete the investment holding the funds.
func (b *Book) Reverse(tx ID) error {
	if e, ok := b.account.entry(tx); ok {
		switch e.Kind {
		case KindReceipt, KindReturn:
			p, err := b.Person(e.Person)
			if err != nil {
				return err
			}
			if _, ok := removeEntry(p.entries(e.Kind), tx); !ok {
				return fmt.Errorf("no %s record %q on %s: %w", e.Kind, tx, p.Name, ErrTransactionNotFound)
			}
			b.account.unpost(tx)
			b.NetOwed(p)
			return nil

		case KindGive, KindRecovery:
			l, err := b.Loan(e.Loan)
			if err != nil {
				return err
			}
			if _, ok := removeEntry(l.entries(e.Kind), tx); !ok {
				return fmt.Errorf("no %s record %q on %s: %w", e.Kind, tx, l.Name, ErrTransactionNotFound)
			}
			b.account.unpost(tx)
			b.NetReceivable(l)
			return nil

		case KindContribution:
			// Either an add-funds entry (shares its id with the log record)
			// or the lump debit from an investment creation.
			v, err := b.Investment(e.Investment)
			if err != nil {
				return err
			}
			if le, ok := v.logEntry(tx); ok {
				return b.reverseContribution(v, le)
			}
			// Lump: reverse the whole creation. Every contribution must still
			// be fully backed by its holding before anything moves, otherwise
			// the loop would abort halfway with part of the lump unwound.
			logged := make(map[ID]Money)
			for _, le := range v.Log {
				if le.Kind == KindContribution {
					logged[le.Person] = logged[le.Person].Add(le.Amount)
				}
			}
			for _, le := range v.Log {
				if le.Kind != KindContribution {
					continue
				}
				h := b.holding(le.Person, v.ID)
				if h == nil || h.Amount.LessThan(logged[le.Person]) {
					return fmt.Errorf("contribution %q was partially withdrawn and cannot be reversed: %w", le.ID, ErrExceedsLiquidClaim)
				}
			}
			// Newest contribution first.
			for {
				var last *InvestmentEntry
				for i := len(v.Log) - 1; i >= 0; i-- {
					if v.Log[i].Kind == KindContribution {
						last = &v.Log[i]
						break
					}
				}
				if last == nil {
					return nil
				}
				le := *last
				if err := b.reverseContribution(v, le); err != nil {
					return err
				}
				if _, err := b.Investment(e.Investment); err != nil {
					return nil // fully unwound and swept
				}
			}

		case KindWithdrawal:
			return b.reverseWithdrawal(e)
		}
		return fmt.Errorf("cannot reverse %s entry %q", e.Kind, tx)
	}

	// Contribution records from an investment creation have no account entry
	// of their own; they live in the investment log.
	for _, v := range b.investments {
		if le, ok := v.logEntry(tx); ok && le.Kind == KindContribution {
			return b.reverseContribution(v, le)
		}
	}
	return fmt.Errorf("transaction %q: %w", tx, ErrTransactionNotFound)
}

// Edit replaces a transaction's amount, date and notes. It is fully
// transactional: the new values are validated against the hypothetical
// post-reversal state before either step runs, so a rejected edit leaves the
// book exactly as it was.
func (b *Book) Edit(tx ID, amount Money, on Date, notes string) (ID, error) {
	if !amount.IsPositive() {
		return "", fmt.Errorf("amount must be positive, got %s", amount)
	}
	amount = amount.in(b.currency)
	if on.IsZero() {
		on = Today()
	}

	kind, entity, old, investment, err := b.lookup(tx)
	if err != nil {
		return "", err
	}

	// Validate against the state the reversal would leave behind.
	switch kind {
	case KindReceipt:
		// No person- or account-side ceiling on receipts.
	case KindReturn:
		p, err := b.Person(entity)
		if err != nil {
			return "", err
		}
		if ceiling := b.NetOwed(p).Add(old); amount.GreaterThan(ceiling) {
			return "", fmt.Errorf("cannot return %s to %s, only %s would be owed: %w", amount, p.Name, ceiling, ErrExceedsLiquidClaim)
		}
	case KindContribution:
		p, err := b.Person(entity)
		if err != nil {
			return "", err
		}
		h := b.holding(entity, investment)
		if h == nil || h.Amount.LessThan(old) {
			return "", fmt.Errorf("contribution %q was partially withdrawn and cannot be edited: %w", tx, ErrExceedsLiquidClaim)
		}
		if ceiling := b.NetOwed(p).Add(old); amount.GreaterThan(ceiling) {
			return "", fmt.Errorf("cannot invest %s for %s, only %s would be owed: %w", amount, p.Name, ceiling, ErrExceedsLiquidClaim)
		}
		if ceiling := b.account.Balance.Add(old); amount.GreaterThan(ceiling) {
			return "", fmt.Errorf("cannot invest %s, account would hold %s: %w", amount, ceiling, ErrInsufficientFunds)
		}
	case KindGive:
		if ceiling := b.account.Balance.Add(old); amount.GreaterThan(ceiling) {
			return "", fmt.Errorf("cannot lend %s, account would hold %s: %w", amount, ceiling, ErrInsufficientFunds)
		}
	case KindRecovery:
		l, err := b.Loan(entity)
		if err != nil {
			return "", err
		}
		if ceiling := b.NetReceivable(l).Add(old); amount.GreaterThan(ceiling) {
			return "", fmt.Errorf("cannot recover %s from %s, only %s would be due: %w", amount, l.Name, ceiling, ErrExceedsLiquidClaim)
		}
	default:
		return "", fmt.Errorf("cannot edit %s entry %q", kind, tx)
	}

	// Remember where a contribution lived so it can be re-applied in place.
	var investmentName string
	if kind == KindContribution {
		if v, err := b.Investment(investment); err == nil {
			investmentName = v.Name
		}
	}

	if err := b.Reverse(tx); err != nil {
		return "", err
	}

	if kind != KindContribution {
		return b.Apply(kind, entity, amount, on, notes)
	}
	if v, err := b.Investment(investment); err == nil {
		return b.AddFunds(v.ID, entity, amount, on)
	}
	// The reversal fully unwound the investment; recreate it under its name.
	v, err := b.CreateInvestment(investmentName, amount, []Allocation{{Person: entity, Amount: amount}}, on)
	if err != nil {
		return "", err
	}
	return v.Log[0].ID, nil
}

// lookup resolves a transaction id to its kind, owning entity, amount and,
// for contributions, the investment holding the funds.
func (b *Book) lookup(tx ID) (kind Kind, entity ID, amount Money, investment ID, err error) {
	if e, ok := b.account.entry(tx); ok {
		switch e.Kind {
		case KindReceipt, KindReturn:
			return e.Kind, e.Person, e.Amount.Abs(), "", nil
		case KindGive, KindRecovery:
			return e.Kind, e.Loan, e.Amount.Abs(), "", nil
		case KindContribution:
			if v, verr := b.Investment(e.Investment); verr == nil {
				if le, ok := v.logEntry(tx); ok {
					return KindContribution, le.Person, le.Amount, v.ID, nil
				}
			}
			return e.Kind, "", Money{}, e.Investment, fmt.Errorf("entry %q is an investment creation, edit its contributions instead", tx)
		case KindWithdrawal:
			return e.Kind, "", Money{}, e.Investment, fmt.Errorf("entry %q is a withdrawal, undo it and withdraw again", tx)
		}
	}
	for _, v := range b.investments {
		if le, ok := v.logEntry(tx); ok && le.Kind == KindContribution {
			return KindContribution, le.Person, le.Amount, v.ID, nil
		}
	}
	return "", "", Money{}, "", fmt.Errorf("transaction %q: %w", tx, ErrTransactionNotFound)
}
