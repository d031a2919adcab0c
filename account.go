package lendbook

// Kind identifies what a transaction does to the settlement account.
type Kind string

const (
	KindReceipt      Kind = "receipt"      // person hands money in (credit)
	KindReturn       Kind = "return"       // money handed back to a person (debit)
	KindContribution Kind = "contribution" // person's money locked into an investment (debit)
	KindGive         Kind = "give"         // money lent to a borrower (debit)
	KindRecovery     Kind = "recovery"     // borrower pays back (credit)
	KindWithdrawal   Kind = "withdrawal"   // investment funds returning to the account (credit)
)

// ParseKind parses a string into a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindReceipt, KindReturn, KindContribution, KindGive, KindRecovery, KindWithdrawal:
		return Kind(s), nil
	}
	return "", ErrTransactionNotFound
}

// AccountEntry is one signed movement on the settlement account log. Exactly
// one entry is appended for every mutation that moves settlement funds, with
// the same id as the entity-side record it mirrors.
type AccountEntry struct {
	ID          ID
	Kind        Kind
	Amount      Money // signed: positive credits the account
	Date        Date
	Description string

	// At most one of the links is set.
	Person     ID
	Loan       ID
	Investment ID
}

// Account is the single settlement account all flows go through.
//
// Balance always equals the running sum of signed entry amounts. This is
// enforced by construction: every mutation appends one entry and adjusts the
// balance by the same signed amount within the same operation.
type Account struct {
	Balance Money
	Entries []AccountEntry
}

// entry returns the account entry with the given id.
func (a *Account) entry(id ID) (AccountEntry, bool) {
	for _, e := range a.Entries {
		if e.ID == id {
			return e, true
		}
	}
	return AccountEntry{}, false
}

// post appends an entry and moves the balance by its signed amount.
func (a *Account) post(e AccountEntry) {
	a.Entries = append(a.Entries, e)
	a.Balance = a.Balance.Add(e.Amount)
}

// unpost removes the entry with the given id and rolls its amount back out of
// the balance. It reports whether an entry was removed.
func (a *Account) unpost(id ID) bool {
	for i, e := range a.Entries {
		if e.ID == id {
			a.Entries = append(a.Entries[:i], a.Entries[i+1:]...)
			a.Balance = a.Balance.Sub(e.Amount)
			return true
		}
	}
	return false
}

// shrink reduces the signed magnitude of the entry with the given id by delta
// (a positive amount) and rolls the same delta out of the balance. Used when
// part of a lump investment debit is reversed. If the entry reaches zero it is
// removed.
func (a *Account) shrink(id ID, delta Money) bool {
	for i := range a.Entries {
		if a.Entries[i].ID != id {
			continue
		}
		if a.Entries[i].Amount.IsNegative() {
			a.Entries[i].Amount = a.Entries[i].Amount.Add(delta)
			a.Balance = a.Balance.Add(delta)
		} else {
			a.Entries[i].Amount = a.Entries[i].Amount.Sub(delta)
			a.Balance = a.Balance.Sub(delta)
		}
		if a.Entries[i].Amount.IsZero() {
			a.Entries = append(a.Entries[:i], a.Entries[i+1:]...)
		}
		return true
	}
	return false
}
