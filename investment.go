package lendbook

// InvestmentEntry is one record in an investment's internal log. Contribution
// entries carry the transaction id assigned when the contribution was applied,
// so reversing a contribution is an exact id lookup, never a value match.
type InvestmentEntry struct {
	ID     ID
	Person ID
	Kind   Kind // KindContribution or KindWithdrawal
	Amount Money
	Date   Date
	Notes  string
}

// Investment is a pot of money funded by one or more contributors.
//
// The current per-contributor allocation is not stored here: it lives in the
// book's holdings table, of which an investment's contributor list is a view.
// The invariant "sum of allocations == Total" is maintained by construction.
// An investment whose Total drops to zero is closed and swept from the book.
type Investment struct {
	ID      ID
	Name    string
	Total   Money
	Created Date
	Log     []InvestmentEntry
}

// logEntry returns the log entry with the given id.
func (v *Investment) logEntry(id ID) (InvestmentEntry, bool) {
	for _, e := range v.Log {
		if e.ID == id {
			return e, true
		}
	}
	return InvestmentEntry{}, false
}

// removeLogEntry drops the log entry with the given id.
func (v *Investment) removeLogEntry(id ID) bool {
	for i, e := range v.Log {
		if e.ID == id {
			v.Log = append(v.Log[:i], v.Log[i+1:]...)
			return true
		}
	}
	return false
}

// Holding is the single relationship record between a person and an
// investment. Both "a person's invested amounts" and "an investment's
// contributors" are views over the book's holdings, so the two sides can
// never drift apart.
type Holding struct {
	Person     ID
	Investment ID
	Amount     Money
	Since      Date // date of the most recent contribution
}
