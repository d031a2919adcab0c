package lendbook

// Loan tracks money the book owner lent to one borrower.
//
// As with Person, the net receivable is derived from the two sequences;
// netOwedToMe only caches the last computation.
type Loan struct {
	ID        ID
	Name      string
	Given     []Entry
	Recovered []Entry

	netOwedToMe Money // cache of the last NetReceivable computation
}

func (l *Loan) entries(k Kind) *[]Entry {
	switch k {
	case KindGive:
		return &l.Given
	case KindRecovery:
		return &l.Recovered
	}
	return nil
}
