package lendbook

// ID identifies a person, loan, investment or transaction within the book.
type ID string

// Entry is one dated, positive-amount record on a person or loan sequence.
// The id is shared with the matching settlement account entry.
type Entry struct {
	ID     ID
	Amount Money
	Date   Date
	Notes  string
}

// Person is someone who entrusted money to the book owner.
//
// The liquid amount owed to a person is derived, never stored: received minus
// returned minus whatever is currently locked in investments on their behalf
// (the book's holdings table). NetOwed keeps a cache of the last computation
// for display only.
type Person struct {
	ID       ID
	Name     string
	Received []Entry
	Returned []Entry

	netOwed Money // cache of the last NetOwed computation
}

func (p *Person) entries(k Kind) *[]Entry {
	switch k {
	case KindReceipt:
		return &p.Received
	case KindReturn:
		return &p.Returned
	}
	return nil
}

// removeEntry drops the entry with the given id from the sequence.
// It reports whether an entry was removed.
func removeEntry(seq *[]Entry, id ID) (Entry, bool) {
	for i, e := range *seq {
		if e.ID == id {
			*seq = append((*seq)[:i], (*seq)[i+1:]...)
			return e, true
		}
	}
	return Entry{}, false
}

func sumEntries(seq []Entry) Money {
	var total Money
	for _, e := range seq {
		total = total.Add(e.Amount)
	}
	return total
}
