package lendbook

import (
	"fmt"
	"iter"
	"sort"
	"strconv"
	"strings"
)

// DefaultCurrency is used when a book is created without an explicit currency.
const DefaultCurrency = "EUR"

// Book owns the canonical state of the ledger: people, loans, investments,
// the settlement account and the holdings table linking people to investments.
//
// The book is single-owner and single-writer. Each public operation runs to
// completion before the next begins; there is no locking because there is no
// concurrent access. Persistence is a trailing whole-state snapshot, never an
// intra-operation step.
type Book struct {
	currency    string
	people      []*Person
	loans       []*Loan
	investments []*Investment
	holdings    []*Holding
	account     *Account

	seq int // transaction and entity id sequence
}

// NewBook creates an empty book settling in the given currency.
func NewBook(currency string) *Book {
	if currency == "" {
		currency = DefaultCurrency
	}
	return &Book{
		currency: currency,
		account:  &Account{Balance: M(0, currency)},
	}
}

// Currency returns the settlement currency of the book.
func (b *Book) Currency() string { return b.currency }

// Account returns the settlement account.
func (b *Book) Account() *Account { return b.account }

// zero returns a zero Money in the book currency.
func (b *Book) zero() Money { return M(0, b.currency) }

// newID mints the next id with the given prefix.
func (b *Book) newID(prefix string) ID {
	b.seq++
	return ID(fmt.Sprintf("%s-%06d", prefix, b.seq))
}

// bumpSeq raises the id sequence above the numeric suffix of an id read from
// a snapshot, so freshly minted ids never collide with restored ones.
func (b *Book) bumpSeq(id ID) {
	s := string(id)
	i := strings.LastIndexByte(s, '-')
	if i < 0 {
		return
	}
	if n, err := strconv.Atoi(s[i+1:]); err == nil && n > b.seq {
		b.seq = n
	}
}

// --- people ---

// AddPerson creates a person with a unique name.
func (b *Book) AddPerson(name string) (*Person, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("person name is required")
	}
	if _, err := b.PersonByName(name); err == nil {
		return nil, fmt.Errorf("person %q: %w", name, ErrDuplicateName)
	}
	p := &Person{ID: b.newID("p"), Name: name, netOwed: b.zero()}
	b.people = append(b.people, p)
	return p, nil
}

// Person returns the person with the given id.
func (b *Book) Person(id ID) (*Person, error) {
	for _, p := range b.people {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("person %q: %w", id, ErrEntityNotFound)
}

// PersonByName returns the person with the given name.
func (b *Book) PersonByName(name string) (*Person, error) {
	for _, p := range b.people {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, fmt.Errorf("person %q: %w", name, ErrEntityNotFound)
}

// People iterates over all persons in creation order.
func (b *Book) People() iter.Seq[*Person] {
	return func(yield func(*Person) bool) {
		for _, p := range b.people {
			if !yield(p) {
				return
			}
		}
	}
}

// DeletePerson removes a person after reversing every transaction linked to
// them, including contributions locked in investments. The settlement account
// ends up as if the person had never existed.
func (b *Book) DeletePerson(id ID) error {
	p, err := b.Person(id)
	if err != nil {
		return err
	}
	// Scrub the investments first: what is still locked flows back to the
	// account and withdrawn residues lose their person link, so only the
	// person's receipts and returns remain to be reversed.
	for _, v := range b.investments {
		b.unwindStake(id, v)
	}
	b.sweepClosed()
	if err := b.reverseAllFor(func(e AccountEntry) bool { return e.Person == id }); err != nil {
		return err
	}
	for i, q := range b.people {
		if q == p {
			b.people = append(b.people[:i], b.people[i+1:]...)
			break
		}
	}
	return nil
}

// --- loans ---

// AddLoan creates a loan record for a borrower with a unique name.
func (b *Book) AddLoan(name string) (*Loan, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("borrower name is required")
	}
	if _, err := b.LoanByName(name); err == nil {
		return nil, fmt.Errorf("loan %q: %w", name, ErrDuplicateName)
	}
	l := &Loan{ID: b.newID("b"), Name: name, netOwedToMe: b.zero()}
	b.loans = append(b.loans, l)
	return l, nil
}

// Loan returns the loan with the given id.
func (b *Book) Loan(id ID) (*Loan, error) {
	for _, l := range b.loans {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, fmt.Errorf("loan %q: %w", id, ErrEntityNotFound)
}

// LoanByName returns the loan with the given borrower name.
func (b *Book) LoanByName(name string) (*Loan, error) {
	for _, l := range b.loans {
		if l.Name == name {
			return l, nil
		}
	}
	return nil, fmt.Errorf("loan %q: %w", name, ErrEntityNotFound)
}

// Loans iterates over all loans in creation order.
func (b *Book) Loans() iter.Seq[*Loan] {
	return func(yield func(*Loan) bool) {
		for _, l := range b.loans {
			if !yield(l) {
				return
			}
		}
	}
}

// DeleteLoan removes a loan after reversing every transaction linked to it.
func (b *Book) DeleteLoan(id ID) error {
	l, err := b.Loan(id)
	if err != nil {
		return err
	}
	if err := b.reverseAllFor(func(e AccountEntry) bool { return e.Loan == id }); err != nil {
		return err
	}
	for i, q := range b.loans {
		if q == l {
			b.loans = append(b.loans[:i], b.loans[i+1:]...)
			break
		}
	}
	return nil
}

// reverseAllFor reverses every account entry matching the predicate, newest
// first so earlier reversals cannot invalidate later ones. Each reversal
// mutates the entry log, so the scan restarts after every hit.
func (b *Book) reverseAllFor(match func(AccountEntry) bool) error {
	for {
		var target ID
		found := false
		for i := len(b.account.Entries) - 1; i >= 0; i-- {
			if match(b.account.Entries[i]) {
				target, found = b.account.Entries[i].ID, true
				break
			}
		}
		if !found {
			return nil
		}
		if err := b.Reverse(target); err != nil {
			return err
		}
	}
}

// --- investments ---

// Investment returns the investment with the given id.
func (b *Book) Investment(id ID) (*Investment, error) {
	for _, v := range b.investments {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, fmt.Errorf("investment %q: %w", id, ErrEntityNotFound)
}

// InvestmentByName returns the active investment with the given name.
func (b *Book) InvestmentByName(name string) (*Investment, error) {
	for _, v := range b.investments {
		if v.Name == name {
			return v, nil
		}
	}
	return nil, fmt.Errorf("investment %q: %w", name, ErrEntityNotFound)
}

// Investments iterates over all active investments in creation order.
func (b *Book) Investments() iter.Seq[*Investment] {
	return func(yield func(*Investment) bool) {
		for _, v := range b.investments {
			if !yield(v) {
				return
			}
		}
	}
}

// --- holdings ---

// holding returns the relationship record between a person and an investment.
func (b *Book) holding(person, investment ID) *Holding {
	for _, h := range b.holdings {
		if h.Person == person && h.Investment == investment {
			return h
		}
	}
	return nil
}

// HoldingsOf returns a person's current investment allocations,
// most recently contributed first.
func (b *Book) HoldingsOf(person ID) []*Holding {
	var out []*Holding
	for _, h := range b.holdings {
		if h.Person == person {
			out = append(out, h)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[j].Since.Before(out[i].Since) })
	return out
}

// Contributors returns an investment's current allocations in holding order.
func (b *Book) Contributors(investment ID) []*Holding {
	var out []*Holding
	for _, h := range b.holdings {
		if h.Investment == investment {
			out = append(out, h)
		}
	}
	return out
}

// addToHolding increases (or inserts) the allocation of person in investment.
func (b *Book) addToHolding(person, investment ID, amount Money, on Date) {
	if h := b.holding(person, investment); h != nil {
		h.Amount = h.Amount.Add(amount)
		h.Since = on
		return
	}
	b.holdings = append(b.holdings, &Holding{Person: person, Investment: investment, Amount: amount, Since: on})
}

// reduceHolding decreases the allocation, dropping the record at zero.
func (b *Book) reduceHolding(person, investment ID, amount Money) {
	for i, h := range b.holdings {
		if h.Person != person || h.Investment != investment {
			continue
		}
		h.Amount = h.Amount.Sub(amount)
		if !h.Amount.IsPositive() {
			b.holdings = append(b.holdings[:i], b.holdings[i+1:]...)
		}
		return
	}
}

// sweepClosed removes investments whose total dropped to zero or below,
// together with any leftover holdings. It runs after every mutation that can
// reduce an investment total, as a store-wide invariant pass.
func (b *Book) sweepClosed() {
	kept := b.investments[:0]
	for _, v := range b.investments {
		if v.Total.IsPositive() {
			kept = append(kept, v)
			continue
		}
		held := b.holdings[:0]
		for _, h := range b.holdings {
			if h.Investment != v.ID {
				held = append(held, h)
			}
		}
		b.holdings = held
	}
	b.investments = kept
}
