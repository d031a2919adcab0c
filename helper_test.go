package lendbook

import "testing"

// EUR is a helper for tests to create euro money from const
func EUR(v float64) Money { return M(v, "EUR") }

var (
	jan10 = MustParseDate("2025-01-10")
	jan15 = MustParseDate("2025-01-15")
	feb01 = MustParseDate("2025-02-01")
	feb10 = MustParseDate("2025-02-10")
	mar01 = MustParseDate("2025-03-01")
)

// newTestBook builds a book with Alice (received 600), Bob (received 400) and
// borrower Carl, the standard fixture most tests start from.
func newTestBook(t *testing.T) (b *Book, alice, bob *Person, carl *Loan) {
	t.Helper()
	b = NewBook("EUR")
	var err error
	if alice, err = b.AddPerson("Alice"); err != nil {
		t.Fatalf("AddPerson(Alice) error = %v", err)
	}
	if bob, err = b.AddPerson("Bob"); err != nil {
		t.Fatalf("AddPerson(Bob) error = %v", err)
	}
	if carl, err = b.AddLoan("Carl"); err != nil {
		t.Fatalf("AddLoan(Carl) error = %v", err)
	}
	if _, err = b.Apply(KindReceipt, alice.ID, EUR(600), jan10, ""); err != nil {
		t.Fatalf("Apply(receipt, Alice) error = %v", err)
	}
	if _, err = b.Apply(KindReceipt, bob.ID, EUR(400), jan10, ""); err != nil {
		t.Fatalf("Apply(receipt, Bob) error = %v", err)
	}
	return b, alice, bob, carl
}

// assertMoney fails the test when got differs from want.
func assertMoney(t *testing.T, name string, got, want Money) {
	t.Helper()
	if !got.Equal(want) {
		t.Errorf("%s = %s, want %s", name, got, want)
	}
}

// checkInvariants verifies the store-wide consistency rules: the account
// balance equals the sum of its entries, every investment total equals the
// sum of its holdings, and no closed investment lingers.
func checkInvariants(t *testing.T, b *Book) {
	t.Helper()
	var sum Money
	for _, e := range b.Account().Entries {
		sum = sum.Add(e.Amount)
	}
	if !sum.Equal(b.Account().Balance) {
		t.Errorf("account balance = %s, sum of entries = %s", b.Account().Balance, sum)
	}
	for v := range b.Investments() {
		if !v.Total.IsPositive() {
			t.Errorf("investment %q has non-positive total %s and was not swept", v.Name, v.Total)
		}
		var held Money
		for _, h := range b.Contributors(v.ID) {
			held = held.Add(h.Amount)
		}
		if !held.Equal(v.Total) {
			t.Errorf("investment %q total = %s, sum of holdings = %s", v.Name, v.Total, held)
		}
	}
}
