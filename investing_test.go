package lendbook

import (
	"errors"
	"testing"
)

func TestCreateInvestment_SingleContributor(t *testing.T) {
	// Scenario: a person with a 600 claim locks 300 into a new investment.
	b, alice, _, _ := newTestBook(t)

	v, err := b.CreateInvestment("Fund", EUR(300), []Allocation{{Person: alice.ID, Amount: EUR(300)}}, feb01)
	if err != nil {
		t.Fatalf("CreateInvestment() error = %v", err)
	}
	assertMoney(t, "net owed", b.NetOwed(alice), EUR(300))
	assertMoney(t, "balance", b.Account().Balance, EUR(700))
	assertMoney(t, "total", v.Total, EUR(300))
	assertMoney(t, "alice allocation", b.InvestedBy(alice.ID), EUR(300))
	checkInvariants(t, b)
}

func TestCreateInvestment_Joint(t *testing.T) {
	b, alice, bob, _ := newTestBook(t)
	before := b.TotalLiquidObligations()

	if _, err := b.CreateInvestment("Fund", EUR(1000), []Allocation{
		{Person: alice.ID, Amount: EUR(600)},
		{Person: bob.ID, Amount: EUR(400)},
	}, feb01); err != nil {
		t.Fatalf("CreateInvestment() error = %v", err)
	}

	assertMoney(t, "liquid obligations", b.TotalLiquidObligations(), before.Sub(EUR(1000)))
	assertMoney(t, "invested total", b.TotalInvested(), EUR(1000))
	checkInvariants(t, b)
}

func TestCreateInvestment_Rejections(t *testing.T) {
	b, alice, bob, _ := newTestBook(t)

	testCases := []struct {
		name    string
		total   Money
		allocs  []Allocation
		wantErr error
	}{
		{
			name:    "allocation mismatch",
			total:   EUR(1000),
			allocs:  []Allocation{{Person: alice.ID, Amount: EUR(600)}, {Person: bob.ID, Amount: EUR(399)}},
			wantErr: ErrAllocationMismatch,
		},
		{
			name:    "share above claim",
			total:   EUR(700),
			allocs:  []Allocation{{Person: alice.ID, Amount: EUR(700)}},
			wantErr: ErrExceedsLiquidClaim,
		},
		{
			name:    "unknown person",
			total:   EUR(100),
			allocs:  []Allocation{{Person: "p-999999", Amount: EUR(100)}},
			wantErr: ErrEntityNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := b.CreateInvestment("Fund "+tc.name, tc.total, tc.allocs, feb01)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("error = %v, want %v", err, tc.wantErr)
			}
			// Nothing may have mutated.
			assertMoney(t, "balance", b.Account().Balance, EUR(1000))
			assertMoney(t, "net owed Alice", b.NetOwed(alice), EUR(600))
			if n := len(b.Account().Entries); n != 2 {
				t.Errorf("account log has %d entries, want 2", n)
			}
			checkInvariants(t, b)
		})
	}
}

func TestCreateInvestment_DuplicateName(t *testing.T) {
	b, alice, _, _ := newTestBook(t)
	allocs := []Allocation{{Person: alice.ID, Amount: EUR(100)}}
	if _, err := b.CreateInvestment("Fund", EUR(100), allocs, feb01); err != nil {
		t.Fatalf("CreateInvestment() error = %v", err)
	}
	if _, err := b.CreateInvestment("Fund", EUR(100), allocs, feb01); !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("error = %v, want ErrDuplicateName", err)
	}
}

func TestCreateInvestment_MergesDuplicateContributor(t *testing.T) {
	b, alice, _, _ := newTestBook(t)

	v, err := b.CreateInvestment("Fund", EUR(500), []Allocation{
		{Person: alice.ID, Amount: EUR(300)},
		{Person: alice.ID, Amount: EUR(200)},
	}, feb01)
	if err != nil {
		t.Fatalf("CreateInvestment() error = %v", err)
	}
	holdings := b.Contributors(v.ID)
	if len(holdings) != 1 {
		t.Fatalf("got %d holdings, want 1 merged", len(holdings))
	}
	assertMoney(t, "merged allocation", holdings[0].Amount, EUR(500))
}

func TestWithdraw_FullUnwindClosesInvestment(t *testing.T) {
	// Scenario: withdrawing the whole single-contributor investment closes it
	// and restores the net owed.
	b, alice, _, _ := newTestBook(t)

	v, err := b.CreateInvestment("Fund", EUR(300), []Allocation{{Person: alice.ID, Amount: EUR(300)}}, feb01)
	if err != nil {
		t.Fatalf("CreateInvestment() error = %v", err)
	}
	if _, err := b.Withdraw(v.ID, []Allocation{{Person: alice.ID, Amount: EUR(300)}}, mar01); err != nil {
		t.Fatalf("Withdraw() error = %v", err)
	}

	if _, err := b.Investment(v.ID); !errors.Is(err, ErrEntityNotFound) {
		t.Fatalf("investment not swept: %v", err)
	}
	assertMoney(t, "balance", b.Account().Balance, EUR(1000))
	assertMoney(t, "net owed", b.NetOwed(alice), EUR(600))
	assertMoney(t, "invested", b.InvestedBy(alice.ID), EUR(0))
	checkInvariants(t, b)
}

func TestWithdraw_Rejections(t *testing.T) {
	b, alice, bob, _ := newTestBook(t)
	v, err := b.CreateInvestment("Fund", EUR(500), []Allocation{
		{Person: alice.ID, Amount: EUR(300)},
		{Person: bob.ID, Amount: EUR(200)},
	}, feb01)
	if err != nil {
		t.Fatalf("CreateInvestment() error = %v", err)
	}

	// Over the investment total.
	if _, err := b.Withdraw(v.ID, []Allocation{{Person: alice.ID, Amount: EUR(600)}}, mar01); !errors.Is(err, ErrExceedsLiquidClaim) {
		t.Fatalf("over-total error = %v, want ErrExceedsLiquidClaim", err)
	}
	// Over one contributor's allocation.
	if _, err := b.Withdraw(v.ID, []Allocation{{Person: bob.ID, Amount: EUR(201)}}, mar01); !errors.Is(err, ErrExceedsLiquidClaim) {
		t.Fatalf("over-allocation error = %v, want ErrExceedsLiquidClaim", err)
	}

	assertMoney(t, "total untouched", v.Total, EUR(500))
	checkInvariants(t, b)
}

func TestProportionalSplit_RemainderToLargest(t *testing.T) {
	b, alice, bob, _ := newTestBook(t)
	v, err := b.CreateInvestment("Fund", EUR(300), []Allocation{
		{Person: alice.ID, Amount: EUR(200)},
		{Person: bob.ID, Amount: EUR(100)},
	}, feb01)
	if err != nil {
		t.Fatalf("CreateInvestment() error = %v", err)
	}

	// 100 split 2:1 rounds to 66.67 + 33.33; the remainder lands on Alice.
	allocs, err := b.ProportionalSplit(v.ID, EUR(100))
	if err != nil {
		t.Fatalf("ProportionalSplit() error = %v", err)
	}
	var sum Money
	for _, a := range allocs {
		sum = sum.Add(a.Amount)
	}
	assertMoney(t, "split sum", sum, EUR(100))

	// The split must commit cleanly.
	if _, err := b.Withdraw(v.ID, allocs, mar01); err != nil {
		t.Fatalf("Withdraw(split) error = %v", err)
	}
	assertMoney(t, "total", v.Total, EUR(200))
	checkInvariants(t, b)
}

func TestAddFunds_GrowsInvestment(t *testing.T) {
	b, alice, bob, _ := newTestBook(t)
	v, err := b.CreateInvestment("Fund", EUR(300), []Allocation{{Person: alice.ID, Amount: EUR(300)}}, feb01)
	if err != nil {
		t.Fatalf("CreateInvestment() error = %v", err)
	}

	tx, err := b.AddFunds(v.ID, bob.ID, EUR(150), feb10)
	if err != nil {
		t.Fatalf("AddFunds() error = %v", err)
	}
	assertMoney(t, "total", v.Total, EUR(450))
	assertMoney(t, "bob allocation", b.InvestedBy(bob.ID), EUR(150))
	checkInvariants(t, b)

	// An add-funds contribution reverses on its own id.
	if err := b.Reverse(tx); err != nil {
		t.Fatalf("Reverse(add-funds) error = %v", err)
	}
	assertMoney(t, "total restored", v.Total, EUR(300))
	assertMoney(t, "bob restored", b.NetOwed(bob), EUR(400))
	checkInvariants(t, b)
}

func TestReverseContribution_PartiallyWithdrawnIsRefused(t *testing.T) {
	b, alice, _, _ := newTestBook(t)
	v, err := b.CreateInvestment("Fund", EUR(300), []Allocation{{Person: alice.ID, Amount: EUR(300)}}, feb01)
	if err != nil {
		t.Fatalf("CreateInvestment() error = %v", err)
	}
	if _, err := b.Withdraw(v.ID, []Allocation{{Person: alice.ID, Amount: EUR(100)}}, feb10); err != nil {
		t.Fatalf("Withdraw() error = %v", err)
	}

	tx := v.Log[0].ID
	if err := b.Reverse(tx); !errors.Is(err, ErrExceedsLiquidClaim) {
		t.Fatalf("Reverse(partially withdrawn) error = %v, want ErrExceedsLiquidClaim", err)
	}
	checkInvariants(t, b)
}

func TestReverseWithdrawal_RestoresHoldings(t *testing.T) {
	b, alice, bob, _ := newTestBook(t)
	v, err := b.CreateInvestment("Fund", EUR(500), []Allocation{
		{Person: alice.ID, Amount: EUR(300)},
		{Person: bob.ID, Amount: EUR(200)},
	}, feb01)
	if err != nil {
		t.Fatalf("CreateInvestment() error = %v", err)
	}

	tx, err := b.Withdraw(v.ID, []Allocation{
		{Person: alice.ID, Amount: EUR(100)},
		{Person: bob.ID, Amount: EUR(50)},
	}, feb10)
	if err != nil {
		t.Fatalf("Withdraw() error = %v", err)
	}

	if err := b.Reverse(tx); err != nil {
		t.Fatalf("Reverse(withdrawal) error = %v", err)
	}
	assertMoney(t, "total", v.Total, EUR(500))
	assertMoney(t, "alice allocation", b.InvestedBy(alice.ID), EUR(300))
	assertMoney(t, "bob allocation", b.InvestedBy(bob.ID), EUR(200))
	checkInvariants(t, b)
}
