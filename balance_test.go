package lendbook

import "testing"

func TestNetOwed_Derivation(t *testing.T) {
	b, alice, _, _ := newTestBook(t)

	assertMoney(t, "NetOwed(Alice)", b.NetOwed(alice), EUR(600))

	if _, err := b.Apply(KindReturn, alice.ID, EUR(100), jan15, ""); err != nil {
		t.Fatalf("Apply(return) error = %v", err)
	}
	assertMoney(t, "NetOwed after return", b.NetOwed(alice), EUR(500))

	if _, err := b.CreateInvestment("Fund", EUR(300), []Allocation{{Person: alice.ID, Amount: EUR(300)}}, feb01); err != nil {
		t.Fatalf("CreateInvestment() error = %v", err)
	}
	assertMoney(t, "NetOwed after contribution", b.NetOwed(alice), EUR(200))
	assertMoney(t, "InvestedBy(Alice)", b.InvestedBy(alice.ID), EUR(300))
	assertMoney(t, "TotalOwedIncludingInvested", b.TotalOwedIncludingInvested(alice), EUR(500))
}

func TestNetReceivable(t *testing.T) {
	b, _, _, carl := newTestBook(t)

	if _, err := b.Apply(KindGive, carl.ID, EUR(250), jan15, ""); err != nil {
		t.Fatalf("Apply(give) error = %v", err)
	}
	assertMoney(t, "NetReceivable", b.NetReceivable(carl), EUR(250))

	if _, err := b.Apply(KindRecovery, carl.ID, EUR(100), feb01, ""); err != nil {
		t.Fatalf("Apply(recovery) error = %v", err)
	}
	assertMoney(t, "NetReceivable after recovery", b.NetReceivable(carl), EUR(150))
	assertMoney(t, "TotalReceivables", b.TotalReceivables(), EUR(150))
}

func TestTotalLiquidObligations_IgnoresOverpaid(t *testing.T) {
	b, alice, bob, _ := newTestBook(t)

	// Lock all of Bob's claim away so his liquid part is zero.
	if _, err := b.CreateInvestment("Side", EUR(400), []Allocation{{Person: bob.ID, Amount: EUR(400)}}, jan15); err != nil {
		t.Fatalf("CreateInvestment() error = %v", err)
	}
	assertMoney(t, "NetOwed(Bob)", b.NetOwed(bob), EUR(0))
	assertMoney(t, "TotalLiquidObligations", b.TotalLiquidObligations(), b.NetOwed(alice))
}

func TestUnderfunded(t *testing.T) {
	b, _, _, carl := newTestBook(t)

	if _, under := b.Underfunded(); under {
		t.Fatalf("Underfunded() = true on a fully covered book")
	}

	// Lending drains the account while the obligations stay put.
	if _, err := b.Apply(KindGive, carl.ID, EUR(700), jan15, ""); err != nil {
		t.Fatalf("Apply(give) error = %v", err)
	}
	gap, under := b.Underfunded()
	if !under {
		t.Fatalf("Underfunded() = false, want true")
	}
	assertMoney(t, "gap", gap, EUR(700))
}
