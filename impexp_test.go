package lendbook

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestSnapshot_RoundTrip(t *testing.T) {
	b, alice, bob, carl := newTestBook(t)
	if _, err := b.Apply(KindReturn, alice.ID, EUR(50), jan15, "first payback"); err != nil {
		t.Fatalf("Apply(return) error = %v", err)
	}
	if _, err := b.CreateInvestment("Fund", EUR(500), []Allocation{
		{Person: alice.ID, Amount: EUR(300)},
		{Person: bob.ID, Amount: EUR(200)},
	}, feb01); err != nil {
		t.Fatalf("CreateInvestment() error = %v", err)
	}
	if _, err := b.Apply(KindGive, carl.ID, EUR(120), feb10, ""); err != nil {
		t.Fatalf("Apply(give) error = %v", err)
	}

	var buf bytes.Buffer
	if err := Export(&buf, b); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	got, err := Import(&buf)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	assertMoney(t, "balance", got.Account().Balance, b.Account().Balance)
	if got.Currency() != "EUR" {
		t.Errorf("currency = %q, want EUR", got.Currency())
	}

	alice2, err := got.PersonByName("Alice")
	if err != nil {
		t.Fatalf("PersonByName(Alice) error = %v", err)
	}
	assertMoney(t, "net owed", got.NetOwed(alice2), b.NetOwed(alice))
	assertMoney(t, "invested", got.InvestedBy(alice2.ID), EUR(300))

	carl2, err := got.LoanByName("Carl")
	if err != nil {
		t.Fatalf("LoanByName(Carl) error = %v", err)
	}
	assertMoney(t, "receivable", got.NetReceivable(carl2), EUR(120))

	v, err := got.InvestmentByName("Fund")
	if err != nil {
		t.Fatalf("InvestmentByName(Fund) error = %v", err)
	}
	assertMoney(t, "fund total", v.Total, EUR(500))
	if n := len(got.Contributors(v.ID)); n != 2 {
		t.Errorf("fund has %d contributors, want 2", n)
	}
	checkInvariants(t, got)

	// A restored book keeps working: fresh ids never collide with old ones.
	tx, err := got.Apply(KindReceipt, alice2.ID, EUR(10), mar01, "")
	if err != nil {
		t.Fatalf("Apply on restored book error = %v", err)
	}
	if _, ok := b.Account().entry(tx); ok {
		t.Errorf("restored book minted an id %s that already existed", tx)
	}
}

func TestSnapshot_Deterministic(t *testing.T) {
	b, _, _, _ := newTestBook(t)
	var first, second bytes.Buffer
	if err := Export(&first, b); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if err := Export(&second, b); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if first.String() != second.String() {
		t.Errorf("two exports of the same book differ")
	}
}

func TestImport_StructuralValidation(t *testing.T) {
	testCases := []struct {
		name     string
		snapshot string
	}{
		{"not json", "not a snapshot at all"},
		{"missing people", `{"currency":"EUR","investments":[],"loans":[]}`},
		{"missing investments", `{"currency":"EUR","people":[],"loans":[]}`},
		{"missing loans", `{"currency":"EUR","people":[],"investments":[]}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Import(strings.NewReader(tc.snapshot)); !errors.Is(err, ErrStructuralValidation) {
				t.Fatalf("Import() error = %v, want ErrStructuralValidation", err)
			}
		})
	}
}
