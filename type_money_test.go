package lendbook

import (
	"encoding/json"
	"testing"
)

func TestMoney_WeakCurrency(t *testing.T) {
	// A zero Money has no currency and adopts the other operand's.
	sum := Money{}.Add(EUR(10))
	if sum.Currency() != "EUR" {
		t.Errorf("currency = %q, want EUR", sum.Currency())
	}
	assertMoney(t, "sum", sum, EUR(10))
}

func TestMoney_Share(t *testing.T) {
	testCases := []struct {
		name          string
		m, num, den   Money
		want          Money
	}{
		{"exact", EUR(100), EUR(1), EUR(2), EUR(50)},
		{"rounds to cents", EUR(100), EUR(200), EUR(300), EUR(66.67)},
		{"zero denominator", EUR(100), EUR(1), EUR(0), EUR(0)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assertMoney(t, "share", tc.m.Share(tc.num, tc.den), tc.want)
		})
	}
}

func TestMoney_JSONIsPlainNumber(t *testing.T) {
	data, err := json.Marshal(EUR(1234.56))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != "1234.56" {
		t.Errorf("Marshal() = %s, want a plain number", data)
	}

	var m Money
	if err := json.Unmarshal([]byte("42.5"), &m); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	assertMoney(t, "decoded", m.in("EUR"), EUR(42.5))
}

func TestMoney_SignedString(t *testing.T) {
	if got := EUR(0).SignedString(); got != "-" {
		t.Errorf("SignedString(0) = %q, want \"-\"", got)
	}
	if got := EUR(5).SignedString(); got[0] != '+' {
		t.Errorf("SignedString(5) = %q, want a leading +", got)
	}
}
