package lendbook

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	testCases := []struct {
		in   string
		want Date
	}{
		{"2025-01-10", NewDate(2025, time.January, 10)},
		{"2025-1-2", NewDate(2025, time.January, 2)},
	}
	for _, tc := range testCases {
		got, err := ParseDate(tc.in)
		if err != nil {
			t.Fatalf("ParseDate(%q) error = %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("ParseDate(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}

	if _, err := ParseDate("not-a-date"); err == nil {
		t.Errorf("ParseDate accepted garbage")
	}
	if got, err := ParseDate(""); err != nil || got != Today() {
		t.Errorf("ParseDate(\"\") = %s, %v, want today", got, err)
	}
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d := NewDate(2025, time.February, 1)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `"2025-02-01"` {
		t.Errorf("Marshal() = %s", data)
	}
	var got Date
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got != d {
		t.Errorf("round trip = %s, want %s", got, d)
	}
}

func TestDate_Ordering(t *testing.T) {
	d := NewDate(2025, time.January, 31)
	if !d.Add(1).After(d) {
		t.Errorf("Add(1) is not after the original day")
	}
	if d.Add(1) != NewDate(2025, time.February, 1) {
		t.Errorf("Add(1) did not normalize across the month boundary: %s", d.Add(1))
	}
	if !d.Before(d.Add(1)) {
		t.Errorf("Before() inconsistent with After()")
	}
}
