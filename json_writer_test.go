package lendbook

import (
	"encoding/json"
	"testing"
)

func TestJSONObjectWriter_OrderAndOptional(t *testing.T) {
	w := &jsonObjectWriter{}
	w.Append("b", 2)
	w.Append("a", 1)
	w.Optional("empty", "")
	w.Optional("set", "x")

	got, err := json.Marshal(w)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"b":2,"a":1,"set":"x"}`
	if string(got) != want {
		t.Errorf("Marshal() = %s, want %s", got, want)
	}
}

func TestJSONObjectWriter_Embed(t *testing.T) {
	w := &jsonObjectWriter{}
	w.EmbedFrom(struct {
		ID string `json:"id"`
	}{ID: "p-000001"})
	w.Append("extra", true)

	got, err := json.Marshal(w)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"id":"p-000001","extra":true}`
	if string(got) != want {
		t.Errorf("Marshal() = %s, want %s", got, want)
	}
}
