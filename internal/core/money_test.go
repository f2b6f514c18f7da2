package core

import (
	"encoding/json"
	"testing"
)

func TestAmountFixed2(t *testing.T) {
	cases := []struct {
		in  string
		out string
	}{
		{"1", "1.00"},
		{"12.5", "12.50"},
		{"0.01", "0.01"},
		{" 2.50 ", "2.50"},
		{"1e2", "100.00"},
		{"", "0.00"},
		{"abc", "0.00"},
		{"1,23", "0.00"},
		{"-4", "-4.00"},
	}
	for _, tc := range cases {
		if got := NewAmount(tc.in).Fixed2(); got != tc.out {
			t.Fatalf("%q: expected %s, got %s", tc.in, tc.out, got)
		}
	}
}

func TestAmountUnmarshal(t *testing.T) {
	cases := []struct {
		json string
		raw  string
		out  string
	}{
		{`12.5`, "12.5", "12.50"},
		{`"7.25"`, "7.25", "7.25"},
		{`null`, "", "0.00"},
		{`"lots"`, "lots", "0.00"},
		{`true`, "true", "0.00"},
	}
	for _, tc := range cases {
		var a Amount
		if err := json.Unmarshal([]byte(tc.json), &a); err != nil {
			t.Fatalf("%s: unexpected error %v", tc.json, err)
		}
		if a.String() != tc.raw || a.Fixed2() != tc.out {
			t.Fatalf("%s: got raw=%q fixed=%q", tc.json, a.String(), a.Fixed2())
		}
	}
}

func TestAmountMarshal(t *testing.T) {
	b, err := json.Marshal(NewAmount("12.5"))
	if err != nil || string(b) != `12.5` {
		t.Fatalf("numeric: got %s (err=%v)", b, err)
	}
	b, err = json.Marshal(NewAmount("n/a"))
	if err != nil || string(b) != `"n/a"` {
		t.Fatalf("text: got %s (err=%v)", b, err)
	}
}
