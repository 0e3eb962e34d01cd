package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"1", "1", true},
		{"1.0", "1", true},
		{"1.23", "1.23", true},
		{"1,23", "1.23", true},
		{"0.01", "0.01", true},
		{" 2.50 ", "2.5", true},
		{"\"12.00\"", "12", true},
		{"1,234.56", "1234.56", true},
		{"1.234,56", "1234.56", true},
		{"1,234", "1234", true},
		{"12,345,678", "12345678", true},
		{"£3.50", "3.5", true},
		{"-1", "-1", true},
		{"€-20,5", "-20.5", true},
		{"", "0", false},
		{"abc", "0", false},
		{"1.2.3", "0", false},
	}
	for _, tc := range cases {
		got, ok := ParseAmount(tc.in)
		if ok != tc.ok {
			t.Fatalf("%q expected ok=%v, got %v", tc.in, tc.ok, ok)
		}
		if got.String() != tc.out {
			t.Fatalf("%q expected %s, got %s", tc.in, tc.out, got.String())
		}
	}
}

func TestAmountOrZero(t *testing.T) {
	if !AmountOrZero("not a number").IsZero() {
		t.Fatalf("expected zero for invalid input")
	}
	if AmountOrZero("7.25").String() != "7.25" {
		t.Fatalf("expected 7.25")
	}
}
