package core

import "testing"

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"12.34", 1234, true},
		{"12,34", 1234, true},
		{"45000.00", 4500000, true},
		{"12.345", 1235, true}, // half-up on the third decimal
		{"12.344", 1234, true},
		{"0", 0, true},
		{"", 0, false},
		{"-5", 0, false},
		{"abc", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseMoney(tc.in)
		if tc.ok && err != nil {
			t.Fatalf("ParseMoney(%q) unexpected error: %v", tc.in, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("ParseMoney(%q) expected error", tc.in)
		}
		if tc.ok && got.Paise != tc.want {
			t.Fatalf("ParseMoney(%q) = %d, want %d", tc.in, got.Paise, tc.want)
		}
	}
}

func TestParseMoneyOrZero(t *testing.T) {
	if m := ParseMoneyOrZero(""); m.Paise != 0 {
		t.Fatalf("missing numeric field must default to zero, got %d", m.Paise)
	}
	if m := ParseMoneyOrZero("not a number"); m.Paise != 0 {
		t.Fatalf("unparseable numeric field must default to zero, got %d", m.Paise)
	}
	if m := ParseMoneyOrZero("800.00"); m.Paise != 80000 {
		t.Fatalf("ParseMoneyOrZero(800.00) = %d, want 80000", m.Paise)
	}
}

func TestMoneyString(t *testing.T) {
	if s := (Money{Paise: 1250}).String(); s != "12.50" {
		t.Fatalf("String = %q, want 12.50", s)
	}
	if s := (Money{Paise: 0}).String(); s != "0.00" {
		t.Fatalf("String = %q, want 0.00", s)
	}
}

func TestMoneyArithmetic(t *testing.T) {
	a := Money{Paise: 100000}
	b := Money{Paise: 150000}
	if a.Add(b).Paise != 250000 {
		t.Fatalf("Add broken")
	}
	if b.Sub(a).Paise != 50000 {
		t.Fatalf("Sub broken")
	}
	if !a.Less(b) || b.Less(a) {
		t.Fatalf("Less broken")
	}
}
