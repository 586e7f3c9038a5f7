package money

import (
	"strings"
	"testing"
	"unicode"
)

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) || r == '-' {
			return r
		}
		return -1
	}, s)
}

func TestRound(t *testing.T) {
	cases := map[float64]int64{0: 0, 0.4: 0, 0.5: 1, 1512.5: 1513, 302.49: 302}
	for in, want := range cases {
		if got := Round(in); got != want {
			t.Fatalf("Round(%v) = %d, want %d", in, got, want)
		}
	}
}

func TestFormatKrona(t *testing.T) {
	cases := []struct {
		in     float64
		digits string
	}{
		{in: 0, digits: "0"},
		{in: 1512.5, digits: "1513"},
		{in: 125000, digits: "125000"},
		{in: 1234567.4, digits: "1234567"},
	}

	for _, tc := range cases {
		got := FormatKrona(tc.in)
		if !strings.HasSuffix(got, " kr") {
			t.Fatalf("FormatKrona(%v) = %q, expected kr suffix", tc.in, got)
		}
		if d := digitsOnly(got); d != tc.digits {
			t.Fatalf("FormatKrona(%v) digits = %q, want %q", tc.in, d, tc.digits)
		}
	}
}

func TestFormatKrona_GroupsThousands(t *testing.T) {
	got := FormatKrona(125000)
	if strings.HasPrefix(got, "125000") {
		t.Fatalf("expected digit grouping, got %q", got)
	}
}

func TestFormatDeduction(t *testing.T) {
	if got := FormatDeduction(0.2); got != "0 kr" {
		t.Fatalf("FormatDeduction(0.2) = %q", got)
	}
	if got := FormatDeduction(750); !strings.HasPrefix(got, "-") || digitsOnly(got) != "-750" {
		t.Fatalf("FormatDeduction(750) = %q", got)
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(0.25); digitsOnly(got) != "25" || !strings.HasSuffix(got, "%") {
		t.Fatalf("FormatPercent(0.25) = %q", got)
	}
}
