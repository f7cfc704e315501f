package pnr

import (
	"strconv"
	"testing"
)

func TestNext_TenDigits(t *testing.T) {
	g := NewSeeded(1)
	for i := 0; i < 1000; i++ {
		p := g.Next()
		if !Valid(p) {
			t.Fatalf("Next() = %q, not a valid PNR", p)
		}
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil || n < Min || n > Max {
			t.Fatalf("Next() = %q, outside [%d, %d]", p, int64(Min), int64(Max))
		}
	}
}

func TestNext_DeterministicWithSeed(t *testing.T) {
	a, b := NewSeeded(42), NewSeeded(42)
	for i := 0; i < 10; i++ {
		if a.Next() != b.Next() {
			t.Fatal("same seed must produce the same sequence")
		}
	}
}

func TestValid(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"1234567890", true},
		{"9999999999", true},
		{"0234567890", false}, // leading zero is below Min
		{"123456789", false},
		{"12345678901", false},
		{"12345678ab", false},
		{"", false},
	}
	for _, c := range cases {
		if got := Valid(c.in); got != c.want {
			t.Errorf("Valid(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}
