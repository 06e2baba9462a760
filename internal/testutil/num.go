package testutil

import (
	"testing"

	"github.com/roach88/arith/internal/num"
)

// MustDecimal parses s as a decimal or fails the test.
func MustDecimal(tb testing.TB, s string) num.Decimal {
	tb.Helper()
	d, err := num.ParseDecimal(s)
	if err != nil {
		tb.Fatalf("parse decimal %q: %v", s, err)
	}
	return d
}
