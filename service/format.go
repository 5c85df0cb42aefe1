package service

import (
	"math"

	"github.com/dustin/go-humanize"
)

// FormatNumber renders the integer part of n with thousands separators:
// 1234567.89 becomes "1,234,567". Fractions are truncated toward zero.
func FormatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "∞"
	case math.IsInf(n, -1):
		return "-∞"
	}
	t := math.Trunc(n)
	if t >= math.MaxInt64 || t <= math.MinInt64 {
		return humanize.Commaf(t)
	}
	return humanize.Comma(int64(t))
}

// FormatCurrency prefixes FormatNumber with a dollar sign, keeping the
// sign in front: -1500 becomes "-$1,500".
func FormatCurrency(n float64) string {
	s := FormatNumber(n)
	if len(s) > 0 && s[0] == '-' {
		return "-$" + s[1:]
	}
	return "$" + s
}
