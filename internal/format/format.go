// Package format renders raw scanner numbers into the display strings the
// dashboard shows. Pure functions, no state.
package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var subscriptDigits = map[rune]rune{
	'0': '₀', '1': '₁', '2': '₂', '3': '₃', '4': '₄',
	'5': '₅', '6': '₆', '7': '₇', '8': '₈', '9': '₉',
}

func toSubscript(n int) string {
	var b strings.Builder
	for _, r := range strconv.Itoa(n) {
		if s, ok := subscriptDigits[r]; ok {
			b.WriteRune(s)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// leadingZeros counts the zero run at the start of the fractional part.
func leadingZeros(frac string) int {
	n := 0
	for n < len(frac) && frac[n] == '0' {
		n++
	}
	return n
}

func compress(frac string, zeros int) string {
	digits := frac[zeros:]
	if len(digits) > 3 {
		digits = digits[:3]
	}
	return "$0.0" + toSubscript(zeros) + digits
}

// Price formats a USD price. Sub-cent prices compress their leading zeros
// into a subscript count (0.0000456 → $0.0₄456); prices at or above one
// dollar get plain two-decimal formatting.
func Price(p decimal.Decimal) string {
	if p.IsZero() {
		return "$0.00"
	}

	one := decimal.NewFromInt(1)
	milli := decimal.NewFromFloat(0.001)

	switch {
	case p.LessThan(milli):
		s := p.String()
		if strings.HasPrefix(s, "0.") {
			frac := s[2:]
			if zeros := leadingZeros(frac); zeros >= 3 {
				return compress(frac, zeros)
			}
		}
		// degenerate shapes (negative, exact zero string) fall back to
		// exponential notation
		return "$" + exponential(p)
	case p.LessThan(one):
		s := p.StringFixed(8)
		frac := s[2:]
		if zeros := leadingZeros(frac); zeros >= 3 {
			return compress(frac, zeros)
		}
		t := strings.TrimRight(p.StringFixed(6), "0")
		t = strings.TrimRight(t, ".")
		return "$" + t
	default:
		return "$" + p.StringFixed(2)
	}
}

func exponential(p decimal.Decimal) string {
	f, _ := p.Float64()
	s := strconv.FormatFloat(f, 'e', 2, 64)
	// FormatFloat pads the exponent ("4.56e-05"); the dashboard shows the
	// short form ("4.56e-5")
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		mant, exp := s[:i], s[i+1:]
		sign := ""
		if exp != "" && (exp[0] == '-' || exp[0] == '+') {
			if exp[0] == '-' {
				sign = "-"
			}
			exp = exp[1:]
		}
		exp = strings.TrimLeft(exp, "0")
		if exp == "" {
			exp = "0"
		}
		return mant + "e" + sign + exp
	}
	return s
}

// MarketCap abbreviates with K/M/B suffixes.
func MarketCap(mcap float64) string {
	switch {
	case mcap >= 1e9:
		return fmt.Sprintf("$%.2fB", mcap/1e9)
	case mcap >= 1e6:
		return fmt.Sprintf("$%.2fM", mcap/1e6)
	case mcap >= 1e3:
		return fmt.Sprintf("$%.2fK", mcap/1e3)
	default:
		return fmt.Sprintf("$%.2f", mcap)
	}
}

// Volume abbreviates with K/M suffixes. Unlike MarketCap there is no B
// bucket; billion-dollar volumes render in M, matching the dashboard.
func Volume(volume float64) string {
	switch {
	case volume >= 1e6:
		return fmt.Sprintf("$%.2fM", volume/1e6)
	case volume >= 1e3:
		return fmt.Sprintf("$%.2fK", volume/1e3)
	default:
		return fmt.Sprintf("$%.2f", volume)
	}
}

// Percentage renders a signed percent; positive values carry an explicit
// plus, zero renders unsigned.
func Percentage(pc float64) string {
	if pc > 0 {
		return fmt.Sprintf("+%.2f%%", pc)
	}
	return fmt.Sprintf("%.2f%%", pc)
}

// Transactions abbreviates trade counts above a thousand.
func Transactions(count int) string {
	if count >= 1000 {
		return fmt.Sprintf("%.1fK", float64(count)/1000)
	}
	return strconv.Itoa(count)
}

// Age buckets the elapsed time since creation into the coarsest integral
// unit. Recomputed from the wall clock on every call.
func Age(created time.Time) string {
	d := time.Since(created)
	switch {
	case d >= 24*time.Hour:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	case d >= time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	case d >= time.Minute:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	default:
		return "< 1m"
	}
}
