package format

import (
	"math"
	"strconv"
	"strings"
)

// USD formats a dollar amount: two grouped decimals from 1 upwards in
// magnitude, six ungrouped decimals below.
func USD(v float64) string {
	if math.Abs(v) >= 1 {
		return "$" + Grouped(v, 2)
	}
	return "$" + strconv.FormatFloat(v, 'f', 6, 64)
}

// Percent formats a percentage with an explicit sign; zero counts as positive.
func Percent(v float64) string {
	if v == 0 {
		v = 0 // drop the sign of negative zero
	}
	s := strconv.FormatFloat(v, 'f', 2, 64) + "%"
	if v >= 0 {
		return "+" + s
	}
	return s
}

// Quantity formats an asset amount with precision chosen by magnitude.
func Quantity(v float64) string {
	a := math.Abs(v)
	switch {
	case a >= 100:
		return Grouped(v, 2)
	case a >= 1:
		return Grouped(v, 4)
	default:
		return strconv.FormatFloat(v, 'f', 8, 64)
	}
}

// Grouped formats v with prec decimals and comma thousands separators.
func Grouped(v float64, prec int) string {
	s := strconv.FormatFloat(v, 'f', prec, 64)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	if len(intPart) <= 3 || !isDigits(intPart) {
		return sign + intPart + frac
	}

	var b strings.Builder
	b.Grow(len(sign) + len(intPart) + len(intPart)/3 + len(frac))
	b.WriteString(sign)
	head := len(intPart) % 3
	if head > 0 {
		b.WriteString(intPart[:head])
	}
	for i := head; i < len(intPart); i += 3 {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	b.WriteString(frac)
	return b.String()
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Plain formats a float in its shortest round-trip form, always showing a
// fractional part (1 -> "1.0", 0.5 -> "0.5"), with exponent notation for
// very large or very small magnitudes.
func Plain(v float64) string {
	a := math.Abs(v)
	if a != 0 && (a < 1e-4 || a >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}
	return s
}

// Day returns the date portion of an ISO-8601 timestamp.
func Day(ts string) string {
	r := []rune(ts)
	if len(r) > 10 {
		return string(r[:10])
	}
	return ts
}
