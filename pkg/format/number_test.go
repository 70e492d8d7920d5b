package format

import (
	"math"
	"testing"
)

func TestUSD(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0.000000"},
		{0.5, "$0.500000"},
		{0.999999, "$0.999999"},
		{1, "$1.00"},
		{1.005, "$1.00"}, // 1.005 is stored just below the tie
		{999.994, "$999.99"},
		{1234.5, "$1,234.50"},
		{1234567.891, "$1,234,567.89"},
		{-0.25, "$-0.250000"},
		{-1, "$-1.00"},
		{-98765.4321, "$-98,765.43"},
	}
	for _, tt := range tests {
		if got := USD(tt.in); got != tt.want {
			t.Errorf("USD(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "+0.00%"},
		{math.Copysign(0, -1), "+0.00%"},
		{12.345, "+12.35%"},
		{-3, "-3.00%"},
		{-0.001, "-0.00%"},
		{150, "+150.00%"},
	}
	for _, tt := range tests {
		if got := Percent(tt.in); got != tt.want {
			t.Errorf("Percent(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestQuantity(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0.99999999, "0.99999999"},
		{0.5, "0.50000000"},
		{1, "1.0000"},
		{99.9999, "99.9999"},
		{100, "100.00"},
		{1234.5678, "1,234.57"},
		{-2.5, "-2.5000"},
		{-150, "-150.00"},
		{0, "0.00000000"},
	}
	for _, tt := range tests {
		if got := Quantity(tt.in); got != tt.want {
			t.Errorf("Quantity(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGrouped(t *testing.T) {
	tests := []struct {
		in   float64
		prec int
		want string
	}{
		{0, 2, "0.00"},
		{999, 2, "999.00"},
		{1000, 2, "1,000.00"},
		{100000, 0, "100,000"},
		{1234567.5, 4, "1,234,567.5000"},
		{-1234.5, 2, "-1,234.50"},
	}
	for _, tt := range tests {
		if got := Grouped(tt.in, tt.prec); got != tt.want {
			t.Errorf("Grouped(%v, %d) = %q, want %q", tt.in, tt.prec, got, tt.want)
		}
	}
}

func TestPlain(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.0"},
		{1, "1.0"},
		{0.5, "0.5"},
		{5000, "5000.0"},
		{0.00012, "0.00012"},
		{0.00001, "1e-05"},
		{1e16, "1e+16"},
	}
	for _, tt := range tests {
		if got := Plain(tt.in); got != tt.want {
			t.Errorf("Plain(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDay(t *testing.T) {
	if got := Day("2025-01-15T10:30:00Z"); got != "2025-01-15" {
		t.Errorf("Day() = %q", got)
	}
	if got := Day("2025"); got != "2025" {
		t.Errorf("Day() = %q", got)
	}
}
