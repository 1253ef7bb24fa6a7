package menu

import (
	"strconv"
	"strings"
)

const (
	unitThousand = "ribu"
	unitMillion  = "juta"
)

// ParsePrice converts a human readable price ("15 ribu", "2 juta",
// "Rp 25.000") into rupiah. It never fails: empty or digitless input is 0.
func ParsePrice(text string) int64 {
	if text == "" {
		return 0
	}

	lower := strings.ToLower(text)
	multiplier := int64(1)
	switch {
	case strings.Contains(lower, unitThousand):
		multiplier = 1_000
	case strings.Contains(lower, unitMillion):
		multiplier = 1_000_000
	}

	digits := keepDigits(text)
	if digits == "" {
		return 0
	}

	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0
	}

	// overflow guard for absurdly long digit runs
	if n > (1<<63-1)/multiplier {
		return 0
	}
	return n * multiplier
}

func keepDigits(s string) string {
	var b strings.Builder
	for _, c := range s {
		if c >= '0' && c <= '9' {
			b.WriteRune(c)
		}
	}
	return b.String()
}

// FormatPrice renders an amount the way receipts show it: "Rp 25.000".
func FormatPrice(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	raw := strconv.FormatInt(amount, 10)
	var b strings.Builder
	for i, c := range raw {
		if i > 0 && (len(raw)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(c)
	}
	return "Rp " + sign + b.String()
}
