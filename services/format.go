package services

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatAmount groups the digits of n in threes: 15000000 -> "15,000,000".
func FormatAmount(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	digits := strconv.FormatInt(n, 10)

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatNaira renders a price the way listing cards show it.
func FormatNaira(n int64) string {
	return "₦" + FormatAmount(n)
}

// FormatMillions renders an average price in millions with one decimal,
// e.g. 12000000 -> "₦12.0M".
func FormatMillions(n int64) string {
	return fmt.Sprintf("₦%.1fM", float64(n)/1_000_000)
}

// FormatBaths drops the fraction for whole bathroom counts.
func FormatBaths(b float64) string {
	return strconv.FormatFloat(b, 'f', -1, 64)
}
