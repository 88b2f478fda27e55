package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// formatNumber abbreviates large magnitudes for the summary table.
func formatNumber(num float64) string {
	switch abs := math.Abs(num); {
	case math.IsNaN(num):
		return "n/a"
	case abs >= 1000000:
		return fmt.Sprintf("%.2fM", num/1000000)
	case abs >= 1000:
		return fmt.Sprintf("%.1fK", num/1000)
	default:
		return fmt.Sprintf("%.2f", num)
	}
}

// formatThousands rounds v and groups its digits with commas.
func formatThousands(v float64) string {
	digits := strconv.FormatInt(int64(math.Round(math.Abs(v))), 10)
	var b strings.Builder
	if v < 0 && digits != "0" {
		b.WriteByte('-')
	}
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// formatPercent prints a percentage with one decimal, n/a for NaN.
func formatPercent(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", v)
}
