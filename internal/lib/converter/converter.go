package converter

import "fmt"

// FormatPercent renders a ratio as a display percentage, e.g. 0.1234 -> "12.34%".
func FormatPercent(ratio float64) string {
	return fmt.Sprintf("%.2f%%", ratio*100)
}

// FailureRate is the ratio of failed to total verifications. A zero total
// yields zero rather than NaN.
func FailureRate(failed, total int) float64 {
	if total == 0 {
		return 0
	}

	return float64(failed) / float64(total)
}
