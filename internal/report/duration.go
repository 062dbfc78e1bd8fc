package report

import "fmt"

// FormatDuration renders seconds as a compact h/m/s string, dropping
// zero leading units: "1h1m1s", "2m5s", "59s". Fractions are truncated.
func FormatDuration(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int64(seconds)
	hrs := total / 3600
	mins := (total % 3600) / 60
	secs := total % 60

	switch {
	case hrs > 0:
		return fmt.Sprintf("%dh%dm%ds", hrs, mins, secs)
	case mins > 0:
		return fmt.Sprintf("%dm%ds", mins, secs)
	default:
		return fmt.Sprintf("%ds", secs)
	}
}
