// Package timeutil provides duration formatting for run reports.
package timeutil

import (
	"fmt"
	"time"
)

// FormatDuration renders d rounded to whole seconds as "Hh Mm Ss",
// dropping leading zero units.
//
// Example:
//
//	FormatDuration(0)                  // "0s"
//	FormatDuration(90 * time.Second)   // "1m 30s"
//	FormatDuration(3661 * time.Second) // "1h 1m 1s"
//	FormatDuration(3600 * time.Second) // "1h 0m 0s"
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d.Round(time.Second) / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60

	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, secs)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, secs)
	default:
		return fmt.Sprintf("%ds", secs)
	}
}
