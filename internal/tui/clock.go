package tui

import "time"

// clockLayout matches the en-US long date-time used on the web dashboard.
const clockLayout = "Monday, January 2, 2006, 03:04:05 PM"

// formatClock renders t for the header.
func formatClock(t time.Time) string {
	return t.Format(clockLayout)
}
