package util

import (
	"math"
	"time"
)

// FormatDate renders a timestamp as YY.MM.DD, the display format used
// throughout the API responses.
func FormatDate(t time.Time) string {
	return t.Format("06.01.02")
}

// DaysLeft returns the number of days until end, rounded up. Past dates
// yield negative values.
func DaysLeft(end, now time.Time) int {
	diff := end.Sub(now).Hours() / 24
	return int(math.Ceil(diff))
}
