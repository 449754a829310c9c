package util

import "time"

const (
	// DateLayout is the calendar date format stored in the data files.
	DateLayout = "2006-01-02"
	// DateTimeLayout is used in human readable notifications.
	DateTimeLayout = "2006-01-02 15:04:05"
)

// NowUTC exposes time.Now for deterministic testing.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// Today returns the current UTC date in DateLayout.
func Today() string {
	return NowUTC().Format(DateLayout)
}
