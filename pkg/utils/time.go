package utils

import "time"

// DateLayout is the calendar day format used for bookings and comments
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD calendar day
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
