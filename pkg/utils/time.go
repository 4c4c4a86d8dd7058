package utils

import "time"

// DateLayout is the calendar-date layout used for song log identities.
const DateLayout = "2006-01-02"

// NowRFC3339 returns the current time in RFC3339 format
func NowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// ParseRFC3339 parses a time string in RFC3339 format
func ParseRFC3339(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// FormatDate formats a time as a calendar date (YYYY-MM-DD)
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a calendar date in YYYY-MM-DD form
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// TodayUTC returns the current calendar date in UTC
func TodayUTC() string {
	return time.Now().UTC().Format(DateLayout)
}
