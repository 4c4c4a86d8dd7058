package valueobjects

import (
	"errors"
	"time"
)

const logDateLayout = "2006-01-02"

// LogDate is the calendar day a song log belongs to. Together with the owner
// it forms the natural identity of a log: one entry per user per day.
type LogDate struct {
	value string
}

// NewLogDate creates a LogDate for the day containing t, in UTC
func NewLogDate(t time.Time) LogDate {
	return LogDate{value: t.UTC().Format(logDateLayout)}
}

// Today returns the LogDate for the current UTC day
func Today() LogDate {
	return NewLogDate(time.Now())
}

// NewLogDateFromString parses a YYYY-MM-DD string into a LogDate
func NewLogDateFromString(s string) (LogDate, error) {
	if s == "" {
		return LogDate{}, errors.New("log date cannot be empty")
	}
	t, err := time.Parse(logDateLayout, s)
	if err != nil {
		return LogDate{}, errors.New("log date must be in YYYY-MM-DD format")
	}
	return LogDate{value: t.Format(logDateLayout)}, nil
}

// String returns the YYYY-MM-DD representation
func (d LogDate) String() string {
	return d.value
}

// Time returns the date as midnight UTC
func (d LogDate) Time() time.Time {
	t, _ := time.Parse(logDateLayout, d.value)
	return t
}

// Equals checks if two LogDates are the same day
func (d LogDate) Equals(other LogDate) bool {
	return d.value == other.value
}

// Before reports whether d is an earlier day than other
func (d LogDate) Before(other LogDate) bool {
	return d.value < other.value
}

// IsZero checks if the LogDate is the zero value
func (d LogDate) IsZero() bool {
	return d.value == ""
}

// MarshalJSON implements json.Marshaler
func (d LogDate) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.value + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (d *LogDate) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return errors.New("LogDate must be a string")
	}
	parsed, err := NewLogDateFromString(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
