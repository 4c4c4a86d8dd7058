package valueobjects

import (
	"errors"

	"github.com/google/uuid"
)

// LogID is a value object representing a unique song log identifier
// Value objects are immutable and have no identity beyond their value
type LogID struct {
	value string
}

// NewLogID creates a new random LogID
func NewLogID() LogID {
	return LogID{value: uuid.New().String()}
}

// NewLogIDFromString creates a LogID from an existing string
func NewLogIDFromString(id string) (LogID, error) {
	if id == "" {
		return LogID{}, errors.New("log ID cannot be empty")
	}
	if _, err := uuid.Parse(id); err != nil {
		return LogID{}, errors.New("log ID must be a valid UUID")
	}
	return LogID{value: id}, nil
}

// String returns the string representation of the LogID
func (id LogID) String() string {
	return id.value
}

// Equals checks if two LogIDs are equal
func (id LogID) Equals(other LogID) bool {
	return id.value == other.value
}

// IsZero checks if the LogID is the zero value
func (id LogID) IsZero() bool {
	return id.value == ""
}

// MarshalJSON implements json.Marshaler
func (id LogID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.value + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (id *LogID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return errors.New("LogID must be a string")
	}
	id.value = string(data[1 : len(data)-1])
	return nil
}
