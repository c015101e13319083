package generator

import (
	"fmt"

	"github.com/google/uuid"
)

// RunID identifies one batch run across logs and structured output.
type RunID struct {
	value uuid.UUID
}

// NewRunID creates a new random run ID.
func NewRunID() RunID {
	return RunID{value: uuid.New()}
}

// ParseRunID parses the string form of a run ID.
func ParseRunID(s string) (RunID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return RunID{}, fmt.Errorf("invalid run ID: %w", err)
	}
	return RunID{value: id}, nil
}

// String returns the canonical UUID form.
func (r RunID) String() string {
	return r.value.String()
}

// IsZero reports whether this is the zero value.
func (r RunID) IsZero() bool {
	return r.value == uuid.Nil
}

// MarshalJSON implements json.Marshaler.
func (r RunID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + r.value.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *RunID) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("invalid run ID JSON")
	}
	id, err := ParseRunID(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*r = id
	return nil
}
