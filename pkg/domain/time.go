package domain

import (
	"fmt"
	"strconv"
	"time"
)

// Time is the timestamp type used on every entity. It marshals as RFC 3339
// and additionally accepts epoch milliseconds on unmarshal, which is how the
// hosted backend encodes its native timestamp type. Callers always see
// ISO-8601 regardless of the active backend.
type Time struct {
	time.Time
}

// Now returns the current time as a domain Time.
func Now() Time {
	return Time{time.Now().UTC()}
}

// NewTime wraps a time.Time.
func NewTime(t time.Time) Time {
	return Time{t}
}

func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(strconv.Quote(t.Format(time.RFC3339Nano))), nil
}

func (t *Time) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		t.Time = time.Time{}
		return nil
	}
	if s[0] == '"' {
		raw, err := strconv.Unquote(s)
		if err != nil {
			return fmt.Errorf("parse timestamp %s: %w", s, err)
		}
		parsed, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return fmt.Errorf("parse timestamp %q: %w", raw, err)
		}
		t.Time = parsed
		return nil
	}
	// Epoch milliseconds from the backend's native temporal type.
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("parse timestamp %s: %w", s, err)
	}
	t.Time = time.UnixMilli(ms).UTC()
	return nil
}
