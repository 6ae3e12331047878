package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTimeUnmarshalRFC3339(t *testing.T) {
	var ts Time
	if err := json.Unmarshal([]byte(`"2024-03-01T12:30:00Z"`), &ts); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	want := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	if !ts.Equal(want) {
		t.Errorf("got %v, want %v", ts.Time, want)
	}
}

func TestTimeUnmarshalEpochMillis(t *testing.T) {
	var ts Time
	if err := json.Unmarshal([]byte(`1709296200000`), &ts); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	want := time.UnixMilli(1709296200000).UTC()
	if !ts.Equal(want) {
		t.Errorf("got %v, want %v", ts.Time, want)
	}
}

func TestTimeUnmarshalEmptyAndNull(t *testing.T) {
	for _, raw := range []string{`""`, `null`} {
		var ts Time
		if err := json.Unmarshal([]byte(raw), &ts); err != nil {
			t.Fatalf("Unmarshal(%s) error: %v", raw, err)
		}
		if !ts.IsZero() {
			t.Errorf("Unmarshal(%s): got %v, want zero", raw, ts.Time)
		}
	}
}

func TestTimeMarshalZeroIsEmptyString(t *testing.T) {
	data, err := json.Marshal(Time{})
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if string(data) != `""` {
		t.Errorf("got %s, want \"\"", data)
	}
}

func TestTimeRoundTrip(t *testing.T) {
	orig := Now()
	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	var back Time
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if !back.Equal(orig.Time) {
		t.Errorf("round trip: got %v, want %v", back.Time, orig.Time)
	}
}

func TestTimeUnmarshalGarbage(t *testing.T) {
	var ts Time
	if err := json.Unmarshal([]byte(`"not a timestamp"`), &ts); err == nil {
		t.Error("expected error for malformed timestamp")
	}
}
