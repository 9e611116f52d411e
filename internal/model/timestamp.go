package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// DisplayLayout is how timestamps are shown to operators.
const DisplayLayout = "2006-01-02 15:04:05"

// isoLayouts are tried in order. The license API emits ISO-8601 both with
// and without a zone offset.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z07",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// Timestamp is an ISO-8601 instant as sent by the license API.
// A zero Timestamp means the field was absent or null.
type Timestamp struct {
	time.Time
}

// ParseTimestamp parses s with the accepted ISO-8601 layouts.
func ParseTimestamp(s string) (Timestamp, error) {
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: t}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("invalid ISO-8601 timestamp %q", s)
}

// UnmarshalJSON accepts a JSON string, null or an empty string.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*t = Timestamp{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	if s == "" {
		*t = Timestamp{}
		return nil
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalJSON writes RFC3339Nano, or null for the zero value.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}

// Display formats t for humans, or returns "" when t is zero.
func (t Timestamp) Display() string {
	if t.IsZero() {
		return ""
	}
	return t.Time.Format(DisplayLayout)
}
