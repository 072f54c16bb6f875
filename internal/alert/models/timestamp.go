package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Timestamp tolerates the two creation-time representations that coexist in
// the alert collection: ISO-8601 strings written by older mobile clients and
// native timestamps written by the server. New writes always use RFC3339
// UTC; reads keep accepting both indefinitely since the stored records are
// never migrated.
type Timestamp struct {
	t   time.Time
	raw string
}

// sortableLayout is fixed-width so lexicographic order over keys equals
// chronological order regardless of fractional precision in the source.
const sortableLayout = "2006-01-02T15:04:05.000000000Z"

// NewTimestamp builds a Timestamp from a native time.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{t: t.UTC()}
}

// ParseTimestamp builds a Timestamp from a textual form, keeping the raw
// string when it is not parseable so mixed feeds still produce a total order.
func ParseTimestamp(s string) Timestamp {
	ts := Timestamp{raw: s}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05.999999999", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			ts.t = t.UTC()
			break
		}
	}
	return ts
}

// Time returns the parsed time, zero when the source was unparseable.
func (ts Timestamp) Time() time.Time { return ts.t }

// IsZero reports whether the timestamp carries no information at all.
func (ts Timestamp) IsZero() bool { return ts.t.IsZero() && ts.raw == "" }

// Key is the single comparable representation used for feed ordering.
func (ts Timestamp) Key() string {
	if !ts.t.IsZero() {
		return ts.t.Format(sortableLayout)
	}
	return ts.raw
}

// Compare orders two timestamps chronologically when both parsed and falls
// back to lexicographic key comparison otherwise. Always total, never panics.
func (ts Timestamp) Compare(other Timestamp) int {
	if !ts.t.IsZero() && !other.t.IsZero() {
		return ts.t.Compare(other.t)
	}
	return strings.Compare(ts.Key(), other.Key())
}

// String returns the canonical textual form.
func (ts Timestamp) String() string {
	if !ts.t.IsZero() {
		return ts.t.Format(time.RFC3339Nano)
	}
	return ts.raw
}

// MarshalJSON emits the canonical RFC3339 UTC string.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(ts.String())
}

// UnmarshalJSON accepts an ISO-8601 string, a unix-milliseconds number, or a
// {seconds, nanos} object, the shapes observed across producers.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*ts = Timestamp{}
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*ts = ParseTimestamp(s)
		return nil
	case '{':
		var obj struct {
			Seconds int64 `json:"seconds"`
			Nanos   int64 `json:"nanos"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		*ts = NewTimestamp(time.Unix(obj.Seconds, obj.Nanos))
		return nil
	default:
		var millis int64
		if err := json.Unmarshal(data, &millis); err != nil {
			return fmt.Errorf("unsupported timestamp form: %s", data)
		}
		*ts = NewTimestamp(time.UnixMilli(millis))
		return nil
	}
}
