package rentalstore

import (
	"errors"
	"strings"
	"time"
)

const (
	layoutWithMicros    = "2006-01-02T15:04:05.000000-07:00"
	layoutWithoutMicros = "2006-01-02T15:04:05-07:00"
)

// offsetLayouts are the ISO-8601 forms with an explicit offset accepted on input.
var offsetLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999-0700",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999-0700",
}

// naiveLayouts are accepted only for values read back from a store, they are interpreted as UTC.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// FormatTimestamp renders t as ISO-8601 with a numeric offset.
// Microseconds are included only when non-zero, the offset of t is preserved.
func FormatTimestamp(t time.Time) string {
	if t.Nanosecond()/int(time.Microsecond) != 0 {
		return t.Format(layoutWithMicros)
	}

	return t.Format(layoutWithoutMicros)
}

// ParseTimestamp parses an ISO-8601 timestamp which must carry an explicit offset.
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)

	for _, layout := range offsetLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}

	return time.Time{}, errors.Join(ErrInvalidTimestamp, errors.New("expected ISO-8601 with offset, got: "+value))
}

// ParseStoredTimestamp parses a timestamp read from a store.
// Unlike ParseTimestamp it tolerates a missing offset and assumes UTC in that case.
func ParseStoredTimestamp(value string) (time.Time, error) {
	if t, err := ParseTimestamp(value); err == nil {
		return t, nil
	}

	value = strings.TrimSpace(value)
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, nil
		}
	}

	return time.Time{}, errors.Join(ErrInvalidTimestamp, errors.New("unparsable stored timestamp: "+value))
}
