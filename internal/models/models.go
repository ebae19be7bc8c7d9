package models

import (
	"errors"
	"fmt"
	"time"
)

// Observation is one row of the observation table, keyed by column name.
// Only date_time is known; every other column is passed through as stored.
type Observation map[string]any

// UVReading is the most recent UV index for a suburb or postcode. UVIndex is
// nil when the stored value is NULL.
type UVReading struct {
	Location string
	UVIndex  *float64
}

// MinuteKeyLayout matches to_char(date_time, 'YYYY-MM-DD HH24:MI').
const MinuteKeyLayout = "2006-01-02 15:04"

var ErrMalformedKey = errors.New("malformed minute key")

// MinuteKey is a point in time truncated to the minute, used to look up
// observations recorded within that minute.
type MinuteKey struct {
	t time.Time
}

// ParseMinuteKey builds a key from a YYYY-MM-DD date, a zero-padded 24h hour
// and a zero-padded minute.
func ParseMinuteKey(date, hour, minute string) (MinuteKey, error) {
	if !isTwoDigits(hour) {
		return MinuteKey{}, fmt.Errorf("%w: hour %q", ErrMalformedKey, hour)
	}
	if !isTwoDigits(minute) {
		return MinuteKey{}, fmt.Errorf("%w: minute %q", ErrMalformedKey, minute)
	}
	t, err := time.Parse(MinuteKeyLayout, date+" "+hour+":"+minute)
	if err != nil {
		return MinuteKey{}, fmt.Errorf("%w: %w", ErrMalformedKey, err)
	}
	return MinuteKey{t: t}, nil
}

func (k MinuteKey) String() string {
	return k.t.Format(MinuteKeyLayout)
}

func isTwoDigits(s string) bool {
	return len(s) == 2 && s[0] >= '0' && s[0] <= '9' && s[1] >= '0' && s[1] <= '9'
}
