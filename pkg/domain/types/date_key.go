package types

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// DateKey is a UTC calendar day in YYYY-MM-DD form. It buckets captures
// and keys daily aggregates.
type DateKey string

const dateKeyLayout = "2006-01-02"

// NewDateKey derives the DateKey for the UTC calendar day containing t
func NewDateKey(t time.Time) DateKey {
	return DateKey(t.UTC().Format(dateKeyLayout))
}

// ParseDateKey validates a YYYY-MM-DD string and returns it as a DateKey
func ParseDateKey(s string) (DateKey, error) {
	if _, err := time.Parse(dateKeyLayout, s); err != nil {
		return "", goerr.Wrap(err, "invalid date key", goerr.V("date", s))
	}
	return DateKey(s), nil
}

// String returns the string representation of the date key
func (d DateKey) String() string {
	return string(d)
}

// Validate checks if the date key is a parseable YYYY-MM-DD string
func (d DateKey) Validate() error {
	_, err := ParseDateKey(string(d))
	return err
}

// DayRange returns the half-open UTC interval [00:00:00, +24h) of the day
func (d DateKey) DayRange() (time.Time, time.Time, error) {
	start, err := time.Parse(dateKeyLayout, string(d))
	if err != nil {
		return time.Time{}, time.Time{}, goerr.Wrap(err, "invalid date key", goerr.V("date", d))
	}
	start = start.UTC()
	return start, start.Add(24 * time.Hour), nil
}
