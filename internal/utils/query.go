package utils

import (
	"net/url"
	"time"
)

// QueryDate parses a YYYY-MM-DD query parameter. Returns the zero time
// when the parameter is missing or malformed.
func QueryDate(q url.Values, key string) time.Time {
	v := q.Get(key)
	if v == "" {
		return time.Time{}
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}
	}
	return t
}

// EndOfDay pushes a parsed date to the last instant of that day, so a
// "to" filter includes the whole end day.
func EndOfDay(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.Add(24*time.Hour - time.Nanosecond)
}
