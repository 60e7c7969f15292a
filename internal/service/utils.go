package service

import (
	"strings"
	"time"
)

// sanitizeUTF8 drops invalid UTF-8 sequences so PostgreSQL accepts the text.
func sanitizeUTF8(s string) string {
	return strings.ToValidUTF8(s, "")
}

// Layouts accepted for date-times that carry no offset.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Layouts accepted for date-times that carry an explicit offset.
var offsetLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02T15:04Z07:00",
}

func parseNaive(value string, loc *time.Location) (time.Time, error) {
	var lastErr error
	for _, layout := range naiveLayouts {
		t, err := time.ParseInLocation(layout, value, loc)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func parseWithOffset(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range offsetLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// restorePlus undoes query-string decoding of "+05:00" into " 05:00".
func restorePlus(value string) string {
	n := len(value)
	if n > 6 && value[n-6] == ' ' && value[n-3] == ':' {
		return value[:n-6] + "+" + value[n-5:]
	}
	if n > 5 && value[n-5] == ' ' && strings.Count(value, " ") == 1 && strings.Contains(value, "T") {
		return value[:n-5] + "+" + value[n-4:]
	}
	return value
}

// parseWallClock extracts the calendar and clock fields of value, ignoring
// any offset it carries. The result is expressed in UTC.
func parseWallClock(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := parseWithOffset(value); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC), nil
	}
	return parseNaive(value, time.UTC)
}

// inLocation reinterprets the wall clock of t in loc.
func inLocation(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
}
