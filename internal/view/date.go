package view

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// dateLayouts are tried in order. Slash-separated day/month forms are left
// out on purpose: they are ambiguous.
var dateLayouts = []string{
	time.DateOnly,
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
	time.DateTime,
	"2006/01/02",
	"20060102",
}

// ParseDate turns an upstream date string into a calendar date (UTC midnight).
// Besides the textual layouts it accepts unix timestamps in seconds or
// milliseconds.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Day(t), nil
		}
	}

	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		switch len(s) {
		case 10:
			return Day(time.Unix(n, 0).UTC()), nil
		case 13:
			return Day(time.UnixMilli(n).UTC()), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

// Day drops the clock part of t, keeping the calendar date as written.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
