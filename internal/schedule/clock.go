package schedule

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

var (
	ErrMalformedTime = errors.New("malformed reminder time: expected HH:mm")
)

// ParseClock parses a "HH:mm" reminder time.
// Hour must be in [0,23] and minute in [0,59].
func ParseClock(s string) (hour, minute int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, ErrMalformedTime
	}

	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, ErrMalformedTime
	}

	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, ErrMalformedTime
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, ErrMalformedTime
	}

	return hour, minute, nil
}

// Next returns the first instant strictly after now whose wall clock reads hour:minute:00
// in now's location. It is today when that is still ahead, tomorrow otherwise.
func Next(now time.Time, hour, minute int) time.Time {
	y, m, d := now.Date()
	at := time.Date(y, m, d, hour, minute, 0, 0, now.Location())
	if !at.After(now) {
		at = time.Date(y, m, d+1, hour, minute, 0, 0, now.Location())
	}
	return at
}
