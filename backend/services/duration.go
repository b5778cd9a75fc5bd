package services

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Two duration parsers ship deliberately. The active-challenge check uses the
// fixed-ratio ParseDurationDays; the expiry sweeper uses the calendar-accurate
// ComputeExpiry. "one month" is 30 days on the first path and a real calendar
// month on the second. Unifying them would change behavior either way, so the
// split stays until product decides which one is right.

var ErrUnparsableDuration = errors.New("unparsable duration")

var (
	durationPattern = regexp.MustCompile(`(\d+|[a-z]+)\s+(day|days|week|weeks|month|months|year|years)`)
	digitRun        = regexp.MustCompile(`\d+`)
)

var wordNumbers = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
}

// ParseDurationDays converts a free-form duration string to a day count with
// fixed approximations: day=1, week=7, month=30, year=365. A bare integer is
// taken as days. An unrecognized unit or a missing number yields 0, which
// callers treat as "expires immediately".
func ParseDurationDays(duration string) int {
	s := strings.TrimSpace(duration)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}

	s = strings.ToLower(s)
	value := 0
	if m := digitRun.FindString(s); m != "" {
		value, _ = strconv.Atoi(m)
	}

	switch {
	case strings.Contains(s, "year"):
		return value * 365
	case strings.Contains(s, "month"):
		return value * 30
	case strings.Contains(s, "week"):
		return value * 7
	case strings.Contains(s, "day"):
		return value
	}
	return 0
}

// ComputeExpiry resolves "<number-or-number-word> <unit>" into a concrete
// expiry timestamp from created. Days and weeks are added as days; months and
// years use calendar arithmetic. Anything it cannot classify returns
// ErrUnparsableDuration.
func ComputeExpiry(created time.Time, duration string) (time.Time, error) {
	d := strings.ToLower(strings.TrimSpace(duration))

	m := durationPattern.FindStringSubmatch(d)
	if m == nil {
		return time.Time{}, ErrUnparsableDuration
	}
	numToken, unit := m[1], m[2]

	n, err := strconv.Atoi(numToken)
	if err != nil {
		word, ok := wordNumbers[numToken]
		if !ok {
			return time.Time{}, ErrUnparsableDuration
		}
		n = word
	}

	switch unit {
	case "day", "days":
		return created.AddDate(0, 0, n), nil
	case "week", "weeks":
		return created.AddDate(0, 0, n*7), nil
	case "month", "months":
		return created.AddDate(0, n, 0), nil
	case "year", "years":
		return created.AddDate(n, 0, 0), nil
	}
	return time.Time{}, ErrUnparsableDuration
}
