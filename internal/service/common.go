package service

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

func validatePositiveFloat(name string, value float64) error {
	if value <= 0 {
		return fmt.Errorf("%s must be > 0", name)
	}
	return nil
}

func validateNonNegativeFloat(name string, value float64) error {
	if value < 0 {
		return fmt.Errorf("%s must be >= 0", name)
	}
	return nil
}

func validateDate(value string) error {
	if _, err := time.ParseInLocation(dateLayout, strings.TrimSpace(value), time.Local); err != nil {
		return fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", value)
	}
	return nil
}

// DateKey formats t as a local YYYY-MM-DD day key.
func DateKey(t time.Time) string {
	return t.In(time.Local).Format(dateLayout)
}

// ParseDate parses a YYYY-MM-DD value as local midnight.
func ParseDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, strings.TrimSpace(value), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", value)
	}
	return t, nil
}

// AtTimeOfDay returns day's calendar date combined with clock's hour, minute,
// and second.
func AtTimeOfDay(day, clock time.Time) time.Time {
	day = day.In(time.Local)
	clock = clock.In(time.Local)
	return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), clock.Second(), 0, time.Local)
}

func startOfDay(t time.Time) time.Time {
	t = t.In(time.Local)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}

func sameDay(a, b time.Time) bool {
	a = a.In(time.Local)
	b = b.In(time.Local)
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
