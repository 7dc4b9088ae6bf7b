// Package clock converts wall-clock instants into civil dates and times-of-day in
// one fixed branch timezone. Every deadline and "today" comparison in the system
// goes through this package, so the deployment timezone never leaks into business
// semantics.
package clock

import (
	"fmt"
	"time"
)

// DateLayout is the civil-date string format used as a natural key everywhere.
const DateLayout = "2006-01-02"

// Clock yields the current instant. Tests substitute a fixed implementation.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Fixed is a Clock pinned to one instant.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time { return f.T }

// Calendar maps instants to civil dates and times in a fixed timezone.
type Calendar struct {
	loc   *time.Location
	clock Clock
}

// NewCalendar loads the named timezone. A nil clock defaults to the system clock.
func NewCalendar(tz string, clk Clock) (*Calendar, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", tz, err)
	}
	if clk == nil {
		clk = SystemClock{}
	}
	return &Calendar{loc: loc, clock: clk}, nil
}

// Now returns the current instant shifted into the civil timezone.
func (c *Calendar) Now() time.Time {
	return c.clock.Now().In(c.loc)
}

// Location exposes the civil timezone, e.g. for cron scheduling.
func (c *Calendar) Location() *time.Location { return c.loc }

// Today returns the current civil date as YYYY-MM-DD.
func (c *Calendar) Today() string {
	return c.Now().Format(DateLayout)
}

// Tomorrow returns the next civil date as YYYY-MM-DD.
func (c *Calendar) Tomorrow() string {
	return c.Now().AddDate(0, 0, 1).Format(DateLayout)
}

// DateOf converts an absolute instant to its civil date.
func (c *Calendar) DateOf(t time.Time) string {
	return t.In(c.loc).Format(DateLayout)
}

// TimeOfDay returns the civil wall-clock hour and minute.
func (c *Calendar) TimeOfDay() (hour, minute int) {
	now := c.Now()
	return now.Hour(), now.Minute()
}

// IsPast reports whether the given civil time of day has already passed today.
func (c *Calendar) IsPast(hour, minute int) bool {
	h, m := c.TimeOfDay()
	return h > hour || (h == hour && m >= minute)
}

// SecondsUntil returns the seconds remaining until the given civil time today,
// or 0 if that time has already passed.
func (c *Calendar) SecondsUntil(hour, minute int) int {
	now := c.Now()
	target := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, c.loc)
	if !now.Before(target) {
		return 0
	}
	return int(target.Sub(now).Seconds())
}

// DayBounds returns the absolute [start, end) instants covering the given civil date.
func (c *Calendar) DayBounds(date string) (time.Time, time.Time, error) {
	day, err := time.ParseInLocation(DateLayout, date, c.loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse date %q: %w", date, err)
	}
	return day, day.AddDate(0, 0, 1), nil
}

// ValidDate reports whether date is a well-formed YYYY-MM-DD string.
func ValidDate(date string) bool {
	_, err := time.Parse(DateLayout, date)
	return err == nil
}

// NextDate returns the civil date one day after the given one.
func NextDate(date string) (string, error) {
	day, err := time.Parse(DateLayout, date)
	if err != nil {
		return "", fmt.Errorf("parse date %q: %w", date, err)
	}
	return day.AddDate(0, 0, 1).Format(DateLayout), nil
}
