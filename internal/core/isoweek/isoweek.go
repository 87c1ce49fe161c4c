// Package isoweek implements ISO-8601 week arithmetic over civil dates.
//
// A civil date is a time.Time at 00:00 UTC. Callers that hold wall-clock times in a
// local calendar convert them with Date before using the rest of the package.
package isoweek

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidDate = errors.New("invalid date")

const (
	DateLayout  = "2006-01-02"
	DaysPerWeek = 7
)

// Week is a Monday to Sunday range. End is always Start + 6 days.
type Week struct {
	Start time.Time `json:"start_date"`
	End   time.Time `json:"end_date"`
}

// Contains reports whether d falls on one of the week's seven days.
func (w Week) Contains(d time.Time) bool {
	d = Date(d)
	return !d.Before(w.Start) && !d.After(w.End)
}

// Key identifies an ISO week by its week-year and week number.
type Key struct {
	Year int
	Week int
}

func (k Key) String() string {
	return fmt.Sprintf("%04d-W%02d", k.Year, k.Week)
}

// Date drops the clock part of t, keeping the calendar day as seen in t's location.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current civil date in loc.
func Today(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return Date(time.Now().In(loc))
}

// ParseDate parses a YYYY-MM-DD string into a civil date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q (expected YYYY-MM-DD)", ErrInvalidDate, s)
	}
	return d, nil
}

// weekdayIndex maps Monday=0 ... Sunday=6.
func weekdayIndex(d time.Time) int {
	return (int(d.Weekday()) + 6) % DaysPerWeek
}

func StartOfWeek(d time.Time) time.Time {
	d = Date(d)
	return d.AddDate(0, 0, -weekdayIndex(d))
}

func EndOfWeek(d time.Time) time.Time {
	return StartOfWeek(d).AddDate(0, 0, DaysPerWeek-1)
}

// ShiftWeek moves n weeks away from the week containing d and returns that week's Monday.
func ShiftWeek(d time.Time, n int) time.Time {
	return StartOfWeek(d).AddDate(0, 0, DaysPerWeek*n)
}

// WeekOf returns the ISO week containing d.
func WeekOf(d time.Time) Week {
	start := StartOfWeek(d)
	return Week{Start: start, End: start.AddDate(0, 0, DaysPerWeek-1)}
}

// ToKey returns the ISO week of d. The week-year is the year holding that week's Thursday.
func ToKey(d time.Time) Key {
	thursday := StartOfWeek(d).AddDate(0, 0, 3)
	return Key{
		Year: thursday.Year(),
		Week: (thursday.YearDay()-1)/DaysPerWeek + 1,
	}
}

// WeeksInYear returns 52 or 53. December 28th always falls in the last ISO week.
func WeeksInYear(year int) int {
	return ToKey(time.Date(year, time.December, 28, 0, 0, 0, 0, time.UTC)).Week
}

// FromKey returns the Monday to Sunday range of an ISO week.
func FromKey(k Key) Week {
	jan4 := time.Date(k.Year, time.January, 4, 0, 0, 0, 0, time.UTC)
	start := StartOfWeek(jan4).AddDate(0, 0, DaysPerWeek*(k.Week-1))
	return Week{Start: start, End: start.AddDate(0, 0, DaysPerWeek-1)}
}

// ParseKey parses the canonical YYYY-Www form produced by Key.String.
func ParseKey(s string) (Key, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	year, week, ok := strings.Cut(s, "-W")
	if !ok || len(year) != 4 || len(week) != 2 {
		return Key{}, fmt.Errorf("%w: week key %q (expected YYYY-Www)", ErrInvalidDate, s)
	}

	y, err := strconv.Atoi(year)
	if err != nil {
		return Key{}, fmt.Errorf("%w: week key year %q", ErrInvalidDate, year)
	}
	w, err := strconv.Atoi(week)
	if err != nil {
		return Key{}, fmt.Errorf("%w: week key number %q", ErrInvalidDate, week)
	}

	if w < 1 || w > WeeksInYear(y) {
		return Key{}, fmt.Errorf("%w: week %d out of range for %d", ErrInvalidDate, w, y)
	}

	return Key{Year: y, Week: w}, nil
}

// Format renders a week for display, e.g. "2 Jun – 8 Jun, 2025" or
// "29 Dec, 2025 – 4 Jan, 2026" when the range crosses a year.
func Format(w Week) string {
	if w.Start.Year() != w.End.Year() {
		return fmt.Sprintf("%s – %s", w.Start.Format("2 Jan, 2006"), w.End.Format("2 Jan, 2006"))
	}
	return fmt.Sprintf("%s – %s", w.Start.Format("2 Jan"), w.End.Format("2 Jan, 2006"))
}

// DaysBetween counts whole calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(Date(b).Sub(Date(a)).Hours() / 24)
}
