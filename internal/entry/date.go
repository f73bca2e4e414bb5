package entry

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the fixed input format of the Date column (M/D/YYYY).
const DateLayout = "1/2/2006"

// CalendarDate is a day without a time of day. Month is 0-based (January = 0).
type CalendarDate struct {
	Year  int
	Month int
	Day   int
}

// NewDate normalizes overflowing fields (e.g. day 32) the same way time.Date does.
func NewDate(year, month, day int) CalendarDate {
	return FromTime(time.Date(year, time.Month(month+1), day, 0, 0, 0, 0, time.UTC))
}

// FromTime truncates t to its calendar day in t's location.
func FromTime(t time.Time) CalendarDate {
	return CalendarDate{Year: t.Year(), Month: int(t.Month()) - 1, Day: t.Day()}
}

// ParseDate parses an M/D/YYYY string.
func ParseDate(s string) (CalendarDate, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return CalendarDate{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return FromTime(t), nil
}

// ParseISO parses a YYYY-MM-DD string, the storage format.
func ParseISO(s string) (CalendarDate, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return CalendarDate{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return FromTime(t), nil
}

// Time returns midnight UTC of the date.
func (d CalendarDate) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month+1), d.Day, 0, 0, 0, 0, time.UTC)
}

func (d CalendarDate) Compare(o CalendarDate) int {
	switch {
	case d.Year != o.Year:
		return cmpInt(d.Year, o.Year)
	case d.Month != o.Month:
		return cmpInt(d.Month, o.Month)
	default:
		return cmpInt(d.Day, o.Day)
	}
}

func (d CalendarDate) Before(o CalendarDate) bool { return d.Compare(o) < 0 }
func (d CalendarDate) After(o CalendarDate) bool  { return d.Compare(o) > 0 }
func (d CalendarDate) Equal(o CalendarDate) bool  { return d == o }

func (d CalendarDate) IsZero() bool { return d == CalendarDate{} }

// AddDays steps across month and year boundaries.
func (d CalendarDate) AddDays(n int) CalendarDate {
	return FromTime(d.Time().AddDate(0, 0, n))
}

// DaysUntil returns the number of whole days from d to o (negative if o is earlier).
func (d CalendarDate) DaysUntil(o CalendarDate) int {
	return int(o.Time().Sub(d.Time()).Hours() / 24)
}

// Weekday of the date, Sunday = 0.
func (d CalendarDate) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// SameMonth reports whether both dates fall in the same calendar month.
func (d CalendarDate) SameMonth(o CalendarDate) bool {
	return d.Year == o.Year && d.Month == o.Month
}

// DaysInMonth uses day 0 of the following month, which time.Date rolls back to the
// last day of this one.
func (d CalendarDate) DaysInMonth() int {
	return DaysInMonth(d.Year, d.Month)
}

// DaysInMonth returns the length of a 0-based month.
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month+2), 0, 0, 0, 0, 0, time.UTC).Day()
}

// String renders YYYY-MM-DD.
func (d CalendarDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month+1, d.Day)
}

// Format renders the input layout M/D/YYYY.
func (d CalendarDate) Format() string {
	return fmt.Sprintf("%d/%d/%d", d.Month+1, d.Day, d.Year)
}

// Short renders "Jan 02".
func (d CalendarDate) Short() string {
	return d.Time().Format("Jan 02")
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
