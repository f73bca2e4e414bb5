package layout

import (
	"errors"
	"fmt"

	"github.com/sadopc/playtally/internal/entry"
)

// ErrNoCalendar is returned when there are no entries to place on a month.
var ErrNoCalendar = errors.New("calendar: no entries")

// CalendarCell places one day of the month on a 7-column grid.
type CalendarCell struct {
	Day   int `json:"day"`
	Row   int `json:"row"`
	Col   int `json:"col"`
	Count int `json:"count"`
}

// CalendarGrid is the month grid. Leading and trailing slots outside the month have
// no cell.
type CalendarGrid struct {
	Year         int            `json:"year"`
	Month        int            `json:"month"` // 0-based
	StartWeekday int            `json:"start_weekday"`
	DaysInMonth  int            `json:"days_in_month"`
	Rows         int            `json:"rows"`
	MaxCount     int            `json:"max_count"`
	Cells        []CalendarCell `json:"cells"`
}

// Title renders "January 2025".
func (g CalendarGrid) Title() string {
	return fmt.Sprintf("%s %d", entry.CalendarDate{Year: g.Year, Month: g.Month, Day: 1}.Time().Month(), g.Year)
}

// Cell returns the cell for a day of the month.
func (g CalendarGrid) Cell(day int) (CalendarCell, bool) {
	if day < 1 || day > len(g.Cells) {
		return CalendarCell{}, false
	}
	return g.Cells[day-1], true
}

// LayoutCalendar lays out the month of the earliest entry. Only one month is shown;
// entries from other months are not counted.
func LayoutCalendar(entries []entry.Entry) (CalendarGrid, error) {
	if len(entries) == 0 {
		return CalendarGrid{}, ErrNoCalendar
	}
	first := entries[0].Date
	for _, e := range entries[1:] {
		if e.Date.Before(first) {
			first = e.Date
		}
	}
	counts := make(map[int]int)
	for _, e := range entries {
		if e.Date.SameMonth(first) {
			counts[e.Date.Day]++
		}
	}
	return LayoutMonth(first.Year, first.Month, counts), nil
}

// LayoutMonth places every day of a 0-based month, with counts keyed by day of month.
func LayoutMonth(year, month int, counts map[int]int) CalendarGrid {
	start := int(entry.CalendarDate{Year: year, Month: month, Day: 1}.Weekday())
	days := entry.DaysInMonth(year, month)
	g := CalendarGrid{
		Year:         year,
		Month:        month,
		StartWeekday: start,
		DaysInMonth:  days,
		Rows:         (start + days + 6) / 7,
		Cells:        make([]CalendarCell, days),
	}
	for day := 1; day <= days; day++ {
		slot := start + day - 1
		c := CalendarCell{Day: day, Row: slot / 7, Col: slot % 7, Count: counts[day]}
		g.Cells[day-1] = c
		g.MaxCount = max(g.MaxCount, c.Count)
	}
	return g
}
