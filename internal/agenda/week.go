package agenda

import (
	"time"

	"medoffice-agenda/internal/models"
)

// DaysPerWeek is the number of days shown on the calendar. Sunday is
// never displayed.
const DaysPerWeek = 6

// WeekWindow is the Monday-anchored six-day range (Monday through
// Saturday) currently displayed on the calendar.
type WeekWindow struct {
	anchor models.Date
}

// MondayOf normalizes any date to the Monday of its week.
func MondayOf(d models.Date) models.Date {
	weekday := d.Weekday()
	back := int(weekday) - 1
	if weekday == time.Sunday {
		back = 6
	}
	return d.AddDays(-back)
}

// WeekOf builds the week window containing the given date.
func WeekOf(d models.Date) WeekWindow {
	return WeekWindow{anchor: MondayOf(d)}
}

// Monday returns the window anchor.
func (w WeekWindow) Monday() models.Date {
	return w.anchor
}

// Saturday returns the last displayed day of the window.
func (w WeekWindow) Saturday() models.Date {
	return w.anchor.AddDays(DaysPerWeek - 1)
}

// Shift returns a new window moved by whole weeks. Negative deltas move
// backwards.
func (w WeekWindow) Shift(deltaWeeks int) WeekWindow {
	return WeekWindow{anchor: w.anchor.AddDays(7 * deltaWeeks)}
}

// Days returns the six displayed dates in order, Monday through Saturday.
func (w WeekWindow) Days() []models.Date {
	days := make([]models.Date, DaysPerWeek)
	for i := range days {
		days[i] = w.anchor.AddDays(i)
	}
	return days
}

// DayIndex maps a date to its column (Monday=0..Saturday=5). The second
// return is false for Sundays and dates outside the window.
func (w WeekWindow) DayIndex(d models.Date) (int, bool) {
	delta := int(d.Time().Sub(w.anchor.Time()).Hours() / 24)
	if delta < 0 || delta >= DaysPerWeek {
		return 0, false
	}
	return delta, true
}

// Contains reports whether the date is displayed by this window.
func (w WeekWindow) Contains(d models.Date) bool {
	_, ok := w.DayIndex(d)
	return ok
}
