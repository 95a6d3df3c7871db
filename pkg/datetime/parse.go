// Package datetime provides the calendar arithmetic behind installment schedules.
package datetime

import (
	"math"
	"time"

	"github.com/iwvelando/installment-plan/pkg/constants"
	"github.com/iwvelando/installment-plan/pkg/mathutil"
)

const (
	// DateLayout is the format expected in plan files and API payloads.
	DateLayout = constants.DateLayout
)

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseDate parses a YYYY-MM-DD date. An empty string yields the zero time.
func ParseDate(date string) (time.Time, error) {
	if date == "" {
		return time.Time{}, nil
	}
	return time.Parse(DateLayout, date)
}

// Day truncates t to midnight UTC of its own calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CalendarMonthsBetween counts month boundaries crossed from `from` to `to`
// using year*12+month arithmetic. Day of month is ignored.
func CalendarMonthsBetween(from, to time.Time) int {
	return (to.Year()*constants.MonthsPerYear + int(to.Month())) -
		(from.Year()*constants.MonthsPerYear + int(from.Month()))
}

// MonthsUntil returns the number of monthly installments that fit before
// eventDate: the calendar months from referenceDate, minus the notice
// period, clamped to [1, MaxPeriods].
func MonthsUntil(eventDate, referenceDate time.Time) int {
	months := CalendarMonthsBetween(referenceDate, eventDate) - constants.NoticePeriodMonths
	return mathutil.ClampInt(months, 1, constants.MaxPeriods)
}

// DaysBetween returns the whole calendar days from `from` to `to`, negative
// when `to` is earlier. Time of day and DST shifts are ignored.
func DaysBetween(from, to time.Time) int {
	hours := Day(to).Sub(Day(from)).Hours()
	return int(math.Round(hours / 24))
}

// AddDays offsets a calendar date by the given number of days.
func AddDays(date time.Time, days int) time.Time {
	return Day(date).AddDate(0, 0, days)
}

// AddMonths offsets a calendar date by whole months. Days past the end of
// the target month pin to its last day (Jan 31 + 1 month = Feb 28).
func AddMonths(date time.Time, months int) time.Time {
	d := Day(date)
	first := time.Date(d.Year(), d.Month()+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	day := d.Day()
	if last := first.AddDate(0, 1, -1).Day(); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}

// DateBeforeDate returns true if firstDate is strictly before secondDate,
// comparing calendar days only.
func DateBeforeDate(firstDate, secondDate time.Time) bool {
	return Day(firstDate).Before(Day(secondDate))
}
