package fixedasset

import (
	"time"
)

// =============================================================================
// DATE - Day-granularity time point
// =============================================================================

// Date is a calendar day. Time-of-day is not meaningful anywhere in the
// engine: every comparison and day count works on normalized whole days.
type Date struct {
	Time time.Time
}

// Constructors
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}

// Comparison
func (d Date) Before(other Date) bool        { return d.normalize().Before(other.normalize()) }
func (d Date) Equal(other Date) bool         { return d.normalize().Equal(other.normalize()) }
func (d Date) After(other Date) bool         { return d.normalize().After(other.normalize()) }
func (d Date) BeforeOrEqual(other Date) bool { return d.Before(other) || d.Equal(other) }
func (d Date) AfterOrEqual(other Date) bool  { return d.After(other) || d.Equal(other) }

func (d Date) normalize() time.Time {
	return time.Date(d.Time.Year(), d.Time.Month(), d.Time.Day(), 0, 0, 0, 0, time.UTC)
}

// Arithmetic
func (d Date) AddDays(n int) Date  { return Date{Time: d.normalize().AddDate(0, 0, n)} }
func (d Date) AddYears(n int) Date { return Date{Time: d.normalize().AddDate(n, 0, 0)} }

// Properties
func (d Date) Year() int         { return d.Time.Year() }
func (d Date) Month() time.Month { return d.Time.Month() }
func (d Date) Day() int          { return d.Time.Day() }
func (d Date) IsZero() bool      { return d.Time.IsZero() }

func (d Date) String() string { return d.normalize().Format("2006-01-02") }

// DaysBetween returns the number of whole days from 'from' to 'to'.
// Negative when 'to' precedes 'from'.
func DaysBetween(from, to Date) int {
	return int(to.normalize().Sub(from.normalize()).Hours() / 24)
}

// DaysHeldInclusive counts days from 'from' through 'to' inclusive,
// flooring at zero. Holding a component for a single day counts as one.
func DaysHeldInclusive(from, to Date) int {
	n := DaysBetween(from, to) + 1
	if n < 0 {
		return 0
	}
	return n
}

// =============================================================================
// PERIOD - Closed reporting window [Start, End]
// =============================================================================

type Period struct {
	Start Date
	End   Date
}

// Contains returns true if the date is within the period [Start, End].
func (p Period) Contains(d Date) bool {
	return d.AfterOrEqual(p.Start) && d.BeforeOrEqual(p.End)
}

func (p Period) String() string {
	return "[" + p.Start.String() + ", " + p.End.String() + "]"
}

// =============================================================================
// FISCAL CALENDAR - Tax-year bucketing
// =============================================================================

// FiscalCalendar assigns tax-year labels by crossings of a fixed year-end
// date, not by elapsed-365-day anniversaries. An asset acquired just before
// the fiscal year-end enters tax year 2 almost immediately; this is the
// intended bucketing. The year-end is configurable because the correct
// choice is jurisdiction- and policy-dependent.
type FiscalCalendar struct {
	YearEndMonth time.Month
	YearEndDay   int
}

// DefaultFiscalCalendar returns the standard June 30 year-end.
func DefaultFiscalCalendar() FiscalCalendar {
	return FiscalCalendar{YearEndMonth: time.June, YearEndDay: 30}
}

// FiscalYear labels the fiscal year containing the date by the calendar
// year in which that fiscal year ends. With a June 30 year-end,
// 2023-07-01 falls in fiscal year 2024.
func (fc FiscalCalendar) FiscalYear(d Date) int {
	yearEnd := NewDate(d.Year(), fc.YearEndMonth, fc.YearEndDay)
	if d.After(yearEnd) {
		return d.Year() + 1
	}
	return d.Year()
}

// TaxYearNumber returns the 1-based tax year of a holding at the target
// date: the number of fiscal-year labels spanned since acquisition.
func (fc FiscalCalendar) TaxYearNumber(acquired, at Date) int {
	n := fc.FiscalYear(at) - fc.FiscalYear(acquired) + 1
	if n < 1 {
		return 1
	}
	return n
}
