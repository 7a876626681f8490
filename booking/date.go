package booking

import (
	"fmt"
	"time"
)

// =============================================================================
// DATE - Calendar day without time-of-day (this IS a nightly system)
// =============================================================================

// Date is a calendar day, normalized to midnight UTC. All reservation
// boundaries are calendar days; time-of-day only exists on hold expiry.
type Date struct {
	Time time.Time
}

const dateLayout = "2006-01-02"

// Constructors
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD): %w", s, err)
	}
	return DateOf(t), nil
}

func MustDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Comparison
func (d Date) Before(other Date) bool        { return d.Time.Before(other.Time) }
func (d Date) After(other Date) bool         { return d.Time.After(other.Time) }
func (d Date) Equal(other Date) bool         { return d.Time.Equal(other.Time) }
func (d Date) BeforeOrEqual(other Date) bool { return !d.After(other) }
func (d Date) AfterOrEqual(other Date) bool  { return !d.Before(other) }

// Arithmetic
func (d Date) AddDays(n int) Date { return Date{Time: d.Time.AddDate(0, 0, n)} }

// Properties
func (d Date) IsZero() bool    { return d.Time.IsZero() }
func (d Date) IsWeekend() bool { wd := d.Time.Weekday(); return wd == time.Saturday || wd == time.Sunday }
func (d Date) String() string  { return d.Time.Format(dateLayout) }

// NightsBetween returns the number of nights from one date to another.
// Negative if to precedes from.
func NightsBetween(from, to Date) int {
	return int(to.Time.Sub(from.Time).Hours() / 24)
}

// =============================================================================
// STAY - Half-open date range [check-in, check-out)
// =============================================================================

// Stay occupies the nights [CheckIn, CheckOut); check-out day is free.
type Stay struct {
	CheckIn  Date
	CheckOut Date
}

// NewStay validates that the range covers at least one night.
func NewStay(checkIn, checkOut Date) (Stay, error) {
	if !checkOut.After(checkIn) {
		return Stay{}, fmt.Errorf("%w: check-out %s must be after check-in %s",
			ErrInvalidStay, checkOut, checkIn)
	}
	return Stay{CheckIn: checkIn, CheckOut: checkOut}, nil
}

// Nights returns the number of nights in the stay.
func (s Stay) Nights() int { return NightsBetween(s.CheckIn, s.CheckOut) }

// Dates returns one date per night, check-in first. Check-out is excluded.
func (s Stay) Dates() []Date {
	n := s.Nights()
	if n <= 0 {
		return nil
	}
	dates := make([]Date, n)
	for i := range dates {
		dates[i] = s.CheckIn.AddDays(i)
	}
	return dates
}

// Overlaps reports whether two stays share at least one night.
// Half-open semantics: [a,b) and [b,c) do not overlap.
func (s Stay) Overlaps(other Stay) bool {
	return s.CheckIn.Before(other.CheckOut) && other.CheckIn.Before(s.CheckOut)
}

// Contains reports whether the given night falls inside the stay.
func (s Stay) Contains(d Date) bool {
	return d.AfterOrEqual(s.CheckIn) && d.Before(s.CheckOut)
}

func (s Stay) String() string {
	return "[" + s.CheckIn.String() + ", " + s.CheckOut.String() + ")"
}
