package domain

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format used by every date column.
const DateLayout = "2006-01-02"

// FormatDate renders t as a calendar date in t's location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// MonthStart returns the first day of t's month.
func MonthStart(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-01", t.Year(), int(t.Month()))
}

// Period is an optional month/year window. A zero Month or Year means "all time".
type Period struct {
	Month int `json:"month,omitempty"`
	Year  int `json:"year,omitempty"`
}

// Bounds returns the half-open date range [from, to) covering the period.
func (p Period) Bounds() (from, to string, ok bool) {
	if p.Month < 1 || p.Month > 12 || p.Year <= 0 {
		return "", "", false
	}
	nextMonth, nextYear := p.Month+1, p.Year
	if p.Month == 12 {
		nextMonth, nextYear = 1, p.Year+1
	}
	from = fmt.Sprintf("%04d-%02d-01", p.Year, p.Month)
	to = fmt.Sprintf("%04d-%02d-01", nextYear, nextMonth)
	return from, to, true
}
