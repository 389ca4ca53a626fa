package utils

import "time"

// DateLayout is the layout appointment and availability dates are stored in.
const DateLayout = "2006-01-02"

// WithinDays reports whether date (DateLayout) falls on a calendar day in
// [today, today+days], where today is taken from now in now's location.
// Unparseable dates are never within the window.
func WithinDays(date string, now time.Time, days int) bool {
	d, err := time.ParseInLocation(DateLayout, date, now.Location())
	if err != nil {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := today.AddDate(0, 0, days)
	return !d.Before(today) && !d.After(end)
}
