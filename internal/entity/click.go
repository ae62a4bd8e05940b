package entity

import "time"

// Click is a single resolution of a short code.
type Click struct {
	ID        int64
	URLID     int64
	ShortCode string
	ClickedAt time.Time
}

// DailyCount is the number of clicks on one UTC calendar day.
type DailyCount struct {
	Date  time.Time // Date is midnight UTC of the day.
	Count int64
}

// Day truncates t to midnight of its UTC calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
