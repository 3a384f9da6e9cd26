package types

import (
	"fmt"
	"time"
)

// LastDayOfMonth returns the day number of the last day of t's month in t's
// location (28, 29, 30 or 31).
func LastDayOfMonth(t time.Time) int {
	firstOfNext := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, 1, 0)
	return firstOfNext.AddDate(0, 0, -1).Day()
}

// BillingPeriodKey returns the canonical key for the monthly billing period
// containing t, e.g. "2026-08". Used to scope idempotency keys to one cycle.
func BillingPeriodKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}

// DateOnly formats t as the YYYY-MM-DD string the billing API expects for
// invoice date fields.
func DateOnly(t time.Time) string {
	return t.Format("2006-01-02")
}
