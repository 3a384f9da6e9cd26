package subscription

import (
	"time"

	"github.com/flexprice/billrun/internal/types"
)

// IsDueOn decides whether the subscription should be billed on the given day.
//
// The configured billing day must be in [1,31]; a missing or out-of-range day
// means the subscription is never due (a configuration problem for the caller
// to log, not an error). When the configured day does not exist in the
// current month (day 31 in a 30-day month), billing rolls to the last day of
// the month. A future start date suppresses billing entirely.
//
// There is no persisted "last billed" marker: the rule is evaluated fresh on
// every run, and a run skipped on the due day is never retroactively caught
// up.
func (s *Subscription) IsDueOn(today time.Time) bool {
	if s.BillingDay == nil {
		return false
	}
	day := *s.BillingDay
	if day < 1 || day > 31 {
		return false
	}

	if s.StartDate != nil && s.StartDate.After(today) {
		return false
	}

	lastDay := types.LastDayOfMonth(today)
	if today.Day() == lastDay && day > lastDay {
		return true
	}

	return today.Day() == day
}
