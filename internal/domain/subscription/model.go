package subscription

import (
	"time"

	"github.com/flexprice/billrun/internal/types"
)

// Field names of the subscription table in the datastore. The table is
// edited by hand, so parsing tolerates missing and mistyped values.
const (
	FieldCustomerRef = "customer_ref"
	FieldStatus      = "status"
	FieldBillingDay  = "billing_day"
	FieldStartDate   = "start_date"
	FieldServices    = "services"
)

type Subscription struct {
	// ID is the datastore record id of the subscription
	ID string `json:"id"`

	// CustomerRef is the accounting-system customer reference shared with the
	// subscription's services
	CustomerRef string `json:"customer_ref"`

	// Status is the lifecycle status of the subscription; only active
	// subscriptions are considered for billing
	Status types.Status `json:"status"`

	// BillingDay is the configured day of month (1-31) on which invoices are
	// issued. Nil when the field is missing or not numeric.
	BillingDay *int `json:"billing_day"`

	// StartDate is the optional date before which no billing happens
	StartDate *time.Time `json:"start_date,omitempty"`

	// ServiceIDs are the datastore record ids of the linked services
	ServiceIDs []string `json:"service_ids"`
}

// FromRecord builds a Subscription from a raw datastore record.
func FromRecord(id string, fields map[string]interface{}) *Subscription {
	sub := &Subscription{
		ID:          id,
		CustomerRef: types.ParseString(fields[FieldCustomerRef]),
		Status:      types.Status(types.ParseString(fields[FieldStatus])),
		ServiceIDs:  types.ParseStringSlice(fields[FieldServices]),
	}

	if day, ok := types.ParseInt(fields[FieldBillingDay]); ok {
		sub.BillingDay = &day
	}

	if raw := types.ParseString(fields[FieldStartDate]); raw != "" {
		if d, err := time.Parse("2006-01-02", raw); err == nil {
			sub.StartDate = &d
		}
	}

	return sub
}

// IsActive reports whether the subscription is eligible for processing at all.
func (s *Subscription) IsActive() bool {
	return s.Status == types.StatusActive
}
