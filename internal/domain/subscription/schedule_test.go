package subscription

import (
	"testing"
	"time"
)

func day(d int) *int { return &d }

func TestIsDueOn(t *testing.T) {
	april30 := time.Date(2026, time.April, 30, 10, 0, 0, 0, time.UTC)
	feb28 := time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC)
	jan15 := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	tomorrow := jan15.AddDate(0, 0, 1)

	tests := []struct {
		name string
		sub  Subscription
		on   time.Time
		want bool
	}{
		{
			name: "due on matching day",
			sub:  Subscription{BillingDay: day(15)},
			on:   jan15,
			want: true,
		},
		{
			name: "not due on other day",
			sub:  Subscription{BillingDay: day(15)},
			on:   april30,
			want: false,
		},
		{
			name: "day 31 rolls to April 30",
			sub:  Subscription{BillingDay: day(31)},
			on:   april30,
			want: true,
		},
		{
			name: "day 30 due on April 30 directly",
			sub:  Subscription{BillingDay: day(30)},
			on:   april30,
			want: true,
		},
		{
			name: "day 31 rolls to Feb 28",
			sub:  Subscription{BillingDay: day(31)},
			on:   feb28,
			want: true,
		},
		{
			name: "day 29 rolls to Feb 28",
			sub:  Subscription{BillingDay: day(29)},
			on:   feb28,
			want: true,
		},
		{
			name: "missing billing day",
			sub:  Subscription{},
			on:   jan15,
			want: false,
		},
		{
			name: "billing day zero",
			sub:  Subscription{BillingDay: day(0)},
			on:   jan15,
			want: false,
		},
		{
			name: "billing day above 31",
			sub:  Subscription{BillingDay: day(32)},
			on:   april30,
			want: false,
		},
		{
			name: "future start date suppresses matching day",
			sub:  Subscription{BillingDay: day(15), StartDate: &tomorrow},
			on:   jan15,
			want: false,
		},
		{
			name: "start date today does not suppress",
			sub:  Subscription{BillingDay: day(15), StartDate: &jan15},
			on:   jan15,
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sub.IsDueOn(tt.on); got != tt.want {
				t.Errorf("IsDueOn(%v) = %v, want %v", tt.on, got, tt.want)
			}
		})
	}
}

func TestFromRecord(t *testing.T) {
	sub := FromRecord("recSub1", map[string]interface{}{
		FieldCustomerRef: "CUST-42",
		FieldStatus:      "active",
		FieldBillingDay:  float64(31),
		FieldStartDate:   "2026-01-01",
		FieldServices:    []interface{}{"recSvcA", "recSvcB"},
	})

	if sub.ID != "recSub1" || sub.CustomerRef != "CUST-42" {
		t.Fatalf("unexpected identity fields: %+v", sub)
	}
	if !sub.IsActive() {
		t.Error("expected active subscription")
	}
	if sub.BillingDay == nil || *sub.BillingDay != 31 {
		t.Errorf("BillingDay = %v, want 31", sub.BillingDay)
	}
	if sub.StartDate == nil || sub.StartDate.Day() != 1 {
		t.Errorf("StartDate = %v, want 2026-01-01", sub.StartDate)
	}
	if len(sub.ServiceIDs) != 2 {
		t.Errorf("ServiceIDs = %v, want two entries", sub.ServiceIDs)
	}

	// Non-numeric billing day must parse to nil, not zero.
	sub = FromRecord("recSub2", map[string]interface{}{
		FieldBillingDay: "last friday",
		FieldStatus:     "paused",
	})
	if sub.BillingDay != nil {
		t.Errorf("BillingDay = %v, want nil for non-numeric input", sub.BillingDay)
	}
	if sub.IsActive() {
		t.Error("paused subscription must not be active")
	}
}
