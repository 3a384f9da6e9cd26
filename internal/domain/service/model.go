package service

import (
	"github.com/flexprice/billrun/internal/types"
	"github.com/shopspring/decimal"
)

// Field names of the services table in the datastore.
const (
	FieldName             = "name"
	FieldCustomerRef      = "customer_ref"
	FieldCategory         = "category"
	FieldActive           = "active"
	FieldUnitPrice        = "unit_price"
	FieldTaxRate          = "tax_rate"
	FieldBillingRef       = "billing_ref"
	FieldTotalOccurrences = "total_occurrences"
	FieldElapsedMonths    = "elapsed_months"
	FieldRemaining        = "remaining_occurrences"
)

// Service is one recurring billable line owned by a subscription. Price and
// tax values are kept raw here; the issuer parses them because a bad price is
// a hard error there, not at ingestion.
type Service struct {
	// ID is the datastore record id of the service
	ID string `json:"id"`

	// Name is the human label used on invoice line items
	Name string `json:"name"`

	// CustomerRef must match the owning subscription's customer reference
	CustomerRef string `json:"customer_ref"`

	// Category is the service classification; only the recurring category is
	// eligible for automated invoicing
	Category string `json:"category"`

	// Active is the normalized activity flag (boolean true or the "active"
	// sentinel string in the source data)
	Active bool `json:"active"`

	// UnitPrice is the raw pre-tax price field value
	UnitPrice interface{} `json:"unit_price"`

	// TaxRate is the raw tax-rate field value
	TaxRate interface{} `json:"tax_rate"`

	// BillingRef is the external billing-system reference of the service
	BillingRef string `json:"billing_ref"`

	// TotalOccurrences is the planned number of billing cycles
	TotalOccurrences int `json:"total_occurrences"`

	// ElapsedMonths is the number of cycles already billed
	ElapsedMonths int `json:"elapsed_months"`
}

// FromRecord builds a Service from a raw datastore record.
func FromRecord(id string, fields map[string]interface{}) *Service {
	return &Service{
		ID:               id,
		Name:             types.ParseString(fields[FieldName]),
		CustomerRef:      types.ParseString(fields[FieldCustomerRef]),
		Category:         types.ParseString(fields[FieldCategory]),
		Active:           types.ParseActiveFlag(fields[FieldActive]),
		UnitPrice:        fields[FieldUnitPrice],
		TaxRate:          fields[FieldTaxRate],
		BillingRef:       types.ParseString(fields[FieldBillingRef]),
		TotalOccurrences: types.ParseIntOrZero(fields[FieldTotalOccurrences]),
		ElapsedMonths:    types.ParseIntOrZero(fields[FieldElapsedMonths]),
	}
}

// RemainingOccurrences is always recomputed from total and elapsed rather
// than read from the stored remaining field, so concurrent hand edits to the
// counters cannot drive it negative.
func (s *Service) RemainingOccurrences() int {
	remaining := s.TotalOccurrences - s.ElapsedMonths
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Price parses the unit price. ok=false means the record holds an unusable
// price and must not be billed.
func (s *Service) Price() (decimal.Decimal, bool) {
	return types.ParseDecimal(s.UnitPrice)
}

// TaxRateOrDefault parses the tax rate, falling back to the given default
// when the field is absent or unparsable.
func (s *Service) TaxRateOrDefault(def decimal.Decimal) decimal.Decimal {
	if rate, ok := types.ParseDecimal(s.TaxRate); ok {
		return rate
	}
	return def
}
