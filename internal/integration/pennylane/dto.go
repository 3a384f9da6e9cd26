package pennylane

// PaymentChannelDirectDebit is the fixed payment channel tag set on every
// invoice this job issues; collection happens by pre-authorized mandate.
const PaymentChannelDirectDebit = "direct_debit"

// LineItem is one invoice line. Decimal values travel as strings, matching
// the API's wire format.
type LineItem struct {
	Label              string `json:"label" validate:"required"`
	Quantity           int    `json:"quantity" validate:"gt=0"`
	UnitPriceBeforeTax string `json:"unit_price_before_tax" validate:"required"`
	VatRate            string `json:"vat_rate" validate:"required"`
	ServiceReference   string `json:"service_reference" validate:"required"`
}

// CreateInvoiceRequest creates a draft invoice for one customer.
type CreateInvoiceRequest struct {
	CustomerRef string `json:"customer_ref" validate:"required"`
	// ExternalReference carries the idempotency key so a re-run of the same
	// billing period is rejected by the remote system instead of producing a
	// duplicate invoice.
	ExternalReference string     `json:"external_reference,omitempty"`
	PaymentChannel    string     `json:"payment_channel,omitempty"`
	LineItems         []LineItem `json:"line_items" validate:"required,min=1,dive"`
}

// FinalizeInvoiceRequest transitions a draft invoice to issued. Date and
// deadline are both set to the run day: payment on receipt, no term delay.
type FinalizeInvoiceRequest struct {
	Date     string `json:"date" validate:"required"`
	Deadline string `json:"deadline" validate:"required"`
}

// Invoice is the remote system's view of an invoice.
type Invoice struct {
	ID                string `json:"id"`
	Status            string `json:"status"`
	CustomerRef       string `json:"customer_ref"`
	ExternalReference string `json:"external_reference,omitempty"`
	Date              string `json:"date,omitempty"`
	Deadline          string `json:"deadline,omitempty"`
}

// PaymentMethod is one collection mechanism configured on the remote account.
type PaymentMethod struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Enabled bool   `json:"enabled"`
}

type invoiceEnvelope struct {
	Invoice Invoice `json:"invoice"`
}

type paymentMethodsResponse struct {
	PaymentMethods []PaymentMethod `json:"payment_methods"`
}

type attachPaymentMethodRequest struct {
	PaymentMethodID string `json:"payment_method_id"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}
