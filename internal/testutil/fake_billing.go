package testutil

import (
	"context"
	"fmt"

	"github.com/flexprice/billrun/internal/integration/pennylane"
)

// FakeBillingClient implements pennylane.Client, recording every call and
// returning injectable failures.
type FakeBillingClient struct {
	PingErr     error
	CreateErr   error
	FinalizeErr error
	ListErr     error
	AttachErr   error

	// Methods is what ListPaymentMethods returns
	Methods []pennylane.PaymentMethod

	CreateCalls   []*pennylane.CreateInvoiceRequest
	FinalizeCalls []FinalizeCall
	AttachCalls   []AttachCall

	nextInvoiceID int
}

// FinalizeCall is one recorded finalize request
type FinalizeCall struct {
	InvoiceID string
	Date      string
	Deadline  string
}

// AttachCall is one recorded payment-method attachment
type AttachCall struct {
	InvoiceID       string
	PaymentMethodID string
}

// NewFakeBillingClient creates a fake billing client with one enabled
// direct-debit payment method.
func NewFakeBillingClient() *FakeBillingClient {
	return &FakeBillingClient{
		Methods: []pennylane.PaymentMethod{
			{ID: "pm_dd", Label: "gocardless", Enabled: true},
		},
	}
}

func (f *FakeBillingClient) Ping(ctx context.Context) error {
	return f.PingErr
}

func (f *FakeBillingClient) CreateInvoice(ctx context.Context, req *pennylane.CreateInvoiceRequest) (*pennylane.Invoice, error) {
	if f.CreateErr != nil {
		return nil, f.CreateErr
	}

	f.nextInvoiceID++
	f.CreateCalls = append(f.CreateCalls, req)
	return &pennylane.Invoice{
		ID:                fmt.Sprintf("inv_%d", f.nextInvoiceID),
		Status:            "draft",
		CustomerRef:       req.CustomerRef,
		ExternalReference: req.ExternalReference,
	}, nil
}

func (f *FakeBillingClient) FinalizeInvoice(ctx context.Context, invoiceID string, req *pennylane.FinalizeInvoiceRequest) (*pennylane.Invoice, error) {
	if f.FinalizeErr != nil {
		return nil, f.FinalizeErr
	}

	f.FinalizeCalls = append(f.FinalizeCalls, FinalizeCall{
		InvoiceID: invoiceID,
		Date:      req.Date,
		Deadline:  req.Deadline,
	})
	return &pennylane.Invoice{ID: invoiceID, Status: "finalized", Date: req.Date, Deadline: req.Deadline}, nil
}

func (f *FakeBillingClient) ListPaymentMethods(ctx context.Context) ([]pennylane.PaymentMethod, error) {
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return f.Methods, nil
}

func (f *FakeBillingClient) AttachPaymentMethod(ctx context.Context, invoiceID, paymentMethodID string) error {
	if f.AttachErr != nil {
		return f.AttachErr
	}

	f.AttachCalls = append(f.AttachCalls, AttachCall{
		InvoiceID:       invoiceID,
		PaymentMethodID: paymentMethodID,
	})
	return nil
}
