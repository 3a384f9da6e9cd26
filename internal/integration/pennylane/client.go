package pennylane

import (
	"context"
	"encoding/json"

	"github.com/flexprice/billrun/internal/config"
	ierr "github.com/flexprice/billrun/internal/errors"
	"github.com/flexprice/billrun/internal/httpclient"
	"github.com/flexprice/billrun/internal/logger"
)

// Client defines the billing API operations this job consumes.
type Client interface {
	// Ping verifies connectivity and credentials at startup by fetching a
	// token.
	Ping(ctx context.Context) error

	// CreateInvoice creates a draft invoice
	CreateInvoice(ctx context.Context, req *CreateInvoiceRequest) (*Invoice, error)

	// FinalizeInvoice transitions a draft invoice to issued
	FinalizeInvoice(ctx context.Context, invoiceID string, req *FinalizeInvoiceRequest) (*Invoice, error)

	// ListPaymentMethods returns the payment methods configured on the
	// account
	ListPaymentMethods(ctx context.Context) ([]PaymentMethod, error)

	// AttachPaymentMethod configures collection of an invoice through the
	// given payment method
	AttachPaymentMethod(ctx context.Context, invoiceID, paymentMethodID string) error
}

type client struct {
	http    httpclient.Client
	baseURL string
	tokens  *tokenManager
	logger  *logger.Logger
}

// NewClient creates a billing API client
func NewClient(http httpclient.Client, cfg *config.Configuration, logger *logger.Logger) Client {
	return &client{
		http:    http,
		baseURL: cfg.Pennylane.BaseURL,
		tokens:  newTokenManager(http, cfg.Pennylane.BaseURL, cfg.Pennylane.ClientID, cfg.Pennylane.ClientSecret),
		logger:  logger,
	}
}

func (c *client) Ping(ctx context.Context) error {
	_, err := c.tokens.Token(ctx)
	return err
}

func (c *client) CreateInvoice(ctx context.Context, req *CreateInvoiceRequest) (*Invoice, error) {
	var env invoiceEnvelope
	if err := c.do(ctx, "POST", "/customer_invoices", map[string]interface{}{"invoice": req}, &env); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invoice creation was rejected by the billing API").
			Mark(ierr.ErrIntegration)
	}
	return &env.Invoice, nil
}

func (c *client) FinalizeInvoice(ctx context.Context, invoiceID string, req *FinalizeInvoiceRequest) (*Invoice, error) {
	var env invoiceEnvelope
	if err := c.do(ctx, "PUT", "/customer_invoices/"+invoiceID+"/finalize", map[string]interface{}{"invoice": req}, &env); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invoice finalization was rejected by the billing API").
			Mark(ierr.ErrIntegration)
	}
	return &env.Invoice, nil
}

func (c *client) ListPaymentMethods(ctx context.Context) ([]PaymentMethod, error) {
	var resp paymentMethodsResponse
	if err := c.do(ctx, "GET", "/payment_methods", nil, &resp); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list payment methods").
			Mark(ierr.ErrIntegration)
	}
	return resp.PaymentMethods, nil
}

func (c *client) AttachPaymentMethod(ctx context.Context, invoiceID, paymentMethodID string) error {
	req := attachPaymentMethodRequest{PaymentMethodID: paymentMethodID}
	if err := c.do(ctx, "PUT", "/customer_invoices/"+invoiceID+"/payment_method", req, nil); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to attach payment method to invoice").
			Mark(ierr.ErrIntegration)
	}
	return nil
}

// do sends one authenticated request. A 401 invalidates the cached token and
// the request is replayed once with a fresh one.
func (c *client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	resp, err := c.send(ctx, method, path, body)
	if httpclient.IsUnauthorized(err) {
		c.logger.Warnw("billing API rejected token, refreshing", "path", path)
		c.tokens.Invalidate()
		resp, err = c.send(ctx, method, path, body)
	}
	if err != nil {
		return err
	}

	if out == nil || len(resp.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return ierr.WithError(err).
			WithHint("Billing API returned an unparsable response").
			Mark(ierr.ErrIntegration)
	}
	return nil
}

func (c *client) send(ctx context.Context, method, path string, body interface{}) (*httpclient.Response, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	var payload []byte
	if body != nil {
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to encode request payload").
				Mark(ierr.ErrSystem)
		}
	}

	return c.http.Send(ctx, &httpclient.Request{
		Method: method,
		URL:    c.baseURL + path,
		Headers: map[string]string{
			"Authorization": "Bearer " + token,
		},
		Body: payload,
	})
}
