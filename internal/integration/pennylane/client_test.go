package pennylane

import (
	"context"
	"testing"

	"github.com/flexprice/billrun/internal/config"
	"github.com/flexprice/billrun/internal/httpclient"
	"github.com/flexprice/billrun/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(stub *stubHTTP) Client {
	cfg := config.GetDefaultConfig()
	cfg.Pennylane.BaseURL = "https://billing.test"
	return NewClient(stub, cfg, logger.NewNopLogger())
}

func TestClientReplaysOnceAfterUnauthorized(t *testing.T) {
	invoiceBody := &httpclient.Response{
		StatusCode: 201,
		Body:       []byte(`{"invoice":{"id":"inv_1","status":"draft"}}`),
	}
	stub := &stubHTTP{
		responses: []*httpclient.Response{
			tokenBody("tok_stale", 3600), // initial token fetch
			nil,                          // invoice call rejected
			tokenBody("tok_fresh", 3600), // refetch after invalidation
			invoiceBody,                  // replayed invoice call
		},
		errs: []error{
			nil,
			httpclient.NewError(401, []byte(`{"error":"unauthorized"}`)),
		},
	}

	c := newTestClient(stub)
	inv, err := c.CreateInvoice(context.Background(), &CreateInvoiceRequest{})
	require.NoError(t, err)
	assert.Equal(t, "inv_1", inv.ID)

	require.Len(t, stub.calls, 4)
	assert.Contains(t, stub.calls[2].URL, "/oauth/token")
	assert.Equal(t, "Bearer tok_fresh", stub.calls[3].Headers["Authorization"])
}

func TestClientDoesNotReplayTwiceOnRepeatedUnauthorized(t *testing.T) {
	stub := &stubHTTP{
		responses: []*httpclient.Response{
			tokenBody("tok_1", 3600),
			nil,
			tokenBody("tok_2", 3600),
			nil,
		},
		errs: []error{
			nil,
			httpclient.NewError(401, nil),
			nil,
			httpclient.NewError(401, nil),
		},
	}

	c := newTestClient(stub)
	_, err := c.CreateInvoice(context.Background(), &CreateInvoiceRequest{})
	require.Error(t, err)
	// One original attempt plus exactly one replay, each with its own token.
	assert.Len(t, stub.calls, 4)
}

func TestClientDoesNotReplayOtherFailures(t *testing.T) {
	stub := &stubHTTP{
		responses: []*httpclient.Response{
			tokenBody("tok_1", 3600),
			nil,
		},
		errs: []error{
			nil,
			httpclient.NewError(422, []byte(`{"error":"invalid invoice"}`)),
		},
	}

	c := newTestClient(stub)
	_, err := c.CreateInvoice(context.Background(), &CreateInvoiceRequest{})
	require.Error(t, err)
	assert.Len(t, stub.calls, 2)
}
