package pennylane

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/flexprice/billrun/internal/httpclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubHTTP struct {
	responses []*httpclient.Response
	errs      []error
	calls     []*httpclient.Request
}

func (s *stubHTTP) Send(_ context.Context, req *httpclient.Request) (*httpclient.Response, error) {
	i := len(s.calls)
	s.calls = append(s.calls, req)
	var resp *httpclient.Response
	var err error
	if i < len(s.responses) {
		resp = s.responses[i]
	}
	if i < len(s.errs) {
		err = s.errs[i]
	}
	return resp, err
}

func tokenBody(token string, expiresIn int) *httpclient.Response {
	return &httpclient.Response{
		StatusCode: 200,
		Body:       []byte(fmt.Sprintf(`{"access_token":%q,"token_type":"Bearer","expires_in":%d}`, token, expiresIn)),
	}
}

func TestTokenManagerCachesUntilRefreshMargin(t *testing.T) {
	stub := &stubHTTP{responses: []*httpclient.Response{
		tokenBody("tok_1", 3600),
		tokenBody("tok_2", 3600),
	}}

	now := time.Date(2026, time.August, 31, 8, 0, 0, 0, time.UTC)
	m := newTokenManager(stub, "https://billing.test", "id", "secret")
	m.now = func() time.Time { return now }

	tok, err := m.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok_1", tok)
	assert.Len(t, stub.calls, 1)

	// Well inside the expiry window: cached token is reused.
	now = now.Add(30 * time.Minute)
	tok, err = m.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok_1", tok)
	assert.Len(t, stub.calls, 1)

	// Within five minutes of expiry: refreshed proactively.
	now = now.Add(26 * time.Minute)
	tok, err = m.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok_2", tok)
	assert.Len(t, stub.calls, 2)
}

func TestTokenManagerInvalidate(t *testing.T) {
	stub := &stubHTTP{responses: []*httpclient.Response{
		tokenBody("tok_1", 3600),
		tokenBody("tok_2", 3600),
	}}

	m := newTokenManager(stub, "https://billing.test", "id", "secret")
	m.now = func() time.Time { return time.Date(2026, time.August, 31, 8, 0, 0, 0, time.UTC) }

	tok, err := m.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok_1", tok)

	m.Invalidate()

	tok, err = m.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok_2", tok)
	assert.Len(t, stub.calls, 2)
}

func TestTokenManagerRejectsEmptyToken(t *testing.T) {
	stub := &stubHTTP{responses: []*httpclient.Response{
		{StatusCode: 200, Body: []byte(`{"access_token":""}`)},
	}}

	m := newTokenManager(stub, "https://billing.test", "id", "secret")
	_, err := m.Token(context.Background())
	assert.Error(t, err)
}
