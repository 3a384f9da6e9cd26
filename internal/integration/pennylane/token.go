package pennylane

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	ierr "github.com/flexprice/billrun/internal/errors"
	"github.com/flexprice/billrun/internal/httpclient"
)

// tokenRefreshMargin refreshes the token proactively before it actually
// expires, so a token never dies mid-request.
const tokenRefreshMargin = 5 * time.Minute

// tokenManager caches one OAuth2 client-credentials access token for the
// process lifetime. The run is single-threaded, so no locking is needed; the
// clock is injectable for tests.
type tokenManager struct {
	http         httpclient.Client
	baseURL      string
	clientID     string
	clientSecret string
	now          func() time.Time

	token     string
	expiresAt time.Time
}

func newTokenManager(http httpclient.Client, baseURL, clientID, clientSecret string) *tokenManager {
	return &tokenManager{
		http:         http,
		baseURL:      baseURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		now:          time.Now,
	}
}

// Token returns a valid bearer token, fetching a fresh one when the cached
// token is absent or within the refresh margin of expiry.
func (m *tokenManager) Token(ctx context.Context) (string, error) {
	if m.token != "" && m.now().Add(tokenRefreshMargin).Before(m.expiresAt) {
		return m.token, nil
	}
	return m.refresh(ctx)
}

// Invalidate drops the cached token. Called when the API rejects a request
// as unauthenticated despite an apparently valid token.
func (m *tokenManager) Invalidate() {
	m.token = ""
	m.expiresAt = time.Time{}
}

func (m *tokenManager) refresh(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", m.clientID)
	form.Set("client_secret", m.clientSecret)

	resp, err := m.http.Send(ctx, &httpclient.Request{
		Method: http.MethodPost,
		URL:    m.baseURL + "/oauth/token",
		Headers: map[string]string{
			"Content-Type": "application/x-www-form-urlencoded",
		},
		Body: []byte(form.Encode()),
	})
	if err != nil {
		return "", ierr.WithError(err).
			WithHint("Failed to obtain an access token from the billing API").
			Mark(ierr.ErrConnectivity)
	}

	var tok tokenResponse
	if err := json.Unmarshal(resp.Body, &tok); err != nil {
		return "", ierr.WithError(err).
			WithHint("Billing API returned an unparsable token response").
			Mark(ierr.ErrConnectivity)
	}
	if strings.TrimSpace(tok.AccessToken) == "" {
		return "", ierr.NewError("token response contained no access token").
			Mark(ierr.ErrConnectivity)
	}

	m.token = tok.AccessToken
	m.expiresAt = m.now().Add(time.Duration(tok.ExpiresIn) * time.Second)
	return m.token, nil
}
