package sberqr

import (
	"context"
	"encoding/base64"
	"net/url"
	"sync"
	"time"

	"github.com/mkorobov/qrpay/internal/models"
)

const (
	// validity assumed when the gateway omits expires_in
	defaultTokenTTL = 60 * time.Second
	// token is refreshed this long before its stated expiry
	expiryMargin = 30 * time.Second
)

// AccessToken is a scoped bearer token issued by the authorization endpoint.
type AccessToken struct {
	Bearer    string
	Scope     Scope
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// valid reports whether the token can still be used at time now.
func (t AccessToken) valid(now time.Time) bool {
	return t.Bearer != "" && now.Before(t.ExpiresAt.Add(-expiryMargin))
}

// tokenCache caches one token per scope. Each scope has its own entry lock,
// so concurrent callers of the same scope trigger at most one refresh and
// callers of different scopes do not serialize against each other.
type tokenCache struct {
	client *Client

	mu      sync.Mutex
	entries map[Scope]*tokenEntry

	// now is stubbed in tests
	now func() time.Time
}

type tokenEntry struct {
	mu    sync.Mutex
	token AccessToken
}

func newTokenCache(client *Client) *tokenCache {
	return &tokenCache{
		client:  client,
		entries: make(map[Scope]*tokenEntry),
		now:     time.Now,
	}
}

func (tc *tokenCache) entry(scope Scope) *tokenEntry {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	e, ok := tc.entries[scope]
	if !ok {
		e = &tokenEntry{}
		tc.entries[scope] = e
	}
	return e
}

// AcquireToken returns a cached token for the scope, requesting a fresh one
// from the authorization endpoint when the cache is empty or expired.
func (c *Client) AcquireToken(ctx context.Context, scope Scope) (AccessToken, error) {
	e := c.tokens.entry(scope)

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.token.valid(c.tokens.now()) {
		return e.token, nil
	}

	token, err := c.requestToken(ctx, scope)
	if err != nil {
		return AccessToken{}, err
	}
	e.token = token

	return token, nil
}

// requestToken performs the client_credentials grant for the scope.
func (c *Client) requestToken(ctx context.Context, scope Scope) (AccessToken, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("scope", scope.Permission())

	resp, err := c.postForm(ctx, pathTokenOAuth, form)
	if err != nil {
		return AccessToken{}, err
	}

	bearer, _ := resp["access_token"].(string)
	if bearer == "" {
		return AccessToken{}, models.ErrNoAccessToken
	}

	now := c.tokens.now()
	ttl := defaultTokenTTL
	if sec, ok := resp["expires_in"].(float64); ok && sec > 0 {
		ttl = time.Duration(sec) * time.Second
	}

	return AccessToken{
		Bearer:    bearer,
		Scope:     scope,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}, nil
}

func basicAuth(id, secret string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(id+":"+secret))
}
