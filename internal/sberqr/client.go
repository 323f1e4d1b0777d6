package sberqr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mkorobov/qrpay/internal/models"
	"github.com/mkorobov/qrpay/internal/rqid"
)

// remote timeouts observed on the live gateway
const (
	defaultConnectTimeout = 3 * time.Second
	defaultTotalTimeout   = 30 * time.Second
)

// Response is decoded gateway JSON. The schema is versioned by the remote,
// so it is passed to callers untyped except for the fields the client
// inspects itself.
type Response map[string]any

// Metrics counts outbound gateway calls. See internal/metrics.
type Metrics interface {
	ObserveGatewayCall(operation string, outcome string, elapsed time.Duration)
}

// Client performs signed HTTP calls against the gateway.
type Client struct {
	http         *http.Client
	baseURL      string
	clientID     string
	clientSecret string
	tokens       *tokenCache
	metrics      Metrics
}

// ClientOptions configures Client construction.
type ClientOptions struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	// TotalTimeout overrides the default 30s per-call ceiling, mainly for tests.
	TotalTimeout time.Duration
	Metrics      Metrics
}

// NewClient creates gateway client. Credentials are validated by config
// before this point; empty values are rejected again here as a guard.
func NewClient(opts ClientOptions) (*Client, error) {
	if opts.ClientID == "" || opts.ClientSecret == "" {
		return nil, models.ErrEmptyCredentials
	}

	total := opts.TotalTimeout
	if total == 0 {
		total = defaultTotalTimeout
	}

	c := &Client{
		http: &http.Client{
			Timeout: total,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: defaultConnectTimeout,
				}).DialContext,
			},
		},
		baseURL:      strings.TrimRight(opts.BaseURL, "/"),
		clientID:     opts.ClientID,
		clientSecret: opts.ClientSecret,
		metrics:      opts.Metrics,
	}
	c.tokens = newTokenCache(c)

	return c, nil
}

// postJSON sends operational JSON POST with bearer token and decodes the reply.
func (c *Client) postJSON(ctx context.Context, path string, scope Scope, rqUID string, body any) (Response, error) {
	token, err := c.AcquireToken(ctx, scope)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token.Bearer)
	req.Header.Set("x-ibm-client-id", c.clientID)
	req.Header.Set("x-Introspect-RqUID", rqUID)

	start := time.Now()
	resp, err := c.http.Do(req)
	c.observe(path, err, time.Since(start))
	if resp != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		return nil, models.TransportError{Err: err}
	}

	return decodeResponse(resp)
}

// postForm sends form-encoded POST to the authorization endpoint.
func (c *Client) postForm(ctx context.Context, path string, form url.Values) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", basicAuth(c.clientID, c.clientSecret))
	req.Header.Set("rquid", rqid.New(32))
	req.Header.Set("x-ibm-client-id", c.clientID)

	start := time.Now()
	resp, err := c.http.Do(req)
	c.observe(path, err, time.Since(start))
	if resp != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		return nil, models.TransportError{Err: err}
	}

	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, models.AuthenticationError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return decodeResponse(resp)
}

// decodeResponse decodes gateway JSON and maps business rejections
// to GatewayError with the remote code and message kept verbatim.
func decodeResponse(resp *http.Response) (Response, error) {
	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		if resp.StatusCode >= 400 {
			return nil, models.GatewayError{
				StatusCode: resp.StatusCode,
				Code:       fmt.Sprintf("HTTP_%d", resp.StatusCode),
				Message:    http.StatusText(resp.StatusCode),
			}
		}
		return nil, models.TransportError{Err: err}
	}

	if resp.StatusCode >= 400 {
		return nil, models.GatewayError{
			StatusCode: resp.StatusCode,
			Code:       stringField(out, "error_code"),
			Message:    stringField(out, "error_description"),
		}
	}

	// шлюз может вернуть бизнес-ошибку и с кодом 200
	if code := stringField(out, "error_code"); code != "" && code != "0" {
		return nil, models.GatewayError{
			StatusCode: resp.StatusCode,
			Code:       code,
			Message:    stringField(out, "error_description"),
		}
	}

	return out, nil
}

// stringField reads a response field tolerating number encodings.
func stringField(r Response, key string) string {
	switch v := r[key].(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.0f", v)
	case json.Number:
		return v.String()
	}
	return ""
}

func (c *Client) observe(path string, err error, elapsed time.Duration) {
	if c.metrics == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	c.metrics.ObserveGatewayCall(path, outcome, elapsed)
}
