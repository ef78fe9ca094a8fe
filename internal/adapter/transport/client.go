package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cpi-resender/internal/core/ports"
	"cpi-resender/pkg/apperror"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
)

const (
	defaultTimeout       = 30 * time.Second
	defaultRetryInterval = 200 * time.Millisecond
	maxRetryInterval     = 2 * time.Second
	defaultPostType      = "application/xml"
)

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client implements ports.Transport. Same-origin requests are executed
// directly; requests to any other host are handed to the relay.
type Client struct {
	http          HTTPClient
	relay         ports.Relay
	timeout       time.Duration
	getRetries    uint64
	retryInterval time.Duration
	log           zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithRelay sets the cross-origin relay. Without one, cross-origin requests
// fail with a context-invalidated error.
func WithRelay(r ports.Relay) Option {
	return func(c *Client) { c.relay = r }
}

// WithTimeout bounds every single attempt.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithGetRetries sets how often a GET is retried after a network error or 5xx.
func WithGetRetries(n uint64) Option {
	return func(c *Client) { c.getRetries = n }
}

// WithRetryInterval sets the initial backoff interval.
func WithRetryInterval(d time.Duration) Option {
	return func(c *Client) { c.retryInterval = d }
}

// NewClient creates a transport client.
func NewClient(httpClient HTTPClient, log zerolog.Logger, opts ...Option) *Client {
	c := &Client{
		http:          httpClient,
		timeout:       defaultTimeout,
		retryInterval: defaultRetryInterval,
		log:           log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do issues req and returns the response body.
func (c *Client) Do(ctx context.Context, req ports.HTTPRequest) (string, error) {
	if req.Method == "" {
		req.Method = http.MethodGet
	}
	req.Method = strings.ToUpper(req.Method)

	target, cross, err := route(req.Origin, req.URL)
	if err != nil {
		return "", err
	}
	req.URL = target

	attempt := func() (string, error) {
		actx, cancel := c.attemptContext(ctx)
		defer cancel()
		if cross {
			if c.relay == nil {
				return "", apperror.ErrContextInvalidated(errors.New("no cross-origin relay configured"))
			}
			return c.relay.Forward(actx, toRelayRequest(req))
		}
		return Execute(actx, c.http, req)
	}

	if req.Method != http.MethodGet || c.getRetries == 0 {
		return attempt()
	}
	return c.retryGet(ctx, req, attempt)
}

func (c *Client) attemptContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

func (c *Client) retryGet(ctx context.Context, req ports.HTTPRequest, attempt func() (string, error)) (string, error) {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = c.retryInterval
	eb.MaxInterval = maxRetryInterval
	eb.MaxElapsedTime = 0

	op := func() (string, error) {
		body, err := attempt()
		if err != nil && !retryable(err) {
			return "", backoff.Permanent(err)
		}
		return body, err
	}

	n := 0
	notify := func(err error, wait time.Duration) {
		n++
		c.log.Warn().Err(err).
			Str("url", req.URL).
			Int("attempt", n).
			Dur("retry_in", wait).
			Msg("transport: GET failed, retrying")
	}

	b := backoff.WithContext(backoff.WithMaxRetries(eb, c.getRetries), ctx)
	return backoff.RetryNotifyWithData(op, b, notify)
}

// retryable is true for transient tenant failures. A missing relay needs a
// reload, so it is never retried.
func retryable(err error) bool {
	if apperror.IsContextInvalidated(err) {
		return false
	}
	if apperror.IsNetwork(err) {
		return true
	}
	status, ok := apperror.UpstreamStatus(err)
	return ok && status >= http.StatusInternalServerError
}

// route resolves rawURL against origin and reports whether it leaves the
// origin's host.
func route(origin, rawURL string) (string, bool, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false, apperror.Validation(fmt.Sprintf("invalid request URL %q", rawURL))
	}
	if origin == "" {
		return rawURL, false, nil
	}
	o, err := url.Parse(origin)
	if err != nil || o.Host == "" {
		return "", false, apperror.Validation(fmt.Sprintf("invalid origin %q", origin))
	}
	if !u.IsAbs() {
		return o.ResolveReference(u).String(), false, nil
	}
	return rawURL, !strings.EqualFold(u.Host, o.Host), nil
}

func toRelayRequest(req ports.HTTPRequest) ports.RelayRequest {
	return ports.RelayRequest{
		Type:     ports.RelayRequestType,
		Method:   req.Method,
		URL:      req.URL,
		Username: req.Username,
		Password: req.Password,
		Body:     req.Body,
		Accept:   req.Accept,
	}
}

// Execute performs req without cookies and classifies failures.
func Execute(ctx context.Context, client HTTPClient, req ports.HTTPRequest) (string, error) {
	var body io.Reader
	if req.Body != "" {
		body = strings.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return "", apperror.Validation(fmt.Sprintf("invalid request %s %s", req.Method, req.URL))
	}
	applyHeaders(httpReq, req)

	resp, err := client.Do(httpReq)
	if err != nil {
		return "", apperror.ErrNetwork(req.Method, req.URL, err)
	}
	defer resp.Body.Close()

	data, readErr := io.ReadAll(resp.Body)
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", apperror.ErrUpstreamHTTP(req.Method, req.URL, resp.StatusCode, statusText(resp))
	}
	if readErr != nil {
		return "", apperror.ErrNetwork(req.Method, req.URL, readErr)
	}
	return string(data), nil
}

// applyHeaders sets Basic auth whenever both credentials are present. A POST
// with a body takes Accept as its Content-Type; everything else sends it
// as Accept.
func applyHeaders(httpReq *http.Request, req ports.HTTPRequest) {
	if req.Username != "" && req.Password != "" {
		httpReq.SetBasicAuth(req.Username, req.Password)
	}
	if req.Method == http.MethodPost && req.Body != "" {
		ct := req.Accept
		if ct == "" {
			ct = defaultPostType
		}
		httpReq.Header.Set("Content-Type", ct)
		return
	}
	if req.Accept != "" {
		httpReq.Header.Set("Accept", req.Accept)
	}
}

func statusText(resp *http.Response) string {
	if _, text, ok := strings.Cut(resp.Status, " "); ok && text != "" {
		return text
	}
	return http.StatusText(resp.StatusCode)
}
