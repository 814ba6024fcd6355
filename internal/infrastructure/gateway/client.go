// Package gateway is the single outbound HTTP client for the Gigsly backend.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gigsly/gigsly-client/internal/api/metrics"
	"github.com/gigsly/gigsly-client/internal/core/domain"
	"github.com/gigsly/gigsly-client/internal/core/ports"
)

const (
	defaultTimeout  = 15 * time.Second
	headerRequestID = "X-Request-ID"
)

// Client attaches the stored bearer token to every authenticated request and
// evicts the stored session whenever the backend answers one with 401.
type Client struct {
	baseURL string
	http    *http.Client
	store   ports.SessionStore
	log     zerolog.Logger

	mu             sync.RWMutex
	onUnauthorized []func()
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout of the default *http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// New creates a Client for baseURL, e.g. "http://localhost:8081/api".
func New(baseURL string, store ports.SessionStore, log zerolog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		store:   store,
		log:     log.With().Str("component", "gateway").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend base the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// OnUnauthorized registers fn to run after a 401 has cleared the store.
func (c *Client) OnUnauthorized(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = append(c.onUnauthorized, fn)
}

// Get issues a GET and decodes the JSON body into out when out is non-nil.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues a POST with body encoded as JSON.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, nil, body, out)
}

// Do performs one backend call. Non-2xx responses come back as *APIError; a
// 401 additionally matches domain.ErrUnauthorized.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	return c.do(ctx, method, path, query, body, out, true)
}

// postCredentials is used for login and signup. The stored token is not sent
// and a 401 is a rejected credential pair, so nothing is evicted.
func (c *Client) postCredentials(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out, false)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any, authenticated bool) error {
	req, err := c.newRequest(ctx, method, path, query, body, authenticated)
	if err != nil {
		return err
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.GatewayRequestDuration.WithLabelValues(method, "error").Observe(time.Since(start).Seconds())
		return fmt.Errorf("gateway: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	metrics.GatewayRequestDuration.WithLabelValues(method, strconv.Itoa(resp.StatusCode)).Observe(time.Since(start).Seconds())

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Str("request_id", req.Header.Get(headerRequestID)).
		Dur("elapsed", time.Since(start)).
		Msg("backend call")

	if resp.StatusCode == http.StatusUnauthorized && authenticated {
		apiErr := decodeError(resp, path)
		c.evict()
		return apiErr
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp, path)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("gateway: decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body any, authenticated bool) (*http.Request, error) {
	target := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("gateway: encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("gateway: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(headerRequestID, uuid.NewString())

	if !authenticated {
		return req, nil
	}
	// Read on every call so a rotated token applies to the very next request.
	if token, ok := c.store.Token(); ok {
		req.Header.Set("Authorization", domain.DefaultTokenType+" "+token)
	}
	return req, nil
}

// evict clears the stored session before the 401 reaches the caller.
func (c *Client) evict() {
	c.store.Clear()
	metrics.GatewayEvictionsTotal.Inc()
	c.log.Info().Msg("backend rejected the token, stored session cleared")

	c.mu.RLock()
	hooks := append([]func(){}, c.onUnauthorized...)
	c.mu.RUnlock()
	for _, fn := range hooks {
		fn()
	}
}
