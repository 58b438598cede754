package fetch

import (
	"net/http"
	"time"
)

// RequestOption adjusts an outgoing request (headers, credentials).
type RequestOption func(*http.Request)

// WithHeader sets a request header.
func WithHeader(key, value string) RequestOption {
	return func(r *http.Request) {
		r.Header.Set(key, value)
	}
}

// WithBearerToken sets an Authorization: Bearer header.
func WithBearerToken(token string) RequestOption {
	return func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+token)
	}
}

// WithBasicAuth sets HTTP basic credentials.
func WithBasicAuth(username, password string) RequestOption {
	return func(r *http.Request) {
		r.SetBasicAuth(username, password)
	}
}

// WithCookie attaches a cookie, e.g. a session cookie.
func WithCookie(c *http.Cookie) RequestOption {
	return func(r *http.Request) {
		r.AddCookie(c)
	}
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying transport client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout bounds every request made through the client.
// Zero means no timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithBaseURL makes relative targets resolve against base.
func WithBaseURL(base string) ClientOption {
	return func(c *Client) {
		c.baseURL = base
	}
}

// WithDefaults adds request options applied before per-call options.
func WithDefaults(opts ...RequestOption) ClientOption {
	return func(c *Client) {
		c.defaults = append(c.defaults, opts...)
	}
}

// WithMetrics records request outcomes and latency.
func WithMetrics(m *Metrics) ClientOption {
	return func(c *Client) {
		c.metrics = m
	}
}
