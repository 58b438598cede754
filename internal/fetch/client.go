package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bassista/go_sitedesk/internal/logger"
	"github.com/bassista/go_sitedesk/internal/query"
)

var errTrailingData = errors.New("unexpected data after JSON body")

// Client issues GET requests on behalf of fetchers.
// It is safe for concurrent use.
type Client struct {
	http     *http.Client
	baseURL  string
	defaults []RequestOption
	metrics  *Metrics
}

// NewClient creates a client. Without options it uses a fresh http.Client with no timeout.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{http: &http.Client{}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BasicFetch performs one request and decodes the JSON body into T.
// It keeps no state and returns every failure to the caller.
func BasicFetch[T any](ctx context.Context, c *Client, target string, params query.Params, opts ...RequestOption) (T, error) {
	data, _, err := get[T](ctx, c, target, params, opts)
	return data, err
}

func get[T any](ctx context.Context, c *Client, target string, params query.Params, opts []RequestOption) (T, http.Header, error) {
	var zero T
	url := c.requestURL(target, params)
	log := logger.WithComponent("fetch")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return zero, nil, transportFailure(url, err)
	}
	req.Header.Set("Accept", "application/json")
	for _, opt := range c.defaults {
		opt(req)
	}
	for _, opt := range opts {
		opt(req)
	}

	log.Debugf("GET %s", url)
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.observe(outcomeTransport, time.Since(start))
		return zero, nil, transportFailure(url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.metrics.observe(outcomeHTTP, time.Since(start))
		log.Debugf("GET %s: status %d", url, resp.StatusCode)
		return zero, nil, httpFailure(url, resp)
	}

	data, err := decodeBody[T](resp.Body)
	if err != nil {
		c.metrics.observe(outcomeParse, time.Since(start))
		return zero, nil, parseFailure(url, err)
	}

	c.metrics.observe(outcomeSuccess, time.Since(start))
	return data, resp.Header, nil
}

// decodeBody decodes exactly one JSON value; anything but whitespace after it is an error.
func decodeBody[T any](body io.Reader) (T, error) {
	var data T
	dec := json.NewDecoder(body)
	if err := dec.Decode(&data); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return data, err
	}

	var extra json.RawMessage
	if err := dec.Decode(&extra); err != io.EOF {
		var zero T
		if err == nil {
			return zero, errTrailingData
		}
		return zero, fmt.Errorf("%w: %v", errTrailingData, err)
	}
	return data, nil
}

// requestURL joins target to the base URL and appends the encoded query.
// The '?' is always written unless target already carries a query.
func (c *Client) requestURL(target string, params query.Params) string {
	url := target
	if c.baseURL != "" && !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
		url = strings.TrimRight(c.baseURL, "/") + "/" + strings.TrimLeft(target, "/")
	}

	q := query.Encode(params)
	if strings.Contains(url, "?") {
		if q == "" {
			return url
		}
		return url + "&" + q
	}
	return url + "?" + q
}
