// Package api is the HTTP client for the remote expenses service.
//
// Every call goes through Client.Do, which sends an optional JSON body,
// decodes a JSON response and turns any failure into a *RequestError
// whose message can be shown to the user as is. The client keeps no
// state between calls: no cache, no retries.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/pkg/errors"

	"expensedesk/internal/core"
	"expensedesk/internal/log"
)

// API paths
const (
	ExpensesPath = "/api/expenses"
	SummaryPath  = "/api/summary"
)

// Client talks to the expenses API rooted at a base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	logger     *log.StructuredLogger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client. The client is copied,
// so a WithTimeout given in any order does not change hc.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout bounds every call. Zero keeps the transport default, which
// is no overall timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithLogger sets the logger used for call logging.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = log.NewStructuredLogger(l.WithComponent(log.ComponentAPI))
		}
	}
}

// New returns a client for baseURL, e.g. "http://localhost:5000".
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, errors.Wrap(err, "parse API base URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errors.Errorf("API base URL %q must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, errors.Errorf("API base URL %q has no host", baseURL)
	}

	c := &Client{
		baseURL:    strings.TrimRight(u.String(), "/"),
		httpClient: &http.Client{},
		logger:     log.NewStructuredLogger(log.Nop()),
	}
	for _, opt := range opts {
		opt(c)
	}
	hc := *c.httpClient
	if c.timeout > 0 {
		hc.Timeout = c.timeout
	}
	c.httpClient = &hc
	return c, nil
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do sends method to path with body encoded as JSON when non-nil, and
// decodes a successful response into out when out is non-nil. An empty
// success body is accepted. Failures are returned as *RequestError.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) (err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "api."+method)
	defer span.Finish()
	ext.SpanKindRPCClient.Set(span)
	ext.HTTPMethod.Set(span, method)
	ext.HTTPUrl.Set(span, path)

	start := time.Now()
	status := 0
	defer func() {
		elapsed := time.Since(start)
		observeRequest(method, status, elapsed)
		if status > 0 {
			ext.HTTPStatusCode.Set(span, uint16(status))
		}
		if err != nil {
			ext.Error.Set(span, true)
			span.LogKV("message", err.Error())
		}
		c.logger.LogAPICall(ctx, method, path, status, elapsed.Milliseconds(), err)
	}()

	var reader io.Reader
	if body != nil {
		buf, mErr := json.Marshal(body)
		if mErr != nil {
			return transportError(errors.Wrap(mErr, "encode request body"))
		}
		reader = bytes.NewReader(buf)
	}

	req, rErr := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if rErr != nil {
		return transportError(rErr)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := log.RequestID(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	req.Header.Set("X-Request-ID", requestID)

	resp, dErr := c.httpClient.Do(req)
	if dErr != nil {
		return transportError(dErr)
	}
	defer resp.Body.Close()
	status = resp.StatusCode

	data, readErr := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return responseError(resp, data)
	}
	if readErr != nil {
		return transportError(errors.Wrap(readErr, "read response body"))
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if uErr := json.Unmarshal(data, out); uErr != nil {
		return &RequestError{Status: resp.StatusCode, Message: uErr.Error(), cause: uErr}
	}
	return nil
}

// List returns the expenses matching f, in the order the server sends.
func (c *Client) List(ctx context.Context, f core.Filter) ([]core.Expense, error) {
	path := ExpensesPath
	if q := f.Query(); q != "" {
		path += "?" + q
	}
	var items []core.Expense
	if err := c.Do(ctx, http.MethodGet, path, nil, &items); err != nil {
		return nil, errors.Wrap(err, "list expenses")
	}
	return items, nil
}

// Create submits d and returns the stored expense with its new id.
func (c *Client) Create(ctx context.Context, d core.Draft) (core.Expense, error) {
	var e core.Expense
	if err := c.Do(ctx, http.MethodPost, ExpensesPath, d, &e); err != nil {
		return core.Expense{}, errors.Wrap(err, "create expense")
	}
	return e, nil
}

// Update replaces the fields of expense id with d.
func (c *Client) Update(ctx context.Context, id string, d core.Draft) (core.Expense, error) {
	var e core.Expense
	if err := c.Do(ctx, http.MethodPut, expensePath(id), d, &e); err != nil {
		return core.Expense{}, errors.Wrapf(err, "update expense %s", id)
	}
	return e, nil
}

// Delete removes expense id. The acknowledgement body is ignored.
func (c *Client) Delete(ctx context.Context, id string) error {
	if err := c.Do(ctx, http.MethodDelete, expensePath(id), nil, nil); err != nil {
		return errors.Wrapf(err, "delete expense %s", id)
	}
	return nil
}

// Summary returns the overall total and the per-category totals.
func (c *Client) Summary(ctx context.Context) (core.Summary, error) {
	var s core.Summary
	if err := c.Do(ctx, http.MethodGet, SummaryPath, nil, &s); err != nil {
		return core.Summary{}, errors.Wrap(err, "load summary")
	}
	return s, nil
}

func expensePath(id string) string {
	return ExpensesPath + "/" + url.PathEscape(strings.TrimSpace(id))
}
