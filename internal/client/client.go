// Package client talks to the billbook JSON API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"billbook/internal/core"
)

// APIError is a non-2xx response decoded from the error envelope. It
// unwraps to *core.ValidationError, *core.BizError or core.ErrBillNotFound
// depending on ret, so callers classify it with errors.As and errors.Is.
type APIError struct {
	StatusCode int
	Ret        int
	Msg        string
	Fields     []core.FieldError
}

func (e *APIError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("api error %d (ret %d): %s", e.StatusCode, e.Ret, e.Msg)
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return fmt.Sprintf("api error %d (ret %d): %s: %s", e.StatusCode, e.Ret, e.Msg, strings.Join(parts, "; "))
}

func (e *APIError) Unwrap() error {
	switch e.Ret {
	case core.RetBiz:
		return &core.BizError{Message: e.Msg}
	case core.RetValidation:
		if len(e.Fields) > 0 {
			return &core.ValidationError{Fields: e.Fields}
		}
	case core.RetNotFound:
		return core.ErrBillNotFound
	}
	return nil
}

// Temporary reports whether retrying later may succeed.
func (e *APIError) Temporary() bool {
	return e.Ret == core.RetUnavailable || e.StatusCode == http.StatusTooManyRequests
}

type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	userAgent  string
}

type Option func(*Client)

// WithHTTPClient replaces the pooled default client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// New returns a client for the server at baseURL, e.g. http://localhost:8081.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q must be http or https", baseURL)
	}
	c := &Client{
		baseURL:    u,
		httpClient: newHTTPClientWithPooling(),
		userAgent:  "billctl/1.0",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// newHTTPClientWithPooling keeps a few idle connections to the one API host.
func newHTTPClientWithPooling() *http.Client {
	dialer := &net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	transport := &http.Transport{
		DialContext:           dialer.DialContext,
		MaxIdleConns:          10,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
		ExpectContinueTimeout: time.Second,
		ForceAttemptHTTP2:     true,
	}
	return &http.Client{
		Transport: transport,
		Timeout:   60 * time.Second,
	}
}

func (c *Client) Search(ctx context.Context, req core.SearchRequest) (core.SearchResult, error) {
	var res core.SearchResult
	err := c.do(ctx, http.MethodPost, "/bills/search", req, &res)
	return res, err
}

func (c *Client) CreateBill(ctx context.Context, in core.BillInput) (core.Bill, error) {
	var b core.Bill
	err := c.do(ctx, http.MethodPost, "/bills", in, &b)
	return b, err
}

func (c *Client) GetBill(ctx context.Context, id string) (core.Bill, error) {
	var b core.Bill
	err := c.do(ctx, http.MethodGet, billPath(id), nil, &b)
	return b, err
}

func (c *Client) UpdateBill(ctx context.Context, id string, in core.BillInput) (core.Bill, error) {
	var b core.Bill
	err := c.do(ctx, http.MethodPut, billPath(id), in, &b)
	return b, err
}

// DeleteBill returns the bill as it was before deletion.
func (c *Client) DeleteBill(ctx context.Context, id string) (core.Bill, error) {
	var b core.Bill
	err := c.do(ctx, http.MethodDelete, billPath(id), nil, &b)
	return b, err
}

func (c *Client) Categories(ctx context.Context) ([]core.Category, error) {
	var cats []core.Category
	err := c.do(ctx, http.MethodGet, "/categories", nil, &cats)
	return cats, err
}

// Ready returns nil when the server reports it can serve requests.
func (c *Client) Ready(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/readyz", nil, nil)
}

func billPath(id string) string {
	return "/bills/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	u := c.baseURL.JoinPath(path)
	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode, Ret: core.RetUnavailable}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		apiErr.Msg = err.Error()
		return apiErr
	}
	var env core.ErrorEnvelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Msg == "" {
		apiErr.Msg = strings.TrimSpace(string(raw))
		if apiErr.Msg == "" {
			apiErr.Msg = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}
	apiErr.Ret, apiErr.Msg, apiErr.Fields = env.Ret, env.Msg, env.Fields
	return apiErr
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	return errors.Is(err, core.ErrBillNotFound)
}
