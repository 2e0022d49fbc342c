package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/goliatone/go-formschema/pkg/model"
)

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient overrides the underlying http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithDelay asks the backend to hold each response for d, via the _delay
// query parameter.
func WithDelay(d time.Duration) ClientOption {
	return func(c *Client) {
		c.delay = d
	}
}

// Client talks to the fields and submit endpoints. It satisfies both
// form.FieldSource and form.Submitter.
type Client struct {
	baseURL string
	http    *http.Client
	delay   time.Duration
}

// NewClient returns a client rooted at baseURL (e.g. "http://localhost:8383").
func NewClient(baseURL string, options ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Fields fetches the field list.
func (c *Client) Fields(ctx context.Context) ([]model.FieldSchema, error) {
	var env Envelope[[]model.FieldSchema]
	if err := c.do(ctx, "get fields", http.MethodGet, PathFields, nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// Submit posts payload and returns the echoed data.
func (c *Client) Submit(ctx context.Context, payload model.Payload) (model.Payload, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &Error{Op: "submit", Err: err}
	}
	var env Envelope[model.Payload]
	if err := c.do(ctx, "submit", http.MethodPost, PathSubmit, body, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

type envelope interface {
	ok() bool
	message() string
}

func (e *Envelope[T]) ok() bool        { return e.Success }
func (e *Envelope[T]) message() string { return e.ErrorMessage }

func (c *Client) do(ctx context.Context, op, method, path string, body []byte, out envelope) error {
	url := c.baseURL + path
	if c.delay > 0 {
		url += "?_delay=" + c.delay.String()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return &Error{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Op: op, Status: resp.StatusCode, Err: err}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &Error{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("decode envelope: %w", err)}
	}
	if !out.ok() || resp.StatusCode >= http.StatusBadRequest {
		return &Error{Op: op, Status: resp.StatusCode, Message: out.message()}
	}
	return nil
}
