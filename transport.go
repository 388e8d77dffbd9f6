package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/zekikos/builder-relayer-client/pkg/log"
)

// RequestOptions carries the per-request query parameters, additive headers
// and body for a transport call.
type RequestOptions struct {
	Headers http.Header
	Params  map[string]string
	Body    []byte
}

// TransportError reports a connection-level failure: the request never
// produced a response. It is never retried here; staleness-sensitive
// submissions must not be replayed blindly.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// RequestError reports a response with a non-success status. The body is
// kept verbatim so callers can inspect the relayer's rejection reason.
type RequestError struct {
	Status     int
	StatusText string
	Body       string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("relayer request failed: %d %s: %s", e.Status, e.StatusText, e.Body)
}

// Transport sends JSON requests and decodes JSON responses. It classifies
// failures but does not retry them.
type Transport struct {
	client *http.Client
	log    log.Logger
}

// NewTransport wraps an http.Client; nil selects http.DefaultClient.
func NewTransport(client *http.Client, logger log.Logger) *Transport {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Transport{client: client, log: logger}
}

// Do sends one request and decodes the JSON response into out when out is
// non-nil. Connection failures return a *TransportError, non-2xx statuses a
// *RequestError.
func (t *Transport) Do(ctx context.Context, method, urlStr string, opts *RequestOptions, out any) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts == nil {
		opts = &RequestOptions{}
	}

	parsed, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("parse url: %w", err)
	}
	if len(opts.Params) > 0 {
		q := parsed.Query()
		for k, v := range opts.Params {
			q.Set(k, v)
		}
		parsed.RawQuery = q.Encode()
	}

	var body io.Reader
	if len(opts.Body) > 0 {
		body = bytes.NewReader(opts.Body)
	}
	req, err := http.NewRequestWithContext(ctx, method, parsed.String(), body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if len(opts.Body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, values := range opts.Headers {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}

	resp, err := t.client.Do(req)
	if err != nil {
		t.log.Debugw("request failed before response", "method", method, "url", parsed.String(), "err", err)
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		t.log.Debugw("request rejected", "method", method, "url", parsed.String(), "status", resp.StatusCode)
		return &RequestError{
			Status:     resp.StatusCode,
			StatusText: http.StatusText(resp.StatusCode),
			Body:       string(respBytes),
		}
	}

	if out != nil && len(respBytes) > 0 {
		if err := json.Unmarshal(respBytes, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
