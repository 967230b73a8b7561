package mcp

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

// DefaultTimeout bounds each HTTP request when no timeout is configured
const DefaultTimeout = 30 * time.Second

// maxResponseBytes caps how much of a response body is read
const maxResponseBytes = 10 << 20

// HTTPOption configures an HTTPTransport
type HTTPOption func(*httpOptions)

type httpOptions struct {
	headers map[string]string
	timeout time.Duration
	verify  bool
	token   string
	client  *http.Client
}

// WithHeaders adds headers to every request. They override the JSON defaults.
func WithHeaders(h map[string]string) HTTPOption {
	return func(o *httpOptions) {
		for k, v := range h {
			o.headers[k] = v
		}
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) HTTPOption {
	return func(o *httpOptions) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithVerify enables or disables TLS certificate verification
func WithVerify(verify bool) HTTPOption {
	return func(o *httpOptions) {
		o.verify = verify
	}
}

// WithBearerToken authenticates every request with an OAuth2 bearer token
func WithBearerToken(token string) HTTPOption {
	return func(o *httpOptions) {
		o.token = token
	}
}

// WithHTTPClient replaces the underlying client. Timeout, verify and token are then ignored.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(o *httpOptions) {
		o.client = c
	}
}

// HTTPTransport speaks JSON-RPC 2.0 over HTTP POST to a single URL
type HTTPTransport struct {
	name    string
	url     string
	headers map[string]string
	client  *http.Client

	mu        sync.Mutex
	connected bool
}

var _ Transport = (*HTTPTransport)(nil)

// NewHTTPTransport creates a transport. No request is made until Connect or Send.
func NewHTTPTransport(name, url string, opts ...HTTPOption) *HTTPTransport {
	o := &httpOptions{
		headers: map[string]string{},
		timeout: DefaultTimeout,
		verify:  true,
	}
	for _, opt := range opts {
		opt(o)
	}

	client := o.client
	if client == nil {
		client = newHTTPClient(o)
	}

	return &HTTPTransport{
		name:    name,
		url:     url,
		headers: o.headers,
		client:  client,
	}
}

func newHTTPClient(o *httpOptions) *http.Client {
	base := http.DefaultTransport.(*http.Transport).Clone()
	if !o.verify {
		base.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in via verify = false
	}

	var rt http.RoundTripper = base
	if o.token != "" {
		rt = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: o.token}),
			Base:   base,
		}
	}
	return &http.Client{Transport: rt, Timeout: o.timeout}
}

// Name returns the transport name
func (t *HTTPTransport) Name() string { return t.name }

// URL returns the server URL
func (t *HTTPTransport) URL() string { return t.url }

// IsConnected reports whether the last Connect succeeded
func (t *HTTPTransport) IsConnected() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.connected
}

// Disconnect forgets the connection state. HTTP has no session to close.
func (t *HTTPTransport) Disconnect() {
	t.setConnected(false)
}

func (t *HTTPTransport) setConnected(v bool) {
	t.mu.Lock()
	t.connected = v
	t.mu.Unlock()
}

// Connect issues a GET against the server URL
func (t *HTTPTransport) Connect(ctx context.Context) (bool, error) {
	req, err := t.newRequest(ctx, http.MethodGet, nil)
	if err != nil {
		t.setConnected(false)
		return false, t.connectError(err)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		t.setConnected(false)
		return false, t.connectError(err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))

	if resp.StatusCode >= http.StatusBadRequest {
		t.setConnected(false)
		return false, t.connectError(fmt.Errorf("unexpected status %s", resp.Status))
	}

	ok := resp.StatusCode == http.StatusOK
	t.setConnected(ok)
	return ok, nil
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
	ID      string `json:"id"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *RPCError       `json:"error"`
}

// Send connects if needed, then posts a JSON-RPC request. Nil params are sent as
// an empty object. A missing result member is returned as JSON null.
func (t *HTTPTransport) Send(ctx context.Context, method string, params any) (json.RawMessage, error) {
	if !t.IsConnected() {
		if _, err := t.Connect(ctx); err != nil {
			return nil, err
		}
	}

	if params == nil {
		params = struct{}{}
	}
	body, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      NewRequestID(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request for MCP server [%s]: %w", t.name, err)
	}

	req, err := t.newRequest(ctx, http.MethodPost, body)
	if err != nil {
		return nil, t.sendError(err)
	}
	resp, err := t.client.Do(req)
	if err != nil {
		return nil, t.sendError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, t.sendError(err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, t.sendError(fmt.Errorf("unexpected status %s", resp.Status))
	}

	var decoded rpcResponse
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("invalid response from MCP server [%s]: %w", t.name, err)
	}
	if decoded.Error != nil {
		return nil, decoded.Error
	}
	if len(decoded.Result) == 0 {
		return json.RawMessage("null"), nil
	}
	return decoded.Result, nil
}

func (t *HTTPTransport) newRequest(ctx context.Context, method string, body []byte) (*http.Request, error) {
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, t.url, r)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	for k, v := range t.headers {
		req.Header.Set(k, v)
	}
	return req, nil
}

func (t *HTTPTransport) connectError(err error) error {
	return fmt.Errorf("failed to connect to MCP server [%s] at %s: %w", t.name, t.url, err)
}

func (t *HTTPTransport) sendError(err error) error {
	return fmt.Errorf("failed to send request to MCP server [%s]: %w", t.name, err)
}

// NewRequestID returns a unique JSON-RPC request id
func NewRequestID() string {
	return "mcp_" + uuid.NewString()
}
