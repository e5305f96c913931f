// Copyright 2026 The Disentangle Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/disentangle-foundation/disentangle-go/lib/config"
	"github.com/disentangle-foundation/disentangle-go/lib/netutil"
)

// defaultRequestTimeout is the fixed per-request timeout for RPC calls
// when the configuration does not specify one.
const defaultRequestTimeout = 30 * time.Second

// Config holds configuration for creating a Client.
type Config struct {
	// NodeURL is the base URL of the Disentangle node
	// (e.g., "http://localhost:8000").
	NodeURL string

	// RequestTimeout is the fixed timeout applied to every RPC call.
	// It does not apply to the /watch event stream, which has no
	// deadline once established. Defaults to 30 seconds.
	RequestTimeout time.Duration

	// HTTPClient, when set, is used for all requests including the
	// event stream, and RequestTimeout is ignored. Intended for tests
	// that need to redirect requests or inject transports.
	HTTPClient *http.Client

	// Logger is used for structured logging. If nil, slog.Default()
	// is used.
	Logger *slog.Logger
}

// Client is a Disentangle node client. It holds the node URL, the
// shared HTTP transport, and at most one local agent identity
// established by Register.
//
// The transport is safe for concurrent RPC calls from multiple
// goroutines. Session state is not internally locked: callers must not
// run Register concurrently with identity-scoped calls without external
// synchronization.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	streamClient *http.Client
	transport    *http.Transport
	logger       *slog.Logger

	identity   *AgentIdentity
	signingKey string
}

// New creates a client bound to the node at config.NodeURL.
// The caller must call Close when done with the client.
func New(cfg Config) (*Client, error) {
	if cfg.NodeURL == "" {
		return nil, fmt.Errorf("disentangle: NodeURL is required")
	}

	// Validate the URL structure. The string form (trailing slash
	// stripped) is stored and request URLs are built by concatenation,
	// which sidesteps re-encoding of DID path segments by url.URL.
	if _, err := url.Parse(cfg.NodeURL); err != nil {
		return nil, fmt.Errorf("disentangle: invalid NodeURL %q: %w", cfg.NodeURL, err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	client := &Client{
		baseURL: strings.TrimRight(cfg.NodeURL, "/"),
		logger:  logger,
	}

	if cfg.HTTPClient != nil {
		client.httpClient = cfg.HTTPClient
		client.streamClient = cfg.HTTPClient
		return client, nil
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	// One transport (connection pool) shared by two clients: RPC calls
	// carry the fixed timeout, the event stream must not — a watch can
	// legitimately stay open for hours on keepalives alone.
	transport := http.DefaultTransport.(*http.Transport).Clone()
	client.transport = transport
	client.httpClient = &http.Client{Transport: transport, Timeout: timeout}
	client.streamClient = &http.Client{Transport: transport}
	return client, nil
}

// NewFromConfig creates a client from a loaded configuration file.
func NewFromConfig(cfg *config.Config) (*Client, error) {
	return New(Config{
		NodeURL:        cfg.NodeURL,
		RequestTimeout: cfg.RequestTimeout,
	})
}

// Close releases the client's pooled connections. Any in-progress
// event stream is torn down along with the transport. Idempotent.
func (c *Client) Close() {
	if c.transport != nil {
		c.transport.CloseIdleConnections()
		return
	}
	c.httpClient.CloseIdleConnections()
}

// do performs one RPC exchange and returns the decoded-checked response
// body. Exactly one request per call: no retry, no backoff — retry
// policy belongs to the caller.
//
// Every failure maps to one classified error: transport faults become
// *ConnectionError, non-2xx statuses classify by status code, and a
// 2xx body that is not valid JSON becomes *ProtocolError.
func (c *Client) do(ctx context.Context, method, path string, requestBody any, query url.Values) (json.RawMessage, error) {
	requestURL := c.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return nil, &ProtocolError{Message: fmt.Sprintf("encoding request body: %v", err)}
		}
		bodyReader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, requestURL, bodyReader)
	if err != nil {
		return nil, &ConnectionError{Message: fmt.Sprintf("creating request %s %s", method, path), Err: err}
	}
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, &ConnectionError{Message: fmt.Sprintf("request %s %s failed", method, path), Err: err}
	}
	defer response.Body.Close()

	body, err := netutil.ReadResponse(response.Body)
	if err != nil {
		return nil, &ConnectionError{Message: fmt.Sprintf("reading %s %s response", method, path), Err: err}
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, classify(response.StatusCode, body)
	}

	if !json.Valid(body) {
		return nil, &ProtocolError{Message: fmt.Sprintf("invalid JSON in %s %s response", method, path)}
	}
	return json.RawMessage(body), nil
}

// get performs a GET exchange and unwraps the response into result.
func (c *Client) get(ctx context.Context, path string, query url.Values, result any) error {
	body, err := c.do(ctx, http.MethodGet, path, nil, query)
	if err != nil {
		return err
	}
	return decodeInto(body, result)
}

// post performs a POST exchange with a JSON body and unwraps the
// response into result. Pass nil to discard the response body.
func (c *Client) post(ctx context.Context, path string, requestBody any, result any) error {
	body, err := c.do(ctx, http.MethodPost, path, requestBody, nil)
	if err != nil {
		return err
	}
	if result == nil {
		return nil
	}
	return decodeInto(body, result)
}

// decodeInto unwraps a response body into a typed value. Unmarshal
// failures fold into *ProtocolError — the typed layer never surfaces
// raw json errors.
func decodeInto(body json.RawMessage, result any) error {
	if err := json.Unmarshal(body, result); err != nil {
		return &ProtocolError{Message: fmt.Sprintf("unexpected response shape: %v", err)}
	}
	return nil
}
