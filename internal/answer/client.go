// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package answer provides the HTTP client for the remote chat service.
package answer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jeranaias/moonchat/internal/logging"
	"github.com/jeranaias/moonchat/internal/model"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ErrorKind categorizes client errors for handling.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNetwork           // transport could not complete the exchange
	KindService           // service answered with a failure
)

// String returns the metadata spelling of the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindService:
		return "service"
	default:
		return "unknown"
	}
}

// ClientError represents a failed call to the chat service.
type ClientError struct {
	Kind    ErrorKind
	Message string
	Status  int    // HTTP status for KindService, 0 otherwise
	Detail  string // server-supplied detail, may be empty
	Cause   error
}

func (e *ClientError) Error() string {
	msg := e.Message
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// IsNetwork reports whether err is a transport-level failure.
func IsNetwork(err error) bool {
	var ce *ClientError
	return errors.As(err, &ce) && ce.Kind == KindNetwork
}

// IsService reports whether err is a non-success answer from the service.
func IsService(err error) bool {
	var ce *ClientError
	return errors.As(err, &ce) && ce.Kind == KindService
}

// ServiceDetail returns the server-supplied detail carried by err, if any.
func ServiceDetail(err error) (string, bool) {
	var ce *ClientError
	if errors.As(err, &ce) && ce.Kind == KindService && ce.Detail != "" {
		return ce.Detail, true
	}
	return "", false
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

const (
	// DefaultBaseURL is where a locally started service listens.
	DefaultBaseURL = "http://127.0.0.1:8000"
	// DefaultTimeout bounds one /chat exchange.
	DefaultTimeout = 30 * time.Second
	// maxBodyBytes caps how much of a response body is read.
	maxBodyBytes = 4 << 20
)

// ClientConfig holds configuration options for the chat service client.
type ClientConfig struct {
	// BaseURL is the service root; /chat and /health are appended.
	BaseURL string

	// Timeout bounds a whole request, including reading the body.
	Timeout time.Duration

	// HealthCheck runs GET /health before every Ask.
	HealthCheck bool

	// UserAgent is sent with every request when set.
	UserAgent string

	// Transport overrides the HTTP transport (tests, proxies).
	Transport http.RoundTripper

	// Logger receives debug traces. Nil discards.
	Logger *log.Logger
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL: DefaultBaseURL,
		Timeout: DefaultTimeout,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the chat service. It holds no conversation state and is
// safe for concurrent use.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
	logger     *log.Logger
}

// NewClientWithConfig creates a client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	cfg := *config

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Client{
		config: &cfg,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: cfg.Transport,
		},
		logger: logging.OrDiscard(cfg.Logger).With("component", "answer"),
	}
}

// BaseURL returns the normalized service root.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// Timeout returns the request timeout.
func (c *Client) Timeout() time.Duration {
	return c.config.Timeout
}

// =============================================================================
// HEALTH CHECK
// =============================================================================

// CheckHealth verifies the service is reachable. Any 2xx is healthy.
func (c *Client) CheckHealth(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/health", nil)
	if err != nil {
		return &ClientError{Kind: KindNetwork, Message: "failed to create request", Cause: err}
	}
	c.setHeaders(req)

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))

	if !isSuccess(resp.StatusCode) {
		return &ClientError{
			Kind:    KindService,
			Message: "health check failed: " + resp.Status,
			Status:  resp.StatusCode,
		}
	}
	return nil
}

// =============================================================================
// CHAT
// =============================================================================

// Ask submits question with the prior transcript and returns the answer.
// Exactly one /chat request is made; failures are *ClientError.
func (c *Client) Ask(ctx context.Context, question string, history []model.Message) (*ChatResponse, error) {
	if c.config.HealthCheck {
		if err := c.CheckHealth(ctx); err != nil {
			return nil, err
		}
	}
	return c.Chat(ctx, NewChatRequest(question, history))
}

// Chat sends a prepared request to POST /chat.
func (c *Client) Chat(ctx context.Context, chatReq ChatRequest) (*ChatResponse, error) {
	if chatReq.Messages == nil {
		chatReq.Messages = []Message{}
	}

	body, err := json.Marshal(chatReq)
	if err != nil {
		return nil, &ClientError{Kind: KindUnknown, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/chat", bytes.NewReader(body))
	if err != nil {
		return nil, &ClientError{Kind: KindNetwork, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	c.setHeaders(req)

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		// Headers arrived but the body did not; the exchange never completed.
		return nil, classifyTransport(err)
	}

	if !isSuccess(resp.StatusCode) {
		detail := detailText(data)
		c.logger.Debug("chat request rejected", "status", resp.StatusCode, "detail", detail)
		return nil, &ClientError{
			Kind:    KindService,
			Message: "chat request failed: " + resp.Status,
			Status:  resp.StatusCode,
			Detail:  detail,
		}
	}

	var result ChatResponse
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, &ClientError{
			Kind:    KindService,
			Message: "failed to decode response",
			Status:  resp.StatusCode,
			Cause:   err,
		}
	}

	return &result, nil
}

// =============================================================================
// HELPERS
// =============================================================================

// do executes req and maps transport failures to KindNetwork.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "method", req.Method, "path", req.URL.Path,
			"elapsed", time.Since(start), "err", err)
		return nil, classifyTransport(err)
	}
	c.logger.Debug("request done", "method", req.Method, "path", req.URL.Path,
		"status", resp.StatusCode, "elapsed", time.Since(start))
	return resp, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}
}

// classifyTransport wraps a transport error. Timeouts get their own message
// so the logs say why the exchange stopped.
func classifyTransport(err error) *ClientError {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &ClientError{Kind: KindNetwork, Message: "request timed out", Cause: err}
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &ClientError{Kind: KindNetwork, Message: fmt.Sprintf("cannot resolve %s", dnsErr.Name), Cause: err}
	}
	return &ClientError{Kind: KindNetwork, Message: "service unreachable", Cause: err}
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
