// Package graphql is the query executor: it posts compiled or fixed
// queries to the single upstream GraphQL endpoint and decodes the
// response envelope.
package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"

	"github.com/griddigger/griddigger/internal/domain"
	"github.com/griddigger/griddigger/internal/metrics"
)

// Config holds the executor settings.
type Config struct {
	Endpoint   string
	Token      string
	Timeout    time.Duration
	MaxRetries int
	PoolSize   int
	Logger     *zap.Logger
}

// Client executes GraphQL queries over HTTP POST with bearer auth,
// bounded timeouts, and retry with backoff on transient upstream errors
// (429/5xx). Every query it runs is an idempotent read.
type Client struct {
	endpoint string
	token    string
	http     *retryablehttp.Client
	logger   *zap.Logger
}

// Envelope is the decoded GraphQL response: data, errors, or both absent.
type Envelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []Error         `json:"errors"`
}

// Error is one GraphQL-level error entry.
type Error struct {
	Message string `json:"message"`
}

// HasErrors reports whether the envelope carries GraphQL-level errors.
func (e *Envelope) HasErrors() bool { return len(e.Errors) > 0 }

// ErrorMessages flattens error entries for logging.
func (e *Envelope) ErrorMessages() []string {
	msgs := make([]string, len(e.Errors))
	for i, ge := range e.Errors {
		msgs[i] = ge.Message
	}
	return msgs
}

// NewClient creates a GraphQL executor.
func NewClient(cfg Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = cfg.MaxRetries
	rc.Logger = nil
	rc.HTTPClient.Timeout = cfg.Timeout
	if t, ok := rc.HTTPClient.Transport.(*http.Transport); ok && cfg.PoolSize > 0 {
		t.MaxIdleConnsPerHost = cfg.PoolSize
	}

	return &Client{
		endpoint: cfg.Endpoint,
		token:    cfg.Token,
		http:     rc,
		logger:   logger,
	}
}

type payload struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

// Execute posts {query, variables} and returns the decoded envelope.
// Transport failures (timeout, connection error, non-2xx, bad JSON)
// come back as errors wrapping domain.ErrTransport; GraphQL-level
// errors stay inside the envelope for the caller to inspect.
func (c *Client) Execute(ctx context.Context, operation, query string, variables map[string]any) (*Envelope, error) {
	if variables == nil {
		variables = map[string]any{}
	}
	body, err := json.Marshal(payload{Query: query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("encode query payload: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	duration := time.Since(start)

	if err != nil {
		metrics.QueryRequestsTotal.WithLabelValues(operation, "error").Inc()
		metrics.QueryErrorsTotal.WithLabelValues(operation, "transport").Inc()
		return nil, fmt.Errorf("post %s: %v: %w", operation, err, domain.ErrTransport)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.QueryRequestsTotal.WithLabelValues(operation, "error").Inc()
		metrics.QueryErrorsTotal.WithLabelValues(operation, "http_status").Inc()
		return nil, fmt.Errorf("%s returned HTTP %d: %w", operation, resp.StatusCode, domain.ErrTransport)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.QueryRequestsTotal.WithLabelValues(operation, "error").Inc()
		metrics.QueryErrorsTotal.WithLabelValues(operation, "read_body").Inc()
		return nil, fmt.Errorf("read %s response: %v: %w", operation, err, domain.ErrTransport)
	}

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		metrics.QueryRequestsTotal.WithLabelValues(operation, "error").Inc()
		metrics.QueryErrorsTotal.WithLabelValues(operation, "bad_json").Inc()
		return nil, fmt.Errorf("decode %s response: %v: %w", operation, err, domain.ErrTransport)
	}

	metrics.QueryRequestsTotal.WithLabelValues(operation, "success").Inc()
	metrics.QueryRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())

	c.logger.Debug("query executed",
		zap.String("operation", operation),
		zap.Duration("duration", duration),
		zap.Int("graphql_errors", len(env.Errors)),
	)
	return &env, nil
}
