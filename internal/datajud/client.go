// Package datajud is a client for the CNJ public DataJud search API.
package datajud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/JustJay7/datajud-bridge/pkg/logger"
)

// DefaultTimeout bounds a single search call.
const DefaultTimeout = 30 * time.Second

// Config holds the connection settings for the DataJud API.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Reason says why a search produced no data.
type Reason string

const (
	ReasonNone      Reason = ""
	ReasonRequest   Reason = "request"
	ReasonTransport Reason = "transport"
	ReasonStatus    Reason = "status"
	ReasonDecode    Reason = "decode"
)

// Result is the outcome of a search: either Response is set, or Reason and
// Err describe the failure.
type Result struct {
	Response   *SearchResponse
	Reason     Reason
	StatusCode int
	Err        error
}

// OK reports whether the search returned a decoded response.
func (r Result) OK() bool {
	return r.Reason == ReasonNone && r.Response != nil
}

// Success wraps a decoded response.
func Success(resp *SearchResponse) Result {
	return Result{Response: resp, StatusCode: http.StatusOK}
}

// Failure builds a failed result.
func Failure(reason Reason, status int, err error) Result {
	return Result{Reason: reason, StatusCode: status, Err: err}
}

// Client issues searches against one DataJud deployment.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *logger.Logger
}

// NewClient creates a client. A nil httpClient gets one with cfg.Timeout.
func NewClient(cfg Config, httpClient *http.Client, log *logger.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")

	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if log == nil {
		log = logger.NewNop()
	}

	return &Client{
		cfg:    cfg,
		http:   httpClient,
		logger: log.With("component", "datajud"),
	}
}

// SearchURL returns the search endpoint for a tribunal alias.
func (c *Client) SearchURL(alias string) string {
	return fmt.Sprintf("%s/%s/_search", c.cfg.BaseURL, alias)
}

// Search looks up a process by its normalized number in the given tribunal
// index. It makes exactly one attempt; every failure is logged and reported
// through the returned Result.
func (c *Client) Search(ctx context.Context, number, alias string) Result {
	res := c.search(ctx, number, alias)
	if !res.OK() {
		c.logger.Warn("DataJud query failed",
			"tribunal", alias,
			"reason", string(res.Reason),
			"status", res.StatusCode,
			"error", res.Err,
		)
	}
	return res
}

func (c *Client) search(ctx context.Context, number, alias string) Result {
	body, err := json.Marshal(NewSearchRequest(number))
	if err != nil {
		return Failure(ReasonRequest, 0, fmt.Errorf("failed to marshal request: %w", err))
	}

	endpoint := c.SearchURL(alias)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return Failure(ReasonRequest, 0, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Authorization", "APIKey "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("Querying DataJud", "url", endpoint)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return Failure(ReasonTransport, 0, fmt.Errorf("failed to send request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Failure(ReasonStatus, resp.StatusCode,
			fmt.Errorf("datajud API error: status %d, body: %s", resp.StatusCode, string(snippet)))
	}

	var out SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Failure(ReasonDecode, resp.StatusCode, fmt.Errorf("failed to decode response: %w", err))
	}

	c.logger.Debug("DataJud query completed",
		"tribunal", alias,
		"hits", out.Hits.Total.Value,
		"latency", time.Since(start).String(),
	)

	return Success(&out)
}
