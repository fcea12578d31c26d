package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/f3rmion/swty/internal/text"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
)

const (
	defaultTimeout = 10 * time.Second
	maxBodySize    = 4 << 20
)

// ErrInvalidResponse is returned when the endpoint answers with something
// other than a JSON object carrying a string "answer" field.
var ErrInvalidResponse = errors.New("invalid API response")

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("unexpected response status: %s", e.Status)
	}
	return fmt.Sprintf("unexpected response status: %d", e.Code)
}

// Client fetches sentences from an HTTP endpoint returning
// {"answer": "<comma or newline separated text>"}.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     zerolog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithTimeout sets the request timeout. Non-positive values keep the default.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient creates a client for endpoint.
func NewClient(endpoint string, opts ...ClientOption) *Client {
	c := &Client{
		endpoint: strings.TrimSpace(endpoint),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Describe returns the endpoint URL.
func (c *Client) Describe() string {
	return c.endpoint
}

// Fetch requests the endpoint and parses the answer into sentences.
func (c *Client) Fetch(ctx context.Context) ([]string, error) {
	raw, err := c.FetchRaw(ctx)
	if err != nil {
		return nil, err
	}
	return text.ParseCSV(raw), nil
}

// FetchRaw returns the unparsed "answer" text.
func (c *Client) FetchRaw(ctx context.Context) (string, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("url", c.endpoint).Msg("sentence request failed")
		return "", fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		c.logger.Warn().Str("url", c.endpoint).Int("status", resp.StatusCode).Msg("sentence request rejected")
		return "", &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	answer, err := parseAnswer(body)
	if err != nil {
		c.logger.Warn().Str("url", c.endpoint).Int("bytes", len(body)).Msg("sentence response has no answer")
		return "", err
	}

	c.logger.Debug().
		Str("url", c.endpoint).
		Int("bytes", len(body)).
		Dur("took", time.Since(start)).
		Msg("fetched sentences")
	return answer, nil
}

func parseAnswer(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", fmt.Errorf("%w: malformed JSON", ErrInvalidResponse)
	}
	doc := gjson.ParseBytes(body)
	if !doc.IsObject() {
		return "", fmt.Errorf("%w: expected an object", ErrInvalidResponse)
	}
	answer := doc.Get("answer")
	if answer.Type != gjson.String {
		return "", fmt.Errorf("%w: missing answer", ErrInvalidResponse)
	}
	return answer.Str, nil
}
