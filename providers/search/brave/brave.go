package brave

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/leofalp/bravekit/internal/utils"
	"github.com/leofalp/bravekit/providers/observability"
)

const (
	defaultBaseURL = "https://api.search.brave.com/res/v1"

	// defaultWaitTime is the pause between retry attempts.
	defaultWaitTime = 5 * time.Second

	// defaultRetries is the number of additional attempts after the first failure.
	defaultRetries = 3

	// maxCount is the largest result count the API accepts per request.
	maxCount = 20
)

// Client is a minimal Brave Search API client. It owns the HTTP transport,
// authentication header, and retry policy; result interpretation is left to
// callers. A Client is safe for concurrent use: all fields are set at
// construction and never mutated.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	waitTime   time.Duration
	retries    int
}

// Option configures a [Client] during construction.
type Option func(*Client)

// WithHTTPClient sets the underlying *http.Client. Useful for custom
// transports and timeouts.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithBaseURL overrides the API base URL. Primarily for tests pointing the
// client at a local server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithWaitTime sets the pause between retry attempts. Default: 5s.
func WithWaitTime(waitTime time.Duration) Option {
	return func(c *Client) {
		c.waitTime = waitTime
	}
}

// WithRetries sets the number of additional attempts after the first
// failure. Default: 3. A negative value disables retries.
func WithRetries(retries int) Option {
	return func(c *Client) {
		c.retries = retries
	}
}

// NewClient creates a Brave Search client authenticated with apiKey.
// The key is not validated here; an invalid key surfaces as an [*APIError]
// with status 401 or 403 on the first search.
func NewClient(apiKey string, options ...Option) *Client {
	client := &Client{
		apiKey:   apiKey,
		baseURL:  defaultBaseURL,
		waitTime: defaultWaitTime,
		retries:  defaultRetries,
	}
	for _, option := range options {
		option(client)
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{}
	}
	if client.retries < 0 {
		client.retries = 0
	}
	return client
}

// APIError is the distinguished error kind for API-level failures: the Brave
// endpoint was reached and answered with a non-2xx status (auth rejection,
// quota exceeded, malformed request). Transport-level failures (DNS, TLS,
// timeouts) are returned as plain wrapped errors instead.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return e.Message
	}
	return fmt.Sprintf("status %d: %s", e.StatusCode, e.Message)
}

// retryableStatus reports whether an API status code is worth retrying.
// Matches the transient set used across providers: rate limits and server errors.
func retryableStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusTooManyRequests, http.StatusInternalServerError,
		http.StatusBadGateway, http.StatusServiceUnavailable, 529:
		return true
	}
	return false
}

// Search performs a web search against the Brave Search API. Failed attempts
// are retried up to the configured retry count, pausing the configured wait
// time between attempts; only transient failures (HTTP 429/5xx, transport
// errors) are retried. Context cancellation is honored between attempts.
//
// Returns an [*APIError] when the API answers with a non-2xx status, or a
// plain error for transport and decoding failures.
func (c *Client) Search(ctx context.Context, request SearchRequest) (*SearchResponse, error) {
	fullURL := c.searchURL(request)

	headers := map[string]string{
		"Accept":               "application/json",
		"X-Subscription-Token": c.apiKey,
	}

	span := observability.SpanFromContext(ctx)

	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			if span != nil {
				span.AddEvent(observability.EventSearchRetry,
					observability.Int(observability.AttrSearchAttempt, attempt),
					observability.Error(lastErr),
				)
			}
			// Respect context cancellation while waiting between attempts.
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.waitTime):
			}
		}

		_, response, err := utils.DoGetJSON[SearchResponse](ctx, c.httpClient, fullURL, headers)
		if err == nil {
			return response, nil
		}

		var statusErr *utils.StatusError
		if errors.As(err, &statusErr) {
			apiErr := &APIError{
				StatusCode: statusErr.StatusCode,
				Message:    apiMessage(statusErr),
			}
			if !retryableStatus(statusErr.StatusCode) {
				return nil, apiErr
			}
			lastErr = apiErr
			continue
		}

		if ctx.Err() != nil {
			return nil, err
		}
		// Transport failure; retryable.
		lastErr = err
	}

	return nil, lastErr
}

// searchURL builds the web-search endpoint URL for the given request.
// Count is clamped to the API's accepted range; zero-valued fields are omitted.
func (c *Client) searchURL(request SearchRequest) string {
	params := url.Values{}
	params.Set("q", request.Query)

	count := request.Count
	if count <= 0 {
		count = 10
	}
	if count > maxCount {
		count = maxCount
	}
	params.Set("count", fmt.Sprintf("%d", count))

	if request.Country != "" {
		params.Set("country", request.Country)
	}
	if request.SearchLang != "" {
		params.Set("search_lang", request.SearchLang)
	}
	if request.ResultFilter != "" {
		params.Set("result_filter", request.ResultFilter)
	}

	return fmt.Sprintf("%s/web/search?%s", c.baseURL, params.Encode())
}

// apiMessage extracts a human-readable message from an error response body,
// falling back to a generic description for empty bodies.
func apiMessage(statusErr *utils.StatusError) string {
	message := strings.TrimSpace(statusErr.Body)
	if message == "" {
		message = fmt.Sprintf("brave search request failed with status %d", statusErr.StatusCode)
	}
	return message
}
