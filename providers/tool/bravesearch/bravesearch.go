package bravesearch

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/leofalp/bravekit/core/cost"
	"github.com/leofalp/bravekit/internal/utils"
	"github.com/leofalp/bravekit/providers/observability"
	slogobs "github.com/leofalp/bravekit/providers/observability/slog"
	"github.com/leofalp/bravekit/providers/search/brave"
	"github.com/leofalp/bravekit/providers/tool"
)

const (
	// EnvAPIKey is the environment variable consulted when no explicit API
	// key is configured.
	EnvAPIKey = "BRAVE_API_KEY"

	// ToolName is the name the search operation is registered under.
	ToolName = "brave_search"

	defaultMaxResults = 5
	defaultCountry    = "US"
	defaultSearchLang = "en"

	// resultFilterWeb restricts API responses to the web section; the
	// toolkit never requests news, video, or infobox data.
	resultFilterWeb = "web"

	defaultWaitTime = 5 * time.Second
	defaultRetries  = 3
)

// ErrMissingAPIKey is returned by [New] when no API key was configured and
// the BRAVE_API_KEY environment variable is unset or empty.
var ErrMissingAPIKey = errors.New("BRAVE_API_KEY is required. Please set the BRAVE_API_KEY environment variable")

// SearchClient is the capability the toolkit needs from the Brave client:
// one blocking search call. *brave.Client satisfies it; tests inject mocks.
type SearchClient interface {
	Search(ctx context.Context, request brave.SearchRequest) (*brave.SearchResponse, error)
}

// Toolkit exposes Brave web search as a single agent tool. It owns its
// SearchClient for its lifetime and shares only immutable configuration
// between calls, so concurrent invocations need no coordination here.
// Construct with [New].
type Toolkit struct {
	client          SearchClient
	observer        observability.Provider
	fixedMaxResults *int
	fixedLanguage   *string
	searchTool      tool.GenericTool
}

type toolkitOptions struct {
	apiKey          string
	fixedMaxResults *int
	fixedLanguage   *string
	waitTime        time.Duration
	retries         int
	client          SearchClient
	observer        observability.Provider
}

// Option configures a [Toolkit] during construction.
type Option func(*toolkitOptions)

// WithAPIKey sets the Brave API key explicitly, bypassing the BRAVE_API_KEY
// environment variable.
func WithAPIKey(apiKey string) Option {
	return func(o *toolkitOptions) {
		o.apiKey = apiKey
	}
}

// WithFixedMaxResults pins the number of results requested from the API.
// When set, the max_results argument of the search operation is ignored.
func WithFixedMaxResults(maxResults int) Option {
	return func(o *toolkitOptions) {
		o.fixedMaxResults = utils.Ptr(maxResults)
	}
}

// WithFixedLanguage pins the search language. When set, the search_lang
// argument of the search operation is ignored. The country argument is
// never overridden.
func WithFixedLanguage(language string) Option {
	return func(o *toolkitOptions) {
		o.fixedLanguage = utils.Ptr(language)
	}
}

// WithWaitTime sets the pause between retry attempts of the owned client.
// Default: 5s.
func WithWaitTime(waitTime time.Duration) Option {
	return func(o *toolkitOptions) {
		o.waitTime = waitTime
	}
}

// WithRetries sets the retry count of the owned client. Default: 3.
func WithRetries(retries int) Option {
	return func(o *toolkitOptions) {
		o.retries = retries
	}
}

// WithClient injects a pre-built search client instead of constructing one
// from the API key. Intended for tests; WithWaitTime and WithRetries have no
// effect on an injected client.
func WithClient(client SearchClient) Option {
	return func(o *toolkitOptions) {
		o.client = client
	}
}

// WithObserver sets the observability provider used for logging and metrics.
// Defaults to the slog-backed observer.
func WithObserver(observer observability.Provider) Option {
	return func(o *toolkitOptions) {
		o.observer = observer
	}
}

// New constructs a Brave search toolkit. The API key is resolved from
// [WithAPIKey] or, failing that, the BRAVE_API_KEY environment variable;
// without a non-empty key the constructor fails with [ErrMissingAPIKey] and
// no toolkit is created. The owned client is configured with the given wait
// time and retry count.
func New(options ...Option) (*Toolkit, error) {
	opts := &toolkitOptions{
		waitTime: defaultWaitTime,
		retries:  defaultRetries,
	}
	for _, option := range options {
		option(opts)
	}

	apiKey := opts.apiKey
	if apiKey == "" {
		apiKey = os.Getenv(EnvAPIKey)
	}
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	if opts.observer == nil {
		opts.observer = slogobs.New(nil)
	}
	if opts.client == nil {
		opts.client = brave.NewClient(apiKey,
			brave.WithWaitTime(opts.waitTime),
			brave.WithRetries(opts.retries),
		)
	}

	toolkit := &Toolkit{
		client:          opts.client,
		observer:        opts.observer,
		fixedMaxResults: opts.fixedMaxResults,
		fixedLanguage:   opts.fixedLanguage,
	}

	toolkit.searchTool = tool.NewTool[SearchInput, string](
		ToolName,
		toolkit.Search,
		tool.WithDescription("Search the web using Brave Search. Provides high-quality, privacy-focused web search results. Works well for: current events, factual information, research queries, product information, and general web searches. Returns a JSON document with the top result titles, URLs, and descriptions. Requires the BRAVE_API_KEY environment variable."),
		tool.WithMetrics(cost.ToolMetrics{
			Amount:                  0.005, // $5 per 1000 queries = $0.005 per query
			Currency:                "USD",
			CostDescription:         "per search query",
			Accuracy:                0.88,
			AverageDurationInMillis: 800,
		}),
	)

	return toolkit, nil
}

// SearchInput holds the arguments of the search operation. Zero values fall
// back to the documented defaults.
type SearchInput struct {
	Query      string `json:"query" jsonschema:"description=The query to search for,required"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"description=The maximum number of results to return,default=5"`
	Country    string `json:"country,omitempty" jsonschema:"description=The country code for search results,default=US"`
	SearchLang string `json:"search_lang,omitempty" jsonschema:"description=The language of the search results,default=en"`
}

// SearchResultItem is the sanitized projection of one web result.
type SearchResultItem struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// SearchResponsePayload is the success shape of the search operation:
// the web results in provider order, the original query, and the result count.
type SearchResponsePayload struct {
	WebResults   []SearchResultItem `json:"web_results"`
	Query        string             `json:"query"`
	TotalResults int                `json:"total_results"`
}

// errorPayload is the failure shape of the search operation.
type errorPayload struct {
	Error string `json:"error"`
}

// Search queries Brave for the given input and returns the results as a JSON
// string. Every outcome is encoded in that string: the success payload, or an
// object with a single "error" field. The returned Go error is always nil so
// the operation never fails past its own boundary; agents receive a
// well-formed document either way.
//
// Configured fixed overrides take precedence over the max_results and
// search_lang arguments; country is passed through as given. An empty query
// short-circuits to an error payload without calling the API.
func (t *Toolkit) Search(ctx context.Context, input SearchInput) (string, error) {
	if input.Query == "" {
		return utils.JSONToString(errorPayload{Error: "Please provide a query to search for"}), nil
	}

	maxResults := input.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	if t.fixedMaxResults != nil {
		maxResults = *t.fixedMaxResults
	}

	country := input.Country
	if country == "" {
		country = defaultCountry
	}

	searchLang := input.SearchLang
	if searchLang == "" {
		searchLang = defaultSearchLang
	}
	if t.fixedLanguage != nil {
		searchLang = *t.fixedLanguage
	}

	t.observer.Info(ctx, "Searching Brave",
		observability.String(observability.AttrSearchProvider, "brave"),
		observability.String(observability.AttrSearchQuery, input.Query),
		observability.Int(observability.AttrSearchCount, maxResults),
		observability.String(observability.AttrSearchCountry, country),
		observability.String(observability.AttrSearchLang, searchLang),
	)

	response, err := t.client.Search(ctx, brave.SearchRequest{
		Query:        input.Query,
		Count:        maxResults,
		Country:      country,
		SearchLang:   searchLang,
		ResultFilter: resultFilterWeb,
	})
	if err != nil {
		return t.searchError(ctx, input.Query, err), nil
	}

	payload := SearchResponsePayload{
		WebResults: []SearchResultItem{},
		Query:      input.Query,
	}

	// A missing or empty web section is a valid "no results" answer, not an error.
	if response != nil && response.Web != nil {
		for _, result := range response.Web.Results {
			payload.WebResults = append(payload.WebResults, SearchResultItem{
				Title:       result.Title,
				URL:         result.URL,
				Description: sanitizeDescription(result.Description),
			})
		}
	}
	payload.TotalResults = len(payload.WebResults)

	t.observer.Counter("brave_search.queries").Add(ctx, 1,
		observability.Int(observability.AttrSearchResults, payload.TotalResults),
	)

	return utils.JSONToString(payload, true), nil
}

// searchError logs a failed search and converts the error into the JSON
// error payload. API-level failures keep their distinguished prefix so
// callers can tell a rejected request from a transport fault.
func (t *Toolkit) searchError(ctx context.Context, query string, err error) string {
	var apiErr *brave.APIError
	if errors.As(err, &apiErr) {
		t.observer.Error(ctx, "Brave Search API error",
			observability.String(observability.AttrSearchQuery, query),
			observability.Error(err),
		)
		return utils.JSONToString(errorPayload{Error: "Brave Search API error: " + apiErr.Message})
	}

	t.observer.Error(ctx, "Unexpected error during Brave search",
		observability.String(observability.AttrSearchQuery, query),
		observability.Error(err),
	)
	return utils.JSONToString(errorPayload{Error: "An unexpected error occurred: " + err.Error()})
}

// Tool returns the registered search tool, ready to be added to a catalog or
// advertised to an agent host.
func (t *Toolkit) Tool() tool.GenericTool {
	return t.searchTool
}

// Tools returns every tool this toolkit registers. There is exactly one.
func (t *Toolkit) Tools() []tool.GenericTool {
	return []tool.GenericTool{t.searchTool}
}

// sanitizeDescription converts the HTML highlighting markup Brave embeds in
// result descriptions into markdown text. Descriptions without markup are
// passed through untouched so plain snippets are never re-escaped.
func sanitizeDescription(description string) string {
	if !strings.Contains(description, "<") {
		return description
	}

	markdown, err := htmltomarkdown.ConvertString(description)
	if err != nil {
		// Better a raw snippet than none.
		return description
	}
	return strings.TrimSpace(markdown)
}
