package observability

// Semantic conventions for observability attributes.
// These constants define standard attribute names to ensure consistency
// across different components of the system.

// --- Tool Execution Attributes ---

const (
	// AttrToolName is the name of the tool being executed
	AttrToolName = "tool.name"

	// AttrToolDescription is the tool description
	AttrToolDescription = "tool.description"

	// AttrToolInput is the tool input (serialized)
	AttrToolInput = "tool.input"

	// AttrToolOutput is the tool output (serialized)
	AttrToolOutput = "tool.output"

	// AttrToolDuration is the execution duration
	AttrToolDuration = "tool.duration"

	// AttrToolError is the error message if tool execution failed
	AttrToolError = "tool.error"
)

// --- Search Attributes ---

const (
	// AttrSearchQuery is the query string sent to the search provider
	AttrSearchQuery = "search.query"

	// AttrSearchProvider is the name of the search provider (e.g., "brave")
	AttrSearchProvider = "search.provider"

	// AttrSearchCount is the requested number of results
	AttrSearchCount = "search.count"

	// AttrSearchCountry is the country code for localized results
	AttrSearchCountry = "search.country"

	// AttrSearchLang is the search language code
	AttrSearchLang = "search.lang"

	// AttrSearchResults is the number of results actually returned
	AttrSearchResults = "search.results"

	// AttrSearchAttempt is the retry attempt number (0 for the first try)
	AttrSearchAttempt = "search.attempt"
)

// --- HTTP Attributes ---

const (
	// AttrHTTPMethod is the HTTP method (GET, POST, etc.)
	AttrHTTPMethod = "http.method"

	// AttrHTTPStatusCode is the HTTP response status code
	AttrHTTPStatusCode = "http.status_code"

	// AttrHTTPURL is the full request URL
	AttrHTTPURL = "http.url"

	// AttrHTTPResponseBodySize is the size of the response body in bytes
	AttrHTTPResponseBodySize = "http.response.body.size"
)

// --- Span Status Attributes ---

const (
	// AttrStatus is the final status of a span ("ok", "error", "unset")
	AttrStatus = "status"

	// AttrStatusDescription is the human-readable status description
	AttrStatusDescription = "status.description"
)

// --- Standard Event Names ---

const (
	// EventToolExecutionStart marks the beginning of a tool execution
	EventToolExecutionStart = "tool.execution.start"

	// EventToolExecutionEnd marks the end of a tool execution
	EventToolExecutionEnd = "tool.execution.end"

	// EventSearchRetry marks a retry attempt against the search provider
	EventSearchRetry = "search.retry"
)
