// Package brave provides a typed client for the Brave Search REST API.
//
// [Client] handles request building, the X-Subscription-Token auth header,
// and a fixed-interval retry policy for transient failures; it returns the
// API's web-search response mapped to Go structs. API-level failures
// (non-2xx responses) are reported as [*APIError] so callers can distinguish
// them from transport errors with errors.As.
//
// Construct a client with [NewClient]; tune it with [WithWaitTime],
// [WithRetries], [WithHTTPClient], and [WithBaseURL].
package brave
