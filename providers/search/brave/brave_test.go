package brave

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

const searchBody = `{
	"type": "search",
	"query": {"original": "golang"},
	"web": {
		"type": "search",
		"results": [
			{"title": "The Go Programming Language", "url": "https://go.dev", "description": "Build simple, secure, scalable systems"},
			{"title": "Go (wiki)", "url": "https://en.wikipedia.org/wiki/Go", "description": "Go is a statically typed language"}
		]
	}
}`

func newTestClient(t *testing.T, handler http.Handler, options ...Option) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	options = append([]Option{WithBaseURL(server.URL), WithWaitTime(time.Millisecond)}, options...)
	return NewClient("test-key", options...)
}

func TestSearchRequestShape(t *testing.T) {
	var gotPath string
	var gotQuery map[string]string
	var gotToken, gotAccept string

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = map[string]string{}
		for key := range r.URL.Query() {
			gotQuery[key] = r.URL.Query().Get(key)
		}
		gotToken = r.Header.Get("X-Subscription-Token")
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte(searchBody))
	}))

	_, err := client.Search(context.Background(), SearchRequest{
		Query:        "golang",
		Count:        5,
		Country:      "US",
		SearchLang:   "en",
		ResultFilter: "web",
	})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if gotPath != "/web/search" {
		t.Errorf("path = %q, want /web/search", gotPath)
	}
	if gotToken != "test-key" {
		t.Errorf("X-Subscription-Token = %q, want test-key", gotToken)
	}
	if gotAccept != "application/json" {
		t.Errorf("Accept = %q, want application/json", gotAccept)
	}

	want := map[string]string{
		"q":             "golang",
		"count":         "5",
		"country":       "US",
		"search_lang":   "en",
		"result_filter": "web",
	}
	for key, wantValue := range want {
		if gotQuery[key] != wantValue {
			t.Errorf("query param %s = %q, want %q", key, gotQuery[key], wantValue)
		}
	}
}

func TestSearchCountClamping(t *testing.T) {
	tests := []struct {
		name      string
		count     int
		wantCount string
	}{
		{"zero falls back to 10", 0, "10"},
		{"negative falls back to 10", -3, "10"},
		{"in range passes through", 7, "7"},
		{"above max clamped to 20", 50, "20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotCount string
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotCount = r.URL.Query().Get("count")
				w.Write([]byte(searchBody))
			}))

			if _, err := client.Search(context.Background(), SearchRequest{Query: "q", Count: tt.count}); err != nil {
				t.Fatalf("Search() error = %v", err)
			}
			if gotCount != tt.wantCount {
				t.Errorf("count param = %q, want %q", gotCount, tt.wantCount)
			}
		})
	}
}

func TestSearchDecodesResponse(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(searchBody))
	}))

	response, err := client.Search(context.Background(), SearchRequest{Query: "golang"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if response.Type != "search" {
		t.Errorf("response.Type = %q, want search", response.Type)
	}
	if response.Query == nil || response.Query.Original != "golang" {
		t.Errorf("response.Query = %+v, want original golang", response.Query)
	}
	if response.Web == nil || len(response.Web.Results) != 2 {
		t.Fatalf("response.Web = %+v, want 2 results", response.Web)
	}
	if response.Web.Results[0].Title != "The Go Programming Language" {
		t.Errorf("first title = %q", response.Web.Results[0].Title)
	}
}

func TestSearchAuthFailureNotRetried(t *testing.T) {
	var requests atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte("invalid subscription token"))
	}))

	_, err := client.Search(context.Background(), SearchRequest{Query: "q"})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("StatusCode = %d, want 401", apiErr.StatusCode)
	}
	if apiErr.Message != "invalid subscription token" {
		t.Errorf("Message = %q, want the response body", apiErr.Message)
	}
	if n := requests.Load(); n != 1 {
		t.Errorf("server hit %d times for a non-retryable failure, want 1", n)
	}
}

func TestSearchRetriesRateLimit(t *testing.T) {
	var requests atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte("rate limited"))
			return
		}
		w.Write([]byte(searchBody))
	}))

	response, err := client.Search(context.Background(), SearchRequest{Query: "q"})
	if err != nil {
		t.Fatalf("Search() error = %v, want recovery on retry", err)
	}
	if response.Web == nil {
		t.Error("response.Web is nil after successful retry")
	}
	if n := requests.Load(); n != 2 {
		t.Errorf("server hit %d times, want 2 (original + one retry)", n)
	}
}

func TestSearchRetriesExhausted(t *testing.T) {
	var requests atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("overloaded"))
	}), WithRetries(2))

	_, err := client.Search(context.Background(), SearchRequest{Query: "q"})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError after exhaustion", err)
	}
	if apiErr.Message != "overloaded" {
		t.Errorf("Message = %q, want the last response body", apiErr.Message)
	}
	if n := requests.Load(); n != 3 {
		t.Errorf("server hit %d times, want 3 (original + 2 retries)", n)
	}
}

func TestSearchContextCanceledDuringWait(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}), WithWaitTime(time.Minute))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := client.Search(ctx, SearchRequest{Query: "q"})
		done <- err
	}()

	// Give the first attempt time to fail, then cancel during the wait.
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Search() did not return after cancellation")
	}
}

func TestSearchEmptyErrorBody(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))

	_, err := client.Search(context.Background(), SearchRequest{Query: "q"})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.Message == "" {
		t.Error("Message is empty, want a fallback description")
	}
}

func TestSearchMalformedResponse(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	}), WithRetries(0))

	_, err := client.Search(context.Background(), SearchRequest{Query: "q"})
	if err == nil {
		t.Fatal("Search() accepted a malformed body")
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Errorf("decode failure classified as *APIError: %v", err)
	}
}

func TestAPIErrorString(t *testing.T) {
	err := &APIError{StatusCode: 429, Message: "rate limited"}
	if got := err.Error(); got != "status 429: rate limited" {
		t.Errorf("Error() = %q", got)
	}

	bare := &APIError{Message: "nope"}
	if got := bare.Error(); got != "nope" {
		t.Errorf("Error() = %q, want bare message without status", got)
	}
}
