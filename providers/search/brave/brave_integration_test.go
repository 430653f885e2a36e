//go:build integration

package brave

import (
	"context"
	"os"
	"testing"

	_ "github.com/joho/godotenv/autoload"
)

// TestLiveSearch verifies the client against the real Brave Search API.
// Run with: go test -tags=integration ./providers/search/brave/...
// Requires: BRAVE_API_KEY environment variable
func TestLiveSearch(t *testing.T) {
	apiKey := os.Getenv("BRAVE_API_KEY")
	if apiKey == "" {
		t.Skip("BRAVE_API_KEY not set, skipping integration test")
	}

	client := NewClient(apiKey)

	response, err := client.Search(context.Background(), SearchRequest{
		Query:        "Go programming language",
		Count:        3,
		Country:      "US",
		SearchLang:   "en",
		ResultFilter: "web",
	})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if response.Web == nil || len(response.Web.Results) == 0 {
		t.Fatal("no web results for a common query")
	}

	first := response.Web.Results[0]
	if first.Title == "" {
		t.Error("first result has empty title")
	}
	if first.URL == "" {
		t.Error("first result has empty URL")
	}

	t.Logf("✓ Web results: %d", len(response.Web.Results))
}
