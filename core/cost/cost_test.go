package cost

import (
	"sync"
	"testing"
)

func TestToolMetricsString(t *testing.T) {
	tests := []struct {
		name    string
		metrics ToolMetrics
		want    string
	}{
		{
			name:    "full",
			metrics: ToolMetrics{Amount: 0.005, Currency: "USD", CostDescription: "per search query"},
			want:    "0.005000 USD (per search query)",
		},
		{
			name:    "default currency",
			metrics: ToolMetrics{Amount: 1},
			want:    "1.000000 USD",
		},
		{
			name:    "custom unit",
			metrics: ToolMetrics{Amount: 2, Currency: "credits"},
			want:    "2.000000 credits",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.metrics.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTracker(t *testing.T) {
	tracker := NewTracker()
	metrics := &ToolMetrics{Amount: 0.005}

	tracker.Record("brave_search", metrics)
	tracker.Record("brave_search", metrics)
	tracker.Record("free_tool", nil)

	summary := tracker.Summary()

	if summary.ToolExecutionCount["brave_search"] != 2 {
		t.Errorf("brave_search count = %d, want 2", summary.ToolExecutionCount["brave_search"])
	}
	if summary.ToolExecutionCount["free_tool"] != 1 {
		t.Errorf("free_tool count = %d, want 1", summary.ToolExecutionCount["free_tool"])
	}
	if summary.ToolCosts["brave_search"] != 0.01 {
		t.Errorf("brave_search cost = %v, want 0.01", summary.ToolCosts["brave_search"])
	}
	if summary.TotalCost != 0.01 {
		t.Errorf("TotalCost = %v, want 0.01", summary.TotalCost)
	}
	if summary.Currency != "USD" {
		t.Errorf("Currency = %q, want USD", summary.Currency)
	}
}

func TestTrackerConcurrent(t *testing.T) {
	tracker := NewTracker()
	metrics := &ToolMetrics{Amount: 1}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tracker.Record("tool", metrics)
		}()
	}
	wg.Wait()

	summary := tracker.Summary()
	if summary.ToolExecutionCount["tool"] != 50 {
		t.Errorf("count = %d, want 50", summary.ToolExecutionCount["tool"])
	}
	if summary.TotalCost != 50 {
		t.Errorf("TotalCost = %v, want 50", summary.TotalCost)
	}
}
