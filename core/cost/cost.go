package cost

import (
	"fmt"
	"sync"
)

// ToolMetrics represents the cost and performance information for a single
// tool execution. The cost can be expressed as a fixed amount per call or as
// a custom unit, and the optional quality metrics help agents pick between
// tools when several could serve a request.
//
// Example usage:
//
//	metrics := cost.ToolMetrics{
//	    Amount:                  0.005,
//	    Currency:                "USD",
//	    CostDescription:         "per search query",
//	    Accuracy:                0.88,
//	    AverageDurationInMillis: 800,
//	}
type ToolMetrics struct {
	// Amount is the cost value for executing this tool once
	Amount float64 `json:"amount"`

	// Currency is the currency or unit for the cost (e.g., "USD", "EUR", "credits")
	Currency string `json:"currency,omitempty"`

	// CostDescription provides additional context about the cost
	// (e.g., "per API call", "per search query")
	CostDescription string `json:"cost_description,omitempty"`

	// Accuracy represents the accuracy/reliability score (0.0 to 1.0)
	// Higher values indicate more accurate/reliable results
	Accuracy float64 `json:"accuracy,omitempty"`

	// AverageDurationInMillis is the expected execution time in milliseconds
	AverageDurationInMillis int64 `json:"average_duration_in_millis,omitempty"`
}

// String returns a formatted string representation of the cost.
func (tm ToolMetrics) String() string {
	currency := tm.Currency
	if currency == "" {
		currency = "USD"
	}

	result := fmt.Sprintf("%.6f %s", tm.Amount, currency)

	if tm.CostDescription != "" {
		result = fmt.Sprintf("%s (%s)", result, tm.CostDescription)
	}

	return result
}

// Tracker accumulates tool execution costs across calls. It is safe for
// concurrent use, matching the concurrency expectations of tool catalogs.
type Tracker struct {
	mu     sync.Mutex
	costs  map[string]float64
	counts map[string]int
}

// NewTracker creates an empty cost tracker.
func NewTracker() *Tracker {
	return &Tracker{
		costs:  make(map[string]float64),
		counts: make(map[string]int),
	}
}

// Record adds one execution of the named tool with the given metrics.
// A nil metrics value counts the execution at zero cost.
func (t *Tracker) Record(toolName string, metrics *ToolMetrics) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.counts[toolName]++
	if metrics != nil {
		t.costs[toolName] += metrics.Amount
	}
}

// Summary returns the accumulated costs and execution counts per tool plus
// the grand total. The returned maps are copies and safe to modify.
type Summary struct {
	ToolCosts          map[string]float64 `json:"tool_costs,omitempty"`
	ToolExecutionCount map[string]int     `json:"tool_execution_count,omitempty"`
	TotalCost          float64            `json:"total_cost"`
	Currency           string             `json:"currency"`
}

// Summary returns a snapshot of everything recorded so far.
func (t *Tracker) Summary() Summary {
	t.mu.Lock()
	defer t.mu.Unlock()

	summary := Summary{
		ToolCosts:          make(map[string]float64, len(t.costs)),
		ToolExecutionCount: make(map[string]int, len(t.counts)),
		Currency:           "USD",
	}

	for name, amount := range t.costs {
		summary.ToolCosts[name] = amount
		summary.TotalCost += amount
	}
	for name, count := range t.counts {
		summary.ToolExecutionCount[name] = count
	}

	return summary
}
