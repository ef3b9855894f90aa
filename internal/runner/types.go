package runner

import (
	"context"
	"encoding/json"
	"time"
)

// Call issues one request against the system under test. Scenario drivers
// bind the per-call arguments (document payload, query string, page window)
// into the closure, so the runner never sees domain types. The returned
// payload is the parsed response body and status is the HTTP status code.
type Call func(ctx context.Context) (json.RawMessage, int, error)

// Outcome is the ephemeral record of one timed call. It is consumed by the
// reduction step at the end of a run and never persisted.
type Outcome struct {
	Elapsed   time.Duration
	Succeeded bool
	Status    int
	Detail    string // error text for failed calls, empty otherwise
}

// Result is the immutable summary of one benchmark run. Latencies are in
// milliseconds, Duration is the batch wall-clock time in seconds.
type Result struct {
	Operation     string  `json:"operation"`
	TotalRequests int     `json:"total_requests"`
	Duration      float64 `json:"duration"`
	RPS           float64 `json:"rps"`
	AvgLatencyMs  float64 `json:"avg_latency"`
	P95LatencyMs  float64 `json:"p95_latency"`
	P99LatencyMs  float64 `json:"p99_latency"`
	SuccessRate   float64 `json:"success_rate"`
}

// Snapshot is pushed over the updates channel while a run is in flight.
// Percentiles come from the live histogram and are approximate; the final
// Result is reduced from the full sample instead.
type Snapshot struct {
	Operation string
	Total     int
	Completed uint64
	Success   uint64
	Fail      uint64
	Inflight  int64

	AvgMs float64
	P95Ms float64
	P99Ms float64
}

// SnapshotChan carries live progress updates to the UI.
type SnapshotChan chan Snapshot
