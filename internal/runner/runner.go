package runner

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/arrowpeak/docfusiondb-bench/internal/stats"
)

var (
	// ErrNoCalls is returned when Run is given an empty call list. A run
	// with zero requests has no meaningful rate or percentiles, so it is
	// rejected outright instead of producing a zero-valued Result.
	ErrNoCalls = errors.New("runner: no calls to execute")

	// ErrConcurrency is returned when the concurrency bound is below 1.
	ErrConcurrency = errors.New("runner: concurrency must be >= 1")
)

// Runner executes batches of calls with a bounded number in flight and
// reduces the outcomes into a Result. A single Runner can execute several
// runs in sequence; each run gets fresh live stats.
type Runner struct {
	updates  SnapshotChan
	log      *zap.Logger
	inflight int64
}

func New(updates SnapshotChan, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{
		updates: updates,
		log:     log,
	}
}

// Run executes every call in calls, admitting at most concurrency of them
// past dispatch at once, and reduces the outcomes into a Result.
//
// Individual call failures are data: they are folded into the success rate
// and latency distribution, never returned as an error. Run itself fails
// only on degenerate input or when ctx is cancelled before every call has
// settled, in which case no Result is produced.
func (r *Runner) Run(ctx context.Context, name string, calls []Call, concurrency int) (*Result, error) {
	if len(calls) == 0 {
		return nil, ErrNoCalls
	}
	if concurrency < 1 {
		return nil, ErrConcurrency
	}

	live := stats.NewLive()
	outcomes := make([]Outcome, len(calls))
	sem := make(chan struct{}, concurrency)

	var wg sync.WaitGroup
	start := time.Now()

	for i, call := range calls {
		wg.Add(1)
		go func(i int, call Call) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return
			}
			defer func() { <-sem }()

			atomic.AddInt64(&r.inflight, 1)
			out := r.timedCall(ctx, call)
			atomic.AddInt64(&r.inflight, -1)

			// Each goroutine writes only its own slot.
			outcomes[i] = out

			live.Add(out.Succeeded, out.Elapsed)
			if !out.Succeeded {
				r.log.Debug("call failed",
					zap.String("operation", name),
					zap.Int("index", i),
					zap.Int("status", out.Status),
					zap.String("detail", out.Detail),
					zap.Duration("elapsed", out.Elapsed),
				)
			}
			r.push(name, len(calls), live)
		}(i, call)
	}

	wg.Wait()
	duration := time.Since(start)

	if err := ctx.Err(); err != nil {
		// Interrupted mid-run: some outcomes were never collected, so any
		// Result built here would be bogus.
		return nil, err
	}

	return reduce(name, outcomes, duration), nil
}

// timedCall executes one call, measuring wall-clock time from just before
// invocation to just after it settles. Transport errors, timeouts and
// non-2xx statuses all become Succeeded=false; nothing propagates.
func (r *Runner) timedCall(ctx context.Context, call Call) Outcome {
	start := time.Now()
	_, status, err := call(ctx)
	elapsed := time.Since(start)

	out := Outcome{Elapsed: elapsed, Status: status}
	switch {
	case err != nil:
		out.Detail = err.Error()
	case status >= 300:
		out.Detail = "unexpected status"
	default:
		out.Succeeded = true
	}
	return out
}

// reduce folds the full outcome set into a Result. Percentiles are computed
// over every call's elapsed time, failures included: a timed-out call still
// spent that time in flight.
func reduce(name string, outcomes []Outcome, duration time.Duration) *Result {
	latencies := make([]time.Duration, len(outcomes))
	successes := 0
	for i, out := range outcomes {
		latencies[i] = out.Elapsed
		if out.Succeeded {
			successes++
		}
	}

	summary := stats.Summarize(latencies)
	secs := duration.Seconds()

	return &Result{
		Operation:     name,
		TotalRequests: len(outcomes),
		Duration:      secs,
		RPS:           float64(len(outcomes)) / secs,
		AvgLatencyMs:  summary.AvgMs,
		P95LatencyMs:  summary.P95Ms,
		P99LatencyMs:  summary.P99Ms,
		SuccessRate:   float64(successes) / float64(len(outcomes)),
	}
}

func (r *Runner) push(name string, total int, live *stats.Live) {
	if r.updates == nil {
		return
	}
	s := Snapshot{
		Operation: name,
		Total:     total,
		Completed: atomic.LoadUint64(&live.Requests),
		Success:   atomic.LoadUint64(&live.Success),
		Fail:      atomic.LoadUint64(&live.Fail),
		Inflight:  atomic.LoadInt64(&r.inflight),
		AvgMs:     live.Latency.MeanMs(),
		P95Ms:     live.Latency.QuantileMs(95),
		P99Ms:     live.Latency.QuantileMs(99),
	}

	// Non-blocking send; the UI acts as backpressure.
	select {
	case r.updates <- s:
	default:
	}
}

// Inflight reports how many calls are currently executing.
func (r *Runner) Inflight() int64 {
	return atomic.LoadInt64(&r.inflight)
}
