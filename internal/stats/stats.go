package stats

import (
	"sync/atomic"
	"time"
)

// Live holds real-time aggregated metrics for an in-progress benchmark.
// It feeds the progress display only; the final BenchmarkResult is reduced
// from the full per-call sample, not from this.
type Live struct {
	Requests uint64
	Success  uint64
	Fail     uint64

	Latency *SafeHistogram
}

func NewLive() *Live {
	return &Live{
		Latency: NewSafeHistogram(),
	}
}

func (l *Live) Add(success bool, elapsed time.Duration) {
	atomic.AddUint64(&l.Requests, 1)
	if success {
		atomic.AddUint64(&l.Success, 1)
	} else {
		atomic.AddUint64(&l.Fail, 1)
	}
	l.Latency.Record(elapsed)
}

func (l *Live) SuccessRate() float64 {
	reqs := atomic.LoadUint64(&l.Requests)
	if reqs == 0 {
		return 0
	}
	return float64(atomic.LoadUint64(&l.Success)) / float64(reqs)
}
