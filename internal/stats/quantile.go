package stats

import (
	"math"
	"sort"
	"time"
)

// Quantile computes the p-th quantile (0 < p < 1) of the sample using the
// exclusive interpolation method: the p-th quantile sits at rank
// h = p*(n+1) in the sorted sample, linearly interpolated between the two
// nearest order statistics and clamped to the observed range. This is the
// estimator used throughout dfbench for p95/p99, chosen because it is
// deterministic and converges to the true quantile as the sample grows.
//
// The input slice is not modified.
func Quantile(sample []time.Duration, p float64) time.Duration {
	n := len(sample)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return sample[0]
	}

	sorted := make([]time.Duration, n)
	copy(sorted, sample)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	return quantileSorted(sorted, p)
}

func quantileSorted(sorted []time.Duration, p float64) time.Duration {
	n := len(sorted)
	h := p * float64(n+1)
	if h <= 1 {
		return sorted[0]
	}
	if h >= float64(n) {
		return sorted[n-1]
	}
	j := int(math.Floor(h))
	g := h - float64(j)
	lo := sorted[j-1]
	hi := sorted[j]
	return lo + time.Duration(g*float64(hi-lo))
}

// Mean returns the arithmetic mean of the sample, 0 for an empty sample.
func Mean(sample []time.Duration) time.Duration {
	if len(sample) == 0 {
		return 0
	}
	var total time.Duration
	for _, d := range sample {
		total += d
	}
	return total / time.Duration(len(sample))
}

// Summary is the reduction of a full latency sample: mean plus the p95 and
// p99 boundaries, all in milliseconds.
type Summary struct {
	AvgMs float64
	P95Ms float64
	P99Ms float64
}

// Summarize sorts the sample once and reduces it. Failed calls' latencies
// are expected to be part of the sample; the reduction does not care how an
// elapsed time was obtained.
func Summarize(sample []time.Duration) Summary {
	if len(sample) == 0 {
		return Summary{}
	}

	sorted := make([]time.Duration, len(sample))
	copy(sorted, sample)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	return Summary{
		AvgMs: toMs(Mean(sorted)),
		P95Ms: toMs(quantileSorted(sorted, 0.95)),
		P99Ms: toMs(quantileSorted(sorted, 0.99)),
	}
}

func toMs(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
