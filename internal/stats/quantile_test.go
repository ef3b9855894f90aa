package stats

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func msSample(values ...int) []time.Duration {
	out := make([]time.Duration, len(values))
	for i, v := range values {
		out[i] = time.Duration(v) * time.Millisecond
	}
	return out
}

func TestQuantileUniformSample(t *testing.T) {
	// 1ms..100ms
	sample := make([]time.Duration, 100)
	for i := range sample {
		sample[i] = time.Duration(i+1) * time.Millisecond
	}

	// Exclusive method: rank h = p*(n+1).
	// p95: h = 95.95 -> 95ms + 0.95*(96-95)ms
	assert.InDelta(t, 95.95, float64(Quantile(sample, 0.95))/float64(time.Millisecond), 0.001)
	// p99: h = 99.99 -> 99ms + 0.99*(100-99)ms
	assert.InDelta(t, 99.99, float64(Quantile(sample, 0.99))/float64(time.Millisecond), 0.001)
	// p50: h = 50.5 -> midpoint of 50 and 51
	assert.InDelta(t, 50.5, float64(Quantile(sample, 0.5))/float64(time.Millisecond), 0.001)
}

func TestQuantileHandlesUnsortedInput(t *testing.T) {
	sample := msSample(1, 2, 3, 4, 5, 6, 7, 8, 9, 10)
	rand.Shuffle(len(sample), func(i, j int) { sample[i], sample[j] = sample[j], sample[i] })

	// h = 0.5*11 = 5.5 -> midpoint of 5 and 6
	assert.InDelta(t, 5.5, float64(Quantile(sample, 0.5))/float64(time.Millisecond), 0.001)
}

func TestQuantileClampsSmallSamples(t *testing.T) {
	// With two samples p99's rank exceeds n, so it clamps to the max.
	sample := msSample(10, 20)
	assert.Equal(t, 20*time.Millisecond, Quantile(sample, 0.99))
	assert.Equal(t, 10*time.Millisecond, Quantile(sample, 0.01))
}

func TestQuantileDegenerateInputs(t *testing.T) {
	assert.Equal(t, time.Duration(0), Quantile(nil, 0.95))
	assert.Equal(t, 7*time.Millisecond, Quantile(msSample(7), 0.95))
	assert.Equal(t, 7*time.Millisecond, Quantile(msSample(7), 0.5))
}

func TestMean(t *testing.T) {
	assert.Equal(t, time.Duration(0), Mean(nil))
	assert.Equal(t, 20*time.Millisecond, Mean(msSample(10, 20, 30)))
}

func TestSummarize(t *testing.T) {
	sample := make([]time.Duration, 100)
	for i := range sample {
		sample[i] = time.Duration(i+1) * time.Millisecond
	}

	s := Summarize(sample)
	assert.InDelta(t, 50.5, s.AvgMs, 0.001)
	assert.InDelta(t, 95.95, s.P95Ms, 0.001)
	assert.InDelta(t, 99.99, s.P99Ms, 0.001)

	empty := Summarize(nil)
	assert.Zero(t, empty.AvgMs)
	assert.Zero(t, empty.P95Ms)
	assert.Zero(t, empty.P99Ms)
}

func TestSummarizeDoesNotMutateInput(t *testing.T) {
	sample := msSample(30, 10, 20)
	Summarize(sample)
	assert.Equal(t, msSample(30, 10, 20), sample)
}
