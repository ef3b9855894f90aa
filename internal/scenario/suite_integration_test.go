package scenario

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arrowpeak/docfusiondb-bench/internal/client"
	"github.com/arrowpeak/docfusiondb-bench/internal/runner"
)

// Runs the whole suite against an in-process fake server and checks the
// aggregate numbers line up with what the server saw.
func TestSuiteEndToEnd(t *testing.T) {
	var creates, bulks, lists, queries, metrics atomic.Int64

	mux := http.NewServeMux()
	mux.HandleFunc("POST /documents", func(w http.ResponseWriter, r *http.Request) {
		creates.Add(1)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"x","status":"created"}`))
	})
	mux.HandleFunc("POST /documents/bulk", func(w http.ResponseWriter, r *http.Request) {
		bulks.Add(1)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"created":5}`))
	})
	mux.HandleFunc("GET /documents", func(w http.ResponseWriter, r *http.Request) {
		lists.Add(1)
		w.Write([]byte(`{"documents":[],"total":0}`))
	})
	mux.HandleFunc("POST /query", func(w http.ResponseWriter, r *http.Request) {
		queries.Add(1)
		w.Write([]byte(`{"rows":[]}`))
	})
	mux.HandleFunc("GET /metrics", func(w http.ResponseWriter, r *http.Request) {
		metrics.Add(1)
		w.Write([]byte(`{"documents":0}`))
	})

	ts := httptest.NewServer(mux)
	defer ts.Close()

	c := client.New(client.Config{BaseURL: ts.URL})
	suite := Suite(c, Config{Requests: 20, Concurrency: 4, BulkSize: 5})
	require.Len(t, suite, 5)

	r := runner.New(nil, nil)
	for _, sc := range suite {
		res, err := r.Run(context.Background(), sc.Name, sc.Calls, sc.Concurrency)
		require.NoError(t, err, sc.Name)
		assert.Equal(t, len(sc.Calls), res.TotalRequests, sc.Name)
		assert.Equal(t, 1.0, res.SuccessRate, sc.Name)
		assert.Greater(t, res.RPS, 0.0, sc.Name)
	}

	assert.Equal(t, int64(20), creates.Load())
	assert.Equal(t, int64(10), lists.Load())
	assert.Equal(t, int64(20), queries.Load())
	assert.Equal(t, int64(2), bulks.Load())
	assert.Equal(t, int64(4), metrics.Load())
}
