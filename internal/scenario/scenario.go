// Package scenario defines the fixed benchmark scenarios run against a
// DocFusionDB server and binds their arguments into runner calls. All
// domain knowledge (document shapes, query strings, page windows) lives
// here; the runner only sees opaque calls.
package scenario

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/arrowpeak/docfusiondb-bench/internal/client"
	"github.com/arrowpeak/docfusiondb-bench/internal/runner"
)

// Config shapes the benchmark suite.
type Config struct {
	Requests    int // base request count; individual scenarios scale it down
	Concurrency int
	BulkSize    int // documents per bulk call, 0 disables the bulk scenario
}

// Scenario is one named benchmark: a list of pre-bound calls plus the
// concurrency to run them at.
type Scenario struct {
	Name        string
	Calls       []runner.Call
	Concurrency int
}

// Queries exercised by the ad-hoc query scenario. Repeats of the same
// query are deliberate: they give the server's query cache a chance to
// show up in the latency distribution.
var Queries = []string{
	`SELECT json_extract_path(doc, 'title') as title FROM documents WHERE json_contains(doc, '{"published": true}') LIMIT 5`,
	`SELECT json_extract_path(doc, 'category') as category, COUNT(*) as count FROM documents GROUP BY json_extract_path(doc, 'category') LIMIT 10`,
	`SELECT * FROM documents WHERE json_extract_path(doc, 'metadata', 'author') = 'author_1' LIMIT 10`,
	`SELECT json_extract_path(doc, 'title') as title FROM documents WHERE json_multi_contains(doc, '{"benchmark": true}') LIMIT 10`,
}

// Suite builds the five scenarios in execution order. Write-heavy
// scenarios get the full request count, read scenarios a fraction of it,
// matching the intended load mix for a document store.
func Suite(c *client.Client, cfg Config) []Scenario {
	runID := uuid.NewString()
	suite := make([]Scenario, 0, 5)

	// 1. Single document creation: one call per document.
	docs := GenerateDocuments(cfg.Requests, runID)
	createCalls := make([]runner.Call, 0, len(docs))
	for _, doc := range docs {
		createCalls = append(createCalls, func(ctx context.Context) (json.RawMessage, int, error) {
			return c.CreateDocument(ctx, doc)
		})
	}
	suite = append(suite, Scenario{
		Name:        "Single Document Creation",
		Calls:       createCalls,
		Concurrency: cfg.Concurrency,
	})

	// 2. Document listing: fewer list operations.
	listCalls := make([]runner.Call, 0, atLeastOne(cfg.Requests/2))
	for i := 0; i < atLeastOne(cfg.Requests/2); i++ {
		listCalls = append(listCalls, func(ctx context.Context) (json.RawMessage, int, error) {
			return c.ListDocuments(ctx, 10, 0)
		})
	}
	suite = append(suite, Scenario{
		Name:        "Document Listing",
		Calls:       listCalls,
		Concurrency: cfg.Concurrency,
	})

	// 3. Ad-hoc queries: the canned set repeated to fill the budget.
	queryCount := atLeastOne(cfg.Requests/len(Queries)) * len(Queries)
	queryCalls := make([]runner.Call, 0, queryCount)
	for i := 0; i < queryCount; i++ {
		sql := Queries[i%len(Queries)]
		queryCalls = append(queryCalls, func(ctx context.Context) (json.RawMessage, int, error) {
			return c.ExecuteQuery(ctx, sql)
		})
	}
	suite = append(suite, Scenario{
		Name:        "Custom Queries",
		Calls:       queryCalls,
		Concurrency: cfg.Concurrency,
	})

	// 4. Bulk creation: batches of BulkSize documents, lower concurrency
	// so the server's write path is not swamped by large bodies.
	if cfg.BulkSize > 0 {
		batches := atLeastOne(cfg.Requests / 10)
		bulkCalls := make([]runner.Call, 0, batches)
		for i := 0; i < batches; i++ {
			batch := GenerateDocuments(cfg.BulkSize, runID)
			bulkCalls = append(bulkCalls, func(ctx context.Context) (json.RawMessage, int, error) {
				return c.BulkCreate(ctx, batch)
			})
		}
		suite = append(suite, Scenario{
			Name:        "Bulk Document Creation",
			Calls:       bulkCalls,
			Concurrency: min(cfg.Concurrency, 5),
		})
	}

	// 5. Metrics endpoint: a light sprinkle of reads.
	metricsCalls := make([]runner.Call, 0, atLeastOne(cfg.Requests/5))
	for i := 0; i < atLeastOne(cfg.Requests/5); i++ {
		metricsCalls = append(metricsCalls, func(ctx context.Context) (json.RawMessage, int, error) {
			return c.GetMetrics(ctx)
		})
	}
	suite = append(suite, Scenario{
		Name:        "Metrics Endpoint",
		Calls:       metricsCalls,
		Concurrency: cfg.Concurrency,
	})

	return suite
}

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
