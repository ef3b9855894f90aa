package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arrowpeak/docfusiondb-bench/internal/client"
)

func TestGenerateDocumentsShape(t *testing.T) {
	docs := GenerateDocuments(12, "run-1")
	require.Len(t, docs, 12)

	first := docs[0]
	assert.Equal(t, "Benchmark Document 0", first["title"])
	assert.Equal(t, "blog", first["category"])
	assert.Len(t, first["tags"], 3)

	meta, ok := first["metadata"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "author_0", meta["author"])
	assert.Equal(t, true, meta["published"])
	assert.Equal(t, true, meta["benchmark"])
	assert.Equal(t, "run-1", meta["run_id"])

	st, ok := first["stats"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 100, st["word_count"])

	// Categories cycle, publish flag alternates.
	second := docs[1]
	assert.Equal(t, "article", second["category"])
	meta2 := second["metadata"].(map[string]any)
	assert.Equal(t, false, meta2["published"])
	assert.Equal(t, "run-1", meta2["run_id"])
}

func TestGenerateDocumentsAssignsRunID(t *testing.T) {
	docs := GenerateDocuments(2, "")
	a := docs[0]["metadata"].(map[string]any)["run_id"]
	b := docs[1]["metadata"].(map[string]any)["run_id"]
	assert.NotEmpty(t, a)
	assert.Equal(t, a, b)
}

func TestSuiteShaping(t *testing.T) {
	c := client.New(client.Config{BaseURL: "http://localhost:8080"})
	suite := Suite(c, Config{Requests: 100, Concurrency: 10, BulkSize: 50})

	require.Len(t, suite, 5)

	byName := map[string]Scenario{}
	for _, sc := range suite {
		byName[sc.Name] = sc
	}

	assert.Len(t, byName["Single Document Creation"].Calls, 100)
	assert.Equal(t, 10, byName["Single Document Creation"].Concurrency)

	assert.Len(t, byName["Document Listing"].Calls, 50)

	// Four canned queries repeated to fill the budget.
	assert.Len(t, byName["Custom Queries"].Calls, 100)

	assert.Len(t, byName["Bulk Document Creation"].Calls, 10)
	assert.Equal(t, 5, byName["Bulk Document Creation"].Concurrency,
		"bulk runs at reduced concurrency")

	assert.Len(t, byName["Metrics Endpoint"].Calls, 20)
}

func TestSuiteSkipsBulkWhenDisabled(t *testing.T) {
	c := client.New(client.Config{BaseURL: "http://localhost:8080"})
	suite := Suite(c, Config{Requests: 40, Concurrency: 4, BulkSize: 0})

	require.Len(t, suite, 4)
	for _, sc := range suite {
		assert.NotEqual(t, "Bulk Document Creation", sc.Name)
	}
}

func TestSuiteNeverBuildsEmptyScenarios(t *testing.T) {
	c := client.New(client.Config{BaseURL: "http://localhost:8080"})
	suite := Suite(c, Config{Requests: 1, Concurrency: 1, BulkSize: 5})

	require.Len(t, suite, 5)
	for _, sc := range suite {
		assert.NotEmpty(t, sc.Calls, sc.Name)
		assert.GreaterOrEqual(t, sc.Concurrency, 1, sc.Name)
	}
}
