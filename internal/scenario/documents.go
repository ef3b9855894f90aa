package scenario

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	categories = []string{"blog", "article", "note", "tutorial", "review"}
	tagsPool   = []string{"rust", "database", "performance", "api", "web", "backend", "json", "sql"}
)

// GenerateDocuments produces count sample documents shaped like real
// DocFusionDB content: nested metadata, tags, and stats, so the server's
// JSON path extraction has something to chew on. Every document carries the
// same runID so a benchmark's writes can be identified afterwards.
func GenerateDocuments(count int, runID string) []map[string]any {
	if runID == "" {
		runID = uuid.NewString()
	}

	docs := make([]map[string]any, 0, count)
	for i := 0; i < count; i++ {
		docs = append(docs, map[string]any{
			"title":    fmt.Sprintf("Benchmark Document %d", i),
			"content":  strings.Repeat(fmt.Sprintf("This is the content of document %d for performance testing. ", i), 5),
			"category": categories[i%len(categories)],
			"tags":     tagsPool[i%3 : (i%3)+3],
			"metadata": map[string]any{
				"author":     fmt.Sprintf("author_%d", i%10),
				"created_at": "2024-01-01T00:00:00Z",
				"published":  i%2 == 0,
				"view_count": i * 10,
				"benchmark":  true,
				"run_id":     runID,
			},
			"stats": map[string]any{
				"word_count":   100 + (i % 50),
				"reading_time": 2 + (i % 5),
			},
		})
	}
	return docs
}
