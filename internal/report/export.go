package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/arrowpeak/docfusiondb-bench/internal/runner"
)

// Export writes the suite's results to <prefix>_results.json.
func Export(prefix string, results []runner.Result) error {
	doc := map[string]any{
		"generated_at": time.Now().UTC().Format(time.RFC3339),
		"results":      results,
	}
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	path := prefix + "_results.json"
	if err := os.WriteFile(path, b, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
