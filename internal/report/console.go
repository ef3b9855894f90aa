// Package report renders benchmark results for humans and for files. It is
// purely presentational: nothing here feeds back into the runner.
package report

import (
	"fmt"
	"strings"

	"github.com/arrowpeak/docfusiondb-bench/internal/runner"
)

const rule = "================================================================================"

// PrintScenarioStart announces one scenario before it runs.
func PrintScenarioStart(name string, requests, concurrency int) {
	fmt.Printf("\n🚀 Running %s benchmark...\n", name)
	fmt.Printf("   Requests: %d, Concurrency: %d\n", requests, concurrency)
}

// PrintProgress rewrites the current line with live run state.
func PrintProgress(s runner.Snapshot) {
	pct := 0.0
	if s.Total > 0 {
		pct = float64(s.Completed) / float64(s.Total)
	}
	fmt.Printf("\r   %s %3.0f%% | Inf: %3d | OK: %d | Err: %d | p95: %.1fms   ",
		progressBar(pct, 20), pct*100, s.Inflight, s.Success, s.Fail, s.P95Ms)
}

// PrintResults renders the final summary table for the whole suite.
func PrintResults(results []runner.Result) {
	fmt.Println("\n" + rule)
	fmt.Println("🎯 BENCHMARK RESULTS")
	fmt.Println(rule)

	for _, r := range results {
		fmt.Printf("\n📊 %s\n", r.Operation)
		fmt.Printf("   Total Requests: %d\n", r.TotalRequests)
		fmt.Printf("   Duration: %.2fs\n", r.Duration)
		fmt.Printf("   Requests/sec: %.2f\n", r.RPS)
		fmt.Printf("   Success Rate: %.1f%%\n", r.SuccessRate*100)
		fmt.Printf("   Avg Latency: %.2fms\n", r.AvgLatencyMs)
		fmt.Printf("   P95 Latency: %.2fms\n", r.P95LatencyMs)
		fmt.Printf("   P99 Latency: %.2fms\n", r.P99LatencyMs)
	}

	fmt.Println("\n" + rule)
	fmt.Println("💡 TIPS:")
	fmt.Println("   - Higher RPS is better")
	fmt.Println("   - Lower latency is better")
	fmt.Println("   - Cache hit rates improve with repeated queries")
	fmt.Println("   - Use the /metrics endpoint to monitor cache performance")
	fmt.Println(rule)
}

func progressBar(pct float64, width int) string {
	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("-", width-filled) + "]"
}
