// Package dummy runs a fake DocFusionDB server so the benchmark tool can be
// exercised without a real deployment. Latencies are jittered per endpoint
// to produce believable distributions.
package dummy

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

type ServerConfig struct {
	Port      int
	ErrorRate float64 // fraction of document writes that fail with a 500
}

// Start launches the mock server in the background.
func Start(cfg ServerConfig) {
	var docCount atomic.Int64

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
	})

	// Single create: 10-50ms
	mux.HandleFunc("POST /documents", func(w http.ResponseWriter, r *http.Request) {
		sleep(10, 40)
		if rand.Float64() < cfg.ErrorRate {
			writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "storage backend unavailable"})
			return
		}
		var body struct {
			Document map[string]any `json:"document"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Document == nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "missing document"})
			return
		}
		docCount.Add(1)
		writeJSON(w, http.StatusCreated, map[string]any{"id": uuid.NewString(), "status": "created"})
	})

	// Bulk create: 30-150ms, scales weakly with batch size
	mux.HandleFunc("POST /documents/bulk", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Documents []map[string]any `json:"documents"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || len(body.Documents) == 0 {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "missing documents"})
			return
		}
		sleep(30, 120)
		if rand.Float64() < cfg.ErrorRate {
			writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "storage backend unavailable"})
			return
		}
		docCount.Add(int64(len(body.Documents)))
		writeJSON(w, http.StatusCreated, map[string]any{"created": len(body.Documents)})
	})

	// List: 5-25ms
	mux.HandleFunc("GET /documents", func(w http.ResponseWriter, r *http.Request) {
		sleep(5, 20)
		writeJSON(w, http.StatusOK, map[string]any{
			"documents": []any{},
			"total":     docCount.Load(),
		})
	})

	// Ad-hoc query: usually 20-80ms, 10% chance of a slow cold-cache path
	mux.HandleFunc("POST /query", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			SQL string `json:"sql"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.SQL == "" {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "missing sql"})
			return
		}
		if rand.Float64() < 0.1 {
			sleep(200, 300)
		} else {
			sleep(20, 60)
		}
		writeJSON(w, http.StatusOK, map[string]any{"rows": []any{}, "cached": rand.Float64() < 0.5})
	})

	// Metrics: fast
	mux.HandleFunc("GET /metrics", func(w http.ResponseWriter, r *http.Request) {
		sleep(1, 5)
		writeJSON(w, http.StatusOK, map[string]any{
			"documents":      docCount.Load(),
			"cache_hit_rate": rand.Float64(),
			"uptime_seconds": time.Now().Unix() % 100000,
		})
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	fmt.Printf("👻 Mock DocFusionDB running on http://localhost%s\n", addr)
	fmt.Println("   Endpoints: /health, /documents, /documents/bulk, /query, /metrics")

	server := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Printf("Server failed: %v\n", err)
		}
	}()
}

// sleep pauses for baseMs plus up to jitterMs of random jitter.
func sleep(baseMs, jitterMs int) {
	time.Sleep(time.Duration(rand.Intn(jitterMs)+baseMs) * time.Millisecond)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
