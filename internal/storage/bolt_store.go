// Package storage keeps a local history of benchmark runs so consecutive
// runs against the same server can be compared.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"

	"github.com/arrowpeak/docfusiondb-bench/internal/runner"
)

const bucketRuns = "runs"

// Run is one archived benchmark suite execution.
type Run struct {
	ID        string          `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	TargetURL string          `json:"target_url"`
	Results   []runner.Result `json:"results"`
}

type Store struct {
	db   *bbolt.DB
	path string
}

// Open opens (creating if needed) the history database at path. An empty
// path defaults to ~/.dfbench/history.db.
func Open(path string) (*Store, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir := filepath.Join(home, ".dfbench")
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "history.db")
	}

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketRuns))
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, path: path}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun archives one suite execution and returns its ID.
func (s *Store) SaveRun(targetURL string, results []runner.Result) (string, error) {
	run := Run{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		TargetURL: targetURL,
		Results:   results,
	}

	b, err := json.Marshal(run)
	if err != nil {
		return "", err
	}

	// Fixed-width timestamp so keys sort chronologically.
	key := fmt.Sprintf("%s_%s", run.Timestamp.Format("2006-01-02T15:04:05.000000000"), run.ID)

	err = s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketRuns)).Put([]byte(key), b)
	})
	if err != nil {
		return "", err
	}
	return run.ID, nil
}

// ListRuns returns all archived runs, oldest first.
func (s *Store) ListRuns() ([]Run, error) {
	var runs []Run
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketRuns)).ForEach(func(_, v []byte) error {
			var run Run
			if err := json.Unmarshal(v, &run); err != nil {
				return err
			}
			runs = append(runs, run)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return runs, nil
}
