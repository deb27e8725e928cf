package repositories

import (
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"
)

var (
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("record not found")
)

// Open opens the Badger database at path. An empty path opens a throwaway
// temp-dir database for tests.
func Open(path string) (*badger.DB, error) {
	if path == "" {
		tempPath, err := os.MkdirTemp("", "driftwood_test_db_")
		if err != nil {
			return nil, fmt.Errorf("error creating temp dir: %v", err)
		}
		path = tempPath
	}
	opts := badger.DefaultOptions(path).
		WithLogger(nil).
		WithSyncWrites(false).
		WithNumVersionsToKeep(1).
		WithNumGoroutines(1)
	return badger.Open(opts)
}
