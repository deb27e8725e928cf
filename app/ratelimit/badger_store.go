package ratelimit

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// BadgerStore keeps counters as Badger entries with a TTL, so expired
// windows are reaped by the database itself.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore creates a counter store on db.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

// Get returns the counter for key, or nil when absent or expired.
func (s *BadgerStore) Get(key string) (*Counter, error) {
	var counter *Counter
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			counter = &Counter{}
			return json.Unmarshal(val, counter)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("rate limit store get: %v", err)
	}
	return counter, nil
}

// Incr increments key inside one transaction. Badger detects write-write
// conflicts between concurrent transactions, so a lost read is retried
// instead of silently dropping a count.
func (s *BadgerStore) Incr(key string, now time.Time, window time.Duration) (*Counter, error) {
	var counter Counter
	for {
		err := s.db.Update(func(txn *badger.Txn) error {
			counter = Counter{WindowStart: now}
			item, err := txn.Get([]byte(key))
			if err == nil {
				if err := item.Value(func(val []byte) error {
					return json.Unmarshal(val, &counter)
				}); err != nil {
					return err
				}
				if now.After(counter.WindowStart.Add(window)) {
					// Stale entry badger has not reaped yet.
					counter = Counter{WindowStart: now}
				}
			} else if err != badger.ErrKeyNotFound {
				return err
			}
			counter.Count++
			data, err := json.Marshal(&counter)
			if err != nil {
				return err
			}
			ttl := counter.WindowStart.Add(window).Sub(now)
			entry := badger.NewEntry([]byte(key), data).WithTTL(ttl)
			return txn.SetEntry(entry)
		})
		if err == badger.ErrConflict {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("rate limit store incr: %v", err)
		}
		return &counter, nil
	}
}
