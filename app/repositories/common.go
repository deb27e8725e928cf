package repositories

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/dgraph-io/badger/v4"
)

const (
	// Key prefixes for different entity types
	PostKeyPrefix         = "post:"
	PostSlugKeyPrefix     = "postslug:"
	CommentKeyPrefix      = "comment:"
	ReviewKeyPrefix       = "review:"
	ReviewImageKeyPrefix  = "reviewimage:"
	ServiceKeyPrefix      = "service:"
	ServiceImageKeyPrefix = "serviceimage:"
	CategoryKeyPrefix     = "category:"
	GrantKeyPrefix        = "grant:"

	// Sequence keys for auto-incrementing IDs
	PostSeqKey         = "seq:post"
	CommentSeqKey      = "seq:comment"
	ReviewSeqKey       = "seq:review"
	ReviewImageSeqKey  = "seq:reviewimage"
	ServiceSeqKey      = "seq:service"
	ServiceImageSeqKey = "seq:serviceimage"
	CategorySeqKey     = "seq:category"
)

// nextID allocates the next ID for a sequence key within txn. IDs are
// stored as decimal strings so they remain readable in backups.
func nextID(txn *badger.Txn, seqKey string) (int, error) {
	id := 1
	item, err := txn.Get([]byte(seqKey))
	if err == nil {
		err = item.Value(func(val []byte) error {
			prev, convErr := strconv.Atoi(string(val))
			if convErr != nil {
				return fmt.Errorf("corrupt sequence %s: %v", seqKey, convErr)
			}
			id = prev + 1
			return nil
		})
		if err != nil {
			return 0, err
		}
	} else if err != badger.ErrKeyNotFound {
		return 0, err
	}

	if err := txn.Set([]byte(seqKey), []byte(strconv.Itoa(id))); err != nil {
		return 0, err
	}
	return id, nil
}

// entityKey builds the key for an entity record. IDs are zero-padded so
// prefix iteration yields records in ID order.
func entityKey(prefix string, ids ...int) []byte {
	key := prefix
	for i, id := range ids {
		if i > 0 {
			key += ":"
		}
		key += fmt.Sprintf("%08d", id)
	}
	return []byte(key)
}

func marshalEntity(entity interface{}) ([]byte, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %v", err)
	}
	return data, nil
}

func unmarshalEntity(data []byte, entity interface{}) error {
	if err := json.Unmarshal(data, entity); err != nil {
		return fmt.Errorf("failed to unmarshal entity: %v", err)
	}
	return nil
}

// deletePrefix removes every key under prefix within txn.
func deletePrefix(txn *badger.Txn, prefix []byte) error {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	it := txn.NewIterator(opts)

	var keys [][]byte
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		keys = append(keys, it.Item().KeyCopy(nil))
	}
	it.Close()

	for _, key := range keys {
		if err := txn.Delete(key); err != nil {
			return err
		}
	}
	return nil
}
