package repositories

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"driftwood/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerPostRepository implements PostRepository using BadgerDB
type BadgerPostRepository struct {
	db *badger.DB
}

// NewBadgerPostRepository creates a new BadgerPostRepository
func NewBadgerPostRepository(db *badger.DB) *BadgerPostRepository {
	return &BadgerPostRepository{db: db}
}

// slugKey builds the natural-key index entry for a post.
func slugKey(date time.Time, slug string) []byte {
	return []byte(fmt.Sprintf("%s%s:%s", PostSlugKeyPrefix, date.Format("2006-01-02"), slug))
}

// Create creates a new post and its date+slug index entry
func (r *BadgerPostRepository) Create(post *models.Post) error {
	return r.db.Update(func(txn *badger.Txn) error {
		post.BeforeCreate()

		// The natural key must be free before allocating an ID.
		idx := slugKey(post.PublishDate, post.Slug)
		if _, err := txn.Get(idx); err == nil {
			return fmt.Errorf("post slug %q already used on %s", post.Slug, post.DateKey())
		} else if err != badger.ErrKeyNotFound {
			return err
		}

		id, err := nextID(txn, PostSeqKey)
		if err != nil {
			return err
		}
		post.ID = id

		data, err := marshalEntity(post)
		if err != nil {
			return err
		}
		if err := txn.Set(entityKey(PostKeyPrefix, post.ID), data); err != nil {
			return err
		}
		return txn.Set(idx, []byte(strconv.Itoa(post.ID)))
	})
}

// GetByID retrieves a post by ID
func (r *BadgerPostRepository) GetByID(id int) (*models.Post, error) {
	var post models.Post

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(entityKey(PostKeyPrefix, id))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &post)
		})
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetByDateSlug retrieves a post by its public natural key
func (r *BadgerPostRepository) GetByDateSlug(date time.Time, slug string) (*models.Post, error) {
	var id int
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(slugKey(date, slug))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			id, err = strconv.Atoi(string(val))
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(id)
}

// List retrieves posts matching the filter, newest publish date first
func (r *BadgerPostRepository) List(filter PostFilter) ([]*models.Post, error) {
	var matched []*models.Post
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(PostKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var post models.Post
			err := item.Value(func(val []byte) error {
				return unmarshalEntity(val, &post)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal post: %v", err)
			}
			if postMatches(&post, filter) {
				matched = append(matched, &post)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sortPostsByPublishDate(matched)

	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return nil, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

func postMatches(post *models.Post, filter PostFilter) bool {
	if filter.Status != "" && post.Status != filter.Status {
		return false
	}
	if filter.CategoryID != 0 && post.CategoryID != filter.CategoryID {
		return false
	}
	if filter.FeaturedOnly && !post.IsFeatured {
		return false
	}
	if filter.Search != "" {
		q := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(post.Title), q) &&
			!strings.Contains(strings.ToLower(post.Content), q) &&
			!strings.Contains(strings.ToLower(post.Excerpt), q) {
			return false
		}
	}
	return true
}

func sortPostsByPublishDate(posts []*models.Post) {
	// Insertion sort, newest first; listings are small.
	for i := 1; i < len(posts); i++ {
		for j := i; j > 0 && posts[j].PublishDate.After(posts[j-1].PublishDate); j-- {
			posts[j], posts[j-1] = posts[j-1], posts[j]
		}
	}
}

// Update updates an existing post, maintaining the slug index
func (r *BadgerPostRepository) Update(post *models.Post) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := entityKey(PostKeyPrefix, post.ID)

		item, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		var existing models.Post
		if err := item.Value(func(val []byte) error {
			return unmarshalEntity(val, &existing)
		}); err != nil {
			return err
		}

		post.UpdatedAt = time.Now()
		data, err := marshalEntity(post)
		if err != nil {
			return err
		}
		if err := txn.Set(key, data); err != nil {
			return err
		}

		oldIdx := slugKey(existing.PublishDate, existing.Slug)
		newIdx := slugKey(post.PublishDate, post.Slug)
		if string(oldIdx) != string(newIdx) {
			if err := txn.Delete(oldIdx); err != nil {
				return err
			}
			return txn.Set(newIdx, []byte(strconv.Itoa(post.ID)))
		}
		return nil
	})
}

// Delete deletes a post, its slug index entry, and all owned submissions
func (r *BadgerPostRepository) Delete(id int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := entityKey(PostKeyPrefix, id)

		item, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		var post models.Post
		if err := item.Value(func(val []byte) error {
			return unmarshalEntity(val, &post)
		}); err != nil {
			return err
		}

		// Cascade: comments, reviews, and review images go with the post.
		commentPrefix := []byte(fmt.Sprintf("%s%08d:", CommentKeyPrefix, id))
		if err := deletePrefix(txn, commentPrefix); err != nil {
			return err
		}
		reviewPrefix := []byte(fmt.Sprintf("%s%08d:", ReviewKeyPrefix, id))
		if err := collectReviewImageKeys(txn, reviewPrefix); err != nil {
			return err
		}
		if err := deletePrefix(txn, reviewPrefix); err != nil {
			return err
		}

		if err := txn.Delete(slugKey(post.PublishDate, post.Slug)); err != nil {
			return err
		}
		return txn.Delete(key)
	})
}

// collectReviewImageKeys deletes image records owned by reviews under
// reviewPrefix.
func collectReviewImageKeys(txn *badger.Txn, reviewPrefix []byte) error {
	opts := badger.DefaultIteratorOptions
	it := txn.NewIterator(opts)

	var imagePrefixes [][]byte
	for it.Seek(reviewPrefix); it.ValidForPrefix(reviewPrefix); it.Next() {
		var review models.Review
		err := it.Item().Value(func(val []byte) error {
			return unmarshalEntity(val, &review)
		})
		if err != nil {
			it.Close()
			return err
		}
		imagePrefixes = append(imagePrefixes,
			[]byte(fmt.Sprintf("%s%08d:", ReviewImageKeyPrefix, review.ID)))
	}
	it.Close()

	for _, prefix := range imagePrefixes {
		if err := deletePrefix(txn, prefix); err != nil {
			return err
		}
	}
	return nil
}
