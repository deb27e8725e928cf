package repositories

import (
	"fmt"

	"driftwood/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerCommentRepository implements CommentRepository using BadgerDB
type BadgerCommentRepository struct {
	db *badger.DB
}

// NewBadgerCommentRepository creates a new BadgerCommentRepository
func NewBadgerCommentRepository(db *badger.DB) *BadgerCommentRepository {
	return &BadgerCommentRepository{db: db}
}

// Create creates a new comment
func (r *BadgerCommentRepository) Create(comment *models.Comment) error {
	return r.db.Update(func(txn *badger.Txn) error {
		comment.BeforeCreate()

		id, err := nextID(txn, CommentSeqKey)
		if err != nil {
			return err
		}
		comment.ID = id

		data, err := marshalEntity(comment)
		if err != nil {
			return err
		}

		// Post ID leads the key so per-post listing is a prefix scan.
		return txn.Set(entityKey(CommentKeyPrefix, comment.PostID, comment.ID), data)
	})
}

// findComment locates a comment and its key by ID within txn.
func findComment(txn *badger.Txn, id int) ([]byte, *models.Comment, error) {
	opts := badger.DefaultIteratorOptions
	it := txn.NewIterator(opts)
	defer it.Close()

	prefix := []byte(CommentKeyPrefix)
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		item := it.Item()
		var comment models.Comment
		err := item.Value(func(val []byte) error {
			return unmarshalEntity(val, &comment)
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to unmarshal comment: %v", err)
		}
		if comment.ID == id {
			return item.KeyCopy(nil), &comment, nil
		}
	}
	return nil, nil, ErrNotFound
}

// GetByID retrieves a comment by ID
func (r *BadgerCommentRepository) GetByID(id int) (*models.Comment, error) {
	var comment *models.Comment
	err := r.db.View(func(txn *badger.Txn) error {
		_, found, err := findComment(txn, id)
		comment = found
		return err
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// ListByPost retrieves comments for a post, oldest first
func (r *BadgerCommentRepository) ListByPost(postID int, approvedOnly bool) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(fmt.Sprintf("%s%08d:", CommentKeyPrefix, postID))
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var comment models.Comment
			err := item.Value(func(val []byte) error {
				return unmarshalEntity(val, &comment)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal comment: %v", err)
			}
			if approvedOnly && !comment.Approved {
				continue
			}
			comments = append(comments, &comment)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// ListPending retrieves all comments awaiting approval
func (r *BadgerCommentRepository) ListPending() ([]*models.Comment, error) {
	var pending []*models.Comment
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(CommentKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var comment models.Comment
			err := item.Value(func(val []byte) error {
				return unmarshalEntity(val, &comment)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal comment: %v", err)
			}
			if !comment.Approved {
				pending = append(pending, &comment)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pending, nil
}

// ApproveIfPending flips Approved and Notified together. The whole
// read-check-write runs in one transaction, so two concurrent approvals
// cannot both observe the pending state: Badger aborts the loser with
// ErrConflict and the retry sees the comment already approved.
func (r *BadgerCommentRepository) ApproveIfPending(id int) (*models.Comment, bool, error) {
	for {
		var comment *models.Comment
		var transitioned bool

		err := r.db.Update(func(txn *badger.Txn) error {
			key, found, err := findComment(txn, id)
			if err != nil {
				return err
			}
			comment = found
			if comment.Approved {
				transitioned = false
				return nil
			}

			comment.Approved = true
			comment.Notified = true
			transitioned = true

			data, err := marshalEntity(comment)
			if err != nil {
				return err
			}
			return txn.Set(key, data)
		})
		if err == badger.ErrConflict {
			continue
		}
		if err != nil {
			return nil, false, err
		}
		return comment, transitioned, nil
	}
}

// DeleteByPost removes all comments belonging to a post
func (r *BadgerCommentRepository) DeleteByPost(postID int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		prefix := []byte(fmt.Sprintf("%s%08d:", CommentKeyPrefix, postID))
		return deletePrefix(txn, prefix)
	})
}

// Delete deletes a comment by ID
func (r *BadgerCommentRepository) Delete(id int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key, _, err := findComment(txn, id)
		if err != nil {
			return err
		}
		return txn.Delete(key)
	})
}
