package repositories

import (
	"fmt"

	"driftwood/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerReviewRepository implements ReviewRepository using BadgerDB
type BadgerReviewRepository struct {
	db *badger.DB
}

// NewBadgerReviewRepository creates a new BadgerReviewRepository
func NewBadgerReviewRepository(db *badger.DB) *BadgerReviewRepository {
	return &BadgerReviewRepository{db: db}
}

// Create persists a review and its image records in one transaction.
// Callers clamp the image list first; this method stores what it is given.
func (r *BadgerReviewRepository) Create(review *models.Review, images []*models.ReviewImage) error {
	return r.db.Update(func(txn *badger.Txn) error {
		review.BeforeCreate()

		id, err := nextID(txn, ReviewSeqKey)
		if err != nil {
			return err
		}
		review.ID = id
		review.Images = images

		for _, img := range images {
			imgID, err := nextID(txn, ReviewImageSeqKey)
			if err != nil {
				return err
			}
			img.ID = imgID
			img.ReviewID = review.ID

			data, err := marshalEntity(img)
			if err != nil {
				return err
			}
			if err := txn.Set(entityKey(ReviewImageKeyPrefix, review.ID, img.ID), data); err != nil {
				return err
			}
		}

		data, err := marshalEntity(review)
		if err != nil {
			return err
		}
		return txn.Set(entityKey(ReviewKeyPrefix, review.PostID, review.ID), data)
	})
}

// findReview locates a review and its key by ID within txn.
func findReview(txn *badger.Txn, id int) ([]byte, *models.Review, error) {
	opts := badger.DefaultIteratorOptions
	it := txn.NewIterator(opts)
	defer it.Close()

	prefix := []byte(ReviewKeyPrefix)
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		item := it.Item()
		var review models.Review
		err := item.Value(func(val []byte) error {
			return unmarshalEntity(val, &review)
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to unmarshal review: %v", err)
		}
		if review.ID == id {
			return item.KeyCopy(nil), &review, nil
		}
	}
	return nil, nil, ErrNotFound
}

// GetByID retrieves a review by ID, with its image records
func (r *BadgerReviewRepository) GetByID(id int) (*models.Review, error) {
	var review *models.Review
	err := r.db.View(func(txn *badger.Txn) error {
		_, found, err := findReview(txn, id)
		if err != nil {
			return err
		}
		review = found
		images, err := listReviewImages(txn, review.ID)
		if err != nil {
			return err
		}
		review.Images = images
		return nil
	})
	if err != nil {
		return nil, err
	}
	return review, nil
}

func listReviewImages(txn *badger.Txn, reviewID int) ([]*models.ReviewImage, error) {
	opts := badger.DefaultIteratorOptions
	it := txn.NewIterator(opts)
	defer it.Close()

	var images []*models.ReviewImage
	prefix := []byte(fmt.Sprintf("%s%08d:", ReviewImageKeyPrefix, reviewID))
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		var img models.ReviewImage
		err := it.Item().Value(func(val []byte) error {
			return unmarshalEntity(val, &img)
		})
		if err != nil {
			return nil, fmt.Errorf("failed to unmarshal review image: %v", err)
		}
		images = append(images, &img)
	}
	return images, nil
}

// ListByPost retrieves reviews for a post, oldest first
func (r *BadgerReviewRepository) ListByPost(postID int, approvedOnly bool) ([]*models.Review, error) {
	var reviews []*models.Review
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(fmt.Sprintf("%s%08d:", ReviewKeyPrefix, postID))
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var review models.Review
			err := item.Value(func(val []byte) error {
				return unmarshalEntity(val, &review)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal review: %v", err)
			}
			if approvedOnly && !review.Approved {
				continue
			}
			reviews = append(reviews, &review)
		}

		for _, review := range reviews {
			images, err := listReviewImages(txn, review.ID)
			if err != nil {
				return err
			}
			review.Images = images
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

// ListPending retrieves all reviews awaiting approval
func (r *BadgerReviewRepository) ListPending() ([]*models.Review, error) {
	var pending []*models.Review
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(ReviewKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var review models.Review
			err := item.Value(func(val []byte) error {
				return unmarshalEntity(val, &review)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal review: %v", err)
			}
			if !review.Approved {
				pending = append(pending, &review)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pending, nil
}

// ApproveIfPending flips Approved and Notified together, in one
// conflict-checked transaction. See BadgerCommentRepository.ApproveIfPending.
func (r *BadgerReviewRepository) ApproveIfPending(id int) (*models.Review, bool, error) {
	for {
		var review *models.Review
		var transitioned bool

		err := r.db.Update(func(txn *badger.Txn) error {
			key, found, err := findReview(txn, id)
			if err != nil {
				return err
			}
			review = found
			if review.Approved {
				transitioned = false
				return nil
			}

			review.Approved = true
			review.Notified = true
			transitioned = true

			data, err := marshalEntity(review)
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
		return review, transitioned, nil
	}
}

// DeleteByPost removes all reviews (and their image records) for a post
func (r *BadgerReviewRepository) DeleteByPost(postID int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		prefix := []byte(fmt.Sprintf("%s%08d:", ReviewKeyPrefix, postID))
		if err := collectReviewImageKeys(txn, prefix); err != nil {
			return err
		}
		return deletePrefix(txn, prefix)
	})
}

// Delete deletes a review and its image records by ID
func (r *BadgerReviewRepository) Delete(id int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key, _, err := findReview(txn, id)
		if err != nil {
			return err
		}
		imgPrefix := []byte(fmt.Sprintf("%s%08d:", ReviewImageKeyPrefix, id))
		if err := deletePrefix(txn, imgPrefix); err != nil {
			return err
		}
		return txn.Delete(key)
	})
}
