package services

import (
	"fmt"
	"io"

	"driftwood/app/models"
	"driftwood/app/moderation"
	"driftwood/app/repositories"
	"driftwood/app/storage"

	"github.com/rs/zerolog"
)

// ImageUpload is one image attached to a review submission.
type ImageUpload struct {
	Reader  io.Reader
	Ext     string
	Caption string
}

// ReviewService handles business logic for review submissions. Reviews
// are deliberately not rate limited: they require a stay and carry far
// more friction than comments.
type ReviewService struct {
	reviewRepo repositories.ReviewRepository
	postRepo   repositories.PostRepository
	blobs      storage.BlobStore
	engine     *moderation.Engine
	log        zerolog.Logger
}

// NewReviewService creates a new ReviewService.
func NewReviewService(
	reviewRepo repositories.ReviewRepository,
	postRepo repositories.PostRepository,
	blobs storage.BlobStore,
	engine *moderation.Engine,
	log zerolog.Logger,
) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		postRepo:   postRepo,
		blobs:      blobs,
		engine:     engine,
		log:        log,
	}
}

// SubmitReview validates and persists a review with up to
// models.MaxReviewImages attached images. Extra uploads past the cap are
// silently dropped. Image blobs are written before the review record;
// if persistence then fails, the saved blobs are removed again.
func (s *ReviewService) SubmitReview(review *models.Review, uploads []ImageUpload) error {
	if err := review.Validate(); err != nil {
		return fmt.Errorf("invalid review: %w", err)
	}
	if _, err := s.postRepo.GetByID(review.PostID); err != nil {
		return err
	}

	state := s.engine.DecideInitialState(review.SubmitterID, moderation.KindReview)
	review.Approved = state == moderation.StateApproved
	review.Notified = review.Approved
	review.BeforeCreate()

	if len(uploads) > models.MaxReviewImages {
		uploads = uploads[:models.MaxReviewImages]
	}

	var images []*models.ReviewImage
	var keys []string
	for _, upload := range uploads {
		key, err := s.blobs.Save(upload.Reader, upload.Ext)
		if err != nil {
			s.removeBlobs(keys)
			return fmt.Errorf("failed to store review image: %w", err)
		}
		keys = append(keys, key)
		images = append(images, &models.ReviewImage{Filename: key, Caption: upload.Caption})
	}

	if err := s.reviewRepo.Create(review, images); err != nil {
		s.removeBlobs(keys)
		return fmt.Errorf("failed to create review: %w", err)
	}

	s.engine.RecordReviewCreation(review)
	return nil
}

func (s *ReviewService) removeBlobs(keys []string) {
	for _, key := range keys {
		if err := s.blobs.Remove(key); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("failed to remove orphaned blob")
		}
	}
}

// ListForPost returns a post's approved reviews, oldest first.
func (s *ReviewService) ListForPost(postID int) ([]*models.Review, error) {
	return s.reviewRepo.ListByPost(postID, true)
}

// DeleteReview removes a review, its image records, and their blobs.
func (s *ReviewService) DeleteReview(id int) error {
	review, err := s.reviewRepo.GetByID(id)
	if err != nil {
		return err
	}
	for _, img := range review.Images {
		if err := s.blobs.Remove(img.Filename); err != nil {
			s.log.Warn().Err(err).Str("key", img.Filename).Msg("failed to remove review image blob")
		}
	}
	return s.reviewRepo.Delete(id)
}
