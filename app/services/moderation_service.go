package services

import (
	"driftwood/app/models"
	"driftwood/app/moderation"
	"driftwood/app/repositories"
)

// ModerationService is the operator-facing surface over the moderation
// engine: pending queues, single and bulk approval, and notification
// resends.
type ModerationService struct {
	engine      *moderation.Engine
	commentRepo repositories.CommentRepository
	reviewRepo  repositories.ReviewRepository
}

// NewModerationService creates a new ModerationService.
func NewModerationService(
	engine *moderation.Engine,
	commentRepo repositories.CommentRepository,
	reviewRepo repositories.ReviewRepository,
) *ModerationService {
	return &ModerationService{
		engine:      engine,
		commentRepo: commentRepo,
		reviewRepo:  reviewRepo,
	}
}

// PendingComments lists comments awaiting approval, oldest first.
func (s *ModerationService) PendingComments() ([]*models.Comment, error) {
	return s.commentRepo.ListPending()
}

// PendingReviews lists reviews awaiting approval, oldest first.
func (s *ModerationService) PendingReviews() ([]*models.Review, error) {
	return s.reviewRepo.ListPending()
}

// ApproveComment approves one comment; approving an already-approved
// comment is a no-op and sends nothing.
func (s *ModerationService) ApproveComment(id int) (*models.Comment, error) {
	return s.engine.ApproveComment(id)
}

// ApproveReview approves one review.
func (s *ModerationService) ApproveReview(id int) (*models.Review, error) {
	return s.engine.ApproveReview(id)
}

// ApproveComments approves a selection, each independently.
func (s *ModerationService) ApproveComments(ids []int) moderation.BulkResult {
	return s.engine.ApproveComments(ids)
}

// ApproveReviews approves a selection, each independently.
func (s *ModerationService) ApproveReviews(ids []int) moderation.BulkResult {
	return s.engine.ApproveReviews(ids)
}

// ResendPendingComment re-sends the moderator notification for a
// still-pending comment.
func (s *ModerationService) ResendPendingComment(id int) error {
	return s.engine.ResendPendingComment(id)
}

// ResendPendingReview re-sends the moderator notification for a
// still-pending review.
func (s *ModerationService) ResendPendingReview(id int) error {
	return s.engine.ResendPendingReview(id)
}
