package services

import (
	"fmt"

	"driftwood/app/models"
	"driftwood/app/moderation"
	"driftwood/app/ratelimit"
	"driftwood/app/repositories"

	"github.com/rs/zerolog"
)

// CommentService handles business logic for comment submissions.
type CommentService struct {
	commentRepo repositories.CommentRepository
	postRepo    repositories.PostRepository
	limiter     *ratelimit.Limiter
	engine      *moderation.Engine
	log         zerolog.Logger
}

// NewCommentService creates a new CommentService.
func NewCommentService(
	commentRepo repositories.CommentRepository,
	postRepo repositories.PostRepository,
	limiter *ratelimit.Limiter,
	engine *moderation.Engine,
	log zerolog.Logger,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		limiter:     limiter,
		engine:      engine,
		log:         log,
	}
}

// SubmitComment runs the full submission pipeline: validate, check the
// rate limit, decide the initial moderation state, persist, notify, and
// only then commit the rate limit so failed attempts never count.
//
// A limiter store error fails open: the submission proceeds and the
// error is logged. Only validation, rate limiting, and persistence
// problems reach the caller.
func (s *CommentService) SubmitComment(comment *models.Comment) error {
	if err := comment.Validate(); err != nil {
		return fmt.Errorf("invalid comment: %w", err)
	}
	if _, err := s.postRepo.GetByID(comment.PostID); err != nil {
		return err
	}

	allowed, err := s.limiter.Check(comment.SubmitterID, string(moderation.KindComment))
	if err != nil {
		if err == ratelimit.ErrEmptyKey {
			return fmt.Errorf("invalid comment: %w", err)
		}
		s.log.Warn().Err(err).Msg("rate limit check failed, allowing submission")
	} else if !allowed {
		return ErrRateLimited
	}

	state := s.engine.DecideInitialState(comment.SubmitterID, moderation.KindComment)
	comment.Approved = state == moderation.StateApproved
	comment.Notified = comment.Approved
	comment.BeforeCreate()

	if err := s.commentRepo.Create(comment); err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	s.engine.RecordCommentCreation(comment)

	if err := s.limiter.Commit(comment.SubmitterID, string(moderation.KindComment)); err != nil {
		s.log.Warn().Err(err).Msg("rate limit commit failed")
	}
	return nil
}

// ListForPost returns a post's approved comments, oldest first.
func (s *CommentService) ListForPost(postID int) ([]*models.Comment, error) {
	return s.commentRepo.ListByPost(postID, true)
}

// DeleteComment removes a comment outright, for operator cleanup.
func (s *CommentService) DeleteComment(id int) error {
	return s.commentRepo.Delete(id)
}
