// Package moderation implements the approval workflow for user
// submissions. A submission is created either PENDING or, for submitters
// holding a trust capability, directly APPROVED. Pending items wait for an
// operator; the approval transition is atomic in the store and triggers the
// submitter-facing notification exactly once.
package moderation

import (
	"fmt"

	"driftwood/app/auth"
	"driftwood/app/models"
	"driftwood/app/notify"
	"driftwood/app/repositories"

	"github.com/rs/zerolog"
)

// Kind distinguishes the two submission types. Bypass capabilities are
// granted per kind.
type Kind string

const (
	KindComment Kind = "comment"
	KindReview  Kind = "review"
)

// State is a submission's moderation state.
type State string

const (
	StatePending  State = "pending"
	StateApproved State = "approved"
)

// Config carries the addresses the engine links and mails to.
type Config struct {
	// SiteURL prefixes public permalinks in approval notifications.
	SiteURL string
	// AdminURL prefixes deep links in moderator notifications.
	AdminURL string
	// ModeratorEmail receives the awaiting-approval notifications.
	ModeratorEmail string
}

// Engine decides initial approval states and drives approval transitions.
type Engine struct {
	authz    auth.AuthorizationPort
	notifier notify.Notifier
	posts    repositories.PostRepository
	comments repositories.CommentRepository
	reviews  repositories.ReviewRepository
	cfg      Config
	log      zerolog.Logger
}

// NewEngine creates a moderation engine.
func NewEngine(
	authz auth.AuthorizationPort,
	notifier notify.Notifier,
	posts repositories.PostRepository,
	comments repositories.CommentRepository,
	reviews repositories.ReviewRepository,
	cfg Config,
	log zerolog.Logger,
) *Engine {
	return &Engine{
		authz:    authz,
		notifier: notifier,
		posts:    posts,
		comments: comments,
		reviews:  reviews,
		cfg:      cfg,
		log:      log,
	}
}

func bypassCapability(kind Kind) string {
	if kind == KindReview {
		return auth.CapBypassReviewReview
	}
	return auth.CapBypassCommentReview
}

// DecideInitialState returns APPROVED iff the submitter holds the trusted
// grant or the per-kind bypass grant; everyone else starts PENDING.
func (e *Engine) DecideInitialState(submitterID string, kind Kind) State {
	if e.authz.HasCapability(submitterID, auth.CapTrustedContributor) ||
		e.authz.HasCapability(submitterID, bypassCapability(kind)) {
		return StateApproved
	}
	return StatePending
}

// send delivers a notification, absorbing any failure. Delivery problems
// must never surface to the submission or approval path.
func (e *Engine) send(templateKey, recipient string, data map[string]any) {
	if err := e.notifier.Send(templateKey, recipient, data); err != nil {
		e.log.Warn().
			Err(err).
			Str("template", templateKey).
			Str("recipient", recipient).
			Msg("notification delivery failed")
	}
}

// postTitle resolves a post's title for notification context. A missing
// post is not fatal here; the notification still goes out.
func (e *Engine) postTitle(postID int) string {
	post, err := e.posts.GetByID(postID)
	if err != nil {
		e.log.Warn().Err(err).Int("post_id", postID).Msg("post lookup for notification failed")
		return ""
	}
	return post.Title
}

// RecordCommentCreation fires the moderator notification for a comment
// created in the PENDING state. Approved creations are silent.
func (e *Engine) RecordCommentCreation(comment *models.Comment) {
	if comment.Approved {
		return
	}
	e.send(notify.TemplateNewCommentPending, e.cfg.ModeratorEmail, map[string]any{
		"PostTitle":     e.postTitle(comment.PostID),
		"Author":        comment.Author,
		"Content":       comment.Content,
		"ModerationURL": fmt.Sprintf("%s/moderation/comments/%d", e.cfg.AdminURL, comment.ID),
	})
}

// RecordReviewCreation fires the moderator notification for a review
// created in the PENDING state. Approved creations are silent.
func (e *Engine) RecordReviewCreation(review *models.Review) {
	if review.Approved {
		return
	}
	e.send(notify.TemplateNewReviewPending, e.cfg.ModeratorEmail, map[string]any{
		"PostTitle":     e.postTitle(review.PostID),
		"Author":        review.Author,
		"Title":         review.Title,
		"Rating":        review.Rating,
		"Content":       review.Content,
		"ModerationURL": fmt.Sprintf("%s/moderation/reviews/%d", e.cfg.AdminURL, review.ID),
	})
}

// approvalData builds the submitter-facing notification context.
func (e *Engine) approvalData(postID int) map[string]any {
	data := map[string]any{"PostTitle": "", "PostURL": e.cfg.SiteURL}
	post, err := e.posts.GetByID(postID)
	if err != nil {
		e.log.Warn().Err(err).Int("post_id", postID).Msg("post lookup for notification failed")
		return data
	}
	data["PostTitle"] = post.Title
	data["PostURL"] = e.cfg.SiteURL + post.PermalinkPath()
	return data
}

// ApproveComment transitions a comment to APPROVED. The store applies the
// transition atomically together with the notified flag, so only the one
// caller that wins the transition sends the submitter notification.
// Calling it on an already-approved comment is a silent no-op.
func (e *Engine) ApproveComment(id int) (*models.Comment, error) {
	comment, transitioned, err := e.comments.ApproveIfPending(id)
	if err != nil {
		return nil, err
	}
	if transitioned {
		e.send(notify.TemplateCommentApproved, comment.SubmitterEmail, e.approvalData(comment.PostID))
	}
	return comment, nil
}

// ApproveReview transitions a review to APPROVED; see ApproveComment.
func (e *Engine) ApproveReview(id int) (*models.Review, error) {
	review, transitioned, err := e.reviews.ApproveIfPending(id)
	if err != nil {
		return nil, err
	}
	if transitioned {
		e.send(notify.TemplateReviewApproved, review.SubmitterEmail, e.approvalData(review.PostID))
	}
	return review, nil
}

// BulkResult summarizes an operator bulk action.
type BulkResult struct {
	Approved int   `json:"approved"`
	Skipped  int   `json:"skipped"`
	Missing  []int `json:"missing,omitempty"`
}

// ApproveComments applies ApproveComment to each ID independently.
// Already-approved items are counted as skipped; missing IDs are reported,
// not fatal.
func (e *Engine) ApproveComments(ids []int) BulkResult {
	var result BulkResult
	for _, id := range ids {
		comment, transitioned, err := e.comments.ApproveIfPending(id)
		if err != nil {
			result.Missing = append(result.Missing, id)
			e.log.Warn().Err(err).Int("comment_id", id).Msg("bulk approve skipped comment")
			continue
		}
		if !transitioned {
			result.Skipped++
			continue
		}
		result.Approved++
		e.send(notify.TemplateCommentApproved, comment.SubmitterEmail, e.approvalData(comment.PostID))
	}
	return result
}

// ApproveReviews applies ApproveReview to each ID independently.
func (e *Engine) ApproveReviews(ids []int) BulkResult {
	var result BulkResult
	for _, id := range ids {
		review, transitioned, err := e.reviews.ApproveIfPending(id)
		if err != nil {
			result.Missing = append(result.Missing, id)
			e.log.Warn().Err(err).Int("review_id", id).Msg("bulk approve skipped review")
			continue
		}
		if !transitioned {
			result.Skipped++
			continue
		}
		result.Approved++
		e.send(notify.TemplateReviewApproved, review.SubmitterEmail, e.approvalData(review.PostID))
	}
	return result
}

// ResendPendingComment re-fires the moderator notification for a comment
// still awaiting approval. Approved comments are left alone.
func (e *Engine) ResendPendingComment(id int) error {
	comment, err := e.comments.GetByID(id)
	if err != nil {
		return err
	}
	e.RecordCommentCreation(comment)
	return nil
}

// ResendPendingReview re-fires the moderator notification for a review
// still awaiting approval.
func (e *Engine) ResendPendingReview(id int) error {
	review, err := e.reviews.GetByID(id)
	if err != nil {
		return err
	}
	e.RecordReviewCreation(review)
	return nil
}
