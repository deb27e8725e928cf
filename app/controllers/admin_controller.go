package controllers

import (
	"net/http"
	"strconv"

	"driftwood/app/services"

	"github.com/gorilla/mux"
)

// AdminController exposes the moderation queue: pending listings, single
// and bulk approval, and notification resends.
type AdminController struct {
	moderationService *services.ModerationService
}

// NewAdminController creates a new AdminController.
func NewAdminController(moderationService *services.ModerationService) *AdminController {
	return &AdminController{moderationService: moderationService}
}

// idSelection is the payload for bulk actions.
type idSelection struct {
	IDs []int `json:"ids"`
}

// PendingComments lists comments awaiting approval.
func (ac *AdminController) PendingComments(w http.ResponseWriter, r *http.Request) {
	pending, err := ac.moderationService.PendingComments()
	if err != nil {
		sendError(w, "Failed to fetch pending comments: "+err.Error(), http.StatusInternalServerError)
		return
	}
	sendJSON(w, http.StatusOK, map[string]interface{}{"comments": pending})
}

// PendingReviews lists reviews awaiting approval.
func (ac *AdminController) PendingReviews(w http.ResponseWriter, r *http.Request) {
	pending, err := ac.moderationService.PendingReviews()
	if err != nil {
		sendError(w, "Failed to fetch pending reviews: "+err.Error(), http.StatusInternalServerError)
		return
	}
	sendJSON(w, http.StatusOK, map[string]interface{}{"reviews": pending})
}

// ApproveComment approves one comment. Approving twice is harmless.
func (ac *AdminController) ApproveComment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		sendError(w, "Invalid comment ID", http.StatusBadRequest)
		return
	}
	comment, err := ac.moderationService.ApproveComment(id)
	if err != nil {
		sendServiceError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, comment)
}

// ApproveReview approves one review.
func (ac *AdminController) ApproveReview(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		sendError(w, "Invalid review ID", http.StatusBadRequest)
		return
	}
	review, err := ac.moderationService.ApproveReview(id)
	if err != nil {
		sendServiceError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, review)
}

// ApproveComments approves a selection of comments, each independently.
func (ac *AdminController) ApproveComments(w http.ResponseWriter, r *http.Request) {
	var sel idSelection
	if !decodeBody(w, r, &sel) {
		return
	}
	sendJSON(w, http.StatusOK, ac.moderationService.ApproveComments(sel.IDs))
}

// ApproveReviews approves a selection of reviews, each independently.
func (ac *AdminController) ApproveReviews(w http.ResponseWriter, r *http.Request) {
	var sel idSelection
	if !decodeBody(w, r, &sel) {
		return
	}
	sendJSON(w, http.StatusOK, ac.moderationService.ApproveReviews(sel.IDs))
}

// ResendComment re-sends the moderator notification for a pending
// comment.
func (ac *AdminController) ResendComment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		sendError(w, "Invalid comment ID", http.StatusBadRequest)
		return
	}
	if err := ac.moderationService.ResendPendingComment(id); err != nil {
		sendServiceError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

// ResendReview re-sends the moderator notification for a pending review.
func (ac *AdminController) ResendReview(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		sendError(w, "Invalid review ID", http.StatusBadRequest)
		return
	}
	if err := ac.moderationService.ResendPendingReview(id); err != nil {
		sendServiceError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}
