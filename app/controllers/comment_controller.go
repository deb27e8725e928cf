package controllers

import (
	"net/http"
	"strconv"

	"driftwood/app/models"
	"driftwood/app/services"

	"github.com/gorilla/mux"
)

// CommentController handles HTTP requests for comment submissions.
type CommentController struct {
	commentService *services.CommentService
}

// NewCommentController creates a new CommentController.
func NewCommentController(commentService *services.CommentService) *CommentController {
	return &CommentController{commentService: commentService}
}

// Create handles a comment submission against a post. Accepts JSON or a
// form post; anonymous submitters are keyed by a session cookie.
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		sendError(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	var comment models.Comment
	if isForm(r) {
		if err := r.ParseForm(); err != nil {
			sendError(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
			return
		}
		comment.Author = r.FormValue("author")
		comment.Content = r.FormValue("content")
		comment.SubmitterEmail = r.FormValue("email")
		comment.SubmitterID = r.FormValue("submitter_id")
	} else if !decodeBody(w, r, &comment) {
		return
	}
	comment.PostID = postID
	comment.SubmitterID = submitterID(w, r, comment.SubmitterID)

	if err := cc.commentService.SubmitComment(&comment); err != nil {
		sendServiceError(w, err)
		return
	}
	sendJSON(w, http.StatusCreated, comment)
}

// Index lists a post's approved comments.
func (cc *CommentController) Index(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		sendError(w, "Invalid post ID", http.StatusBadRequest)
		return
	}
	comments, err := cc.commentService.ListForPost(postID)
	if err != nil {
		sendError(w, "Failed to fetch comments: "+err.Error(), http.StatusInternalServerError)
		return
	}
	sendJSON(w, http.StatusOK, map[string]interface{}{"comments": comments})
}

// Delete removes a comment, for operator cleanup.
func (cc *CommentController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["commentId"])
	if err != nil {
		sendError(w, "Invalid comment ID", http.StatusBadRequest)
		return
	}
	if err := cc.commentService.DeleteComment(id); err != nil {
		sendServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
