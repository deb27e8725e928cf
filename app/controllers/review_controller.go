package controllers

import (
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"driftwood/app/models"
	"driftwood/app/services"

	"github.com/gorilla/mux"
)

// maxReviewUploadBytes bounds a review submission's multipart payload.
const maxReviewUploadBytes = 20 << 20

// ReviewController handles HTTP requests for review submissions.
type ReviewController struct {
	reviewService *services.ReviewService
}

// NewReviewController creates a new ReviewController.
func NewReviewController(reviewService *services.ReviewService) *ReviewController {
	return &ReviewController{reviewService: reviewService}
}

// Create handles a review submission. JSON bodies carry the review
// fields only; multipart form posts may attach images, of which at most
// five are kept.
func (rc *ReviewController) Create(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		sendError(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	var review models.Review
	var images []services.ImageUpload

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxReviewUploadBytes); err != nil {
			sendError(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
			return
		}
		review = reviewFromForm(r)
		files := r.MultipartForm.File["images"]
		captions := r.MultipartForm.Value["captions"]
		for i, header := range files {
			file, err := header.Open()
			if err != nil {
				sendError(w, "Failed to read upload: "+err.Error(), http.StatusBadRequest)
				return
			}
			defer file.Close()
			caption := ""
			if i < len(captions) {
				caption = captions[i]
			}
			images = append(images, services.ImageUpload{
				Reader:  file,
				Ext:     strings.TrimPrefix(filepath.Ext(header.Filename), "."),
				Caption: caption,
			})
		}
	} else {
		if !decodeBody(w, r, &review) {
			return
		}
	}
	review.PostID = postID
	review.SubmitterID = submitterID(w, r, review.SubmitterID)

	if err := rc.reviewService.SubmitReview(&review, images); err != nil {
		sendServiceError(w, err)
		return
	}
	sendJSON(w, http.StatusCreated, review)
}

// Index lists a post's approved reviews.
func (rc *ReviewController) Index(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		sendError(w, "Invalid post ID", http.StatusBadRequest)
		return
	}
	reviews, err := rc.reviewService.ListForPost(postID)
	if err != nil {
		sendError(w, "Failed to fetch reviews: "+err.Error(), http.StatusInternalServerError)
		return
	}
	sendJSON(w, http.StatusOK, map[string]interface{}{"reviews": reviews})
}

// Delete removes a review and its images, for operator cleanup.
func (rc *ReviewController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["reviewId"])
	if err != nil {
		sendError(w, "Invalid review ID", http.StatusBadRequest)
		return
	}
	if err := rc.reviewService.DeleteReview(id); err != nil {
		sendServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func reviewFromForm(r *http.Request) models.Review {
	review := models.Review{
		Author:         r.FormValue("author"),
		Title:          r.FormValue("title"),
		Content:        r.FormValue("content"),
		SubmitterEmail: r.FormValue("email"),
		SubmitterID:    r.FormValue("submitter_id"),
		BookingRef:     r.FormValue("booking_ref"),
	}
	if rating, err := strconv.Atoi(r.FormValue("rating")); err == nil {
		review.Rating = rating
	}
	if stay, err := time.Parse("2006-01-02", r.FormValue("stay_date")); err == nil {
		review.StayDate = stay
	}
	return review
}
