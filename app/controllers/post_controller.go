package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"driftwood/app/models"
	"driftwood/app/services"

	"github.com/gorilla/mux"
)

// PostController handles HTTP requests for blog posts.
type PostController struct {
	postService *services.PostService
}

// NewPostController creates a new PostController.
func NewPostController(postService *services.PostService) *PostController {
	return &PostController{postService: postService}
}

// Index handles listing published posts with paging, category, and
// search filters.
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := queryInt(q.Get("page"), 1)
	perPage := queryInt(q.Get("per_page"), 10)
	categoryID := queryInt(q.Get("category"), 0)
	search := q.Get("q")

	posts, err := pc.postService.ListPublished(categoryID, search, page, perPage)
	if err != nil {
		sendError(w, "Failed to fetch posts: "+err.Error(), http.StatusInternalServerError)
		return
	}
	sendJSON(w, http.StatusOK, map[string]interface{}{
		"posts": posts,
		"page":  page,
	})
}

// Featured lists the posts flagged for the front page.
func (pc *PostController) Featured(w http.ResponseWriter, r *http.Request) {
	posts, err := pc.postService.ListFeatured(queryInt(r.URL.Query().Get("limit"), 3))
	if err != nil {
		sendError(w, "Failed to fetch posts: "+err.Error(), http.StatusInternalServerError)
		return
	}
	sendJSON(w, http.StatusOK, map[string]interface{}{"posts": posts})
}

// Show handles displaying a single post by ID with its approved
// comments and reviews.
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		sendError(w, "Invalid post ID", http.StatusBadRequest)
		return
	}
	post, err := pc.postService.GetPost(id)
	if err != nil {
		sendServiceError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, post)
}

// ShowByPermalink resolves a post by its date-plus-slug public address.
func (pc *PostController) ShowByPermalink(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	date, err := time.Parse("2006-01-02",
		fmt.Sprintf("%s-%s-%s", vars["year"], vars["month"], vars["day"]))
	if err != nil {
		sendError(w, "Invalid date", http.StatusBadRequest)
		return
	}
	post, err := pc.postService.GetPostByPermalink(date, vars["slug"])
	if err != nil {
		sendServiceError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, post)
}

// Create handles creating a new post.
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	var post models.Post
	if !decodeBody(w, r, &post) {
		return
	}
	if err := pc.postService.CreatePost(&post); err != nil {
		sendServiceError(w, err)
		return
	}
	sendJSON(w, http.StatusCreated, post)
}

// Update handles editing an existing post.
func (pc *PostController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		sendError(w, "Invalid post ID", http.StatusBadRequest)
		return
	}
	var post models.Post
	if !decodeBody(w, r, &post) {
		return
	}
	post.ID = id
	if err := pc.postService.UpdatePost(&post); err != nil {
		sendServiceError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, post)
}

// Delete handles deleting a post and everything hanging off it.
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		sendError(w, "Invalid post ID", http.StatusBadRequest)
		return
	}
	if err := pc.postService.DeletePost(id); err != nil {
		sendServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Like records a like from the caller's identity.
func (pc *PostController) Like(w http.ResponseWriter, r *http.Request) {
	pc.toggleLike(w, r, pc.postService.Like)
}

// Unlike withdraws the caller's like.
func (pc *PostController) Unlike(w http.ResponseWriter, r *http.Request) {
	pc.toggleLike(w, r, pc.postService.Unlike)
}

func (pc *PostController) toggleLike(w http.ResponseWriter, r *http.Request, op func(int, string) (*models.Post, error)) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		sendError(w, "Invalid post ID", http.StatusBadRequest)
		return
	}
	post, err := op(id, submitterID(w, r, r.URL.Query().Get("identity")))
	if err != nil {
		sendServiceError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, map[string]interface{}{
		"id":    post.ID,
		"likes": len(post.Likes),
	})
}

// Categories lists the blog categories.
func (pc *PostController) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := pc.postService.ListCategories()
	if err != nil {
		sendError(w, "Failed to fetch categories: "+err.Error(), http.StatusInternalServerError)
		return
	}
	sendJSON(w, http.StatusOK, map[string]interface{}{"categories": categories})
}

// CreateCategory adds a blog category.
func (pc *PostController) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var category models.Category
	if !decodeBody(w, r, &category) {
		return
	}
	if err := pc.postService.CreateCategory(&category); err != nil {
		sendServiceError(w, err)
		return
	}
	sendJSON(w, http.StatusCreated, category)
}

// DeleteCategory removes a blog category.
func (pc *PostController) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		sendError(w, "Invalid category ID", http.StatusBadRequest)
		return
	}
	if err := pc.postService.DeleteCategory(id); err != nil {
		sendServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func queryInt(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
