package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"driftwood/app/auth"
	"driftwood/app/models"
	"driftwood/app/moderation"
	"driftwood/app/notify"
	"driftwood/app/ratelimit"
	"driftwood/app/repositories/mock"
	"driftwood/app/services"
	"driftwood/app/storage"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	router   *mux.Router
	recorder *notify.Recorder
	posts    *mock.PostRepository
	comments *mock.CommentRepository
	post     *models.Post
}

func newHarness(t *testing.T, grants auth.StaticGrants) *harness {
	t.Helper()

	h := &harness{
		recorder: &notify.Recorder{},
		posts:    mock.NewPostRepository(),
		comments: mock.NewCommentRepository(),
	}
	reviews := mock.NewReviewRepository()
	log := zerolog.Nop()

	h.post = &models.Post{
		Title:       "Poolside Mornings",
		Slug:        "poolside-mornings",
		AuthorName:  "staff",
		Content:     "the water is warm before nine",
		Status:      models.StatusPublished,
		PublishDate: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, h.posts.Create(h.post))

	engine := moderation.NewEngine(grants, h.recorder, h.posts, h.comments, reviews, moderation.Config{
		SiteURL:        "https://resort.example",
		AdminURL:       "https://resort.example/admin",
		ModeratorEmail: "moderator@resort.example",
	}, log)
	limiter := ratelimit.New(ratelimit.NewMemoryStore())

	postService := services.NewPostService(h.posts, h.comments, reviews, mock.NewCategoryRepository())
	commentService := services.NewCommentService(h.comments, h.posts, limiter, engine, log)
	reviewService := services.NewReviewService(reviews, h.posts, storage.NewMemStore(), engine, log)
	moderationService := services.NewModerationService(engine, h.comments, reviews)

	postController := NewPostController(postService)
	commentController := NewCommentController(commentService)
	reviewController := NewReviewController(reviewService)
	adminController := NewAdminController(moderationService)

	router := mux.NewRouter()
	router.HandleFunc("/blog/{year:[0-9]{4}}/{month:[0-9]{2}}/{day:[0-9]{2}}/{slug}",
		postController.ShowByPermalink).Methods("GET")
	router.HandleFunc("/api/posts/{id:[0-9]+}", postController.Show).Methods("GET")
	router.HandleFunc("/api/posts/{id:[0-9]+}/like", postController.Like).Methods("POST")
	router.HandleFunc("/api/posts/{id:[0-9]+}/comments", commentController.Create).Methods("POST")
	router.HandleFunc("/api/posts/{id:[0-9]+}/comments", commentController.Index).Methods("GET")
	router.HandleFunc("/api/posts/{id:[0-9]+}/reviews", reviewController.Create).Methods("POST")
	router.HandleFunc("/api/admin/comments/pending", adminController.PendingComments).Methods("GET")
	router.HandleFunc("/api/admin/comments/{id:[0-9]+}/approve", adminController.ApproveComment).Methods("POST")
	router.HandleFunc("/api/admin/comments/approve", adminController.ApproveComments).Methods("POST")
	h.router = router
	return h
}

func (h *harness) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	return rec
}

func (h *harness) postJSON(path string, body interface{}) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest("POST", path, bytes.NewReader(data))
	req.Header.Set("Accept", "application/json")
	return h.do(req)
}

func commentBody(submitterID string) map[string]interface{} {
	return map[string]interface{}{
		"submitterId":    submitterID,
		"submitterEmail": "guest@example.com",
		"author":         "Guest",
		"content":        "Lovely view from the huts.",
	}
}

func TestCommentCreateEndpoint(t *testing.T) {
	t.Run("untrusted submission returns pending comment", func(t *testing.T) {
		h := newHarness(t, auth.StaticGrants{})

		rec := h.postJSON(fmt.Sprintf("/api/posts/%d/comments", h.post.ID), commentBody("guest-1"))
		require.Equal(t, http.StatusCreated, rec.Code)

		var created models.Comment
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
		assert.False(t, created.Approved)
		assert.Len(t, h.recorder.ByTemplate(notify.TemplateNewCommentPending), 1)
	})

	t.Run("trusted submission returns approved comment", func(t *testing.T) {
		h := newHarness(t, auth.StaticGrants{"vip": {auth.CapTrustedContributor}})

		rec := h.postJSON(fmt.Sprintf("/api/posts/%d/comments", h.post.ID), commentBody("vip"))
		require.Equal(t, http.StatusCreated, rec.Code)

		var created models.Comment
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
		assert.True(t, created.Approved)
		assert.Empty(t, h.recorder.Sent)
	})

	t.Run("form submission works too", func(t *testing.T) {
		h := newHarness(t, auth.StaticGrants{})

		form := url.Values{
			"author":       {"Guest"},
			"content":      {"Booked again for next year."},
			"email":        {"guest@example.com"},
			"submitter_id": {"guest-1"},
		}
		req := httptest.NewRequest("POST",
			fmt.Sprintf("/api/posts/%d/comments", h.post.ID),
			strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		rec := h.do(req)
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("anonymous submitter gets a session cookie", func(t *testing.T) {
		h := newHarness(t, auth.StaticGrants{})

		rec := h.postJSON(fmt.Sprintf("/api/posts/%d/comments", h.post.ID), commentBody(""))
		require.Equal(t, http.StatusCreated, rec.Code)

		cookies := rec.Result().Cookies()
		require.NotEmpty(t, cookies)
		assert.Equal(t, sessionCookie, cookies[0].Name)
	})

	t.Run("sixth submission returns 429", func(t *testing.T) {
		h := newHarness(t, auth.StaticGrants{})

		path := fmt.Sprintf("/api/posts/%d/comments", h.post.ID)
		for i := 0; i < ratelimit.DefaultLimit; i++ {
			require.Equal(t, http.StatusCreated, h.postJSON(path, commentBody("guest-1")).Code)
		}
		assert.Equal(t, http.StatusTooManyRequests, h.postJSON(path, commentBody("guest-1")).Code)
	})

	t.Run("invalid body returns 400", func(t *testing.T) {
		h := newHarness(t, auth.StaticGrants{})

		body := commentBody("guest-1")
		body["content"] = ""
		rec := h.postJSON(fmt.Sprintf("/api/posts/%d/comments", h.post.ID), body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown post returns 404", func(t *testing.T) {
		h := newHarness(t, auth.StaticGrants{})

		rec := h.postJSON("/api/posts/999/comments", commentBody("guest-1"))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestAdminApprovalEndpoints(t *testing.T) {
	h := newHarness(t, auth.StaticGrants{})

	path := fmt.Sprintf("/api/posts/%d/comments", h.post.ID)
	var created models.Comment
	rec := h.postJSON(path, commentBody("guest-1"))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	t.Run("pending queue lists the comment", func(t *testing.T) {
		rec := h.do(httptest.NewRequest("GET", "/api/admin/comments/pending", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Lovely view")
	})

	t.Run("approval notifies submitter once", func(t *testing.T) {
		rec := h.postJSON(fmt.Sprintf("/api/admin/comments/%d/approve", created.ID), nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, h.recorder.ByTemplate(notify.TemplateCommentApproved), 1)

		// Repeat approval stays 200 but sends nothing new.
		rec = h.postJSON(fmt.Sprintf("/api/admin/comments/%d/approve", created.ID), nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, h.recorder.ByTemplate(notify.TemplateCommentApproved), 1)
	})

	t.Run("approved comment becomes publicly visible", func(t *testing.T) {
		rec := h.do(httptest.NewRequest("GET", path, nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Lovely view")
	})

	t.Run("missing comment returns 404", func(t *testing.T) {
		rec := h.postJSON("/api/admin/comments/999/approve", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("bulk approval reports per-item results", func(t *testing.T) {
		var second models.Comment
		rec := h.postJSON(path, commentBody("guest-2"))
		require.Equal(t, http.StatusCreated, rec.Code)
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &second))

		rec = h.postJSON("/api/admin/comments/approve",
			map[string]interface{}{"ids": []int{created.ID, second.ID, 999}})
		require.Equal(t, http.StatusOK, rec.Code)

		var result moderation.BulkResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.Equal(t, 1, result.Approved)
		assert.Equal(t, 1, result.Skipped)
		assert.Equal(t, []int{999}, result.Missing)
	})
}

func TestPostEndpoints(t *testing.T) {
	h := newHarness(t, auth.StaticGrants{})

	t.Run("permalink resolves the post", func(t *testing.T) {
		rec := h.do(httptest.NewRequest("GET", "/blog/2026/05/01/poolside-mornings", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Poolside Mornings")
	})

	t.Run("wrong date returns 404", func(t *testing.T) {
		rec := h.do(httptest.NewRequest("GET", "/blog/2026/05/02/poolside-mornings", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("like counts one per identity", func(t *testing.T) {
		path := fmt.Sprintf("/api/posts/%d/like?identity=guest-1", h.post.ID)
		rec := h.postJSON(path, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"likes":1`)

		rec = h.postJSON(path, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"likes":1`)
	})
}
