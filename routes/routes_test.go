package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"driftwood/app/auth"
	"driftwood/app/controllers"
	"driftwood/app/models"
	"driftwood/app/moderation"
	"driftwood/app/notify"
	"driftwood/app/ratelimit"
	"driftwood/app/repositories/mock"
	"driftwood/app/services"
	"driftwood/app/storage"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRouter(t *testing.T) http.Handler {
	t.Helper()

	posts := mock.NewPostRepository()
	comments := mock.NewCommentRepository()
	reviews := mock.NewReviewRepository()
	categories := mock.NewCategoryRepository()
	log := zerolog.Nop()

	require.NoError(t, posts.Create(&models.Post{
		Title:       "High Season Tips",
		Slug:        "high-season-tips",
		AuthorName:  "staff",
		Content:     "book the cabanas early",
		Status:      models.StatusPublished,
		PublishDate: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
	}))

	engine := moderation.NewEngine(auth.StaticGrants{}, &notify.Recorder{}, posts, comments, reviews,
		moderation.Config{SiteURL: "http://localhost", AdminURL: "http://localhost/admin"}, log)
	limiter := ratelimit.New(ratelimit.NewMemoryStore())

	postService := services.NewPostService(posts, comments, reviews, categories)
	commentService := services.NewCommentService(comments, posts, limiter, engine, log)
	reviewService := services.NewReviewService(reviews, posts, storage.NewMemStore(), engine, log)
	bookingService := services.NewBookingService(&notify.Recorder{}, "staff@localhost", log)
	catalogService := services.NewCatalogService(mock.NewServiceRepository())
	moderationService := services.NewModerationService(engine, comments, reviews)

	return SetupRoutes(&Controllers{
		Posts:    controllers.NewPostController(postService),
		Comments: controllers.NewCommentController(commentService),
		Reviews:  controllers.NewReviewController(reviewService),
		Catalog:  controllers.NewCatalogController(catalogService),
		Bookings: controllers.NewBookingController(bookingService),
		Admin:    controllers.NewAdminController(moderationService),
	}, log, t.TempDir(), t.TempDir())
}

func get(t *testing.T, router http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", path, nil))
	return rec
}

func TestRouteWiring(t *testing.T) {
	router := setupTestRouter(t)

	t.Run("post listing", func(t *testing.T) {
		rec := get(t, router, "/api/posts")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "High Season Tips")
	})

	t.Run("permalink", func(t *testing.T) {
		rec := get(t, router, "/blog/2026/01/15/high-season-tips")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("catalog grouped listing", func(t *testing.T) {
		rec := get(t, router, "/api/services")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Cabanas")
	})

	t.Run("category listing", func(t *testing.T) {
		rec := get(t, router, "/api/categories")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("pending queues", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, get(t, router, "/api/admin/comments/pending").Code)
		assert.Equal(t, http.StatusOK, get(t, router, "/api/admin/reviews/pending").Code)
	})

	t.Run("unknown route is 404", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, get(t, router, "/api/nonsense").Code)
	})

	t.Run("api responses are json", func(t *testing.T) {
		rec := get(t, router, "/api/posts")
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	})
}
