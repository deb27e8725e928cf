package repositories

import (
	"testing"
	"time"

	"driftwood/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPost(title string, publish time.Time) *models.Post {
	return &models.Post{
		Title:       title,
		AuthorName:  "Staff Writer",
		Content:     "Enough content to pass validation.",
		PublishDate: publish,
		Status:      models.StatusPublished,
	}
}

func TestBadgerPostRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBadgerPostRepository(db)

	publish := time.Date(2025, 7, 4, 9, 0, 0, 0, time.UTC)

	t.Run("create and get", func(t *testing.T) {
		post := testPost("Opening the Beach Huts", publish)
		require.NoError(t, repo.Create(post))
		assert.Equal(t, 1, post.ID)
		assert.Equal(t, "opening-the-beach-huts", post.Slug)

		got, err := repo.GetByID(post.ID)
		require.NoError(t, err)
		assert.Equal(t, post.Title, got.Title)
	})

	t.Run("get by date and slug", func(t *testing.T) {
		got, err := repo.GetByDateSlug(publish, "opening-the-beach-huts")
		require.NoError(t, err)
		assert.Equal(t, 1, got.ID)

		_, err = repo.GetByDateSlug(publish.AddDate(0, 0, 1), "opening-the-beach-huts")
		assert.Equal(t, ErrNotFound, err)
	})

	t.Run("duplicate natural key rejected", func(t *testing.T) {
		dup := testPost("Opening the Beach Huts", publish)
		assert.Error(t, repo.Create(dup))
	})

	t.Run("same slug allowed on another day", func(t *testing.T) {
		later := testPost("Opening the Beach Huts", publish.AddDate(0, 0, 7))
		assert.NoError(t, repo.Create(later))
	})

	t.Run("get missing post", func(t *testing.T) {
		_, err := repo.GetByID(999)
		assert.Equal(t, ErrNotFound, err)
	})
}

func TestBadgerPostRepositoryList(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBadgerPostRepository(db)

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	older := testPost("Poolside Yoga", base)
	older.CategoryID = 1
	require.NoError(t, repo.Create(older))

	newer := testPost("Cabana Season", base.AddDate(0, 0, 10))
	newer.CategoryID = 2
	newer.IsFeatured = true
	require.NoError(t, repo.Create(newer))

	draft := testPost("Unfinished Notes", base.AddDate(0, 0, 20))
	draft.Status = models.StatusDraft
	require.NoError(t, repo.Create(draft))

	t.Run("published only, newest first", func(t *testing.T) {
		posts, err := repo.List(PostFilter{Status: models.StatusPublished})
		require.NoError(t, err)
		require.Len(t, posts, 2)
		assert.Equal(t, "Cabana Season", posts[0].Title)
		assert.Equal(t, "Poolside Yoga", posts[1].Title)
	})

	t.Run("category filter", func(t *testing.T) {
		posts, err := repo.List(PostFilter{CategoryID: 1})
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, "Poolside Yoga", posts[0].Title)
	})

	t.Run("search", func(t *testing.T) {
		posts, err := repo.List(PostFilter{Search: "cabana"})
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, "Cabana Season", posts[0].Title)
	})

	t.Run("featured only", func(t *testing.T) {
		posts, err := repo.List(PostFilter{FeaturedOnly: true})
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, "Cabana Season", posts[0].Title)
	})

	t.Run("pagination", func(t *testing.T) {
		posts, err := repo.List(PostFilter{Limit: 1, Offset: 1})
		require.NoError(t, err)
		require.Len(t, posts, 1)

		posts, err = repo.List(PostFilter{Offset: 10})
		require.NoError(t, err)
		assert.Empty(t, posts)
	})
}

func TestBadgerPostRepositoryCascadeDelete(t *testing.T) {
	db := setupTestDB(t)
	postRepo := NewBadgerPostRepository(db)
	commentRepo := NewBadgerCommentRepository(db)
	reviewRepo := NewBadgerReviewRepository(db)

	post := testPost("Doomed Post", time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, postRepo.Create(post))

	comment := &models.Comment{
		PostID:      post.ID,
		SubmitterID: "guest-1",
		Author:      "Jamie",
		Content:     "soon to be gone",
	}
	require.NoError(t, commentRepo.Create(comment))

	review := &models.Review{
		PostID:      post.ID,
		SubmitterID: "guest-2",
		Author:      "Alex",
		Title:       "Nice stay",
		Content:     "also gone soon",
		Rating:      4,
		StayDate:    time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
	}
	images := []*models.ReviewImage{{Filename: "a.jpg"}, {Filename: "b.jpg"}}
	require.NoError(t, reviewRepo.Create(review, images))

	require.NoError(t, postRepo.Delete(post.ID))

	_, err := postRepo.GetByID(post.ID)
	assert.Equal(t, ErrNotFound, err)
	_, err = commentRepo.GetByID(comment.ID)
	assert.Equal(t, ErrNotFound, err)
	_, err = reviewRepo.GetByID(review.ID)
	assert.Equal(t, ErrNotFound, err)

	// The natural key is free for reuse after deletion.
	again := testPost("Doomed Post", time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC))
	assert.NoError(t, postRepo.Create(again))
}
