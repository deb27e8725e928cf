package services

import (
	"fmt"
	"time"

	"driftwood/app/models"
	"driftwood/app/repositories"
)

// PostService handles business logic for blog posts and their
// categories.
type PostService struct {
	postRepo     repositories.PostRepository
	commentRepo  repositories.CommentRepository
	reviewRepo   repositories.ReviewRepository
	categoryRepo repositories.CategoryRepository
}

// NewPostService creates a new PostService.
func NewPostService(
	postRepo repositories.PostRepository,
	commentRepo repositories.CommentRepository,
	reviewRepo repositories.ReviewRepository,
	categoryRepo repositories.CategoryRepository,
) *PostService {
	return &PostService{
		postRepo:     postRepo,
		commentRepo:  commentRepo,
		reviewRepo:   reviewRepo,
		categoryRepo: categoryRepo,
	}
}

// ListCategories returns the blog categories for navigation.
func (s *PostService) ListCategories() ([]*models.Category, error) {
	return s.categoryRepo.List()
}

// CreateCategory adds a blog category with validation.
func (s *PostService) CreateCategory(category *models.Category) error {
	category.BeforeCreate()
	if err := category.Validate(); err != nil {
		return fmt.Errorf("invalid category: %w", err)
	}
	return s.categoryRepo.Create(category)
}

// DeleteCategory removes a blog category. Posts keep their category ID;
// listings simply stop matching it.
func (s *PostService) DeleteCategory(id int) error {
	return s.categoryRepo.Delete(id)
}

// CreatePost creates a new blog post with validation.
func (s *PostService) CreatePost(post *models.Post) error {
	post.BeforeCreate()
	if err := post.Validate(); err != nil {
		return fmt.Errorf("invalid post: %w", err)
	}
	return s.postRepo.Create(post)
}

// GetPost retrieves a post by ID with its approved submissions attached.
func (s *PostService) GetPost(id int) (*models.Post, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return s.attachSubmissions(post)
}

// GetPostByPermalink resolves a post by its date-plus-slug public address
// and attaches approved submissions. Drafts are not addressable.
func (s *PostService) GetPostByPermalink(date time.Time, slug string) (*models.Post, error) {
	post, err := s.postRepo.GetByDateSlug(date, slug)
	if err != nil {
		return nil, err
	}
	if !post.Published() {
		return nil, repositories.ErrNotFound
	}
	return s.attachSubmissions(post)
}

func (s *PostService) attachSubmissions(post *models.Post) (*models.Post, error) {
	comments, err := s.commentRepo.ListByPost(post.ID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}
	post.Comments = comments

	reviews, err := s.reviewRepo.ListByPost(post.ID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews: %w", err)
	}
	post.Reviews = reviews
	return post, nil
}

// ListPublished retrieves a paginated page of published posts, newest
// first, optionally narrowed by category or a search term.
func (s *PostService) ListPublished(categoryID int, search string, page, perPage int) ([]*models.Post, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	return s.postRepo.List(repositories.PostFilter{
		Status:     models.StatusPublished,
		CategoryID: categoryID,
		Search:     search,
		Limit:      perPage,
		Offset:     (page - 1) * perPage,
	})
}

// ListFeatured returns the published posts flagged for the front page.
func (s *PostService) ListFeatured(limit int) ([]*models.Post, error) {
	return s.postRepo.List(repositories.PostFilter{
		Status:       models.StatusPublished,
		FeaturedOnly: true,
		Limit:        limit,
	})
}

// ListAll retrieves posts of any status, for the admin surface.
func (s *PostService) ListAll(page, perPage int) ([]*models.Post, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}
	return s.postRepo.List(repositories.PostFilter{
		Limit:  perPage,
		Offset: (page - 1) * perPage,
	})
}

// UpdatePost updates an existing post with validation.
func (s *PostService) UpdatePost(post *models.Post) error {
	if err := post.Validate(); err != nil {
		return fmt.Errorf("invalid post: %w", err)
	}
	existing, err := s.postRepo.GetByID(post.ID)
	if err != nil {
		return err
	}
	post.CreatedAt = existing.CreatedAt
	post.UpdatedAt = time.Now()
	return s.postRepo.Update(post)
}

// Like records a like from one identity; liking twice is a no-op.
func (s *PostService) Like(postID int, identity string) (*models.Post, error) {
	if identity == "" {
		return nil, fmt.Errorf("identity is required")
	}
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		return nil, err
	}
	if post.Liked(identity) {
		return post, nil
	}
	post.AddLike(identity)
	if err := s.postRepo.Update(post); err != nil {
		return nil, err
	}
	return post, nil
}

// Unlike withdraws a like; withdrawing an absent like is a no-op.
func (s *PostService) Unlike(postID int, identity string) (*models.Post, error) {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		return nil, err
	}
	if !post.Liked(identity) {
		return post, nil
	}
	post.RemoveLike(identity)
	if err := s.postRepo.Update(post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost deletes a post together with all its comments, reviews, and
// review image records.
func (s *PostService) DeletePost(id int) error {
	return s.postRepo.Delete(id)
}
