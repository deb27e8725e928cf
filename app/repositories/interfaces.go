package repositories

import (
	"time"

	"driftwood/app/models"
)

// PostFilter narrows a post listing.
type PostFilter struct {
	Status       models.PostStatus
	CategoryID   int
	Search       string
	FeaturedOnly bool
	Limit        int
	Offset       int
}

// PostRepository defines the interface for post data access
type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id int) (*models.Post, error)
	GetByDateSlug(date time.Time, slug string) (*models.Post, error)
	List(filter PostFilter) ([]*models.Post, error)
	Update(post *models.Post) error
	Delete(id int) error
}

// CommentRepository defines the interface for comment data access.
// ApproveIfPending is the atomic approval transition: it flips Approved and
// Notified together and reports whether a genuine transition happened.
type CommentRepository interface {
	Create(comment *models.Comment) error
	GetByID(id int) (*models.Comment, error)
	ListByPost(postID int, approvedOnly bool) ([]*models.Comment, error)
	ListPending() ([]*models.Comment, error)
	ApproveIfPending(id int) (*models.Comment, bool, error)
	DeleteByPost(postID int) error
	Delete(id int) error
}

// ReviewRepository defines the interface for review data access. Create
// persists the review together with its (already clamped) image records.
type ReviewRepository interface {
	Create(review *models.Review, images []*models.ReviewImage) error
	GetByID(id int) (*models.Review, error)
	ListByPost(postID int, approvedOnly bool) ([]*models.Review, error)
	ListPending() ([]*models.Review, error)
	ApproveIfPending(id int) (*models.Review, bool, error)
	DeleteByPost(postID int) error
	Delete(id int) error
}

// ServiceRepository defines the interface for catalog service data access
type ServiceRepository interface {
	Create(service *models.Service) error
	GetByID(id int) (*models.Service, error)
	GetBySlug(slug string) (*models.Service, error)
	List() ([]*models.Service, error)
	Update(service *models.Service) error
	Delete(id int) error
	AddImage(image *models.ServiceImage) error
}

// CategoryRepository defines the interface for blog category data access
type CategoryRepository interface {
	Create(category *models.Category) error
	GetByID(id int) (*models.Category, error)
	GetBySlug(slug string) (*models.Category, error)
	List() ([]*models.Category, error)
	Delete(id int) error
}
