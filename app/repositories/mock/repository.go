package mock

import (
	"sort"
	"strings"
	"sync"
	"time"

	"driftwood/app/models"
	"driftwood/app/repositories"
)

// PostRepository is an in-memory PostRepository for tests.
type PostRepository struct {
	posts  map[int]*models.Post
	nextID int
	mutex  sync.RWMutex
}

// NewPostRepository creates an empty in-memory post repository.
func NewPostRepository() *PostRepository {
	return &PostRepository{
		posts:  make(map[int]*models.Post),
		nextID: 1,
	}
}

func (m *PostRepository) Create(post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	post.BeforeCreate()
	post.ID = m.nextID
	m.nextID++
	m.posts[post.ID] = post
	return nil
}

func (m *PostRepository) GetByID(id int) (*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	post, exists := m.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return post, nil
}

func (m *PostRepository) GetByDateSlug(date time.Time, slug string) (*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	want := date.Format("2006-01-02")
	for _, post := range m.posts {
		if post.Slug == slug && post.DateKey() == want {
			return post, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *PostRepository) List(filter repositories.PostFilter) ([]*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var matched []*models.Post
	for id := 1; id < m.nextID; id++ {
		post, ok := m.posts[id]
		if !ok {
			continue
		}
		if filter.Status != "" && post.Status != filter.Status {
			continue
		}
		if filter.CategoryID != 0 && post.CategoryID != filter.CategoryID {
			continue
		}
		if filter.FeaturedOnly && !post.IsFeatured {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(post.Title), needle) &&
				!strings.Contains(strings.ToLower(post.Content), needle) {
				continue
			}
		}
		matched = append(matched, post)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].PublishDate.After(matched[j].PublishDate)
	})
	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return nil, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

func (m *PostRepository) Update(post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.posts[post.ID]; !exists {
		return repositories.ErrNotFound
	}
	m.posts[post.ID] = post
	return nil
}

func (m *PostRepository) Delete(id int) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.posts[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.posts, id)
	return nil
}

// CommentRepository is an in-memory CommentRepository for tests.
type CommentRepository struct {
	comments map[int]*models.Comment
	nextID   int
	mutex    sync.RWMutex
}

// NewCommentRepository creates an empty in-memory comment repository.
func NewCommentRepository() *CommentRepository {
	return &CommentRepository{
		comments: make(map[int]*models.Comment),
		nextID:   1,
	}
}

func (m *CommentRepository) Create(comment *models.Comment) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	comment.BeforeCreate()
	comment.ID = m.nextID
	m.nextID++
	m.comments[comment.ID] = comment
	return nil
}

func (m *CommentRepository) GetByID(id int) (*models.Comment, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	comment, exists := m.comments[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return comment, nil
}

func (m *CommentRepository) ListByPost(postID int, approvedOnly bool) ([]*models.Comment, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var comments []*models.Comment
	for id := 1; id < m.nextID; id++ {
		comment, ok := m.comments[id]
		if !ok || comment.PostID != postID {
			continue
		}
		if approvedOnly && !comment.Approved {
			continue
		}
		comments = append(comments, comment)
	}
	return comments, nil
}

func (m *CommentRepository) ListPending() ([]*models.Comment, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var pending []*models.Comment
	for id := 1; id < m.nextID; id++ {
		if comment, ok := m.comments[id]; ok && !comment.Approved {
			pending = append(pending, comment)
		}
	}
	return pending, nil
}

func (m *CommentRepository) ApproveIfPending(id int) (*models.Comment, bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	comment, exists := m.comments[id]
	if !exists {
		return nil, false, repositories.ErrNotFound
	}
	if comment.Approved {
		return comment, false, nil
	}
	comment.Approved = true
	comment.Notified = true
	return comment, true, nil
}

func (m *CommentRepository) DeleteByPost(postID int) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for id, comment := range m.comments {
		if comment.PostID == postID {
			delete(m.comments, id)
		}
	}
	return nil
}

func (m *CommentRepository) Delete(id int) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.comments[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.comments, id)
	return nil
}

// ReviewRepository is an in-memory ReviewRepository for tests.
type ReviewRepository struct {
	reviews map[int]*models.Review
	nextID  int
	mutex   sync.RWMutex
}

// NewReviewRepository creates an empty in-memory review repository.
func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{
		reviews: make(map[int]*models.Review),
		nextID:  1,
	}
}

func (m *ReviewRepository) Create(review *models.Review, images []*models.ReviewImage) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	review.BeforeCreate()
	review.ID = m.nextID
	m.nextID++
	for i, img := range images {
		img.ID = i + 1
		img.ReviewID = review.ID
	}
	review.Images = images
	m.reviews[review.ID] = review
	return nil
}

func (m *ReviewRepository) GetByID(id int) (*models.Review, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	review, exists := m.reviews[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return review, nil
}

func (m *ReviewRepository) ListByPost(postID int, approvedOnly bool) ([]*models.Review, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var reviews []*models.Review
	for id := 1; id < m.nextID; id++ {
		review, ok := m.reviews[id]
		if !ok || review.PostID != postID {
			continue
		}
		if approvedOnly && !review.Approved {
			continue
		}
		reviews = append(reviews, review)
	}
	return reviews, nil
}

func (m *ReviewRepository) ListPending() ([]*models.Review, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var pending []*models.Review
	for id := 1; id < m.nextID; id++ {
		if review, ok := m.reviews[id]; ok && !review.Approved {
			pending = append(pending, review)
		}
	}
	return pending, nil
}

func (m *ReviewRepository) ApproveIfPending(id int) (*models.Review, bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	review, exists := m.reviews[id]
	if !exists {
		return nil, false, repositories.ErrNotFound
	}
	if review.Approved {
		return review, false, nil
	}
	review.Approved = true
	review.Notified = true
	return review, true, nil
}

func (m *ReviewRepository) DeleteByPost(postID int) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for id, review := range m.reviews {
		if review.PostID == postID {
			delete(m.reviews, id)
		}
	}
	return nil
}

func (m *ReviewRepository) Delete(id int) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.reviews[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.reviews, id)
	return nil
}

// CategoryRepository is an in-memory CategoryRepository for tests.
type CategoryRepository struct {
	categories map[int]*models.Category
	nextID     int
	mutex      sync.RWMutex
}

// NewCategoryRepository creates an empty in-memory category repository.
func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{
		categories: make(map[int]*models.Category),
		nextID:     1,
	}
}

func (m *CategoryRepository) Create(category *models.Category) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	category.BeforeCreate()
	category.ID = m.nextID
	m.nextID++
	m.categories[category.ID] = category
	return nil
}

func (m *CategoryRepository) GetByID(id int) (*models.Category, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	category, exists := m.categories[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return category, nil
}

func (m *CategoryRepository) GetBySlug(slug string) (*models.Category, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for _, category := range m.categories {
		if category.Slug == slug {
			return category, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *CategoryRepository) List() ([]*models.Category, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var categories []*models.Category
	for id := 1; id < m.nextID; id++ {
		if category, ok := m.categories[id]; ok {
			categories = append(categories, category)
		}
	}
	return categories, nil
}

func (m *CategoryRepository) Delete(id int) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.categories[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.categories, id)
	return nil
}

// ServiceRepository is an in-memory ServiceRepository for tests.
type ServiceRepository struct {
	services map[int]*models.Service
	nextID   int
	mutex    sync.RWMutex
}

// NewServiceRepository creates an empty in-memory catalog repository.
func NewServiceRepository() *ServiceRepository {
	return &ServiceRepository{
		services: make(map[int]*models.Service),
		nextID:   1,
	}
}

func (m *ServiceRepository) Create(service *models.Service) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	service.BeforeCreate()
	service.ID = m.nextID
	m.nextID++
	m.services[service.ID] = service
	return nil
}

func (m *ServiceRepository) GetByID(id int) (*models.Service, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	service, exists := m.services[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return service, nil
}

func (m *ServiceRepository) GetBySlug(slug string) (*models.Service, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for _, service := range m.services {
		if service.Slug == slug {
			return service, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *ServiceRepository) List() ([]*models.Service, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var services []*models.Service
	for id := 1; id < m.nextID; id++ {
		if service, ok := m.services[id]; ok {
			services = append(services, service)
		}
	}
	sort.SliceStable(services, func(i, j int) bool {
		return services[i].Order < services[j].Order
	})
	return services, nil
}

func (m *ServiceRepository) Update(service *models.Service) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.services[service.ID]; !exists {
		return repositories.ErrNotFound
	}
	m.services[service.ID] = service
	return nil
}

func (m *ServiceRepository) Delete(id int) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.services[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.services, id)
	return nil
}

func (m *ServiceRepository) AddImage(image *models.ServiceImage) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	service, exists := m.services[image.ServiceID]
	if !exists {
		return repositories.ErrNotFound
	}
	image.ID = len(service.Images) + 1
	service.Images = append(service.Images, image)
	return nil
}
