package services

import (
	"fmt"

	"driftwood/app/models"
	"driftwood/app/repositories"
)

// CatalogGroup is one catalog section: a fixed category plus its
// services in display order.
type CatalogGroup struct {
	Code     models.ServiceCategory `json:"code"`
	Name     string                 `json:"name"`
	Services []*models.Service      `json:"services"`
}

// CatalogService handles the resort offering catalog.
type CatalogService struct {
	serviceRepo repositories.ServiceRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(serviceRepo repositories.ServiceRepository) *CatalogService {
	return &CatalogService{serviceRepo: serviceRepo}
}

// CreateService adds a catalog entry with validation.
func (s *CatalogService) CreateService(service *models.Service) error {
	service.BeforeCreate()
	if err := service.Validate(); err != nil {
		return fmt.Errorf("invalid service: %w", err)
	}
	return s.serviceRepo.Create(service)
}

// UpdateService updates a catalog entry with validation.
func (s *CatalogService) UpdateService(service *models.Service) error {
	if err := service.Validate(); err != nil {
		return fmt.Errorf("invalid service: %w", err)
	}
	if _, err := s.serviceRepo.GetByID(service.ID); err != nil {
		return err
	}
	return s.serviceRepo.Update(service)
}

// DeleteService removes a catalog entry.
func (s *CatalogService) DeleteService(id int) error {
	return s.serviceRepo.Delete(id)
}

// GetService resolves one offering by slug.
func (s *CatalogService) GetService(slug string) (*models.Service, error) {
	return s.serviceRepo.GetBySlug(slug)
}

// AddImage attaches a gallery image to an offering.
func (s *CatalogService) AddImage(image *models.ServiceImage) error {
	if err := image.Validate(); err != nil {
		return fmt.Errorf("invalid service image: %w", err)
	}
	return s.serviceRepo.AddImage(image)
}

// ListGrouped returns the whole catalog grouped by category, in the fixed
// category order. Empty categories are included so the navigation stays
// stable.
func (s *CatalogService) ListGrouped() ([]*CatalogGroup, error) {
	all, err := s.serviceRepo.List()
	if err != nil {
		return nil, err
	}

	byCategory := make(map[models.ServiceCategory][]*models.Service)
	for _, svc := range all {
		byCategory[svc.Category] = append(byCategory[svc.Category], svc)
	}

	groups := make([]*CatalogGroup, 0, len(models.ServiceCategories))
	for _, cat := range models.ServiceCategories {
		groups = append(groups, &CatalogGroup{
			Code:     cat.Code,
			Name:     cat.Name,
			Services: byCategory[cat.Code],
		})
	}
	return groups, nil
}

// ListByCategory returns the offerings of one category in display order.
func (s *CatalogService) ListByCategory(code models.ServiceCategory) ([]*models.Service, error) {
	all, err := s.serviceRepo.List()
	if err != nil {
		return nil, err
	}
	var out []*models.Service
	for _, svc := range all {
		if svc.Category == code {
			out = append(out, svc)
		}
	}
	return out, nil
}

// ListFeatured returns the offerings flagged for the front page.
func (s *CatalogService) ListFeatured() ([]*models.Service, error) {
	all, err := s.serviceRepo.List()
	if err != nil {
		return nil, err
	}
	var out []*models.Service
	for _, svc := range all {
		if svc.IsFeatured {
			out = append(out, svc)
		}
	}
	return out, nil
}
