package repositories

import (
	"fmt"

	"driftwood/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerServiceRepository implements ServiceRepository using BadgerDB
type BadgerServiceRepository struct {
	db *badger.DB
}

// NewBadgerServiceRepository creates a new BadgerServiceRepository
func NewBadgerServiceRepository(db *badger.DB) *BadgerServiceRepository {
	return &BadgerServiceRepository{db: db}
}

// Create creates a new catalog service
func (r *BadgerServiceRepository) Create(service *models.Service) error {
	return r.db.Update(func(txn *badger.Txn) error {
		service.BeforeCreate()

		id, err := nextID(txn, ServiceSeqKey)
		if err != nil {
			return err
		}
		service.ID = id

		data, err := marshalEntity(service)
		if err != nil {
			return err
		}
		return txn.Set(entityKey(ServiceKeyPrefix, service.ID), data)
	})
}

// GetByID retrieves a catalog service by ID, with gallery images
func (r *BadgerServiceRepository) GetByID(id int) (*models.Service, error) {
	var service models.Service
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(entityKey(ServiceKeyPrefix, id))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if err := item.Value(func(val []byte) error {
			return unmarshalEntity(val, &service)
		}); err != nil {
			return err
		}

		images, err := listServiceImages(txn, id)
		if err != nil {
			return err
		}
		service.Images = images
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &service, nil
}

// GetBySlug retrieves a catalog service by slug
func (r *BadgerServiceRepository) GetBySlug(slug string) (*models.Service, error) {
	services, err := r.List()
	if err != nil {
		return nil, err
	}
	for _, s := range services {
		if s.Slug == slug {
			return s, nil
		}
	}
	return nil, ErrNotFound
}

func listServiceImages(txn *badger.Txn, serviceID int) ([]*models.ServiceImage, error) {
	opts := badger.DefaultIteratorOptions
	it := txn.NewIterator(opts)
	defer it.Close()

	var images []*models.ServiceImage
	prefix := []byte(fmt.Sprintf("%s%08d:", ServiceImageKeyPrefix, serviceID))
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		var img models.ServiceImage
		err := it.Item().Value(func(val []byte) error {
			return unmarshalEntity(val, &img)
		})
		if err != nil {
			return nil, fmt.Errorf("failed to unmarshal service image: %v", err)
		}
		images = append(images, &img)
	}
	return images, nil
}

// List retrieves all catalog services ordered by their display order
func (r *BadgerServiceRepository) List() ([]*models.Service, error) {
	var services []*models.Service
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(ServiceKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var service models.Service
			err := item.Value(func(val []byte) error {
				return unmarshalEntity(val, &service)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal service: %v", err)
			}
			services = append(services, &service)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Stable ordering by the operator-assigned display order.
	for i := 1; i < len(services); i++ {
		for j := i; j > 0 && services[j].Order < services[j-1].Order; j-- {
			services[j], services[j-1] = services[j-1], services[j]
		}
	}
	return services, nil
}

// Update updates an existing catalog service
func (r *BadgerServiceRepository) Update(service *models.Service) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := entityKey(ServiceKeyPrefix, service.ID)
		if _, err := txn.Get(key); err == badger.ErrKeyNotFound {
			return ErrNotFound
		} else if err != nil {
			return err
		}

		data, err := marshalEntity(service)
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
}

// Delete deletes a catalog service and its gallery images
func (r *BadgerServiceRepository) Delete(id int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := entityKey(ServiceKeyPrefix, id)
		if _, err := txn.Get(key); err == badger.ErrKeyNotFound {
			return ErrNotFound
		} else if err != nil {
			return err
		}

		imgPrefix := []byte(fmt.Sprintf("%s%08d:", ServiceImageKeyPrefix, id))
		if err := deletePrefix(txn, imgPrefix); err != nil {
			return err
		}
		return txn.Delete(key)
	})
}

// AddImage attaches a gallery image record to a service
func (r *BadgerServiceRepository) AddImage(image *models.ServiceImage) error {
	return r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(entityKey(ServiceKeyPrefix, image.ServiceID)); err == badger.ErrKeyNotFound {
			return ErrNotFound
		} else if err != nil {
			return err
		}

		id, err := nextID(txn, ServiceImageSeqKey)
		if err != nil {
			return err
		}
		image.ID = id

		data, err := marshalEntity(image)
		if err != nil {
			return err
		}
		return txn.Set(entityKey(ServiceImageKeyPrefix, image.ServiceID, image.ID), data)
	})
}

// BadgerCategoryRepository implements CategoryRepository using BadgerDB
type BadgerCategoryRepository struct {
	db *badger.DB
}

// NewBadgerCategoryRepository creates a new BadgerCategoryRepository
func NewBadgerCategoryRepository(db *badger.DB) *BadgerCategoryRepository {
	return &BadgerCategoryRepository{db: db}
}

// Create creates a new blog category
func (r *BadgerCategoryRepository) Create(category *models.Category) error {
	return r.db.Update(func(txn *badger.Txn) error {
		category.BeforeCreate()

		id, err := nextID(txn, CategorySeqKey)
		if err != nil {
			return err
		}
		category.ID = id

		data, err := marshalEntity(category)
		if err != nil {
			return err
		}
		return txn.Set(entityKey(CategoryKeyPrefix, category.ID), data)
	})
}

// GetByID retrieves a category by ID
func (r *BadgerCategoryRepository) GetByID(id int) (*models.Category, error) {
	var category models.Category
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(entityKey(CategoryKeyPrefix, id))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &category)
		})
	})
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// GetBySlug retrieves a category by slug
func (r *BadgerCategoryRepository) GetBySlug(slug string) (*models.Category, error) {
	categories, err := r.List()
	if err != nil {
		return nil, err
	}
	for _, c := range categories {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, ErrNotFound
}

// List retrieves all categories
func (r *BadgerCategoryRepository) List() ([]*models.Category, error) {
	var categories []*models.Category
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(CategoryKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var category models.Category
			err := item.Value(func(val []byte) error {
				return unmarshalEntity(val, &category)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal category: %v", err)
			}
			categories = append(categories, &category)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// Delete deletes a category by ID
func (r *BadgerCategoryRepository) Delete(id int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := entityKey(CategoryKeyPrefix, id)
		if _, err := txn.Get(key); err == badger.ErrKeyNotFound {
			return ErrNotFound
		} else if err != nil {
			return err
		}
		return txn.Delete(key)
	})
}
