package services

import (
	"testing"

	"driftwood/app/models"
	"driftwood/app/repositories"
	"driftwood/app/repositories/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCatalog(t *testing.T) *CatalogService {
	t.Helper()
	service := NewCatalogService(mock.NewServiceRepository())

	offerings := []*models.Service{
		{Name: "Infinity Pool", Category: models.CategoryPool, Description: "Open all day", Order: 2},
		{Name: "Kiddie Pool", Category: models.CategoryPool, Description: "Shallow and shaded", Order: 1},
		{Name: "Seaview Cabana", Category: models.CategoryCabana, Description: "Sleeps four", IsFeatured: true},
	}
	for _, o := range offerings {
		require.NoError(t, service.CreateService(o))
	}
	return service
}

func TestCatalogGrouping(t *testing.T) {
	service := seedCatalog(t)

	groups, err := service.ListGrouped()
	require.NoError(t, err)
	require.Len(t, groups, len(models.ServiceCategories))

	// Fixed category order, pools first.
	assert.Equal(t, models.CategoryPool, groups[0].Code)
	require.Len(t, groups[0].Services, 2)
	assert.Equal(t, "Kiddie Pool", groups[0].Services[0].Name)

	// Empty categories still present.
	assert.Equal(t, models.CategoryExclusive, groups[len(groups)-1].Code)
	assert.Empty(t, groups[len(groups)-1].Services)
}

func TestCatalogLookups(t *testing.T) {
	service := seedCatalog(t)

	t.Run("slug lookup", func(t *testing.T) {
		got, err := service.GetService("seaview-cabana")
		require.NoError(t, err)
		assert.Equal(t, "Seaview Cabana", got.Name)

		_, err = service.GetService("no-such-thing")
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})

	t.Run("featured listing", func(t *testing.T) {
		featured, err := service.ListFeatured()
		require.NoError(t, err)
		require.Len(t, featured, 1)
		assert.Equal(t, "Seaview Cabana", featured[0].Name)
	})

	t.Run("category listing", func(t *testing.T) {
		pools, err := service.ListByCategory(models.CategoryPool)
		require.NoError(t, err)
		assert.Len(t, pools, 2)
	})

	t.Run("invalid category code rejected on create", func(t *testing.T) {
		err := service.CreateService(&models.Service{
			Name: "Mystery Tent", Category: "TENT", Description: "??",
		})
		assert.Error(t, err)
	})

	t.Run("image attaches to existing offering only", func(t *testing.T) {
		got, err := service.GetService("infinity-pool")
		require.NoError(t, err)

		require.NoError(t, service.AddImage(&models.ServiceImage{
			ServiceID: got.ID, Filename: "pool.jpg",
		}))
		err = service.AddImage(&models.ServiceImage{ServiceID: 999, Filename: "x.jpg"})
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})
}
