package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"goaguide/directory-service/internal/app/directory/entity"
	"goaguide/directory-service/internal/app/directory/repository/mocks"
	"goaguide/directory-service/internal/app/directory/util"
)

func TestDefaultCategories_Taxonomy(t *testing.T) {
	categories := DefaultCategories()

	require.Len(t, categories, 8)

	slugs := make(map[string]bool)
	for _, c := range categories {
		assert.NotEmpty(t, c.Name)
		assert.NotEmpty(t, c.Icon)
		assert.NotEmpty(t, c.Subcategories, c.Slug)
		assert.False(t, slugs[c.Slug], "duplicate slug %s", c.Slug)
		slugs[c.Slug] = true

		// slug совпадает с тем, что получил бы админ при создании категории
		assert.Equal(t, c.Slug, util.GenerateSlug(c.Name))
	}
}

func TestSeeder_Run_CountsCreatedAndUpdated(t *testing.T) {
	repo := new(mocks.MockCategoryRepository)
	cache := new(mocks.MockCache)

	repo.On("UpsertBySlug", mock.Anything, mock.MatchedBy(func(c *entity.Category) bool {
		return c.Slug == "hotels-stays"
	})).Return(false, nil)
	repo.On("UpsertBySlug", mock.Anything, mock.MatchedBy(func(c *entity.Category) bool {
		return c.Slug != "hotels-stays" && c.IsActive
	})).Return(true, nil)
	cache.On("DeleteCategories", mock.Anything).Return(nil)

	result, err := NewSeeder(repo, cache).Run(context.Background(), DefaultCategories())

	require.NoError(t, err)
	assert.Equal(t, 7, result.Created)
	assert.Equal(t, 1, result.Updated)
	cache.AssertCalled(t, "DeleteCategories", mock.Anything)
}

func TestSeeder_Run_StopsOnError(t *testing.T) {
	repo := new(mocks.MockCategoryRepository)

	repo.On("UpsertBySlug", mock.Anything, mock.Anything).Return(false, errors.New("mongo down")).Once()

	result, err := NewSeeder(repo, nil).Run(context.Background(), DefaultCategories())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "tours-experiences")
	assert.Zero(t, result.Created)
	repo.AssertNumberOfCalls(t, "UpsertBySlug", 1)
}
