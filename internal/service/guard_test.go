package service

import (
	"context"
	"errors"
	"testing"

	"catalog-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCategoryGuard_DeleteCategory(t *testing.T) {
	tests := []struct {
		name       string
		count      int64
		countErr   error
		wantDelete bool
		check      func(t *testing.T, err error)
	}{
		{
			name:       "unused category is deleted",
			count:      0,
			wantDelete: true,
			check:      func(t *testing.T, err error) { assert.NoError(t, err) },
		},
		{
			name:  "category in use is kept",
			count: 3,
			check: func(t *testing.T, err error) {
				var inUse *domain.CategoryInUseError
				require.ErrorAs(t, err, &inUse)
				assert.Equal(t, int64(3), inUse.Count)
				assert.Equal(t, "switch", inUse.Name)
			},
		},
		{
			name:     "count failure aborts",
			countErr: domain.NewStorageError("count products", errors.New("timeout")),
			check: func(t *testing.T, err error) {
				var storageErr *domain.StorageError
				assert.ErrorAs(t, err, &storageErr)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products := new(MockProductRepository)
			categories := new(MockCategoryRepository)
			guard := NewCategoryGuard(NewProductService(products, nil), categories)

			products.On("CountByCategory", mock.Anything, "switch").Return(tt.count, tt.countErr).Once()
			if tt.wantDelete {
				categories.On("Delete", mock.Anything, "switch").Return(nil).Once()
			}

			tt.check(t, guard.DeleteCategory(context.Background(), "switch"))

			products.AssertExpectations(t)
			if tt.wantDelete {
				categories.AssertExpectations(t)
			} else {
				categories.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestCategoryGuard_DeleteMissingCategory(t *testing.T) {
	products := new(MockProductRepository)
	categories := newMemoryCategoryRepository()
	guard := NewCategoryGuard(products, categories)

	products.On("CountByCategory", mock.Anything, "ghost").Return(int64(0), nil).Once()

	assert.ErrorIs(t, guard.DeleteCategory(context.Background(), "ghost"), domain.ErrCategoryNotFound)
}
