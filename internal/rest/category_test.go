package rest

import (
	"context"
	"net/http"
	"testing"
	"time"

	"myMarket/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) category(args mock.Arguments) (*domain.Category, error) {
	c, _ := args.Get(0).(*domain.Category)
	return c, args.Error(1)
}

func (m *MockCategoryService) GetAllCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	categories, _ := args.Get(0).([]domain.Category)
	return categories, args.Error(1)
}

func (m *MockCategoryService) GetCategory(ctx context.Context, id uint64) (*domain.Category, error) {
	return m.category(m.Called(ctx, id))
}

func (m *MockCategoryService) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	return m.category(m.Called(ctx, name))
}

func (m *MockCategoryService) RenameCategory(ctx context.Context, id uint64, name string) (*domain.Category, error) {
	return m.category(m.Called(ctx, id, name))
}

func (m *MockCategoryService) DeleteCategory(ctx context.Context, id uint64) error {
	return m.Called(ctx, id).Error(0)
}

func TestCategoryHandler_Rename(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
	}{
		{"renamed", `{"product_category":"Electronics"}`, nil, http.StatusOK},
		{"missing name", `{}`, nil, http.StatusBadRequest},
		{"name taken", `{"product_category":"Books"}`, domain.ErrCategoryExists, http.StatusConflict},
		{"unknown category", `{"product_category":"Toys"}`, domain.ErrCategoryNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockCategoryService)
			svc.On("RenameCategory", mock.Anything, uint64(2), mock.Anything).
				Return(&domain.Category{CategoryID: 2, ProductCategory: "Electronics"}, tt.serviceErr).Maybe()

			c, rec := newContext(http.MethodPut, "/api/v1/categories/2", tt.body, 1)
			c.SetParamNames("id")
			c.SetParamValues("2")

			require.NoError(t, NewCategoryHandler(svc, time.Second).RenameCategory(c))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestCategoryHandler_Delete(t *testing.T) {
	svc := new(MockCategoryService)
	svc.On("DeleteCategory", mock.Anything, uint64(3)).Return(nil)

	c, rec := newContext(http.MethodDelete, "/api/v1/categories/3", "", 1)
	c.SetParamNames("id")
	c.SetParamValues("3")

	require.NoError(t, NewCategoryHandler(svc, time.Second).DeleteCategory(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	svc.AssertExpectations(t)
}
