package service

import (
	"context"
	"sync"

	"catalog-service/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, p domain.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProductRepository) CountByCategory(ctx context.Context, category string) (int64, error) {
	args := m.Called(ctx, category)
	return args.Get(0).(int64), args.Error(1)
}

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]domain.ProductCategory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProductCategory), args.Error(1)
}

func (m *MockCategoryRepository) Create(ctx context.Context, cat domain.ProductCategory) (*domain.ProductCategory, error) {
	args := m.Called(ctx, cat)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductCategory), args.Error(1)
}

func (m *MockCategoryRepository) UpdateLabel(ctx context.Context, name, label string) error {
	return m.Called(ctx, name, label).Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

type MockAuditPublisher struct {
	mock.Mock
}

func (m *MockAuditPublisher) Publish(ctx context.Context, event domain.AuditEvent) error {
	return m.Called(ctx, event).Error(0)
}

// memoryCategoryRepository enforces name uniqueness the way the unique
// index does, for concurrency tests.
type memoryCategoryRepository struct {
	mu         sync.Mutex
	categories map[string]domain.ProductCategory
}

func newMemoryCategoryRepository() *memoryCategoryRepository {
	return &memoryCategoryRepository{categories: map[string]domain.ProductCategory{}}
}

func (r *memoryCategoryRepository) List(context.Context) ([]domain.ProductCategory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.ProductCategory, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, c)
	}
	return out, nil
}

func (r *memoryCategoryRepository) Create(_ context.Context, cat domain.ProductCategory) (*domain.ProductCategory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[cat.Name]; ok {
		return nil, domain.ErrDuplicateCategory
	}
	cat.ID = cat.Name
	r.categories[cat.Name] = cat
	return &cat, nil
}

func (r *memoryCategoryRepository) UpdateLabel(_ context.Context, name, label string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cat, ok := r.categories[name]
	if !ok {
		return domain.ErrCategoryNotFound
	}
	cat.Label = label
	r.categories[name] = cat
	return nil
}

func (r *memoryCategoryRepository) Delete(_ context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[name]; !ok {
		return domain.ErrCategoryNotFound
	}
	delete(r.categories, name)
	return nil
}
