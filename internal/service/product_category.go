package service

import (
	"context"

	"catalog-service/internal/domain"

	log "github.com/sirupsen/logrus"
)

type ProductCategoryRepository interface {
	List(ctx context.Context) ([]domain.ProductCategory, error)
	Create(ctx context.Context, cat domain.ProductCategory) (*domain.ProductCategory, error)
	UpdateLabel(ctx context.Context, name, label string) error
	Delete(ctx context.Context, name string) error
}

type productCategoryService struct {
	categoryRepo ProductCategoryRepository
	guard        *CategoryGuard
	audit        *AuditService
}

func NewProductCategoryService(categoryRepo ProductCategoryRepository, guard *CategoryGuard, audit *AuditService) *productCategoryService {
	return &productCategoryService{
		categoryRepo: categoryRepo,
		guard:        guard,
		audit:        audit,
	}
}

// ListCategories returns categories in creation order.
func (s *productCategoryService) ListCategories(ctx context.Context) ([]domain.ProductCategory, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to list product categories")
		return nil, err
	}
	return categories, nil
}

// CreateCategory derives the slug from req.Name. Uniqueness is left to the
// store so that concurrent creates of the same slug resolve to exactly one
// winner.
func (s *productCategoryService) CreateCategory(ctx context.Context, req domain.CreateCategoryRequest) (*domain.ProductCategory, error) {
	cat, err := domain.NewCategory(req.Name, req.Label)
	if err != nil {
		return nil, err
	}

	created, err := s.categoryRepo.Create(ctx, cat)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"category": created.Name,
		"label":    created.Label,
	}).Info("Product category successfully created")

	s.audit.RecordCategoryCreated(ctx, created)
	return created, nil
}

// UpdateCategory changes the label only; the slug is immutable.
func (s *productCategoryService) UpdateCategory(ctx context.Context, name string, req domain.UpdateCategoryRequest) error {
	label, err := domain.ValidateCategoryLabel(req.Label)
	if err != nil {
		return err
	}

	if err := s.categoryRepo.UpdateLabel(ctx, name, label); err != nil {
		return err
	}

	s.audit.RecordCategoryLabelUpdated(ctx, name, label)
	return nil
}

func (s *productCategoryService) DeleteCategory(ctx context.Context, name string) error {
	if err := s.guard.DeleteCategory(ctx, name); err != nil {
		return err
	}

	log.WithField("category", name).Info("Product category successfully deleted")
	s.audit.RecordCategoryDeleted(ctx, name)
	return nil
}
