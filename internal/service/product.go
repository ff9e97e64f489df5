package service

import (
	"context"

	"catalog-service/internal/domain"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const msgInvalidProductID = "Invalid product id."

type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	Update(ctx context.Context, p domain.Product) error
	Delete(ctx context.Context, id string) error
	CountByCategory(ctx context.Context, category string) (int64, error)
}

type productService struct {
	productRepo ProductRepository
	audit       *AuditService
}

func NewProductService(productRepo ProductRepository, audit *AuditService) *productService {
	return &productService{
		productRepo: productRepo,
		audit:       audit,
	}
}

func validateProductID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.NewValidationError(msgInvalidProductID)
	}
	return nil
}

// ListProducts returns every product, oldest first.
func (s *productService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to list products")
		return nil, err
	}
	return products, nil
}

func (s *productService) CreateProduct(ctx context.Context, in domain.ProductInput) (*domain.Product, error) {
	product := in.ToProduct()
	if err := domain.ValidateProduct(product); err != nil {
		return nil, err
	}

	created, err := s.productRepo.Create(ctx, product)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"product_id": created.ID,
		"category":   created.Category,
	}).Info("Product successfully created")

	s.audit.RecordProductCreated(ctx, created)
	return created, nil
}

// UpdateProduct replaces the whole record. The category is not checked
// against the category table.
func (s *productService) UpdateProduct(ctx context.Context, id string, in domain.ProductInput) error {
	if err := validateProductID(id); err != nil {
		return err
	}

	product := in.ToProduct()
	product.ID = id
	if err := domain.ValidateProduct(product); err != nil {
		return err
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return err
	}

	log.WithField("product_id", id).Info("Product successfully updated")
	s.audit.RecordProductUpdated(ctx, product)
	return nil
}

func (s *productService) DeleteProduct(ctx context.Context, id string) error {
	if err := validateProductID(id); err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.RecordProductDeleted(ctx, id)
	return nil
}

func (s *productService) CountByCategory(ctx context.Context, category string) (int64, error) {
	return s.productRepo.CountByCategory(ctx, category)
}
