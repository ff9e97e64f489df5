package service

import (
	"context"

	"catalog-service/internal/domain"

	log "github.com/sirupsen/logrus"
)

type ProductCounter interface {
	CountByCategory(ctx context.Context, category string) (int64, error)
}

type CategoryDeleter interface {
	Delete(ctx context.Context, name string) error
}

// CategoryGuard owns the only referential-integrity rule in the catalog:
// a category cannot be deleted while products still use its slug.
//
// The count and the delete are two separate round-trips. A product
// inserted between them is left pointing at a deleted slug; the catalog
// renders such products under a derived label.
type CategoryGuard struct {
	products   ProductCounter
	categories CategoryDeleter
}

func NewCategoryGuard(products ProductCounter, categories CategoryDeleter) *CategoryGuard {
	return &CategoryGuard{products: products, categories: categories}
}

func (g *CategoryGuard) DeleteCategory(ctx context.Context, name string) error {
	count, err := g.products.CountByCategory(ctx, name)
	if err != nil {
		return err
	}
	if count > 0 {
		log.WithFields(log.Fields{
			"category": name,
			"products": count,
		}).Info("Refusing to delete category still in use")
		return &domain.CategoryInUseError{Name: name, Count: count}
	}

	return g.categories.Delete(ctx, name)
}
