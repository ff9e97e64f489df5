package service

import (
	"context"

	"catalog-service/internal/catalog"
	"catalog-service/internal/domain"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type ProductLister interface {
	List(ctx context.Context) ([]domain.Product, error)
}

type CategoryLister interface {
	List(ctx context.Context) ([]domain.ProductCategory, error)
}

// catalogService serves the admin and client product browsers. Both go
// through Browse so their filtering, grouping and labels cannot drift.
type catalogService struct {
	products   ProductLister
	categories CategoryLister
}

func NewCatalogService(products ProductLister, categories CategoryLister) *catalogService {
	return &catalogService{products: products, categories: categories}
}

// Snapshot fetches products and categories concurrently. If either fetch
// fails no snapshot is returned, so callers never mix fresh and missing data.
func (s *catalogService) Snapshot(ctx context.Context) (catalog.Snapshot, error) {
	var snapshot catalog.Snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		products, err := s.products.List(gctx)
		if err != nil {
			log.WithError(err).Error("Catalog snapshot: failed to fetch products")
			return err
		}
		snapshot.Products = products
		return nil
	})
	g.Go(func() error {
		categories, err := s.categories.List(gctx)
		if err != nil {
			log.WithError(err).Error("Catalog snapshot: failed to fetch categories")
			return err
		}
		snapshot.Categories = categories
		return nil
	})

	if err := g.Wait(); err != nil {
		return catalog.Snapshot{}, err
	}
	return snapshot, nil
}

func (s *catalogService) Browse(ctx context.Context, q catalog.Query) (*catalog.View, error) {
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	view := catalog.Run(snapshot, q)
	return &view, nil
}

// Suggest only needs products, so categories are not fetched.
func (s *catalogService) Suggest(ctx context.Context, term string) ([]domain.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Suggest(products, term, catalog.DefaultSuggestionLimit), nil
}
