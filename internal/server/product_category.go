package server

import (
	"context"
	"net/http"

	"catalog-service/internal/domain"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
)

type ProductCategoryService interface {
	ListCategories(ctx context.Context) ([]domain.ProductCategory, error)
	CreateCategory(ctx context.Context, req domain.CreateCategoryRequest) (*domain.ProductCategory, error)
	UpdateCategory(ctx context.Context, name string, req domain.UpdateCategoryRequest) error
	DeleteCategory(ctx context.Context, name string) error
}

type productCategoryServer struct {
	categoryService ProductCategoryService
}

func NewProductCategoryServer(categoryService ProductCategoryService) *productCategoryServer {
	return &productCategoryServer{
		categoryService: categoryService,
	}
}

func (s *productCategoryServer) ListCategories(c echo.Context) error {
	categories, err := s.categoryService.ListCategories(c.Request().Context())
	if err != nil {
		return respondError(c, err, nil)
	}

	return c.JSON(http.StatusOK, categories)
}

func (s *productCategoryServer) CreateCategory(c echo.Context) error {
	var req domain.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}

	category, err := s.categoryService.CreateCategory(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err, log.Fields{"name": req.Name})
	}

	return c.JSON(http.StatusCreated, category)
}

// UpdateCategory changes the label of the category named in the path.
func (s *productCategoryServer) UpdateCategory(c echo.Context) error {
	name := c.Param("name")

	var req domain.UpdateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}

	if err := s.categoryService.UpdateCategory(c.Request().Context(), name, req); err != nil {
		return respondError(c, err, log.Fields{"category": name})
	}

	return c.NoContent(http.StatusNoContent)
}

func (s *productCategoryServer) DeleteCategory(c echo.Context) error {
	name := c.Param("name")

	if err := s.categoryService.DeleteCategory(c.Request().Context(), name); err != nil {
		return respondError(c, err, log.Fields{"category": name})
	}

	return c.NoContent(http.StatusNoContent)
}
