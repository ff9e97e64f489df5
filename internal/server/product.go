package server

import (
	"context"
	"net/http"

	"catalog-service/internal/domain"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
)

type ProductService interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	CreateProduct(ctx context.Context, in domain.ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id string, in domain.ProductInput) error
	DeleteProduct(ctx context.Context, id string) error
}

type productServer struct {
	productService ProductService
}

func NewProductServer(productService ProductService) *productServer {
	return &productServer{
		productService: productService,
	}
}

func (s *productServer) ListProducts(c echo.Context) error {
	products, err := s.productService.ListProducts(c.Request().Context())
	if err != nil {
		return respondError(c, err, nil)
	}

	return c.JSON(http.StatusOK, products)
}

func (s *productServer) bindInput(c echo.Context) (domain.ProductInput, error) {
	var in domain.ProductInput
	if err := c.Bind(&in); err != nil {
		return in, err
	}
	return in, c.Validate(&in)
}

func (s *productServer) CreateProduct(c echo.Context) error {
	in, err := s.bindInput(c)
	if err != nil {
		if _, ok := err.(*echo.HTTPError); ok {
			return invalidBody(c)
		}
		return respondError(c, err, nil)
	}

	product, err := s.productService.CreateProduct(c.Request().Context(), in)
	if err != nil {
		return respondError(c, err, log.Fields{"name": in.Name})
	}

	return c.JSON(http.StatusCreated, product)
}

func (s *productServer) UpdateProduct(c echo.Context) error {
	id := c.Param("id")

	in, err := s.bindInput(c)
	if err != nil {
		if _, ok := err.(*echo.HTTPError); ok {
			return invalidBody(c)
		}
		return respondError(c, err, log.Fields{"product_id": id})
	}

	if err := s.productService.UpdateProduct(c.Request().Context(), id, in); err != nil {
		return respondError(c, err, log.Fields{"product_id": id})
	}

	return c.NoContent(http.StatusNoContent)
}

func (s *productServer) DeleteProduct(c echo.Context) error {
	id := c.Param("id")

	if err := s.productService.DeleteProduct(c.Request().Context(), id); err != nil {
		return respondError(c, err, log.Fields{"product_id": id})
	}

	return c.NoContent(http.StatusNoContent)
}
