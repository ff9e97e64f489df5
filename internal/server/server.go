package server

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	db Pinger
}

func NewServer(db Pinger) *Server {
	return &Server{db: db}
}

func (s *Server) HealthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		log.WithField("error", err).Error("Health check failed: database is down")
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "unhealthy",
			"error":  "database connection error",
		})
	}
	return c.JSON(http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

type Handlers struct {
	Server     *Server
	Products   *productServer
	Categories *productCategoryServer
	Admin      *catalogServer
	Client     *catalogServer
	Metrics    echo.HandlerFunc
}

// RegisterRoutes mounts the admin and client surfaces on e.
func RegisterRoutes(e *echo.Echo, h Handlers) {
	e.GET("/health", h.Server.HealthCheck)
	if h.Metrics != nil {
		e.GET("/metrics", h.Metrics)
	}

	api := e.Group("/api")

	admin := api.Group("/admin")
	categories := admin.Group("/categories")
	categories.GET("", h.Categories.ListCategories)
	categories.POST("", h.Categories.CreateCategory)
	categories.PUT("/:name", h.Categories.UpdateCategory)
	categories.DELETE("/:name", h.Categories.DeleteCategory)

	products := admin.Group("/products")
	products.GET("", h.Products.ListProducts)
	products.POST("", h.Products.CreateProduct)
	products.PUT("/:id", h.Products.UpdateProduct)
	products.DELETE("/:id", h.Products.DeleteProduct)

	admin.GET("/catalog", h.Admin.Browse)
	admin.GET("/catalog/suggest", h.Admin.Suggest)

	api.GET("/catalog", h.Client.Browse)
	api.GET("/catalog/suggest", h.Client.Suggest)
}
