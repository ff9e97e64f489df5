package server

import (
	"context"
	"net/http"
	"strings"

	"catalog-service/internal/catalog"
	"catalog-service/internal/domain"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
)

const (
	SurfaceAdmin  = "admin"
	SurfaceClient = "client"
)

type CatalogService interface {
	Browse(ctx context.Context, q catalog.Query) (*catalog.View, error)
	Suggest(ctx context.Context, term string) ([]domain.Product, error)
}

type QueryObserver interface {
	ObserveCatalogQuery(surface, kind string, results int)
}

// catalogServer is mounted once per surface. Both surfaces share the same
// CatalogService and therefore the same query semantics.
type catalogServer struct {
	catalogService CatalogService
	observer       QueryObserver
	surface        string
}

func NewCatalogServer(catalogService CatalogService, observer QueryObserver, surface string) *catalogServer {
	return &catalogServer{
		catalogService: catalogService,
		observer:       observer,
		surface:        surface,
	}
}

// parseQuery accepts ?category=a&category=b as well as ?category=a,b.
func parseQuery(c echo.Context) catalog.Query {
	var slugs []string
	for _, v := range c.QueryParams()["category"] {
		slugs = append(slugs, strings.Split(v, ",")...)
	}
	return catalog.NewQuery(slugs, c.QueryParam("q"))
}

func (s *catalogServer) observe(kind string, results int) {
	if s.observer != nil {
		s.observer.ObserveCatalogQuery(s.surface, kind, results)
	}
}

func (s *catalogServer) Browse(c echo.Context) error {
	q := parseQuery(c)

	view, err := s.catalogService.Browse(c.Request().Context(), q)
	if err != nil {
		return respondError(c, err, log.Fields{"surface": s.surface})
	}

	s.observe("browse", len(view.Results))
	return c.JSON(http.StatusOK, view)
}

func (s *catalogServer) Suggest(c echo.Context) error {
	term := c.QueryParam("q")

	products, err := s.catalogService.Suggest(c.Request().Context(), term)
	if err != nil {
		return respondError(c, err, log.Fields{"surface": s.surface})
	}

	s.observe("suggest", len(products))
	return c.JSON(http.StatusOK, products)
}
