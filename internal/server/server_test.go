package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"catalog-service/internal/catalog"
	"catalog-service/internal/domain"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }

type fakeProductService struct {
	created domain.ProductInput
	err     error
}

func (f *fakeProductService) ListProducts(context.Context) ([]domain.Product, error) {
	return []domain.Product{}, f.err
}

func (f *fakeProductService) CreateProduct(_ context.Context, in domain.ProductInput) (*domain.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = in
	p := in.ToProduct()
	p.ID = "p1"
	return &p, nil
}

func (f *fakeProductService) UpdateProduct(context.Context, string, domain.ProductInput) error {
	return f.err
}

func (f *fakeProductService) DeleteProduct(context.Context, string) error { return f.err }

type fakeCategoryService struct {
	err error
}

func (f *fakeCategoryService) ListCategories(context.Context) ([]domain.ProductCategory, error) {
	return nil, f.err
}

func (f *fakeCategoryService) CreateCategory(_ context.Context, req domain.CreateCategoryRequest) (*domain.ProductCategory, error) {
	if f.err != nil {
		return nil, f.err
	}
	cat, err := domain.NewCategory(req.Name, req.Label)
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

func (f *fakeCategoryService) UpdateCategory(context.Context, string, domain.UpdateCategoryRequest) error {
	return f.err
}

func (f *fakeCategoryService) DeleteCategory(context.Context, string) error { return f.err }

type snapshotCatalog struct {
	snapshot catalog.Snapshot
	err      error
}

func (s *snapshotCatalog) Browse(_ context.Context, q catalog.Query) (*catalog.View, error) {
	if s.err != nil {
		return nil, s.err
	}
	view := catalog.Run(s.snapshot, q)
	return &view, nil
}

func (s *snapshotCatalog) Suggest(_ context.Context, term string) ([]domain.Product, error) {
	return catalog.Suggest(s.snapshot.Products, term, catalog.DefaultSuggestionLimit), s.err
}

type recordingObserver struct {
	calls []string
}

func (o *recordingObserver) ObserveCatalogQuery(surface, kind string, _ int) {
	o.calls = append(o.calls, surface+":"+kind)
}

type testEnv struct {
	e          *echo.Echo
	products   *fakeProductService
	categories *fakeCategoryService
	catalog    *snapshotCatalog
	observer   *recordingObserver
}

func newTestEnv(pingErr error) *testEnv {
	env := &testEnv{
		e:          echo.New(),
		products:   &fakeProductService{},
		categories: &fakeCategoryService{},
		catalog: &snapshotCatalog{snapshot: catalog.Snapshot{
			Products: []domain.Product{
				{ID: "1", Name: "Dome Cam", Description: "HD", Category: "cctv"},
				{ID: "2", Name: "Bullet Cam", Description: "4MP", Category: "cctv"},
				{ID: "3", Name: "Core Switch", Category: "switch"},
				{ID: "4", Name: "IR Kit", Category: "night_vision_kit"},
			},
			Categories: []domain.ProductCategory{{Name: "cctv", Label: "CCTV"}},
		}},
		observer: &recordingObserver{},
	}
	env.e.Validator = NewValidator()

	RegisterRoutes(env.e, Handlers{
		Server:     NewServer(fakePinger{err: pingErr}),
		Products:   NewProductServer(env.products),
		Categories: NewProductCategoryServer(env.categories),
		Admin:      NewCatalogServer(env.catalog, env.observer, SurfaceAdmin),
		Client:     NewCatalogServer(env.catalog, env.observer, SurfaceClient),
	})
	return env
}

func (env *testEnv) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestHealthCheck(t *testing.T) {
	assert.Equal(t, http.StatusOK, newTestEnv(nil).do(http.MethodGet, "/health", "").Code)
	assert.Equal(t, http.StatusServiceUnavailable, newTestEnv(errors.New("down")).do(http.MethodGet, "/health", "").Code)
}

func TestCreateCategory(t *testing.T) {
	env := newTestEnv(nil)

	rec := env.do(http.MethodPost, "/api/admin/categories", `{"name":"Access Points","label":"Access Points"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var cat domain.ProductCategory
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cat))
	assert.Equal(t, "access_points", cat.Name)

	rec = env.do(http.MethodPost, "/api/admin/categories", `{"name":"!!","label":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Name and label are required.", errorMessage(t, rec))

	rec = env.do(http.MethodPost, "/api/admin/categories", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCategoryErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		method     string
		path       string
		body       string
		wantStatus int
		wantMsg    string
	}{
		{"duplicate", domain.ErrDuplicateCategory, http.MethodPost, "/api/admin/categories", `{"name":"a","label":"b"}`,
			http.StatusConflict, "A category with that name already exists."},
		{"in use", &domain.CategoryInUseError{Name: "switch", Count: 1}, http.MethodDelete, "/api/admin/categories/switch", "",
			http.StatusConflict, "Cannot delete: 1 product(s) still use this category."},
		{"label empty", domain.NewValidationError("Label cannot be empty."), http.MethodPut, "/api/admin/categories/switch", `{"label":" "}`,
			http.StatusBadRequest, "Label cannot be empty."},
		{"not found", domain.ErrCategoryNotFound, http.MethodDelete, "/api/admin/categories/ghost", "",
			http.StatusNotFound, "Category not found."},
		{"storage", domain.NewStorageError("list categories", errors.New("timeout")), http.MethodGet, "/api/admin/categories", "",
			http.StatusInternalServerError, "list categories: timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(nil)
			env.categories.err = tt.err

			rec := env.do(tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantMsg, errorMessage(t, rec))
		})
	}
}

func TestCreateProduct(t *testing.T) {
	env := newTestEnv(nil)

	rec := env.do(http.MethodPost, "/api/admin/products", `{"name":"Dome Cam","category":"cctv","price":-5,"stocks":3.7}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var p domain.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.True(t, p.Price.Equal(decimal.Zero))
	assert.Equal(t, int64(3), p.Stocks)
	assert.Equal(t, "-5", env.products.created.Price.String())
}

func TestCreateProduct_NameRequired(t *testing.T) {
	env := newTestEnv(nil)

	rec := env.do(http.MethodPost, "/api/admin/products", `{"category":"cctv","price":10}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Name is required.", errorMessage(t, rec))
}

func TestProduct_BlankNameRejected(t *testing.T) {
	env := newTestEnv(nil)

	for _, tt := range []struct{ method, path string }{
		{http.MethodPost, "/api/admin/products"},
		{http.MethodPut, "/api/admin/products/p1"},
	} {
		rec := env.do(tt.method, tt.path, `{"name":"   ","category":"cctv","price":10}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code, tt.method)
		assert.Equal(t, "Name is required.", errorMessage(t, rec), tt.method)
	}
	assert.Empty(t, env.products.created.Name)
}

func TestCreateProduct_PriceTooLarge(t *testing.T) {
	env := newTestEnv(nil)
	env.products.err = domain.NewValidationError("Price is too large.")

	rec := env.do(http.MethodPost, "/api/admin/products", `{"name":"Dome Cam","price":"1e12"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Price is too large.", errorMessage(t, rec))
}

func TestUpdateAndDeleteProduct(t *testing.T) {
	env := newTestEnv(nil)
	assert.Equal(t, http.StatusNoContent, env.do(http.MethodPut, "/api/admin/products/p1", `{"name":"x"}`).Code)
	assert.Equal(t, http.StatusNoContent, env.do(http.MethodDelete, "/api/admin/products/p1", "").Code)

	env.products.err = domain.ErrProductNotFound
	rec := env.do(http.MethodDelete, "/api/admin/products/p1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Product not found.", errorMessage(t, rec))
}

func TestCatalog_AdminAndClientAgree(t *testing.T) {
	env := newTestEnv(nil)

	for _, query := range []string{"", "?q=cam", "?category=cctv,switch", "?category=cctv&category=nope&q=bullet", "?category=nope"} {
		admin := env.do(http.MethodGet, "/api/admin/catalog"+query, "")
		client := env.do(http.MethodGet, "/api/catalog"+query, "")
		require.Equal(t, http.StatusOK, admin.Code)
		require.Equal(t, http.StatusOK, client.Code)
		assert.JSONEq(t, admin.Body.String(), client.Body.String(), "query %q", query)
	}
	assert.Contains(t, env.observer.calls, "admin:browse")
	assert.Contains(t, env.observer.calls, "client:browse")
}

func TestCatalog_Browse(t *testing.T) {
	env := newTestEnv(nil)

	rec := env.do(http.MethodGet, "/api/catalog?q=cam", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var view catalog.View
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.Len(t, view.Groups, 1)
	assert.Equal(t, "CCTV", view.Groups[0].Label)
	assert.Len(t, view.Groups[0].Items, 2)

	rec = env.do(http.MethodGet, "/api/catalog?category=night_vision_kit", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.Len(t, view.Groups, 1)
	assert.Equal(t, "Night Vision Kit", view.Groups[0].Label)
}

func TestCatalog_BrowseFailure(t *testing.T) {
	env := newTestEnv(nil)
	env.catalog.err = domain.NewStorageError("list products", errors.New("connection refused"))

	rec := env.do(http.MethodGet, "/api/catalog", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "list products: connection refused", errorMessage(t, rec))
}

func TestCatalog_Suggest(t *testing.T) {
	env := newTestEnv(nil)

	rec := env.do(http.MethodGet, "/api/catalog/suggest?q=cam", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var products []domain.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	assert.Len(t, products, 2)

	rec = env.do(http.MethodGet, "/api/catalog/suggest", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	assert.Empty(t, products)
}
